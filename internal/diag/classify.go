package diag

import (
	"errors"

	"brisk/internal/bundler"
)

// Classify turns the raw outcome of a bundler invocation into a Set.
//
// A transport-level failure (no structured stats at all) becomes a single
// synthetic error. When the failure points at a CSS selector, a clarifying
// line naming the selector is appended to the message. A structured result
// is mapped message by message, preserving order.
func Classify(stats *bundler.Stats, err error) *Set {
	set := &Set{}
	if err != nil {
		msg := err.Error()
		var runErr *bundler.RunError
		if errors.As(err, &runErr) && runErr.Selector != "" {
			msg += "\nCompileError: begins at CSS selector " + runErr.Selector
		}
		set.Add(Diagnostic{Severity: SevError, Origin: OriginBundler, Message: msg})
		return set
	}
	if stats == nil {
		return set
	}
	for _, m := range stats.Errors {
		set.Add(Diagnostic{Severity: SevError, Origin: originOf(m), Message: m.Text})
	}
	for _, m := range stats.Warnings {
		set.Add(Diagnostic{Severity: SevWarning, Origin: originOf(m), Message: m.Text})
	}
	return set
}

func originOf(m bundler.Message) Origin {
	if m.Origin == bundler.OriginTypeCheck {
		return OriginTypeCheck
	}
	return OriginBundler
}
