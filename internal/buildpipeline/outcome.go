package buildpipeline

import (
	"strings"

	"brisk/internal/diag"
)

// OutcomeKind tags the two build outcomes.
type OutcomeKind uint8

const (
	// OutcomeSuccess is a completed pass, possibly with warnings.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeFailure is a failed pass with a single reported reason.
	OutcomeFailure
)

// Outcome is the classification of one build pass. Exactly one outcome
// is produced per invocation and it is the sole basis for exit-code
// selection and reporting.
type Outcome struct {
	Kind OutcomeKind
	// Reason holds the failure message. Failure only.
	Reason string
	// Warnings carried forward on Success.
	Warnings []diag.Diagnostic
	// TypeCheckOnly is set when the failure stems purely from the
	// type-check phase and not from the bundler itself.
	TypeCheckOnly bool
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Kind == OutcomeFailure
}

// Decide applies the outcome policy to a classified set.
//
// Errors always win: the result is a failure carrying only the first
// error, no matter how many were reported. Без ошибок: в строгом
// CI-режиме предупреждения эскалируются до ошибки (причина — все
// предупреждения, склеенные вместе); иначе сборка успешна и все
// предупреждения передаются дальше.
func Decide(set *diag.Set, strictCI bool) Outcome {
	if first, ok := set.FirstError(); ok {
		return Outcome{
			Kind:          OutcomeFailure,
			Reason:        first.Message,
			TypeCheckOnly: set.TypeCheckOnly(),
		}
	}
	if strictCI && set.HasWarnings() {
		warnings := set.Warnings()
		msgs := make([]string, 0, len(warnings))
		for _, w := range warnings {
			msgs = append(msgs, w.Message)
		}
		return Outcome{Kind: OutcomeFailure, Reason: strings.Join(msgs, "\n\n")}
	}
	return Outcome{Kind: OutcomeSuccess, Warnings: set.Warnings()}
}
