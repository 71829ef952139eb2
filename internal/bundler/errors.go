package bundler

// RunError reports a transport-level failure: the bundler process could
// not produce a structured stats document at all. Selector is set when
// the underlying failure points at a CSS selector in a stylesheet.
type RunError struct {
	Msg      string
	Selector string
}

func (e *RunError) Error() string {
	if e.Msg == "" {
		return "bundler failed without a message"
	}
	return e.Msg
}
