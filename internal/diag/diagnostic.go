package diag

// Origin tells which phase of the external pipeline produced a message.
type Origin uint8

const (
	// OriginBundler marks messages from the bundler pipeline proper.
	OriginBundler Origin = iota
	// OriginTypeCheck marks messages from the standalone type-check phase.
	OriginTypeCheck
)

func (o Origin) String() string {
	switch o {
	case OriginBundler:
		return "bundler"
	case OriginTypeCheck:
		return "typecheck"
	}
	return "unknown"
}

// Diagnostic is a single classified bundler message.
type Diagnostic struct {
	Severity Severity
	Origin   Origin
	Message  string
}
