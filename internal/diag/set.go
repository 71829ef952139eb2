package diag

// Set хранит классифицированные диагностики одного прогона бандлера,
// разделённые на ошибки и предупреждения. Порядок добавления сохраняется.
type Set struct {
	errors   []Diagnostic
	warnings []Diagnostic
}

// Add routes a diagnostic into the matching sequence.
// SevInfo diagnostics are kept with the warnings.
func (s *Set) Add(d Diagnostic) {
	if d.Severity >= SevError {
		s.errors = append(s.errors, d)
		return
	}
	s.warnings = append(s.warnings, d)
}

// Errors возвращает read-only slice ошибок.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (s *Set) Errors() []Diagnostic {
	return s.errors
}

// Warnings возвращает read-only slice предупреждений.
func (s *Set) Warnings() []Diagnostic {
	return s.warnings
}

// HasErrors возвращает true, если есть хотя бы одна ошибка.
func (s *Set) HasErrors() bool {
	return len(s.errors) > 0
}

// HasWarnings возвращает true, если есть хотя бы одно предупреждение.
func (s *Set) HasWarnings() bool {
	return len(s.warnings) > 0
}

// FirstError returns the first error in report order.
func (s *Set) FirstError() (Diagnostic, bool) {
	if len(s.errors) == 0 {
		return Diagnostic{}, false
	}
	return s.errors[0], true
}

// TypeCheckOnly reports whether every error came from the type-check
// phase. False when there are no errors at all.
func (s *Set) TypeCheckOnly() bool {
	if len(s.errors) == 0 {
		return false
	}
	for i := range s.errors {
		if s.errors[i].Origin != OriginTypeCheck {
			return false
		}
	}
	return true
}
