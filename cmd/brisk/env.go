package main

import "strings"

// Environment variables recognized by `brisk build`.
const (
	// envStrictCI escalates warnings to failures. The literal string
	// "false" (or an empty value) disables it even when the variable
	// is set.
	envStrictCI = "CI"
	// envTolerateTypeErrors downgrades a pure type-check failure to a
	// warning and keeps the exit code at 0.
	envTolerateTypeErrors = "BRISK_TOLERATE_TYPE_ERRORS"
)

// envConfig is read once at command start and never mutated afterwards.
type envConfig struct {
	StrictCI           bool
	TolerateTypeErrors bool
}

// readEnvConfig builds the env-derived configuration from a lookup
// function (os.LookupEnv in production).
func readEnvConfig(lookup func(string) (string, bool)) envConfig {
	return envConfig{
		StrictCI:           flagEnabled(lookup(envStrictCI)),
		TolerateTypeErrors: flagEnabled(lookup(envTolerateTypeErrors)),
	}
}

// flagEnabled treats a set, non-empty value other than "false" as
// enabled, which is how CI providers expose their marker variables.
func flagEnabled(value string, set bool) bool {
	trimmed := strings.TrimSpace(value)
	return set && trimmed != "" && !strings.EqualFold(trimmed, "false")
}
