package main

import "testing"

func TestReadEnvConfig_StrictCI(t *testing.T) {
	cases := []struct {
		name  string
		value string
		set   bool
		want  bool
	}{
		{name: "unset", want: false},
		{name: "true", value: "true", set: true, want: true},
		{name: "one", value: "1", set: true, want: true},
		{name: "provider marker", value: "woodpecker", set: true, want: true},
		{name: "false", value: "false", set: true, want: false},
		{name: "FALSE", value: "FALSE", set: true, want: false},
		{name: "empty", value: "", set: true, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				if key == envStrictCI {
					return tc.value, tc.set
				}
				return "", false
			}
			cfg := readEnvConfig(lookup)
			if cfg.StrictCI != tc.want {
				t.Errorf("StrictCI = %v, want %v", cfg.StrictCI, tc.want)
			}
			if cfg.TolerateTypeErrors {
				t.Error("TolerateTypeErrors leaked from the CI variable")
			}
		})
	}
}

func TestReadEnvConfig_TolerateTypeErrors(t *testing.T) {
	lookup := func(key string) (string, bool) {
		if key == envTolerateTypeErrors {
			return "true", true
		}
		return "", false
	}
	cfg := readEnvConfig(lookup)
	if !cfg.TolerateTypeErrors {
		t.Error("TolerateTypeErrors = false, want true")
	}
	if cfg.StrictCI {
		t.Error("StrictCI leaked from the tolerate variable")
	}
}
