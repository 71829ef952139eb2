package bundler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Exec invokes an external bundler executable. The config is written to
// the process on stdin as JSON; the process answers with a JSON document
// on stdout: either a stats document or a fatal-failure document.
type Exec struct {
	Command string
	Args    []string
}

// NewExec returns an Exec bundler for the given command line.
func NewExec(command string, args ...string) *Exec {
	return &Exec{Command: command, Args: args}
}

// fatalDocument is the shape the bundler emits when the pass aborted
// before a stats document could be assembled.
type fatalDocument struct {
	Fatal *struct {
		Message  string `json:"message"`
		Selector string `json:"selector,omitempty"`
	} `json:"fatal"`
}

// Bundle runs the external bundler once and decodes its answer.
func (x *Exec) Bundle(ctx context.Context, cfg Config) (*Stats, error) {
	if x == nil || x.Command == "" {
		return nil, &RunError{Msg: "no bundler command configured"}
	}
	if _, err := exec.LookPath(x.Command); err != nil {
		return nil, &RunError{Msg: fmt.Sprintf("bundler %q not found in PATH", x.Command)}
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bundler config: %w", err)
	}

	// #nosec G204 -- command comes from the project manifest
	cmd := exec.CommandContext(ctx, x.Command, x.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout bytes.Buffer
	var stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	raw := bytes.TrimSpace(stdout.Bytes())

	if len(raw) > 0 {
		var fatal fatalDocument
		if err := json.Unmarshal(raw, &fatal); err == nil && fatal.Fatal != nil {
			return nil, &RunError{Msg: fatal.Fatal.Message, Selector: fatal.Fatal.Selector}
		}
		var stats Stats
		if err := json.Unmarshal(raw, &stats); err == nil {
			stats.Raw = json.RawMessage(bytes.Clone(raw))
			return &stats, nil
		}
	}

	msg := strings.TrimSpace(stderr.String())
	if msg == "" && runErr != nil {
		msg = runErr.Error()
	}
	return nil, &RunError{Msg: msg}
}
