// Package bundler defines the contract with the external asset bundler.
// The bundler itself is a separate executable: brisk hands it a config,
// waits for a stats document, and never looks inside the pipeline.
package bundler

import (
	"context"
	"encoding/json"
)

// Config describes a single compilation pass for the external bundler.
type Config struct {
	Entry      string            `json:"entry"`
	Template   string            `json:"template"`
	OutputDir  string            `json:"outputDir"`
	PublicDir  string            `json:"publicDir"`
	Mode       string            `json:"mode"`
	SourceMaps bool              `json:"sourceMaps"`
	Define     map[string]string `json:"define,omitempty"`
}

// Origin tags where a message came from inside the bundler pipeline.
// The type checker runs as a distinct phase, so its messages carry their
// own tag; everything else is attributed to the bundler proper.
const (
	OriginBundler   = "bundler"
	OriginTypeCheck = "typecheck"
)

// Message is a single diagnostic line reported by the bundler.
type Message struct {
	Text   string `json:"text"`
	Origin string `json:"origin,omitempty"`
}

// Asset is one emitted output file.
type Asset struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Stats is the structured result of one compilation pass.
// Raw holds the stats document exactly as the bundler produced it;
// it is persisted verbatim when stats output is requested.
type Stats struct {
	Assets   []Asset   `json:"assets"`
	Errors   []Message `json:"errors"`
	Warnings []Message `json:"warnings"`

	Raw json.RawMessage `json:"-"`
}

// Bundler runs one compilation pass. Implementations must treat every
// call as independent; brisk invokes Bundle exactly once per build.
type Bundler interface {
	Bundle(ctx context.Context, cfg Config) (*Stats, error)
}
