// Package pipeline turns a resource source into a rendered VPC report.
//
// The pipeline has two stages, fetch and render, fronted by a cache keyed on
// the source's fingerprint. CLI and HTTP server share the same [Runner] so
// that both produce, and cache, identical reports.
//
// # Usage
//
//	snap, err := snapshot.Load("./snapshot")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, snap, pipeline.Options{VpcID: "vpc-0a1b2c3d"})
//	if err != nil {
//	    return err
//	}
//	tree.Fprint(os.Stdout, result.Lines)
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/vpctree/pkg/errors"
)

// Output formats understood by the CLI and the HTTP API.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: text, json)", format)
	}
	return nil
}

// Options configures one report.
type Options struct {
	// VpcID selects the VPC to describe.
	VpcID string `json:"vpc_id"`

	// Refresh skips the cache lookup; the fresh report still replaces the
	// cached one.
	Refresh bool `json:"refresh,omitempty"`

	// StrictIDs requires VpcID to be a real EC2 identifier rather than any
	// "vpc-" prefixed name.
	StrictIDs bool `json:"strict_ids,omitempty"`
}

// Validate checks the options.
func (o Options) Validate() error {
	if err := errors.ValidateVPCID(o.VpcID, o.StrictIDs); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Lines is the rendered tree, one entry per line without newlines.
	Lines []string

	// CacheHit reports whether Lines came from the cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics. Times are zero for stages
// that were skipped because of a cache hit.
type Stats struct {
	FetchTime  time.Duration
	RenderTime time.Duration
	LineCount  int
}
