// Package cli implements the vpctree command line.
//
// The root command renders one VPC ("vpctree VPC_ID") or lists them
// ("vpctree -l"); the subcommands are:
//   - tree: render one VPC to stdout or a file, as text or JSON
//   - list: list the VPCs of a snapshot
//   - view: page through a tree interactively
//   - serve: expose the same trees over HTTP
//   - cache: inspect or clear the report cache
//   - completion: shell completion scripts
//
// Diagnostics go to stderr through a charmbracelet/log logger carried in the
// command context. --verbose (-V) lowers it to debug level and additionally
// logs fetch, render, cache and request events.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vpctree/pkg/observability"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or the
// package default when a command runs without setup.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// debugHooks logs pipeline and cache events at debug level.
type debugHooks struct {
	logger *log.Logger
}

// installDebugHooks routes observability events to logger.
func installDebugHooks(logger *log.Logger) {
	h := debugHooks{logger: logger}
	observability.SetReportHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h debugHooks) OnFetchStart(_ context.Context, vpcID string) {
	h.logger.Debug("fetch started", "vpc", vpcID)
}

func (h debugHooks) OnFetchComplete(_ context.Context, vpcID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "vpc", vpcID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("fetch complete", "vpc", vpcID, "duration", d)
}

func (h debugHooks) OnRenderStart(_ context.Context, vpcID string) {
	h.logger.Debug("render started", "vpc", vpcID)
}

func (h debugHooks) OnRenderComplete(_ context.Context, vpcID string, lines int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "vpc", vpcID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "vpc", vpcID, "lines", lines, "duration", d)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h debugHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request started", "method", method, "path", path)
}

func (h debugHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
