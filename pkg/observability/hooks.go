// Package observability lets the report pipeline, the caches and the HTTP
// server announce what they are doing without depending on a logger or a
// metrics library.
//
// Each event family has an interface and a no-op implementation. Emitters
// call the current hooks:
//
//	observability.Report().OnFetchStart(ctx, vpcID)
//
// and the application installs real ones once at startup, as the CLI does
// for --verbose:
//
//	observability.SetReportHooks(debugHooks{logger})
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// ReportHooks observes the fetch and render stages of one VPC tree.
type ReportHooks interface {
	OnFetchStart(ctx context.Context, vpcID string)
	OnFetchComplete(ctx context.Context, vpcID string, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, vpcID string)
	OnRenderComplete(ctx context.Context, vpcID string, lineCount int, duration time.Duration, err error)
}

// CacheHooks observes report cache lookups and writes. keyType is the kind
// of entry, "report" or "vpcs".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes requests served by the API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// Embed the Noop types to implement only some events.
type (
	NoopReportHooks struct{}
	NoopCacheHooks  struct{}
	NoopHTTPHooks   struct{}
)

func (NoopReportHooks) OnFetchStart(context.Context, string)                                {}
func (NoopReportHooks) OnFetchComplete(context.Context, string, time.Duration, error)       {}
func (NoopReportHooks) OnRenderStart(context.Context, string)                               {}
func (NoopReportHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds the installed implementation of one hook interface.
type slot[H any] struct {
	p    atomic.Pointer[H]
	noop H
}

func (s *slot[H]) get() H {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return s.noop
}

func (s *slot[H]) set(h H) { s.p.Store(&h) }

func (s *slot[H]) reset() { s.p.Store(nil) }

var (
	reportSlot = slot[ReportHooks]{noop: NoopReportHooks{}}
	cacheSlot  = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot   = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetReportHooks installs h. A nil h is ignored.
func SetReportHooks(h ReportHooks) {
	if h != nil {
		reportSlot.set(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

func Report() ReportHooks { return reportSlot.get() }
func Cache() CacheHooks   { return cacheSlot.get() }
func HTTP() HTTPHooks     { return httpSlot.get() }

// Reset uninstalls all hooks. Tests call it in cleanup.
func Reset() {
	reportSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
