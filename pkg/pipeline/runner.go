package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vpctree/pkg/cache"
	"github.com/matzehuels/vpctree/pkg/observability"
	"github.com/matzehuels/vpctree/pkg/report"
	"github.com/matzehuels/vpctree/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the cache lifetime of reports and VPC lists when > 0.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute renders the tree of opts.VpcID from src.
//
// Sources implementing [source.Fingerprinter] are cached under
// Keyer.ReportKey; others are always fetched and rendered.
func (r *Runner) Execute(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var key string
	if fp, ok := src.(source.Fingerprinter); ok {
		key = r.Keyer.ReportKey(fp.Fingerprint(), cache.ReportKeyOpts{VpcID: opts.VpcID})
	}
	if key != "" && !opts.Refresh {
		if lines, ok := r.lookup(ctx, key, "report"); ok {
			r.Logger.Debug("report cache hit", "vpc", opts.VpcID)
			return &Result{Lines: lines, CacheHit: true, Stats: Stats{LineCount: len(lines)}}, nil
		}
	}

	result := &Result{}
	hooks := observability.Report()

	// Stage 1: Fetch
	hooks.OnFetchStart(ctx, opts.VpcID)
	fetchStart := time.Now()
	c, err := source.Fetch(ctx, src, opts.VpcID)
	result.Stats.FetchTime = time.Since(fetchStart)
	hooks.OnFetchComplete(ctx, opts.VpcID, result.Stats.FetchTime, err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("fetched resources",
		"vpc", opts.VpcID,
		"subnets", len(c.Subnets),
		"instances", len(c.Instances),
		"security_groups", len(c.SecurityGroups),
		"load_balancers", len(c.LoadBalancers),
		"target_groups", len(c.TargetGroups),
		"auto_scaling_groups", len(c.AutoScalingGroups),
		"duration", result.Stats.FetchTime)

	// Stage 2: Render
	hooks.OnRenderStart(ctx, opts.VpcID)
	renderStart := time.Now()
	lines, err := report.VPC(c)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.VpcID, len(lines), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Lines = lines
	result.Stats.LineCount = len(lines)

	r.Logger.Info("rendered VPC",
		"vpc", opts.VpcID,
		"lines", len(lines),
		"duration", result.Stats.FetchTime+result.Stats.RenderTime)

	if key != "" {
		r.store(ctx, key, "report", lines, r.ttl(cache.TTLReport))
	}
	return result, nil
}

// ListVPCs renders the list of VPCs in src.
func (r *Runner) ListVPCs(ctx context.Context, src source.Source) ([]string, error) {
	var key string
	if fp, ok := src.(source.Fingerprinter); ok {
		key = r.Keyer.VPCListKey(fp.Fingerprint())
		if lines, ok := r.lookup(ctx, key, "vpcs"); ok {
			return lines, nil
		}
	}

	vpcs, err := src.VPCs(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := report.VPCList(vpcs)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("listed VPCs", "count", len(vpcs))

	if key != "" {
		r.store(ctx, key, "vpcs", lines, r.ttl(cache.TTLVPCList))
	}
	return lines, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// lookup returns cached lines. Cache errors and undecodable entries are
// treated as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string) ([]string, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return lines, true
}

// store writes lines to the cache. Failures are logged, not returned: a
// report is still valid when it could not be cached.
func (r *Runner) store(ctx context.Context, key, keyType string, lines []string, ttl time.Duration) {
	data, err := json.Marshal(lines)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
