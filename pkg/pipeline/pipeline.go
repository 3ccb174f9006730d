// Package pipeline builds a manifest of assets into files under an output
// root. Assets share no state, so they are rendered in parallel; a failing
// asset is reported and the rest of the batch still runs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/xob0t/stonegen/pkg/generator"
)

// Options tunes Run.
type Options struct {
	// Workers bounds concurrent assets. Zero means GOMAXPROCS.
	Workers int
}

// Result reports one asset's outcome.
type Result struct {
	Name    string
	Path    string
	Bytes   int
	Elapsed time.Duration
	Err     error
}

// Run builds every asset under root and returns one Result per asset, in
// manifest order. Cancelling ctx stops scheduling; unscheduled assets report
// ctx.Err().
func Run(ctx context.Context, root string, assets []Asset, opts Options) []Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := Logger()
	log.Info("building assets", "count", len(assets), "root", root, "workers", workers)

	results := make([]Result, len(assets))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, a := range assets {
		results[i] = Result{Name: a.Name, Path: a.OutputPath(root)}

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(r *Result, a Asset) {
			defer wg.Done()
			defer func() { <-sem }()
			build(r, a)
		}(&results[i], a)
	}
	wg.Wait()

	failed := Failed(results)
	for _, r := range failed {
		log.Warn("asset failed", "name", r.Name, "path", r.Path, "err", r.Err)
	}
	log.Info("assets built", "ok", len(results)-len(failed), "failed", len(failed))
	return results
}

func build(r *Result, a Asset) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			r.Err = fmt.Errorf("%s: panic: %v", a.Name, p)
		}
		r.Elapsed = time.Since(start)
	}()

	if a.Renderer == nil {
		r.Err = fmt.Errorf("%s: no renderer", a.Name)
		return
	}
	cfg, err := a.Renderer.Render()
	if err != nil {
		r.Err = fmt.Errorf("render %s: %w", a.Name, err)
		return
	}
	data, err := generator.Encode(extOf(r.Path), cfg)
	if err != nil {
		r.Err = fmt.Errorf("encode %s: %w", a.Name, err)
		return
	}
	if err := generator.WriteFile(r.Path, data); err != nil {
		r.Err = err
		return
	}
	r.Bytes = len(data)
	Logger().Debug("asset written", "name", a.Name, "path", r.Path, "bytes", r.Bytes, "elapsed", time.Since(start))
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Err joins every asset error, or returns nil when all succeeded.
func Err(results []Result) error {
	var errs []error
	for _, r := range Failed(results) {
		errs = append(errs, fmt.Errorf("%s: %w", r.Path, r.Err))
	}
	return errors.Join(errs...)
}
