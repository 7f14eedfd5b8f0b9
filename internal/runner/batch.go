package runner

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/geodelity/gdtest/internal/jobfile"
)

// Batch runs every job file in a directory and collects one Result per
// file. Jobs run sequentially by default; a concurrency above one enables
// a bounded worker pool. Either way, every discovered file yields exactly
// one Result and the returned slice follows lexicographic file order.
type Batch struct {
	engine      *Engine
	concurrency int
	logger      Logger
}

// NewBatch creates a Batch over the given engine. A concurrency below one
// is treated as one (the stock sequential behaviour).
func NewBatch(engine *Engine, concurrency int, logger Logger) *Batch {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Batch{engine: engine, concurrency: concurrency, logger: logger}
}

// Discover returns the job files directly under dir, sorted by name. A
// directory without job files yields an empty slice, not an error.
func Discover(dir string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "*"+jobfile.Extension))
	if err != nil {
		return nil, err
	}

	files := matches[:0]
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}

	sort.Strings(files)
	return files, nil
}

// RunAll executes every job file under dir and returns their results in
// discovery order. Per-job failures never abort the batch; the only error
// conditions are an unreadable directory and context cancellation.
func (b *Batch) RunAll(ctx context.Context, dir string) ([]Result, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	b.info("running jobs", "dir", dir, "count", len(files), "concurrency", b.concurrency)

	results := make([]Result, len(files))

	if b.concurrency == 1 {
		for i, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = b.engine.Run(ctx, file)
		}
		return results, nil
	}

	// Bounded fan-out. Each worker writes only its own slot, so the
	// result slice keeps discovery order at any concurrency. Workers
	// always return nil: per-job errors live in the Result and must not
	// cancel the group.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, file := range files {
		g.Go(func() error {
			results[i] = b.engine.Run(gctx, file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (b *Batch) info(msg interface{}, keyvals ...interface{}) {
	if b.logger != nil {
		b.logger.Info(msg, keyvals...)
	}
}
