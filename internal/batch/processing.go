package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/photomat/photomat/internal/pipeline"
	"github.com/photomat/photomat/internal/utils"
)

// Process resizes every file through the pipeline with a bounded worker
// pool. Results are returned in input order. Unless ContinueOnError is set,
// the first failure is returned as the run error (processing of in-flight
// files still completes).
func Process(ctx context.Context, p *pipeline.Pipeline, files []string, opts Options) (Summary, error) {
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("batch: no input files")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	start := time.Now()
	results := make([]FileResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for rangeIdx := 0; rangeIdx < workers; rangeIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = processFile(ctx, p, files[i], opts)
			}
		}()
	}

feed:
	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	summary := Summary{
		Total:    len(files),
		Duration: time.Since(start),
		Results:  results,
	}
	var firstErr error
	for _, r := range results {
		if r.Error == "" && r.Output != "" {
			summary.Succeeded++
			continue
		}
		summary.Failed++
		if firstErr == nil && r.Error != "" {
			firstErr = fmt.Errorf("batch: %s: %s", r.Input, r.Error)
		}
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	if opts.ContinueOnError {
		return summary, nil
	}
	return summary, firstErr
}

func processFile(ctx context.Context, p *pipeline.Pipeline, path string, opts Options) FileResult {
	start := time.Now()
	res := FileResult{Input: path}

	img, _, err := utils.LoadImage(path)
	if err != nil {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	out, err := p.Resize(ctx, img, opts.Desired, opts.Thumbnail)
	if err != nil {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	outPath := outputPath(path, opts)
	if err := utils.SaveImage(out, outPath); err != nil {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	b := out.Bounds()
	res.Output = outPath
	res.Width = b.Dx()
	res.Height = b.Dy()
	res.Duration = time.Since(start)
	return res
}

// outputPath derives the destination file name, keeping the source
// extension and appending a _resized or _thumb suffix when writing next to
// the input.
func outputPath(input string, opts Options) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	suffix := "_resized"
	if opts.Thumbnail {
		suffix = "_thumb"
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, stem+suffix+ext)
}
