// Package batch parses many OCR documents concurrently.
//
// Every document is parsed independently. A document that fails to parse is
// reported in its Result and does not stop the others; only cancellation of
// the context aborts a batch.
package batch

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gardar/ocrtext/pkg/ocr"
	"github.com/gardar/ocrtext/pkg/ocrformat"
)

// Job is a single document to parse
type Job struct {
	Name   string           // Label used in results and diagnostics, usually the file path
	Markup []byte           // Document content
	Format ocrformat.Format // FormatUnknown = detect from the content
	Ref    ocr.Size         // Reference size to scale coordinates to
}

// Result is the outcome of a single job
type Result struct {
	Name   string
	Format ocrformat.Format
	Page   *ocr.Page
	Err    error
}

// Options holds batch settings
type Options struct {
	Workers int         // Maximum number of documents parsed at once (<= 0 = number of CPUs)
	Parse   ocr.Options // Options passed to every parser
}

// DefaultOptions returns options that use one worker per CPU
func DefaultOptions() Options {
	return Options{
		Workers: runtime.NumCPU(),
		Parse:   ocr.DefaultOptions(),
	}
}

// Parse parses all jobs and returns their results in input order
func Parse(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	results := make([]Result, len(jobs))
	err := run(ctx, len(jobs), opts, func(i int) {
		results[i] = parseJob(jobs[i], opts.Parse)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ParseFiles reads and parses the given files. Read errors are reported per
// file like parse errors.
func ParseFiles(ctx context.Context, paths []string, format ocrformat.Format, ref ocr.Size, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))
	err := run(ctx, len(paths), opts, func(i int) {
		markup, err := os.ReadFile(paths[i])
		if err != nil {
			results[i] = Result{Name: paths[i], Format: format, Err: fmt.Errorf("failed to read OCR file: %w", err)}
			return
		}
		results[i] = parseJob(Job{Name: paths[i], Markup: markup, Format: format, Ref: ref}, opts.Parse)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// run calls fn for every index with at most opts.Workers calls in flight
func run(ctx context.Context, n int, opts Options, fn func(i int)) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i // per-iteration copy; go directive < 1.22 shares loop variables
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func parseJob(job Job, opts ocr.Options) Result {
	format := job.Format
	if format == ocrformat.FormatUnknown {
		format = ocrformat.Detect(job.Markup)
	}
	log := opts.Log().WithFields(logrus.Fields{
		"document": job.Name,
		"format":   format.String(),
	})

	page, err := ocrformat.ParseAs(format, job.Markup, job.Ref, ocr.Options{Logger: log})
	if err != nil {
		log.WithError(err).Warn("failed to parse OCR document")
		return Result{Name: job.Name, Format: format, Err: err}
	}
	return Result{Name: job.Name, Format: format, Page: page}
}
