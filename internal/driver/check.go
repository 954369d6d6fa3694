// Package driver runs the analysis pipeline outside the language server:
// batch diagnostics over file lists, with a content-addressed disk cache.
package driver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"octls/internal/diag"
	"octls/internal/parser"
	"octls/internal/types"
)

// CheckOptions configures a batch run.
type CheckOptions struct {
	// Workers caps the parallel file analyses; 0 means GOMAXPROCS.
	Workers int
	// Cache, when set, is consulted before re-analyzing a file whose
	// content hash is already known.
	Cache *DiskCache
}

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	Path        string
	Diagnostics []diag.Diagnostic
	FromCache   bool
	Err         error
}

// HasErrors reports whether any file produced a diagnostic or failed to be
// read. Every published diagnostic is an error.
func HasErrors(results []FileResult) bool {
	for _, r := range results {
		if r.Err != nil || len(r.Diagnostics) > 0 {
			return true
		}
	}
	return false
}

// CheckFiles analyzes every path in parallel and returns results in input
// order. Per-file read failures are reported in the result, not as a batch
// failure; the only batch-level error is context cancellation.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) ([]FileResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(path, opts.Cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(path string, cache *DiskCache) FileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}
	key := sha256.Sum256(content)

	if cached, ok, err := cache.Get(key); err == nil && ok {
		return FileResult{Path: path, Diagnostics: cached, FromCache: true}
	}

	root := parser.Parse(string(content))
	bindings := types.Prelude()
	types.AddBindings(root, bindings)
	diags := diag.FromTree(root)

	if err := cache.Put(key, diags); err != nil {
		// Cache failures never fail the check; drop to a fresh run next time.
		return FileResult{Path: path, Diagnostics: diags}
	}
	return FileResult{Path: path, Diagnostics: diags}
}

// SortedVariables lists the bindings of one file's analysis in name order.
// The check command prints them with --variables.
func SortedVariables(content string) []string {
	root := parser.Parse(content)
	bindings := types.Prelude()
	types.AddBindings(root, bindings)

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fmt.Sprintf("%s: %s", name, bindings[name]))
	}
	return out
}
