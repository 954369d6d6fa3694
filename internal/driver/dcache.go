package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"octls/internal/diag"
	"octls/internal/source"
)

// Current schema version - increment when the cached payload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a sha256 content hash used as the cache key.
type Digest = [32]byte

// DiskCache stores per-file diagnostics keyed by content hash, so the check
// command can skip re-analyzing unchanged files across runs.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// diskPayload is the serialized cache record.
type diskPayload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	Diags []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity  uint8
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
	Message   string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location under XDG_CACHE_HOME.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "diags", hexKey+".mp")
}

// Put serializes and writes the diagnostics for one content hash. A nil
// cache is a no-op.
func (c *DiskCache) Put(key Digest, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := diskPayload{
		Schema: diskCacheSchemaVersion,
		Diags:  make([]cachedDiagnostic, 0, len(diags)),
	}
	for _, d := range diags {
		payload.Diags = append(payload.Diags, cachedDiagnostic{
			Severity:  uint8(d.Severity),
			StartLine: d.Span.Start.Line,
			StartCol:  d.Span.Start.Col,
			EndLine:   d.Span.End.Line,
			EndCol:    d.Span.End.Col,
			Message:   d.Message,
		})
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", rmErr)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close() // the encode error is the one worth reporting
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replacement.
	return os.Rename(tmp, p)
}

// Get reads the cached diagnostics for a content hash. Missing entries and
// schema mismatches report ok=false.
func (c *DiskCache) Get(key Digest) ([]diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close cache file: %v\n", closeErr)
		}
	}()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}

	diags := make([]diag.Diagnostic, 0, len(payload.Diags))
	for _, d := range payload.Diags {
		diags = append(diags, diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Span: source.Span{
				Start: source.Position{Line: d.StartLine, Col: d.StartCol},
				End:   source.Position{Line: d.EndLine, Col: d.EndCol},
			},
			Message: d.Message,
			Source:  diag.Source,
		})
	}
	return diags, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "diags"))
}
