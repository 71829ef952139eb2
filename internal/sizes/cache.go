package sizes

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when diskPayload format changes
const cacheSchemaVersion uint16 = 1

// Cache сохраняет снапшот размеров последней успешной сборки на диске,
// чтобы отчёт о дельтах переживал очистку выходной директории.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// diskPayload is the persisted form of a snapshot.
type diskPayload struct {
	Schema uint16
	Count  uint32
	Paths  []string
	Sizes  []int64
}

// OpenCache initializes and returns a snapshot cache at the standard
// location ($XDG_CACHE_HOME/<app>/sizes or ~/.cache/<app>/sizes).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "sizes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key derives the cache key for a project root path.
func Key(projectRoot string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(projectRoot)))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".mp")
}

// Put serializes and writes a snapshot to the cache.
func (c *Cache) Put(key string, snap Snapshot) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	count, err := safecast.Conv[uint32](len(snap))
	if err != nil {
		return err
	}
	payload := diskPayload{
		Schema: cacheSchemaVersion,
		Count:  count,
		Paths:  make([]string, 0, len(snap)),
		Sizes:  make([]int64, 0, len(snap)),
	}
	for _, e := range Diff(Snapshot{}, snap) {
		payload.Paths = append(payload.Paths, e.Path)
		payload.Sizes = append(payload.Sizes, e.After)
	}

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the cached snapshot for key. A missing entry or a stale
// schema is a miss, never an error.
func (c *Cache) Get(key string) (Snapshot, bool, error) {
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
		_ = f.Close()
	}()

	var payload diskPayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion || len(payload.Paths) != len(payload.Sizes) {
		return nil, false, nil
	}
	snap := make(Snapshot, len(payload.Paths))
	for i, path := range payload.Paths {
		snap[path] = payload.Sizes[i]
	}
	return snap, true, nil
}
