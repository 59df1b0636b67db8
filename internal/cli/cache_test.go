package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/config"
	"github.com/matzehuels/umldoc/pkg/errors"
)

func TestClearCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, key, []byte(key), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &config.Config{Cache: config.CacheConfig{Backend: cache.BackendFile, Dir: dir}}
	n, err := clearCache(cfg)
	if err != nil {
		t.Fatalf("clearCache() error = %v", err)
	}
	if n != 3 {
		t.Errorf("clearCache() = %d, want 3", n)
	}
	if _, ok, _ := fc.Get(ctx, "a"); ok {
		t.Error("entry survived clearCache")
	}
}

func TestClearCacheMissingDir(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Backend: cache.BackendFile, Dir: filepath.Join(t.TempDir(), "never")}}
	n, err := clearCache(cfg)
	if err != nil || n != 0 {
		t.Errorf("clearCache() = %d, %v, want 0, nil", n, err)
	}
}

func TestClearCacheRedisUnsupported(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Backend: cache.BackendRedis}}
	if _, err := clearCache(cfg); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("clearCache() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestCachePathCommand(t *testing.T) {
	_, _, configPath := workspace(t, "")
	dir := filepath.Join(t.TempDir(), "artifacts")
	t.Setenv("UMLDOC_CACHE_DIR", dir)

	out := captureStdout(t)
	if _, err := execute(t, "cache", "path", "--config", configPath); err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	if got := out.String(); got != dir+"\n" {
		t.Errorf("cache path printed %q, want %q", got, dir+"\n")
	}
}
