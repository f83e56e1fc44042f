package redis

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"certbank-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type countingLoader struct {
	loads int32
	file  *domain.JsonlFile
}

func (l *countingLoader) Latest(_ context.Context, _ int64) (*domain.JsonlFile, error) {
	atomic.AddInt32(&l.loads, 1)
	if l.file == nil {
		return nil, nil
	}
	copied := *l.file
	return &copied, nil
}

func newTestCache(t *testing.T, loader ExportLoader) (*ExportCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewExportCache(client, loader, time.Minute), mr
}

func TestExportCacheFillsRedisKey(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{file: &domain.JsonlFile{ID: 1, CertificacaoID: 5, Content: "x", Filename: "x.jsonl"}}
	cache, mr := newTestCache(t, loader)

	file, err := cache.Latest(ctx, 5)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if file == nil || file.ID != 1 {
		t.Fatalf("expected loaded export, got %+v", file)
	}
	if !mr.Exists("jsonl:latest:5") {
		t.Fatalf("expected redis key to be set")
	}

	if _, err := cache.Latest(ctx, 5); err != nil {
		t.Fatalf("latest: %v", err)
	}
	if n := atomic.LoadInt32(&loader.loads); n != 1 {
		t.Fatalf("expected a single loader hit, got %d", n)
	}
}

func TestExportCacheInvalidateDeletesKey(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{file: &domain.JsonlFile{ID: 1, CertificacaoID: 5, Content: "x", Filename: "x.jsonl"}}
	cache, mr := newTestCache(t, loader)

	if _, err := cache.Latest(ctx, 5); err != nil {
		t.Fatalf("latest: %v", err)
	}
	if err := cache.Invalidate(ctx, 5); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists("jsonl:latest:5") {
		t.Fatalf("expected redis key to be removed")
	}

	loader.file = &domain.JsonlFile{ID: 2, CertificacaoID: 5, Content: "y", Filename: "y.jsonl"}
	file, err := cache.Latest(ctx, 5)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if file == nil || file.ID != 2 {
		t.Fatalf("expected reloaded export, got %+v", file)
	}
}

func TestExportCacheMissWithoutExports(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{}
	cache, mr := newTestCache(t, loader)

	file, err := cache.Latest(ctx, 5)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if file != nil {
		t.Fatalf("expected nil for certificacao without exports, got %+v", file)
	}
	if mr.Exists("jsonl:latest:5") {
		t.Fatalf("expected no redis key for empty result")
	}
}
