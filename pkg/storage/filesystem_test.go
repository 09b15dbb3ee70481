package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/JaimeStill/regdesk/pkg/storage"
)

func newStore(t *testing.T) storage.System {
	t.Helper()
	cfg := &storage.Config{BasePath: t.TempDir()}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	s, err := storage.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestCreate_NoOverwrite(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "screenshots/a.png", []byte("first")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := s.Create(ctx, "screenshots/a.png", []byte("second"))
	if !errors.Is(err, storage.ErrExists) {
		t.Fatalf("second Create() error = %v, want ErrExists", err)
	}

	data, err := s.Retrieve(ctx, "screenshots/a.png")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if string(data) != "first" {
		t.Errorf("Retrieve() = %q, want %q", data, "first")
	}
}

func TestCreate_Concurrent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range n {
		wg.Go(func() {
			if err := s.Create(ctx, "k/same.png", []byte("x")); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}

	keys, err := s.Keys(ctx, "k")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != "k/same.png" {
		t.Errorf("Keys() = %v, want only k/same.png", keys)
	}
}

func TestStoreRetrieveDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.Store(ctx, "a/b.png", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Store(ctx, "a/b.png", []byte("v2")); err != nil {
		t.Fatal(err)
	}

	data, _ := s.Retrieve(ctx, "a/b.png")
	if string(data) != "v2" {
		t.Errorf("Retrieve() = %q, want v2", data)
	}

	if ok, _ := s.Validate(ctx, "a/b.png"); !ok {
		t.Error("Validate() = false, want true")
	}
	if err := s.Delete(ctx, "a/b.png"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "a/b.png"); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
	if _, err := s.Retrieve(ctx, "a/b.png"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() after delete error = %v, want ErrNotFound", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "../escape.png", "/abs/path.png", "a/../../b"} {
		t.Run(key, func(t *testing.T) {
			if err := s.Create(ctx, key, []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Create(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestKeys_MissingPrefix(t *testing.T) {
	s := newStore(t)
	keys, err := s.Keys(context.Background(), "screenshots")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Keys() = %v, want empty", keys)
	}
}

func TestPublicURL_RoundTrip(t *testing.T) {
	s := newStore(t)

	url := s.PublicURL("screenshots/id-1.png")
	if url != "/files/screenshots/id-1.png" {
		t.Errorf("PublicURL() = %q", url)
	}

	key, ok := s.KeyFromURL(url)
	if !ok || key != "screenshots/id-1.png" {
		t.Errorf("KeyFromURL() = %q, %v", key, ok)
	}
	if _, ok := s.KeyFromURL("https://elsewhere.example/x.png"); ok {
		t.Error("KeyFromURL() accepted a foreign URL")
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_STORAGE_MAX", "2MiB")

	cfg := storage.Config{PublicURL: "https://cdn.example/objects/"}
	if err := cfg.Finalize(&storage.Env{MaxUploadSize: "TEST_STORAGE_MAX"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.MaxUploadSizeBytes() != 2*1024*1024 {
		t.Errorf("MaxUploadSizeBytes() = %d", cfg.MaxUploadSizeBytes())
	}
	if cfg.PublicURL != "https://cdn.example/objects" {
		t.Errorf("PublicURL = %q", cfg.PublicURL)
	}

	bad := storage.Config{MaxUploadSize: "lots"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() expected error for invalid size")
	}
}
