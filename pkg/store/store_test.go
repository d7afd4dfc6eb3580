package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func init() {
	retryDelay = time.Millisecond
}

// storeContract exercises the behavior every backend shares.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "layout:missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want miss", ok, err)
	}

	if err := s.Set(ctx, "layout:main", []byte(`{"version":1}`), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, ok, err := s.Get(ctx, "layout:main")
	if err != nil || !ok {
		t.Fatalf("Get after Set = ok %v, err %v", ok, err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("Get = %q", data)
	}

	if err := s.Set(ctx, "layout:main", []byte(`{"version":2}`), 0); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	if data, _, _ := s.Get(ctx, "layout:main"); string(data) != `{"version":2}` {
		t.Errorf("Get after overwrite = %q", data)
	}

	if err := s.Delete(ctx, "layout:main"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "layout:main"); ok {
		t.Error("Get after Delete should miss")
	}
	if err := s.Delete(ctx, "layout:main"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeContract(t, s)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "k"); !ok {
		t.Fatal("entry should be live before its ttl")
	}
	now = now.Add(2 * time.Minute)
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("entry should expire after its ttl")
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("abc")
	_ = s.Set(ctx, "k", buf, 0)
	buf[0] = 'x'

	got, _, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("Set did not copy its input: %q", got)
	}
	got[1] = 'y'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("Get returned shared storage: %q", again)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Close()
	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close error = %v", err)
	}
	if err := s.Set(ctx, "k", nil, 0); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close error = %v", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "layouts"))
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	defer s.Close()
	storeContract(t, s)
}

func TestFileStoreExpiredAndCorrupt(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Set(ctx, "old", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, ok, _ := s.Get(ctx, "old"); ok {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(s.path("old")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}

	if err := os.MkdirAll(filepath.Dir(s.path("bad")), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.path("bad"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := s.Get(ctx, "bad"); ok || err != nil {
		t.Errorf("corrupt entry = ok %v, err %v; want miss", ok, err)
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"layout:a", "layout:b", "layout:c"} {
		if err := s.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, ok, _ := s.Get(ctx, "layout:a"); ok {
		t.Error("Get after Clear should miss")
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, ok, err := s.Get(ctx, "key")
	if err != nil || ok || data != nil {
		t.Errorf("NullStore.Get = %q, %v, %v; want miss", data, ok, err)
	}
	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	if got := k.LayoutKey("main"); got != "layout:main" {
		t.Errorf("LayoutKey = %q", got)
	}

	scoped := NewScopedKeyer(k, "user:123:")
	if got := scoped.LayoutKey("main"); got != "user:123:layout:main" {
		t.Errorf("scoped LayoutKey = %q", got)
	}

	// Nil inner falls back to the default keyer.
	if got := NewScopedKeyer(nil, "p:").LayoutKey("x"); got != "p:layout:x" {
		t.Errorf("nil inner LayoutKey = %q", got)
	}
}

func TestHash(t *testing.T) {
	if Hash([]byte("hello")) != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if Hash([]byte("hello")) == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(Hash(nil)) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(Hash(nil)))
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	errPermanent := errors.New("permanent")
	errFlaky := errors.New("flaky")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent error stops", 1, errPermanent, 1, errPermanent},
		{"retry then succeed", 1, Retryable(errFlaky), 2, nil},
		{"gives up after three", 5, Retryable(errFlaky), 3, errFlaky},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && IsRetryable(err) {
				t.Errorf("final error should be unwrapped: %#v", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("flaky"))
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	base := errors.New("boom")
	err := Retryable(base)
	if !IsRetryable(err) || err.Error() != "boom" || !errors.Is(err, base) {
		t.Errorf("Retryable(base) = %v", err)
	}
	if IsRetryable(base) {
		t.Error("plain errors are not retryable")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"file", Options{Backend: "file", Dir: t.TempDir()}, false},
		{"default is file", Options{Dir: t.TempDir()}, false},
		{"file without dir", Options{Backend: "file"}, true},
		{"memory", Options{Backend: "memory"}, false},
		{"none", Options{Backend: "NONE"}, false},
		{"redis without addr", Options{Backend: "redis"}, true},
		{"mongo without uri", Options{Backend: "mongo"}, true},
		{"unknown", Options{Backend: "etcd"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && s != nil {
				t.Fatalf("Open() returned a non-nil %T alongside error %v", s, err)
			}
			if s != nil {
				_ = s.Close()
			}
		})
	}
}
