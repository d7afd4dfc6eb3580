package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	gberrors "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/observability"
	"github.com/matzehuels/gridboard/pkg/snapshot"
	"github.com/matzehuels/gridboard/pkg/store"
)

func quiet() *log.Logger { return log.New(io.Discard) }

func newBoard(t *testing.T, s store.Store, cols int) *Board {
	t.Helper()
	e := grid.NewEngine(grid.DefaultConfig(), nil, cols, grid.WithLogger(quiet()))
	b, err := New(Options{Name: "main", Engine: e, Store: s, Logger: quiet()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := b.Open(context.Background()); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return b
}

// recorder captures hook events.
type recorder struct {
	observability.NoopLayoutHooks
	observability.NoopStoreHooks

	mu      sync.Mutex
	commits []string
	rejects []string
	saves   int
	failed  int
}

func (r *recorder) OnCommit(_ context.Context, _, op string, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, op)
}

func (r *recorder) OnReject(_ context.Context, _, op, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejects = append(r.rejects, op+":"+code)
}

func (r *recorder) OnSave(context.Context, string, int, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
}

func (r *recorder) OnSaveError(context.Context, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed++
}

func installRecorder(t *testing.T) *recorder {
	t.Helper()
	r := &recorder{}
	observability.SetLayoutHooks(r)
	observability.SetStoreHooks(r)
	t.Cleanup(observability.Reset)
	return r
}

// failingStore accepts reads but fails every write.
type failingStore struct{ store.NullStore }

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("disk full")
}

func TestNewDefaults(t *testing.T) {
	b, err := New(Options{Name: "main"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if b.Key() != "layout:main" {
		t.Errorf("Key() = %q", b.Key())
	}
	if b.Cols() != grid.DefaultMinCols {
		t.Errorf("Cols() = %d", b.Cols())
	}
	if _, err := New(Options{Name: "../etc"}); !gberrors.Is(err, gberrors.ErrCodeInvalidInput) {
		t.Errorf("New(../etc) error = %v", err)
	}
}

func TestPersistAcrossOpen(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	b := newBoard(t, s, 4)
	if _, err := b.Add(ctx, "a", "cash-flow", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Add(ctx, "b", "live-prices", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Move(ctx, "b", 3, 0); err != nil {
		t.Fatal(err)
	}

	reopened := newBoard(t, s, 4)
	if diff := cmp.Diff(b.Snapshot(), reopened.Snapshot()); diff != "" {
		t.Errorf("reopened board differs (-saved +loaded):\n%s", diff)
	}

	data, ok, _ := s.Get(ctx, b.Key())
	if !ok {
		t.Fatal("layout was not saved")
	}
	doc, err := snapshot.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Cols != 4 || doc.Policy != grid.PolicyPush || doc.UpdatedAt.IsZero() {
		t.Errorf("saved header = cols %d policy %q updated %v", doc.Cols, doc.Policy, doc.UpdatedAt)
	}
}

func TestOpenKeepsSavedColumns(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	wide := newBoard(t, s, 8)
	if _, err := wide.Add(ctx, "a", "cash-flow", &grid.Point{X: 6, Y: 0}); err != nil {
		t.Fatal(err)
	}

	reopened := newBoard(t, s, 4)
	if reopened.Cols() != 8 {
		t.Errorf("Cols() = %d, want the saved 8", reopened.Cols())
	}
}

func TestOpenIgnoresBadBlobs(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"garbage", "not json"},
		{"future version", `{"version": 9, "cols": 4, "items": []}`},
		{"overlapping items", `{"version": 1, "cols": 4, "items": [
			{"id": "a", "type": "cash-flow", "x": 0, "y": 0, "w": 2, "h": 2},
			{"id": "b", "type": "cash-flow", "x": 1, "y": 1, "w": 2, "h": 2}]}`},
		{"unknown kind", `[{"id": "a", "type": "sparkline", "x": 0, "y": 0, "w": 1, "h": 1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			_ = s.Set(context.Background(), "layout:main", []byte(tt.blob), 0)

			b := newBoard(t, s, 4)
			if n := len(b.Snapshot()); n != 0 {
				t.Errorf("board has %d widgets, want an empty board", n)
			}
			if b.Cols() != 4 {
				t.Errorf("Cols() = %d, want 4", b.Cols())
			}
		})
	}
}

func TestOpenMigratesBareArray(t *testing.T) {
	s := store.NewMemoryStore()
	blob := `[
		{"id": "cash-flow-1", "type": "cash-flow", "x": 0, "y": 0, "w": 2, "h": 2},
		{"id": "team-capacity-2", "type": "team-capacity", "x": 8, "y": 0, "w": 2, "h": 2}
	]`
	_ = s.Set(context.Background(), "layout:main", []byte(blob), 0)

	b := newBoard(t, s, 4)
	want := []grid.Item{
		{ID: "cash-flow-1", Kind: "cash-flow", X: 0, Y: 0, W: 2, H: 2},
		{ID: "team-capacity-2", Kind: "team-capacity", X: 2, Y: 0, W: 2, H: 2},
	}
	if diff := cmp.Diff(want, b.Snapshot()); diff != "" {
		t.Errorf("migrated layout mismatch (-want +got):\n%s", diff)
	}
	if b.Cols() != 4 {
		t.Errorf("Cols() = %d, want 4", b.Cols())
	}
}

func TestOpenStorageError(t *testing.T) {
	s := store.NewMemoryStore()
	_ = s.Close()
	b, err := New(Options{Name: "main", Store: s, Logger: quiet()})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Open(context.Background()); !gberrors.Is(err, gberrors.ErrCodeStorage) {
		t.Errorf("Open() error = %v, want STORAGE_ERROR", err)
	}
}

func TestRejectedMutationDoesNotSave(t *testing.T) {
	ctx := context.Background()
	rec := installRecorder(t)
	b := newBoard(t, store.NewMemoryStore(), 4)

	_, _ = b.Add(ctx, "a", "cash-flow", nil)
	_, _ = b.Add(ctx, "b", "cash-flow", nil)
	saves := rec.saves

	_, err := b.Move(ctx, "a", 1, 0)
	if !gberrors.Is(err, gberrors.ErrCodeMoveRejected) {
		t.Fatalf("Move() error = %v, want MOVE_REJECTED", err)
	}
	if rec.saves != saves {
		t.Errorf("rejected move saved the layout")
	}
	if diff := cmp.Diff([]string{"move:MOVE_REJECTED"}, rec.rejects); diff != "" {
		t.Errorf("rejects mismatch (-want +got):\n%s", diff)
	}
}

func TestNoopMutationDoesNotSave(t *testing.T) {
	ctx := context.Background()
	rec := installRecorder(t)
	b := newBoard(t, store.NewMemoryStore(), 4)
	_, _ = b.Add(ctx, "a", "cash-flow", nil)
	saves := rec.saves

	if err := b.Remove(ctx, "ghost"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Add(ctx, "a", "cash-flow", nil); err != nil {
		t.Fatal(err)
	}
	if rec.saves != saves {
		t.Errorf("no-op mutations saved %d times", rec.saves-saves)
	}
}

func TestSaveFailureIsNotReturned(t *testing.T) {
	ctx := context.Background()
	rec := installRecorder(t)
	b := newBoard(t, &failingStore{}, 4)

	if _, err := b.Add(ctx, "a", "cash-flow", nil); err != nil {
		t.Fatalf("Add() error = %v, want nil despite the failing store", err)
	}
	if len(b.Snapshot()) != 1 {
		t.Error("the mutation should stay committed")
	}
	if rec.failed != 1 {
		t.Errorf("OnSaveError called %d times, want 1", rec.failed)
	}
	if err := b.Save(ctx); !gberrors.Is(err, gberrors.ErrCodeStorage) {
		t.Errorf("explicit Save() error = %v, want STORAGE_ERROR", err)
	}
}

func TestAddGeneratesID(t *testing.T) {
	b := newBoard(t, store.NewMemoryStore(), 4)
	it, err := b.Add(context.Background(), "", "cash-flow", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(it.ID, "cash-flow-") || len(it.ID) != len("cash-flow-")+36 {
		t.Errorf("generated id = %q", it.ID)
	}
	if NewWidgetID("") == NewWidgetID("") {
		t.Error("generated ids should be unique")
	}
}

func TestResetDeletesSavedLayout(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	b := newBoard(t, s, 4)
	_, _ = b.Add(ctx, "a", "cash-flow", nil)

	if err := b.Reset(ctx); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	if len(b.Snapshot()) != 0 {
		t.Error("Reset() left widgets behind")
	}
	if _, ok, _ := s.Get(ctx, b.Key()); ok {
		t.Error("Reset() left the saved layout behind")
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, store.NewMemoryStore(), 4)

	added, err := b.Seed(ctx, grid.DefaultSeed)
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if len(added) != len(grid.DefaultSeed) {
		t.Fatalf("Seed() added %d widgets, want %d", len(added), len(grid.DefaultSeed))
	}
	for i, it := range added {
		if it.Kind != grid.DefaultSeed[i] {
			t.Errorf("widget %d kind = %s, want %s", i, it.Kind, grid.DefaultSeed[i])
		}
	}

	if _, err := b.Seed(ctx, grid.DefaultSeed); !gberrors.Is(err, gberrors.ErrCodeInvalidInput) {
		t.Errorf("second Seed() error = %v, want INVALID_INPUT", err)
	}
}

func TestSeedIsAllOrNothing(t *testing.T) {
	b := newBoard(t, store.NewMemoryStore(), 4)
	_, err := b.Seed(context.Background(), []string{"cash-flow", "sparkline"})
	if !gberrors.Is(err, gberrors.ErrCodeUnknownKind) {
		t.Fatalf("Seed() error = %v, want UNKNOWN_WIDGET_KIND", err)
	}
	if n := len(b.Snapshot()); n != 0 {
		t.Errorf("failed Seed() left %d widgets", n)
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, store.NewMemoryStore(), 4)
	_, _ = b.Add(ctx, "keep", "cash-flow", nil)
	before := b.Document()

	bad := snapshot.Document{Version: 1, Cols: 6, Items: []snapshot.Record{
		{ID: "a", Type: "cash-flow", X: 0, Y: 0, W: 2, H: 2},
		{ID: "b", Type: "cash-flow", X: 1, Y: 0, W: 2, H: 2},
	}}
	if err := b.Import(ctx, bad); !gberrors.Is(err, gberrors.ErrCodeInvalidSnapshot) {
		t.Fatalf("Import(overlapping) error = %v", err)
	}
	if diff := cmp.Diff(before, b.Document()); diff != "" {
		t.Errorf("failed import changed the board (-before +after):\n%s", diff)
	}

	good := snapshot.Document{Version: 1, Cols: 6, Items: []snapshot.Record{
		{ID: "a", Type: "cash-flow", X: 4, Y: 0, W: 2, H: 2},
	}}
	if err := b.Import(ctx, good); err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if b.Cols() != 6 || len(b.Snapshot()) != 1 {
		t.Errorf("after Import cols=%d widgets=%d", b.Cols(), len(b.Snapshot()))
	}
}

func TestImportMigratesBareArray(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, store.NewMemoryStore(), 4)

	doc, err := snapshot.ReadFile(filepath.Join("..", "..", "examples", "layouts", "legacy.json"))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if err := b.Import(ctx, doc); err != nil {
		t.Fatalf("Import(legacy) error: %v", err)
	}
	if b.Cols() != 4 {
		t.Errorf("Cols() = %d, want 4", b.Cols())
	}

	items := b.Snapshot()
	if len(items) != len(doc.Items) {
		t.Fatalf("imported %d widgets, want %d", len(items), len(doc.Items))
	}
	for i, a := range items {
		if a.ID != doc.Items[i].ID {
			t.Errorf("item %d = %s, want %s", i, a.ID, doc.Items[i].ID)
		}
		if !a.Rect().Within(4) {
			t.Errorf("%s at %v is outside a 4-column grid", a.ID, a.Rect())
		}
		for _, o := range items[i+1:] {
			if a.Rect().Overlaps(o.Rect()) {
				t.Errorf("%s %v overlaps %s %v", a.ID, a.Rect(), o.ID, o.Rect())
			}
		}
	}
}

func TestEditDrivesGestures(t *testing.T) {
	ctx := context.Background()
	rec := installRecorder(t)
	b := newBoard(t, store.NewMemoryStore(), 4)
	_, _ = b.Add(ctx, "a", "cash-flow", nil)

	err := b.Edit(ctx, "drag", func(e *grid.Engine) error {
		if err := e.BeginDrag("a"); err != nil {
			return err
		}
		if _, err := e.UpdateDragTarget(2, 0); err != nil {
			return err
		}
		_, err := e.EndDrag()
		return err
	})
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	if got := b.Snapshot()[0]; got.X != 2 {
		t.Errorf("after drag a = %+v", got)
	}
	if rec.commits[len(rec.commits)-1] != "drag" {
		t.Errorf("commits = %v", rec.commits)
	}
}

func TestConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, store.NewMemoryStore(), 6)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("w%d", i)
			if _, err := b.Add(ctx, id, "cash-flow", nil); err != nil {
				t.Errorf("Add(%s) error: %v", id, err)
				return
			}
			_, _ = b.Move(ctx, id, i%5, i)
			_, _ = b.Reflow(ctx, 4+i%4)
		}(i)
	}
	wg.Wait()

	if n := len(b.Snapshot()); n != 20 {
		t.Errorf("board has %d widgets, want 20", n)
	}
	var verr error
	b.View(func(e *grid.Engine) {
		items := e.Snapshot()
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if items[i].Rect().Overlaps(items[j].Rect()) {
					verr = fmt.Errorf("%s overlaps %s", items[i].ID, items[j].ID)
				}
			}
		}
	})
	if verr != nil {
		t.Error(verr)
	}
}
