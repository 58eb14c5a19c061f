package execctx_test

import (
	"errors"
	"testing"

	"github.com/dshills/leap/internal/dispatcher/execctx"
	"github.com/dshills/leap/internal/leap"
)

type mockText string

func (m mockText) Text() string { return string(m) }

func (m mockText) LineColumn(offset int) (int, int) { return 0, offset }

type mockCursor int

func (m mockCursor) Primary() int { return int(m) }

type mockView struct{ start, end int }

func (m mockView) VisibleRange() (int, int) { return m.start, m.end }

func TestNew(t *testing.T) {
	ctx := execctx.New()

	if ctx.Count != 1 {
		t.Errorf("expected default Count 1, got %d", ctx.Count)
	}
	if ctx.Data == nil {
		t.Error("expected Data to be initialized")
	}
	if ctx.Logger == nil {
		t.Error("expected Logger to be initialized")
	}
}

func TestWithCount(t *testing.T) {
	ctx := execctx.New().WithCount(3)
	if ctx.GetCount() != 3 {
		t.Errorf("expected count 3, got %d", ctx.GetCount())
	}

	ctx = execctx.New().WithCount(-1)
	if ctx.GetCount() != 1 {
		t.Errorf("negative count should be ignored, got %d", ctx.GetCount())
	}

	ctx.Count = 0
	if ctx.GetCount() != 1 {
		t.Errorf("zero count should read as 1, got %d", ctx.GetCount())
	}
}

func TestData(t *testing.T) {
	shared := map[string]interface{}{}
	ctx := execctx.New().WithData(shared)

	ctx.SetData("k", 7)
	if shared["k"] != 7 {
		t.Error("SetData should write through to the shared map")
	}

	v, ok := ctx.GetData("k")
	if !ok || v != 7 {
		t.Errorf("GetData = %v, %t", v, ok)
	}

	if _, ok := ctx.GetData("missing"); ok {
		t.Error("expected missing key")
	}

	empty := &execctx.ExecutionContext{}
	if _, ok := empty.GetData("k"); ok {
		t.Error("expected miss on nil Data")
	}
	empty.SetData("k", 1)
	if _, ok := empty.GetData("k"); !ok {
		t.Error("SetData should initialize Data")
	}
}

func TestValidate(t *testing.T) {
	ctx := execctx.New()
	if !errors.Is(ctx.Validate(), execctx.ErrMissingEngine) {
		t.Error("expected ErrMissingEngine")
	}

	ctx.WithEngine(mockText("abc"))
	if !errors.Is(ctx.Validate(), execctx.ErrMissingCursors) {
		t.Error("expected ErrMissingCursors")
	}

	ctx.WithCursors(mockCursor(1))
	if err := ctx.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	ctx := execctx.New().WithEngine(mockText("héllo")).WithCursors(mockCursor(2))

	snap, err := ctx.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	expected := leap.Snapshot{Text: "héllo", Cursor: 2, View: leap.Range{Start: 0, End: 4}}
	if snap != expected {
		t.Errorf("Snapshot() = %+v, expected %+v", snap, expected)
	}

	ctx.WithRenderer(mockView{start: 1, end: 3})
	snap, _ = ctx.Snapshot()
	if snap.View != (leap.Range{Start: 1, End: 3}) {
		t.Errorf("View = %v, expected [1, 3]", snap.View)
	}

	if _, err := execctx.New().Snapshot(); !errors.Is(err, execctx.ErrMissingEngine) {
		t.Errorf("expected ErrMissingEngine, got %v", err)
	}
}

func TestIsVisible(t *testing.T) {
	ctx := execctx.New()
	if !ctx.IsVisible(100) {
		t.Error("without renderer everything is visible")
	}

	ctx.WithRenderer(mockView{start: 5, end: 10})
	for offset, expected := range map[int]bool{4: false, 5: true, 10: true, 11: false} {
		if got := ctx.IsVisible(offset); got != expected {
			t.Errorf("IsVisible(%d) = %t, expected %t", offset, got, expected)
		}
	}
}
