package dispatcher

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/leap/internal/dispatcher/execctx"
	"github.com/dshills/leap/internal/dispatcher/handler"
	leaphandler "github.com/dshills/leap/internal/dispatcher/handlers/leap"
	"github.com/dshills/leap/internal/input"
	"github.com/dshills/leap/internal/logging"
)

// mockEditor implements the editor subsystems for testing.
type mockEditor struct {
	text     string
	cursor   int
	start    int
	end      int
	moves    []int
	centered []int
	scrolled [][2]int
}

func (m *mockEditor) Text() string { return m.text }

func (m *mockEditor) LineColumn(offset int) (int, int) {
	line, col := 0, 0
	for i, r := range []rune(m.text) {
		if i == offset {
			break
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

func (m *mockEditor) Primary() int { return m.cursor }

func (m *mockEditor) VisibleRange() (int, int) { return m.start, m.end }

func (m *mockEditor) MoveCursorTo(offset int) {
	m.cursor = offset
	m.moves = append(m.moves, offset)
}

func (m *mockEditor) ScrollTo(line, col int) {
	m.scrolled = append(m.scrolled, [2]int{line, col})
}

func (m *mockEditor) CenterOnLine(line int) {
	m.centered = append(m.centered, line)
}

// funcNamespace is a namespace handler that runs fn for every action.
type funcNamespace struct {
	ns string
	fn func(input.Action, *execctx.ExecutionContext) handler.Result
}

func (f funcNamespace) Namespace() string { return f.ns }

func (f funcNamespace) CanHandle(string) bool { return true }

func (f funcNamespace) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return f.fn(action, ctx)
}

func newDispatcher(ed *mockEditor, logger *logging.Logger) *Dispatcher {
	d := New(DefaultConfig().WithLogger(logger))
	d.SetEngine(ed)
	d.SetCursors(ed)
	d.SetRenderer(ed)
	d.SetCursorMover(ed)
	d.SetScroller(ed)
	return d
}

func TestDispatcher_LeapMovesCursor(t *testing.T) {
	ed := &mockEditor{text: "foo\nmiddle line\nfoo\nother middle\nfoo\n", cursor: 4, end: 36}
	d := newDispatcher(ed, nil)
	if err := d.RegisterNamespace(leaphandler.NewHandler(leaphandler.WithFullView(true))); err != nil {
		t.Fatalf("RegisterNamespace() error = %v", err)
	}

	result := d.Dispatch(input.NewAction(leaphandler.ActionLeapForward).WithPattern("fo"))
	if !result.IsOK() {
		t.Fatalf("expected OK, got %v: %v", result.Status, result.Error)
	}
	if ed.cursor != 16 {
		t.Errorf("expected cursor at 16, got %d", ed.cursor)
	}

	// Repeats share state across dispatches.
	d.Dispatch(input.NewAction(leaphandler.ActionLeapRepeat))
	if ed.cursor != 33 {
		t.Errorf("expected cursor at 33 after repeat, got %d", ed.cursor)
	}
}

func TestDispatcher_NoMatchLeavesCursor(t *testing.T) {
	ed := &mockEditor{text: "abc", cursor: 1, end: 2}
	d := newDispatcher(ed, nil)
	_ = d.RegisterNamespace(leaphandler.NewHandler())

	result := d.Dispatch(input.NewAction(leaphandler.ActionLeapBackward).WithPattern("z"))
	if !result.IsNoOp() {
		t.Fatalf("expected no-op, got %v", result.Status)
	}
	if len(ed.moves) != 0 || ed.cursor != 1 {
		t.Errorf("cursor should not move, moves=%v", ed.moves)
	}
}

func TestDispatcher_ScrollsToHiddenTarget(t *testing.T) {
	ed := &mockEditor{text: "ab\ncd\nab\n", cursor: 0, start: 0, end: 2}
	d := newDispatcher(ed, nil)
	_ = d.RegisterNamespace(leaphandler.NewHandler())

	d.Dispatch(input.NewAction(leaphandler.ActionLeapForward).WithPattern("ab").WithExtra(leaphandler.ArgFullView, true))
	if ed.cursor != 6 {
		t.Fatalf("expected cursor at 6, got %d", ed.cursor)
	}
	if len(ed.centered) != 1 || ed.centered[0] != 2 {
		t.Errorf("expected centering on line 2, got %v", ed.centered)
	}
}

func TestDispatcher_NoHandler(t *testing.T) {
	d := New(DefaultConfig())

	result := d.Dispatch(input.NewAction("unknown.action"))
	if !errors.Is(result.Error, ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Error)
	}

	result = d.Dispatch(input.Action{})
	if !errors.Is(result.Error, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", result.Error)
	}
}

func TestDispatcher_DuplicateNamespace(t *testing.T) {
	d := New(DefaultConfig())
	if err := d.RegisterNamespace(leaphandler.NewHandler()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := d.RegisterNamespace(leaphandler.NewHandler()); !errors.Is(err, ErrDuplicateNamespace) {
		t.Errorf("expected ErrDuplicateNamespace, got %v", err)
	}
}

func TestDispatcher_PanicRecovery(t *testing.T) {
	d := New(DefaultConfig())
	_ = d.RegisterNamespace(funcNamespace{ns: "boom", fn: func(input.Action, *execctx.ExecutionContext) handler.Result {
		panic("kaboom")
	}})

	result := d.Dispatch(input.NewAction("boom.now"))
	if !errors.Is(result.Error, ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", result.Error)
	}
}

func TestDispatcher_CountClamped(t *testing.T) {
	ed := &mockEditor{text: "foo\nmiddle line\nfoo\nother middle\nfoo\n", end: 36}
	d := New(Config{MaxRepeatCount: 4})
	d.SetEngine(ed)
	d.SetCursors(ed)
	d.SetCursorMover(ed)
	_ = d.RegisterNamespace(leaphandler.NewHandler(leaphandler.WithFullView(true)))

	// Four hops over {0, 16, 33} from 0 land on 16; fifty would land on 33.
	action := input.NewAction(leaphandler.ActionLeapForward).WithPattern("fo")
	action.Count = 50
	d.Dispatch(action)
	if ed.cursor != 16 {
		t.Errorf("expected clamped count to land on 16, got %d", ed.cursor)
	}
}

func TestDispatcher_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	d := New(DefaultConfig().WithLogger(logger))

	var requestID string
	_ = d.RegisterNamespace(funcNamespace{ns: "trace", fn: func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		requestID = ctx.RequestID
		return handler.Success()
	}})

	d.Dispatch(input.NewAction("trace.it"))
	if requestID == "" {
		t.Fatal("expected a request ID")
	}
	if !strings.Contains(buf.String(), "request="+requestID) {
		t.Errorf("expected request ID in log, got: %s", buf.String())
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_ = r.RegisterNamespace(leaphandler.NewHandler())
	_ = r.RegisterNamespace(funcNamespace{ns: "echo"})

	if got := r.Namespaces(); len(got) != 2 || got[0] != "echo" || got[1] != "leap" {
		t.Errorf("Namespaces() = %v", got)
	}

	if r.Lookup("leap.forward", "leap") == nil {
		t.Error("expected namespace lookup to succeed")
	}
	if r.Lookup("leap.unknown", "leap") != nil {
		t.Error("namespace handler should reject unknown actions")
	}
	if r.Lookup("other.action", "other") != nil {
		t.Error("unregistered namespace should not resolve")
	}
}
