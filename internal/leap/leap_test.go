package leap

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/leap/internal/logging"
)

// mockHost implements Host for testing.
type mockHost struct {
	text       string
	cursor     int
	viewStart  int
	viewEnd    int
	textReads  int
	boundReads int
}

func (h *mockHost) CurrentText() string {
	h.textReads++
	return h.text
}

func (h *mockHost) CursorOffset() int { return h.cursor }

func (h *mockHost) ViewportBounds() (int, int) {
	h.boundReads++
	return h.viewStart, h.viewEnd
}

func newSampleHost(cursor int) *mockHost {
	return &mockHost{
		text:    sampleText,
		cursor:  cursor,
		viewEnd: len([]rune(sampleText)) - 1,
	}
}

func TestTakeSnapshot(t *testing.T) {
	h := &mockHost{text: "abc", cursor: 1, viewStart: 0, viewEnd: 2}
	snap := TakeSnapshot(h)

	expected := Snapshot{Text: "abc", Cursor: 1, View: Range{Start: 0, End: 2}}
	if !reflect.DeepEqual(snap, expected) {
		t.Errorf("TakeSnapshot() = %+v, expected %+v", snap, expected)
	}
	if h.textReads != 1 || h.boundReads != 1 {
		t.Errorf("expected one read each, got text=%d bounds=%d", h.textReads, h.boundReads)
	}
}

func TestLeap_StartOfSecondLine(t *testing.T) {
	snap := TakeSnapshot(newSampleHost(4))

	fwd, err := Leap(snap, "fo", true, "leap")
	if err != nil {
		t.Fatalf("Leap() error = %v", err)
	}
	if fwd.CursorPos != 16 || !fwd.Found || fwd.Wrapped {
		t.Errorf("Leap() = %+v, expected target 16", fwd)
	}
	if fwd.Matches != 3 {
		t.Errorf("Matches = %d, expected 3", fwd.Matches)
	}
	if fwd.CommandName != "leap" || fwd.Direction != Forward {
		t.Errorf("unexpected command/direction: %+v", fwd)
	}

	rev, err := ReverseLeap(snap, "fo", true, "reverse_leap")
	if err != nil {
		t.Fatalf("ReverseLeap() error = %v", err)
	}
	if rev.CursorPos != 0 || !rev.Found || rev.Wrapped {
		t.Errorf("ReverseLeap() = %+v, expected target 0", rev)
	}
	if rev.CommandName != "reverse_leap" || rev.Direction != Reverse {
		t.Errorf("unexpected command/direction: %+v", rev)
	}
}

func TestLeap_WrapsPastLast(t *testing.T) {
	snap := TakeSnapshot(newSampleHost(34))

	res, err := Leap(snap, "fo", true, "leap")
	if err != nil {
		t.Fatalf("Leap() error = %v", err)
	}
	if res.CursorPos != 0 || !res.Wrapped {
		t.Errorf("Leap() = %+v, expected wrap to 0", res)
	}
}

func TestReverseLeap_WrapsBeforeFirst(t *testing.T) {
	snap := Snapshot{Text: "  ab  ab", Cursor: 0, View: Range{Start: 0, End: 7}}

	res, err := ReverseLeap(snap, "ab", true, "reverse_leap")
	if err != nil {
		t.Fatalf("ReverseLeap() error = %v", err)
	}
	if res.CursorPos != 6 || !res.Wrapped {
		t.Errorf("ReverseLeap() = %+v, expected wrap to 6", res)
	}
}

func TestLeap_NoMatch(t *testing.T) {
	snap := TakeSnapshot(newSampleHost(7))

	for _, run := range []func(Snapshot, string, bool, string) (MotionResult, error){Leap, ReverseLeap} {
		res, err := run(snap, "zz", true, "cmd")
		if !errors.Is(err, ErrNoMatch) {
			t.Errorf("expected ErrNoMatch, got %v", err)
		}
		if res.Found || res.CursorPos != 7 {
			t.Errorf("result = %+v, expected unchanged cursor 7", res)
		}
		if res.Moved(7) {
			t.Error("no-match result should not move the cursor")
		}
		if res.CommandName != "cmd" {
			t.Errorf("CommandName = %q, expected cmd", res.CommandName)
		}
	}
}

func TestLeap_InvalidPattern(t *testing.T) {
	snap := TakeSnapshot(newSampleHost(3))

	res, err := Leap(snap, "", true, "leap")
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}
	if res.Found || res.CursorPos != 3 {
		t.Errorf("result = %+v, expected unchanged cursor", res)
	}
}

func TestLeap_ViewportRestriction(t *testing.T) {
	// Viewport covers only the second "foo" line.
	snap := Snapshot{Text: sampleText, Cursor: 17, View: Range{Start: 16, End: 19}}

	res, err := Leap(snap, "fo", false, "leap")
	if err != nil {
		t.Fatalf("Leap() error = %v", err)
	}
	if res.CursorPos != 16 || !res.Wrapped || res.Matches != 1 {
		t.Errorf("viewport Leap() = %+v, expected wrap to 16 with one match", res)
	}

	full, _ := Leap(snap, "fo", true, "leap")
	if full.CursorPos != 33 {
		t.Errorf("full-view Leap() = %+v, expected 33", full)
	}

	// Nothing visible.
	snap.View = Range{Start: 20, End: 30}
	res, err = ReverseLeap(snap, "fo", false, "reverse_leap")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch for empty viewport, got %v (%+v)", err, res)
	}
}

func TestLeap_SameEnumerationBothDirections(t *testing.T) {
	for cursor := 0; cursor < len(sampleText); cursor += 3 {
		snap := Snapshot{Text: sampleText, Cursor: cursor, View: Range{Start: 5, End: 30}}
		for _, fullView := range []bool{true, false} {
			fwd, _ := Leap(snap, "o", fullView, "f")
			rev, _ := ReverseLeap(snap, "o", fullView, "r")
			if fwd.Matches != rev.Matches {
				t.Errorf("cursor=%d fullView=%t: forward saw %d matches, reverse %d",
					cursor, fullView, fwd.Matches, rev.Matches)
			}
		}
	}
}

func TestLeaper_Boundary(t *testing.T) {
	l := NewLeaper(WithBoundary(Boundary{Forward: Exclusive, Reverse: Exclusive}))
	snap := Snapshot{Text: sampleText, Cursor: 16}

	res, err := l.ReverseLeap(snap, "fo", true, "reverse_leap")
	if err != nil {
		t.Fatalf("ReverseLeap() error = %v", err)
	}
	if res.CursorPos != 0 {
		t.Errorf("exclusive reverse from 16 = %d, expected 0", res.CursorPos)
	}
	if l.Boundary() != (Boundary{Forward: Exclusive, Reverse: Exclusive}) {
		t.Errorf("Boundary() = %+v", l.Boundary())
	}
}

func TestLeaper_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	l := NewLeaper(WithLogger(logger))

	_, _ = l.Leap(Snapshot{Text: sampleText, Cursor: 4}, "fo", true, "leap")
	_, _ = l.Leap(Snapshot{Text: sampleText, Cursor: 4}, "zz", true, "leap")

	output := buf.String()
	if !strings.Contains(output, "4 -> 16") {
		t.Errorf("expected resolved leap in log, got: %s", output)
	}
	if !strings.Contains(output, "no match") {
		t.Errorf("expected no-match in log, got: %s", output)
	}
	if !strings.Contains(output, "component=leap") {
		t.Errorf("expected component field, got: %s", output)
	}
}

func TestMotionResult_Moved(t *testing.T) {
	r := MotionResult{CursorPos: 5, Found: true}
	if !r.Moved(3) {
		t.Error("expected move from 3 to 5")
	}
	if r.Moved(5) {
		t.Error("target equal to cursor is not a move")
	}
}
