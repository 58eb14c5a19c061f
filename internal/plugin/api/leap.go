package api

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/leap/internal/leap"
)

// LeapModule implements the editor.leap API module.
type LeapModule struct {
	ctx *Context
}

// NewLeapModule creates a new leap module.
func NewLeapModule(ctx *Context) *LeapModule {
	return &LeapModule{ctx: ctx}
}

// Name returns the module name.
func (m *LeapModule) Name() string {
	return "leap"
}

// Register registers the module into the Lua state.
func (m *LeapModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "leap", L.NewFunction(m.leapForward))
	L.SetField(mod, "reverse_leap", L.NewFunction(m.leapReverse))
	L.SetField(mod, "find", L.NewFunction(m.find))
	L.SetField(mod, "jump", L.NewFunction(m.jump))

	L.SetGlobal("_ed_leap", mod)
	return nil
}

// leap(pattern, full_view?, name?) -> result
// Finds the next occurrence after the cursor, wrapping to the first.
func (m *LeapModule) leapForward(L *lua.LState) int {
	return m.run(L, leap.Forward, "leap")
}

// reverse_leap(pattern, full_view?, name?) -> result
// Finds the occurrence at or before the cursor, wrapping to the last.
func (m *LeapModule) leapReverse(L *lua.LState) int {
	return m.run(L, leap.Reverse, "reverse_leap")
}

func (m *LeapModule) run(L *lua.LState, dir leap.Direction, defaultName string) int {
	pattern := L.CheckString(1)
	fullView := L.OptBool(2, m.ctx.FullView)
	name := L.OptString(3, defaultName)

	snap, ok := m.snapshot(L, defaultName)
	if !ok {
		return 0
	}

	result, err := m.ctx.leaper().Run(snap, pattern, fullView, name, dir)
	if err != nil && !errors.Is(err, leap.ErrNoMatch) {
		L.ArgError(1, err.Error())
		return 0
	}

	L.Push(resultTable(L, result))
	return 1
}

// find(pattern, full_view?) -> {offsets}
// Returns the start offsets of every occurrence in the region.
func (m *LeapModule) find(L *lua.LState) int {
	pattern := L.CheckString(1)
	fullView := L.OptBool(2, m.ctx.FullView)

	snap, ok := m.snapshot(L, "find")
	if !ok {
		return 0
	}

	region := leap.FullBuffer()
	if !fullView {
		region = leap.ViewportRange(snap.View)
	}

	offsets, err := leap.FindOccurrences(snap.Text, pattern, region)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	tbl := L.CreateTable(len(offsets), 0)
	for i, offset := range offsets {
		tbl.RawSetInt(i+1, lua.LNumber(offset))
	}
	L.Push(tbl)
	return 1
}

// jump(pattern, full_view?, reverse?) -> result
// Leaps and moves the cursor to the target when one is found.
func (m *LeapModule) jump(L *lua.LState) int {
	pattern := L.CheckString(1)
	fullView := L.OptBool(2, m.ctx.FullView)
	dir := leap.Forward
	name := "leap"
	if L.OptBool(3, false) {
		dir = leap.Reverse
		name = "reverse_leap"
	}

	if m.ctx.Cursor == nil {
		L.RaiseError("jump: no cursor available")
		return 0
	}
	snap, ok := m.snapshot(L, "jump")
	if !ok {
		return 0
	}

	result, err := m.ctx.leaper().Run(snap, pattern, fullView, name, dir)
	if err != nil && !errors.Is(err, leap.ErrNoMatch) {
		L.ArgError(1, err.Error())
		return 0
	}

	if result.Moved(snap.Cursor) {
		if err := m.ctx.Cursor.SetCursor(result.CursorPos); err != nil {
			L.RaiseError("jump: %v", err)
			return 0
		}
	}

	L.Push(resultTable(L, result))
	return 1
}

func (m *LeapModule) snapshot(L *lua.LState, fn string) (leap.Snapshot, bool) {
	if m.ctx.Host == nil {
		L.RaiseError("%s: no editor available", fn)
		return leap.Snapshot{}, false
	}
	return leap.TakeSnapshot(m.ctx.Host), true
}

func resultTable(L *lua.LState, r leap.MotionResult) *lua.LTable {
	tbl := L.CreateTable(0, 6)
	L.SetField(tbl, "cursor_pos", lua.LNumber(r.CursorPos))
	L.SetField(tbl, "command", lua.LString(r.CommandName))
	L.SetField(tbl, "found", lua.LBool(r.Found))
	L.SetField(tbl, "wrapped", lua.LBool(r.Wrapped))
	L.SetField(tbl, "direction", lua.LString(r.Direction.String()))
	L.SetField(tbl, "matches", lua.LNumber(r.Matches))
	return tbl
}
