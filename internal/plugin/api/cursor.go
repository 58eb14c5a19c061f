package api

import (
	lua "github.com/yuin/gopher-lua"
)

// CursorModule implements the editor.cursor API module.
type CursorModule struct {
	ctx *Context
}

// NewCursorModule creates a new cursor module.
func NewCursorModule(ctx *Context) *CursorModule {
	return &CursorModule{ctx: ctx}
}

// Name returns the module name.
func (m *CursorModule) Name() string {
	return "cursor"
}

// Register registers the module into the Lua state.
func (m *CursorModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "get", L.NewFunction(m.get))
	L.SetField(mod, "set", L.NewFunction(m.set))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "column", L.NewFunction(m.column))

	L.SetGlobal("_ed_cursor", mod)
	return nil
}

// get() -> offset
func (m *CursorModule) get(L *lua.LState) int {
	switch {
	case m.ctx.Cursor != nil:
		L.Push(lua.LNumber(m.ctx.Cursor.CursorOffset()))
	case m.ctx.Host != nil:
		L.Push(lua.LNumber(m.ctx.Host.CursorOffset()))
	default:
		L.Push(lua.LNumber(0))
	}
	return 1
}

// set(offset) -> nil
func (m *CursorModule) set(L *lua.LState) int {
	offset := L.CheckInt(1)

	if offset < 0 {
		L.ArgError(1, "offset must be non-negative")
		return 0
	}

	if m.ctx.Cursor == nil {
		L.RaiseError("set: no cursor available")
		return 0
	}

	if err := m.ctx.Cursor.SetCursor(offset); err != nil {
		L.RaiseError("set: %v", err)
		return 0
	}

	return 0
}

// line() -> line number (1-indexed)
func (m *CursorModule) line(L *lua.LState) int {
	if m.ctx.Cursor == nil {
		L.Push(lua.LNumber(1))
		return 1
	}
	line, _ := m.ctx.Cursor.LineColumn(m.ctx.Cursor.CursorOffset())
	L.Push(lua.LNumber(line + 1))
	return 1
}

// column() -> column number (1-indexed)
func (m *CursorModule) column(L *lua.LState) int {
	if m.ctx.Cursor == nil {
		L.Push(lua.LNumber(1))
		return 1
	}
	_, col := m.ctx.Cursor.LineColumn(m.ctx.Cursor.CursorOffset())
	L.Push(lua.LNumber(col + 1))
	return 1
}
