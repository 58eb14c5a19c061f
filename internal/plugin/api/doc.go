// Package api provides the Lua modules exposed to editor scripts.
//
// Scripts reach the editor through the "editor" namespace:
//
//   - editor.leap: leap motions (leap, reverse_leap, find, jump)
//   - editor.cursor: cursor position (get, set, line, column)
//
// Each module implements Module and registers itself under a private
// _ed_<name> global. Registry.InjectAll registers every module and then
// folds those globals into a table served by require("editor"):
//
//	ctx := &api.Context{Host: doc, Cursor: doc}
//	registry, err := api.DefaultRegistry(ctx)
//	if err != nil {
//	    return err
//	}
//	L := lua.NewState()
//	defer L.Close()
//	if err := registry.InjectAll(L); err != nil {
//	    return err
//	}
//
// A script then runs:
//
//	local editor = require("editor")
//	local r = editor.leap.leap("foo")
//	if r.found then
//	    editor.cursor.set(r.cursor_pos)
//	end
package api
