package api

import (
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/leap/internal/leap"
)

// Version is reported to scripts as editor.version.
const Version = "1.0.0"

// Module represents a Lua API module.
type Module interface {
	// Name returns the module name (e.g., "leap", "cursor").
	Name() string

	// Register registers the module functions into the Lua state.
	// The module should register itself under the _ed_<name> global.
	Register(L *lua.LState) error
}

// Registry manages API modules and their registration.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates a new API registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}

	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns all registered module names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InjectAll registers all modules into the Lua state and installs the
// editor module loader.
func (r *Registry) InjectAll(L *lua.LState) error {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range names {
		if err := r.modules[name].Register(L); err != nil {
			return fmt.Errorf("failed to register module %q: %w", name, err)
		}
	}

	if err := installEditorLoader(L, names); err != nil {
		return fmt.Errorf("failed to install editor loader: %w", err)
	}
	return nil
}

// installEditorLoader folds the _ed_* globals into the table returned by
// require("editor").
func installEditorLoader(L *lua.LState, names []string) error {
	editorModule := L.NewTable()

	for _, name := range names {
		globalName := "_ed_" + name
		val := L.GetGlobal(globalName)
		if val != lua.LNil {
			L.SetField(editorModule, name, val)
			L.SetGlobal(globalName, lua.LNil)
		}
	}

	L.SetField(editorModule, "version", lua.LString(Version))

	L.PreloadModule("editor", func(L *lua.LState) int {
		L.Push(editorModule)
		return 1
	})
	return nil
}

// DefaultRegistry creates a registry with the leap and cursor modules.
func DefaultRegistry(ctx *Context) (*Registry, error) {
	r := NewRegistry()

	modules := []Module{
		NewLeapModule(ctx),
		NewCursorModule(ctx),
	}

	for _, mod := range modules {
		if err := r.Register(mod); err != nil {
			return nil, fmt.Errorf("failed to register module %q: %w", mod.Name(), err)
		}
	}

	return r, nil
}

// Context provides access to editor state for API modules.
type Context struct {
	// Host is read for every leap.
	Host leap.Host

	// Cursor moves the cursor. Nil makes the cursor read-only.
	Cursor CursorProvider

	// Leaper runs the leaps. Nil uses the default boundary policy.
	Leaper *leap.Leaper

	// FullView is the region used when a script omits full_view.
	FullView bool
}

// CursorProvider defines the interface for cursor operations.
type CursorProvider interface {
	// CursorOffset returns the primary cursor offset.
	CursorOffset() int

	// SetCursor moves the primary cursor.
	SetCursor(offset int) error

	// LineColumn returns the zero-based line and column of offset.
	LineColumn(offset int) (line, col int)
}

func (c *Context) leaper() *leap.Leaper {
	if c.Leaper == nil {
		return leap.NewLeaper()
	}
	return c.Leaper
}
