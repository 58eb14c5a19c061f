// Package input defines the actions the command layer hands to the
// dispatcher.
package input

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from a key binding.
	SourceKeyboard ActionSource = iota
	// SourcePlugin indicates the action originated from a Lua plugin.
	SourcePlugin
	// SourceAPI indicates the action originated from an API call.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourcePlugin:
		return "plugin"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// ActionArgs holds arguments for an action.
type ActionArgs struct {
	// SearchPattern for search and leap commands.
	SearchPattern string

	// Extra holds additional key-value pairs.
	Extra map[string]interface{}
}

// Get retrieves a value from Extra.
func (a ActionArgs) Get(key string) (interface{}, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a ActionArgs) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value from Extra.
func (a ActionArgs) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetBool retrieves a bool value from Extra.
func (a ActionArgs) GetBool(key string) bool {
	return a.GetBoolOr(key, false)
}

// GetBoolOr retrieves a bool value from Extra, or def if it is unset.
func (a ActionArgs) GetBoolOr(key string, def bool) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "leap.forward").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource

	// Count is the repeat count (from Vim-style count prefix).
	Count int
}

// NewAction creates an action with the given name.
func NewAction(name string) Action {
	return Action{Name: name}
}

// WithPattern returns a copy of the action with the search pattern set.
func (a Action) WithPattern(pattern string) Action {
	a.Args.SearchPattern = pattern
	return a
}

// WithExtra returns a copy of the action with an extra argument set.
func (a Action) WithExtra(key string, value interface{}) Action {
	extra := make(map[string]interface{}, len(a.Args.Extra)+1)
	for k, v := range a.Args.Extra {
		extra[k] = v
	}
	extra[key] = value
	a.Args.Extra = extra
	return a
}

// WithSource returns a copy of the action with the source set.
func (a Action) WithSource(source ActionSource) Action {
	a.Source = source
	return a
}

// Namespace returns the part of the name before the first dot.
func (a Action) Namespace() string {
	for i := 0; i < len(a.Name); i++ {
		if a.Name[i] == '.' {
			return a.Name[:i]
		}
	}
	return a.Name
}
