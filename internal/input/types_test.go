package input

import "testing"

func TestActionArgs_Getters(t *testing.T) {
	args := ActionArgs{Extra: map[string]interface{}{
		"s": "str",
		"i": 3,
		"f": float64(4),
		"b": true,
	}}

	if args.GetString("s") != "str" {
		t.Errorf("GetString = %q", args.GetString("s"))
	}
	if args.GetInt("i") != 3 || args.GetInt("f") != 4 {
		t.Errorf("GetInt mismatch")
	}
	if !args.GetBool("b") {
		t.Error("GetBool(b) should be true")
	}
	if args.GetBool("missing") {
		t.Error("GetBool(missing) should be false")
	}
	if !args.GetBoolOr("missing", true) {
		t.Error("GetBoolOr(missing, true) should be true")
	}
	if args.GetString("i") != "" {
		t.Error("GetString on int should be empty")
	}

	var empty ActionArgs
	if _, ok := empty.Get("x"); ok {
		t.Error("Get on nil Extra should miss")
	}
}

func TestAction_Builders(t *testing.T) {
	base := NewAction("leap.forward")
	a := base.WithPattern("fo").WithExtra("fullView", true).WithSource(SourcePlugin)

	if a.Args.SearchPattern != "fo" || !a.Args.GetBool("fullView") || a.Source != SourcePlugin {
		t.Errorf("unexpected action: %+v", a)
	}
	if base.Args.Extra != nil {
		t.Error("WithExtra must not modify the original action")
	}
}

func TestAction_Namespace(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"leap.forward", "leap"},
		{"leap.repeat.reverse", "leap"},
		{"quit", "quit"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NewAction(tt.name).Namespace(); got != tt.expected {
			t.Errorf("Namespace(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestActionSource_String(t *testing.T) {
	if SourceKeyboard.String() != "keyboard" || SourcePlugin.String() != "plugin" ||
		SourceAPI.String() != "api" || ActionSource(42).String() != "unknown" {
		t.Error("unexpected source strings")
	}
}
