// Package app wires configuration, logging, the dispatcher and the Lua
// modules around a single open document.
package app

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/leap/internal/config"
	"github.com/dshills/leap/internal/dispatcher"
	"github.com/dshills/leap/internal/dispatcher/handler"
	leaphandler "github.com/dshills/leap/internal/dispatcher/handlers/leap"
	"github.com/dshills/leap/internal/input"
	"github.com/dshills/leap/internal/leap"
	"github.com/dshills/leap/internal/logging"
	"github.com/dshills/leap/internal/plugin/api"
	"github.com/dshills/leap/internal/renderer/viewport"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// File is the file to open. Empty opens a scratch document with Content.
	File string

	// Content is the text of a scratch document.
	Content string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// FullView overrides the configured leap region when non-nil.
	FullView *bool

	// View is the viewport of the document. Nil shows the whole text.
	View *viewport.Viewport

	// Lookup reads environment overrides. Nil uses os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Application owns one document and everything that acts on it.
type Application struct {
	config     config.Config
	logger     *logging.Logger
	leaper     *leap.Leaper
	dispatcher *dispatcher.Dispatcher
	document   *Document
}

// New loads configuration, opens the document and wires the dispatcher.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, NewOperationError("config", opts.ConfigPath, err)
	}
	if err := cfg.ApplyEnv(opts.Lookup); err != nil {
		return nil, NewOperationError("config", "environment", err)
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.FullView != nil {
		cfg.Leap.FullView = *opts.FullView
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewOperationError("config", opts.ConfigPath, err)
	}

	doc, err := openDocument(opts)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LoggerConfig())
	leaper := leap.NewLeaper(
		leap.WithBoundary(cfg.Boundary()),
		leap.WithLogger(logger.WithComponent("leap")),
	)

	d := dispatcher.New(dispatcher.DefaultConfig().WithLogger(logger))
	d.SetEngine(doc)
	d.SetCursors(doc)
	d.SetRenderer(doc)
	d.SetCursorMover(doc)
	d.SetScroller(doc)

	h := leaphandler.NewHandler(
		leaphandler.WithLeaper(leaper),
		leaphandler.WithFullView(cfg.Leap.FullView),
	)
	if err := d.RegisterNamespace(h); err != nil {
		logger.Close()
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	logger.Debug("opened %s (%d chars), namespaces %v", doc.Name, doc.Len(), d.Registry().Namespaces())

	return &Application{
		config:     cfg,
		logger:     logger,
		leaper:     leaper,
		dispatcher: d,
		document:   doc,
	}, nil
}

func openDocument(opts Options) (*Document, error) {
	if opts.File == "" {
		return NewDocument("", []byte(opts.Content), opts.View), nil
	}
	content, err := os.ReadFile(opts.File)
	if err != nil {
		return nil, NewOperationError("open", opts.File, err)
	}
	return NewDocument(opts.File, content, opts.View), nil
}

// Config returns the effective configuration.
func (app *Application) Config() config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.document
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Dispatch runs an action against the document.
func (app *Application) Dispatch(action input.Action) handler.Result {
	return app.dispatcher.Dispatch(action)
}

// PressKey dispatches the action bound to key. pattern is the literal
// typed after the key; repeat actions ignore it.
func (app *Application) PressKey(key, pattern string) handler.Result {
	return app.PressKeyN(0, key, pattern)
}

// PressKeyN is PressKey with a count prefix: the leap is repeated count
// times, each from the previous target. A count below 1 means once.
func (app *Application) PressKeyN(count int, key, pattern string) handler.Result {
	name, ok := app.config.ActionForKey(key)
	if !ok {
		return handler.Error(fmt.Errorf("%w: %q", ErrUnboundKey, key))
	}
	action := input.NewAction(name).
		WithPattern(pattern).
		WithExtra(leaphandler.ArgCommand, key).
		WithSource(input.SourceKeyboard)
	action.Count = count
	return app.Dispatch(action)
}

// NewLuaState returns a Lua state with the editor modules loaded. The
// caller closes it.
func (app *Application) NewLuaState() (*lua.LState, error) {
	registry, err := api.DefaultRegistry(&api.Context{
		Host:     app.document,
		Cursor:   app.document,
		Leaper:   app.leaper,
		FullView: app.config.Leap.FullView,
	})
	if err != nil {
		return nil, err
	}

	L := lua.NewState()
	if err := registry.InjectAll(L); err != nil {
		L.Close()
		return nil, err
	}
	return L, nil
}

// RunScript runs the Lua file at path with the editor modules loaded.
func (app *Application) RunScript(path string) error {
	L, err := app.NewLuaState()
	if err != nil {
		return NewOperationError("lua", path, err)
	}
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return NewOperationError("lua", path, err)
	}
	return nil
}

// RunString runs Lua source with the editor modules loaded.
func (app *Application) RunString(source string) error {
	L, err := app.NewLuaState()
	if err != nil {
		return NewOperationError("lua", "", err)
	}
	defer L.Close()

	if err := L.DoString(source); err != nil {
		return NewOperationError("lua", "", err)
	}
	return nil
}

// Close releases the log file, if any.
func (app *Application) Close() error {
	return app.logger.Close()
}
