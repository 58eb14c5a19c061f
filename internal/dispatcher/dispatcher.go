// Package dispatcher routes actions to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/leap/internal/dispatcher/execctx"
	"github.com/dshills/leap/internal/dispatcher/handler"
	"github.com/dshills/leap/internal/input"
	"github.com/dshills/leap/internal/logging"
)

// CursorMover applies a cursor target produced by a handler.
type CursorMover interface {
	MoveCursorTo(offset int)
}

// Scroller applies a scroll target produced by a handler.
type Scroller interface {
	ScrollTo(line, col int)
	CenterOnLine(line int)
}

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.Mutex

	registry *Registry

	// Editor subsystems
	engine   execctx.TextReader
	cursors  execctx.CursorReader
	renderer execctx.ViewReader
	mover    CursorMover
	scroller Scroller

	// Handler state kept between dispatches (e.g. the last leap).
	data map[string]interface{}

	config Config
	logger *logging.Logger
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	return &Dispatcher{
		registry: NewRegistry(),
		data:     make(map[string]interface{}),
		config:   config,
		logger:   logging.OrNull(config.Logger).WithComponent("dispatcher"),
	}
}

// SetEngine sets the text reader.
func (d *Dispatcher) SetEngine(engine execctx.TextReader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = engine
}

// SetCursors sets the cursor reader.
func (d *Dispatcher) SetCursors(cursors execctx.CursorReader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors = cursors
}

// SetRenderer sets the view reader.
func (d *Dispatcher) SetRenderer(renderer execctx.ViewReader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renderer = renderer
}

// SetCursorMover sets where successful cursor targets are applied.
func (d *Dispatcher) SetCursorMover(mover CursorMover) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mover = mover
}

// SetScroller sets where scroll targets are applied.
func (d *Dispatcher) SetScroller(scroller Scroller) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scroller = scroller
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) error {
	return d.registry.RegisterNamespace(h)
}

// Dispatch executes an action synchronously and applies its result.
//
// Dispatches are serialized; handlers run with the dispatcher lock held and
// must not dispatch recursively.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	startTime := time.Now()
	requestID := uuid.New().String()
	logger := d.logger.WithFields(map[string]any{
		"action":  action.Name,
		"request": requestID,
	})

	ctx := d.buildContext(requestID, logger)
	if action.Count > 0 {
		count := action.Count
		if d.config.MaxRepeatCount > 0 && count > d.config.MaxRepeatCount {
			count = d.config.MaxRepeatCount
		}
		ctx.WithCount(count)
	}

	h := d.registry.Lookup(action.Name, action.Namespace())
	if h == nil {
		logger.Warn("no handler")
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.processResult(result)

	if result.IsError() {
		logger.Error("failed: %v", result.Error)
	} else {
		logger.Debug("%s in %s: %s", result.Status, time.Since(startTime), result.Message)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w for %s: %v\n%s", ErrPanic, action.Name, r, string(stack[:n])))
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext(requestID string, logger *logging.Logger) *execctx.ExecutionContext {
	ctx := execctx.New().
		WithEngine(d.engine).
		WithCursors(d.cursors).
		WithLogger(logger).
		WithData(d.data)
	if d.renderer != nil {
		ctx.WithRenderer(d.renderer)
	}
	ctx.RequestID = requestID
	return ctx
}

// processResult applies a successful result to the editor.
func (d *Dispatcher) processResult(result handler.Result) {
	if !result.IsOK() {
		return
	}

	if result.CursorTarget != nil && d.mover != nil {
		d.mover.MoveCursorTo(*result.CursorTarget)
	}

	if st := result.ViewUpdate.ScrollTo; st != nil && d.scroller != nil {
		if st.Center {
			d.scroller.CenterOnLine(st.Line)
		} else {
			d.scroller.ScrollTo(st.Line, st.Column)
		}
	}
}
