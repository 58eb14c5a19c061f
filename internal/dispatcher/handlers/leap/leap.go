package leap

import (
	"errors"
	"fmt"

	"github.com/dshills/leap/internal/dispatcher/execctx"
	"github.com/dshills/leap/internal/dispatcher/handler"
	"github.com/dshills/leap/internal/input"
	leapcore "github.com/dshills/leap/internal/leap"
)

// Action names for leap operations.
const (
	ActionLeapForward       = "leap.forward"       // leap to next occurrence
	ActionLeapBackward      = "leap.backward"      // leap to occurrence at or before cursor
	ActionLeapRepeat        = "leap.repeat"        // repeat last leap
	ActionLeapRepeatReverse = "leap.repeatReverse" // repeat last leap, opposite direction
)

// Argument keys read from input.ActionArgs.Extra.
const (
	ArgFullView = "fullView"
	ArgCommand  = "command"
)

// DataMotion is the result data key holding the leapcore.MotionResult.
const DataMotion = "motion"

// LeapState holds the last leap, for repeats.
// This is stored in the execution context data.
type LeapState struct {
	// Pattern is the literal pattern of the last leap.
	Pattern string
	// FullView indicates whether the whole buffer was scanned.
	FullView bool
	// Direction is the direction of the last leap.
	Direction leapcore.Direction
	// CommandName is the label of the command that started the leap.
	CommandName string
}

const leapStateKey = "_leap_state"

// Handler implements namespace-based leap handling.
type Handler struct {
	leaper   *leapcore.Leaper
	fullView bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithLeaper sets the leaper, and with it the boundary policy.
func WithLeaper(l *leapcore.Leaper) Option {
	return func(h *Handler) {
		h.leaper = l
	}
}

// WithFullView sets whether leaps scan the full buffer when the action does
// not say.
func WithFullView(full bool) Option {
	return func(h *Handler) {
		h.fullView = full
	}
}

// NewHandler creates a new leap handler.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	if h.leaper == nil {
		h.leaper = leapcore.NewLeaper()
	}
	return h
}

// Namespace returns the leap namespace.
func (h *Handler) Namespace() string {
	return "leap"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionLeapForward, ActionLeapBackward, ActionLeapRepeat, ActionLeapRepeatReverse:
		return true
	}
	return false
}

// HandleAction processes a leap action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionLeapForward:
		return h.start(action, ctx, leapcore.Forward)
	case ActionLeapBackward:
		return h.start(action, ctx, leapcore.Reverse)
	case ActionLeapRepeat:
		return h.repeat(ctx, false)
	case ActionLeapRepeatReverse:
		return h.repeat(ctx, true)
	default:
		return handler.Errorf("unknown leap action: %s", action.Name)
	}
}

// start runs a new leap and records it for repeats.
func (h *Handler) start(action input.Action, ctx *execctx.ExecutionContext, dir leapcore.Direction) handler.Result {
	name := action.Args.GetString(ArgCommand)
	if name == "" {
		name = action.Name
	}

	state := &LeapState{
		Pattern:     action.Args.SearchPattern,
		FullView:    action.Args.GetBoolOr(ArgFullView, h.fullView),
		Direction:   dir,
		CommandName: name,
	}

	result := h.run(ctx, state, dir)
	if !result.IsError() {
		ctx.SetData(leapStateKey, state)
	}
	return result
}

// repeat reruns the last leap, optionally in the opposite direction.
func (h *Handler) repeat(ctx *execctx.ExecutionContext, reverse bool) handler.Result {
	state := getLeapState(ctx)
	if state == nil {
		return handler.NoOpWithMessage("leap: no previous leap")
	}

	dir := state.Direction
	if reverse {
		dir = dir.Opposite()
	}
	return h.run(ctx, state, dir)
}

// run performs the leap and converts the outcome into a handler result.
func (h *Handler) run(ctx *execctx.ExecutionContext, state *LeapState, dir leapcore.Direction) handler.Result {
	snap, err := ctx.Snapshot()
	if err != nil {
		return handler.Error(err)
	}

	motion, err := h.leaper.Run(snap, state.Pattern, state.FullView, state.CommandName, dir)
	if err == nil {
		motion = h.hop(snap, state, dir, motion, ctx.GetCount())
	}
	switch {
	case errors.Is(err, leapcore.ErrNoMatch):
		ctx.Logger.Debug("leap %s %q: not found", dir, state.Pattern)
		return handler.NoOpWithMessage("leap: pattern not found: " + state.Pattern).
			WithData(DataMotion, motion)
	case err != nil:
		return handler.Error(fmt.Errorf("leap %s: %w", dir, err))
	}

	msg := "leap: " + state.Pattern
	if motion.Wrapped {
		msg += " (wrapped)"
	}

	result := handler.Success().
		WithCursorTarget(motion.CursorPos).
		WithMessage(msg).
		WithData(DataMotion, motion)

	if !ctx.IsVisible(motion.CursorPos) {
		line, col := ctx.Engine.LineColumn(motion.CursorPos)
		result = result.WithScrollTo(line, col, true)
	}
	return result
}

// hop repeats a found leap count-1 more times, each from the previous
// target. It stops early once a leap no longer moves, which is where a
// reverse leap settles because it accepts the occurrence under the cursor.
func (h *Handler) hop(snap leapcore.Snapshot, state *LeapState, dir leapcore.Direction, motion leapcore.MotionResult, count int) leapcore.MotionResult {
	for i := 1; i < count; i++ {
		snap.Cursor = motion.CursorPos
		next, err := h.leaper.Run(snap, state.Pattern, state.FullView, state.CommandName, dir)
		if err != nil || next.CursorPos == motion.CursorPos {
			break
		}
		next.Wrapped = next.Wrapped || motion.Wrapped
		motion = next
	}
	return motion
}

// getLeapState retrieves the leap state from the context.
func getLeapState(ctx *execctx.ExecutionContext) *LeapState {
	v, ok := ctx.GetData(leapStateKey)
	if !ok {
		return nil
	}
	state, ok := v.(*LeapState)
	if !ok {
		return nil
	}
	return state
}

// MotionFrom extracts the motion result from a handler result.
func MotionFrom(r handler.Result) (leapcore.MotionResult, bool) {
	v, ok := r.GetData(DataMotion)
	if !ok {
		return leapcore.MotionResult{}, false
	}
	m, ok := v.(leapcore.MotionResult)
	return m, ok
}
