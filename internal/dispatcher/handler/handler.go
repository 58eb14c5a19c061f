// Package handler provides the handler interface and types for action dispatch.
package handler

import (
	"github.com/dshills/leap/internal/dispatcher/execctx"
	"github.com/dshills/leap/internal/input"
)

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool
}

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot (e.g., "leap" in "leap.forward").
type NamespaceHandler interface {
	// HandleAction handles an action within this namespace.
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Namespace returns the namespace prefix.
	Namespace() string
}

// namespaceAdapter adapts NamespaceHandler to Handler interface.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleAction(action, ctx)
}

func (a *namespaceAdapter) CanHandle(actionName string) bool {
	return a.h.CanHandle(actionName)
}
