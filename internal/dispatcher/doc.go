// Package dispatcher routes input actions to handlers and coordinates execution.
//
// The dispatcher is the hub between the command layer and the leap handlers.
// It receives actions and routes them to handlers by exact action name or by
// namespace prefix (e.g., "leap.forward" is routed to the "leap" namespace
// handler). Exact names win over namespaces.
//
// # Handler Execution
//
// When an action is dispatched:
//
//  1. A request ID is assigned and attached to the dispatch logger
//  2. An ExecutionContext is built from the editor subsystems
//  3. The handler is executed (with optional panic recovery)
//  4. The result is applied: a cursor target is handed to the CursorMover
//     and a scroll target to the Scroller
//
// Handlers never mutate editor state themselves; the dispatcher is the only
// place where a successful motion is applied.
package dispatcher
