// Package input defines the actions that key bindings, scripts and API
// callers send to the dispatcher.
//
// An Action names what to do ("leap.forward") and carries its arguments:
// the literal pattern typed after the key and any extra named values.
//
//	action := input.NewAction("leap.forward").
//	    WithPattern("foo").
//	    WithExtra("fullView", true)
package input
