// Package handler contains the response generators the router dispatches to.
//
// Each handler declares the memory scopes it may write. The orchestrator
// merges deltas only inside that scope, so a handler cannot clobber state it
// does not own.
package handler

import (
	"context"

	"maplemed-support-be/pkg/support/memory"
)

// Scope is a bit set of writable memory maps
type Scope uint8

const (
	ScopeProfile Scope = 1 << iota
	ScopeSession
	ScopePersistent
)

// ScopeNone marks a handler that only produces a response
const ScopeNone Scope = 0

// Has reports whether s includes every bit of other
func (s Scope) Has(other Scope) bool {
	return s&other == other
}

// Input is the read-only view of the turn given to a handler
type Input struct {
	Utterance  string
	Profile    memory.Map
	Session    memory.Map
	Persistent memory.Map
}

// Output carries the user-visible response and per-map deltas.
// Nil deltas mean "no change".
type Output struct {
	Response        string
	ProfileDelta    memory.Map
	SessionDelta    memory.Map
	PersistentDelta memory.Map
}

type Handler interface {
	Handle(ctx context.Context, in Input) (Output, error)
	Scope() Scope
}
