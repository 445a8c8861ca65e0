package engine

import "errors"

// All engine errors are locally recoverable: the caller rejects the action
// and retries with a valid one. Defeat is a terminal state, not an error.
var (
	// ErrNoSession is returned when a combat action arrives with no
	// active session.
	ErrNoSession = errors.New("no active combat session")

	// ErrSessionOver is returned when a combat action arrives after the
	// session reached a terminal state.
	ErrSessionOver = errors.New("combat session already finished")

	// ErrInsufficientMP is returned by a magic cast with mp below cost.
	// Nothing is mutated and the turn is not consumed.
	ErrInsufficientMP = errors.New("not enough MP")

	// ErrUnknownItem is returned when an item selector names an item the
	// player does not carry.
	ErrUnknownItem = errors.New("no such item in inventory")

	// ErrNoUsableItem is returned when no inventory item matches the
	// effect catalog. The turn is not consumed.
	ErrNoUsableItem = errors.New("no usable item")

	// ErrUnknownAction is returned for an unrecognized action kind.
	ErrUnknownAction = errors.New("unknown action")
)
