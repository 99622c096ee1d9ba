// Package systems implements the simulation engines: breeding, growth,
// curing, and market pricing. Systems own ECS filters and component maps;
// session-level orchestration lives in the game package.
package systems

import "errors"

// Recoverable operation failures. Randomness outcomes (crop loss, spoilage)
// are ordinary events, never errors.
var (
	// ErrInsufficientFunds rejects an operation whose cost exceeds the
	// available funds. No state is mutated on this path.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidSelection rejects a malformed player selection before any
	// engine state changes.
	ErrInvalidSelection = errors.New("invalid selection")
)
