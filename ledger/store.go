/*
store.go - Persistence interface for the ledger's storage slots

PURPOSE:
  Defines the interface between the ledger engine and durable storage.
  The engine persists three independent slots - categories, products,
  transactions - each holding the full serialized collection. Every
  successful mutation re-saves the affected state in its entirety;
  there is no partial or incremental persistence and no batching.

CONTRACT:
  Load returns (payload, found, error). found=false means the slot has
  never been written (first run), which makes the engine fall back to
  its built-in seed data. Payloads are opaque to the store; the engine's
  snapshot codec (snapshot.go) owns the format and its version tag.

IMPLEMENTATIONS:
  - ledger/store/memory.go: In-memory, for tests and dev
  - store/sqlite/sqlite.go: Durable SQLite slot table

SEE ALSO:
  - snapshot.go: Versioned envelope encoding for slot payloads
  - engine.go: Calls Save after every mutation (best-effort)
*/
package ledger

import "context"

// Slot names for the three persisted collections.
const (
	SlotCategories   = "categories"
	SlotProducts     = "products"
	SlotTransactions = "transactions"
)

// Store handles persistence of serialized collection snapshots.
type Store interface {
	// Load returns the payload last saved for slot. found is false when
	// the slot has never been written.
	Load(ctx context.Context, slot string) (payload []byte, found bool, err error)

	// Save replaces the payload for slot in its entirety.
	Save(ctx context.Context, slot string, payload []byte) error
}
