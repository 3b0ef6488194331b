package migration

import "github.com/novapos/novapos-api/internal/domain/entity"

// rebuildStep names one structural repair that plain idempotent creation
// cannot express: relaxing a constraint or detaching a stale foreign key
// requires rewriting the table under its original name.
type rebuildStep struct {
	ID    string
	Table string
	// Model carries the corrected shape; the current entity definition is
	// the source of truth for what the table must look like.
	Model interface{}
}

// rebuildSteps runs in order. Each step is independently idempotent and is
// recorded in schema_versions once applied, so a consistent store skips all
// of them.
var rebuildSteps = []rebuildStep{
	{
		// Early releases created orders with a mandatory customer column;
		// cash sales without a customer need it nullable.
		ID:    "2024-03-orders-nullable-customer",
		Table: "orders",
		Model: &entity.Order{},
	},
	{
		// Ledger rows used to reference the long-renamed clients table;
		// the stale foreign key blocked inserts after the rename.
		ID:    "2024-03-ledger-entries-customer-fk",
		Table: "ledger_entries",
		Model: &entity.LedgerEntry{},
	},
}
