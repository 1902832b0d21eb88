package domain

import (
	"github.com/allisson/stampd/internal/errors"
)

var (
	// ErrLedgerRecordNotFound indicates no ledger record exists for the customer and business.
	ErrLedgerRecordNotFound = errors.Wrap(errors.ErrNotFound, "ledger record not found")

	// ErrLedgerRecordAlreadyExists indicates a concurrent scan created the record first.
	ErrLedgerRecordAlreadyExists = errors.Wrap(errors.ErrAlreadyExists, "ledger record already exists")

	// ErrLedgerConflict indicates the record changed since it was read.
	ErrLedgerConflict = errors.Wrap(errors.ErrConflict, "ledger record was modified concurrently")
)
