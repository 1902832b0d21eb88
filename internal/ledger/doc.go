// Package ledger implements the per customer and business stamp ledger: the stamp engine
// that validates a scanned token and applies the stamp transition, the ledger store
// backends, and the read views over ledger records (customer cards, business dashboard).
package ledger
