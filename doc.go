// Package booking turns a broker's normalized trade and cash activity feed
// into a double-entry bookkeeping journal against a fixed German chart of
// accounts. It is designed to be local-first and auditable: every input,
// every booking and every open position survives as plain data.
//
// The core functionalities include:
//   - Classification: A fixed decision table mapping each activity record
//     (by activity code, asset category, direction and position state) to a
//     booking rule, a lot operation, or a collected fault.
//   - FIFO Lot Ledger: Open positions as first-in-first-out lots, with
//     partial closes, proportional cost allocation and carry-over across
//     consolidated multi-record trades.
//   - Journal Generation: Double-entry lines with fixed debit/credit account
//     pairs, absolute amounts, and per-line quality flags for reconciliation.
//   - Quality Checks: Cent-exact reconciliation of the journal against the
//     feed, detection of unprocessed records, and a simulated year-end
//     closing proving that the ledger balances to zero.
//   - Data Persistence: Encoding and decoding of feeds, journals and
//     position snapshots to human-readable, version-controllable JSONL.
//
// This package serves as the foundational logic for the `bkb` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package booking
