package booking

import "fmt"

// FaultKind names the error taxonomy of a run. Faults degrade the run to
// partial output plus a report; they never abort processing of other
// accounts.
type FaultKind string

const (
	// ClassificationFault marks an activity code or asset category
	// combination the rule table does not recognize. The record is skipped
	// and deliberately left out of the processing tracker so reconciliation
	// flags it as unprocessed.
	ClassificationFault FaultKind = "classification"
	// MatchExhaustionFault marks a close the open lots could not fully
	// satisfy. A data-quality issue requiring upstream correction.
	MatchExhaustionFault FaultKind = "match exhaustion"
	// ConfigurationFault marks an account with no bank account mapping. It
	// aborts that account's processing.
	ConfigurationFault FaultKind = "configuration"
	// ReconciliationMismatch marks a failed quality check: journal sums not
	// matching the source amounts, unprocessed records, or a nonzero
	// closing saldo.
	ReconciliationMismatch FaultKind = "reconciliation mismatch"
)

// Fault is one recorded processing fault, attributable to an account and,
// where applicable, a source transaction.
type Fault struct {
	Kind          FaultKind
	AccountID     string
	TransactionID int64
	Message       string
}

func (f Fault) Error() string {
	if f.TransactionID != 0 {
		return fmt.Sprintf("%s: account %s transaction %d: %s", f.Kind, f.AccountID, f.TransactionID, f.Message)
	}
	return fmt.Sprintf("%s: account %s: %s", f.Kind, f.AccountID, f.Message)
}
