package booking

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists the engine's inputs and outputs as JSONL, one object per
// line: human readable, diffable, and safe to keep in a private git repo.

// DecodeActivities reads a normalized activity feed from a JSONL stream.
// Empty lines are skipped; a malformed line aborts the decode with its
// content in the error.
func DecodeActivities(r io.Reader) ([]ActivityRecord, error) {
	var records []ActivityRecord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var rec ActivityRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("format error in activity line %q: %w", string(line), err)
		}
		if rec.TransactionID == 0 {
			return nil, fmt.Errorf("activity line %q has no transaction id", string(line))
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// EncodeActivities writes the feed back out as JSONL, one record per line.
func EncodeActivities(w io.Writer, records []ActivityRecord) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLots reads an open position snapshot, the seed for the next run.
func DecodeLots(r io.Reader) ([]Lot, error) {
	var lots []Lot
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var l Lot
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("format error in lot line %q: %w", string(line), err)
		}
		lots = append(lots, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lots, nil
}

// EncodeLots persists the open positions of a lot book.
func EncodeLots(w io.Writer, book *LotBook) error {
	enc := json.NewEncoder(w)
	for _, l := range book.Lots() {
		if err := enc.Encode(l); err != nil {
			return err
		}
	}
	return nil
}

// DecodeJournal reads a previously written booking journal.
func DecodeJournal(r io.Reader) (*Journal, error) {
	j := NewJournal()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jl JournalLine
		if err := json.Unmarshal(line, &jl); err != nil {
			return nil, fmt.Errorf("format error in journal line %q: %w", string(line), err)
		}
		j.Append(jl)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return j, nil
}

// EncodeJournal persists the booking journal as JSONL.
func EncodeJournal(w io.Writer, j *Journal) error {
	enc := json.NewEncoder(w)
	for _, l := range j.Lines() {
		if err := enc.Encode(l); err != nil {
			return err
		}
	}
	return nil
}
