package simulator

import (
	"bloomsim/internal/outcome"
	"bloomsim/internal/reference"
	"bloomsim/internal/slots"
)

// Snapshot is a deep copy of the engine state. Holding one never blocks or
// aliases the engine.
type Snapshot struct {
	Slots     []slots.Slot
	Reference []reference.Cell

	LastOutcome outcome.Outcome
	// LastQuery is the normalized text of the last graded query.
	LastQuery string
	// LastPredicted is nil until a non-blank query has been graded.
	LastPredicted *bool
}

// Unmarked is s with every query-scoped highlight cleared.
func (s Snapshot) Unmarked() Snapshot {
	s.Slots = slots.Unmarked(s.Slots)
	s.Reference = append([]reference.Cell(nil), s.Reference...)
	s.LastPredicted = copyBoolPtr(s.LastPredicted)
	return s
}

type Result struct {
	Text    string
	Outcome outcome.Outcome
	// Predicted and Actual are nil for blank queries.
	Predicted *bool
	Actual    *bool
	// Targets holds one slot index per hash function, in configuration order.
	Targets  []int
	Snapshot Snapshot
}

type Stats struct {
	Inserts           int
	DroppedRecords    int
	DroppedReferences int

	EmptyQueries   int
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int
}

func (s *Stats) record(o outcome.Outcome) {
	switch o {
	case outcome.TruePositive:
		s.TruePositives++
	case outcome.FalsePositive:
		s.FalsePositives++
	case outcome.TrueNegative:
		s.TrueNegatives++
	case outcome.FalseNegative:
		s.FalseNegatives++
	}
}

// Queries counts graded queries; blank ones are not graded.
func (s Stats) Queries() int {
	return s.TruePositives + s.FalsePositives + s.TrueNegatives + s.FalseNegatives
}

// FalsePositiveRate is FP / (FP + TN) over the queries for absent elements,
// or 0 when none were asked.
func (s Stats) FalsePositiveRate() float64 {
	negatives := s.FalsePositives + s.TrueNegatives
	if negatives == 0 {
		return 0
	}
	return float64(s.FalsePositives) / float64(negatives)
}
