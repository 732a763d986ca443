// Package simulator is the Bloom filter teaching engine. It keeps a slot
// table that every insert lights up through all configured hash functions,
// and a reference set holding the ground truth. Queries are answered by the
// slot table and graded against the reference set.
package simulator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"bloomsim/internal/hashing"
	"bloomsim/internal/outcome"
	"bloomsim/internal/reference"
	"bloomsim/internal/slots"
	"bloomsim/pkg/logger"
)

var ErrNoHashFunctions = errors.New("simulator: at least one hash function is required")

type Options struct {
	TableSize         int
	SlotCapacity      int
	ReferenceCapacity int
	// HashFunctions are registry names, applied in order.
	HashFunctions []string
	Logger        logger.Logger
}

// Engine owns the slot table and the reference set. Every command runs
// under one lock, so a snapshot never shows a half-applied command.
type Engine struct {
	mu sync.Mutex

	names  []string
	hashes []hashing.Func
	table  *slots.Table
	ref    *reference.Set

	last          outcome.Outcome
	lastQuery     string
	lastPredicted *bool
	stats         Stats

	log logger.Logger
}

func New(opts Options) (*Engine, error) {
	if len(opts.HashFunctions) == 0 {
		return nil, ErrNoHashFunctions
	}
	hashes, err := hashing.LookupAll(opts.HashFunctions)
	if err != nil {
		return nil, err
	}
	table, err := slots.New(opts.TableSize, opts.SlotCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot table: %w", err)
	}
	ref, err := reference.New(opts.ReferenceCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create reference set: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Engine{
		names:  append([]string(nil), opts.HashFunctions...),
		hashes: hashes,
		table:  table,
		ref:    ref,
		log:    log,
	}, nil
}

// Normalize lower-cases and trims raw input. Empty output means the command
// has nothing to act on.
func Normalize(raw string) string {
	return strings.TrimSpace(strings.ToLower(raw))
}

// Insert adds raw to the reference set and to every slot its hashes point at.
// Blank input is ignored. Running out of display cells or reference cells is
// absorbed: membership in the slot table is recorded regardless.
func (e *Engine) Insert(raw string) error {
	text := Normalize(raw)
	if text == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	targets, err := e.targets(text)
	if err != nil {
		return err
	}

	if !e.ref.Add(text) {
		e.stats.DroppedReferences++
		e.log.Debug("reference set full, ground truth not recorded", "text", text)
	}
	for _, idx := range targets {
		if !e.table.Store(idx, text) {
			e.stats.DroppedRecords++
			e.log.Debug("slot full, display record dropped", "slot", idx, "text", text)
		}
	}
	e.stats.Inserts++

	e.log.Debug("inserted", "text", text, "slots", targets)
	return nil
}

// Query asks the slot table whether raw may be present and grades the answer
// against the reference set. Blank input clears the highlighting and returns
// outcome.None with a nil Predicted.
func (e *Engine) Query(raw string) (Result, error) {
	text := Normalize(raw)

	e.mu.Lock()
	defer e.mu.Unlock()

	if text == "" {
		e.table.ClearMarks()
		e.last = outcome.None
		e.lastQuery = ""
		e.lastPredicted = nil
		e.stats.EmptyQueries++
		return Result{Outcome: outcome.None, Snapshot: e.snapshot()}, nil
	}

	targets, err := e.targets(text)
	if err != nil {
		return Result{}, err
	}

	e.table.ClearMarks()
	predicted := true
	for _, idx := range targets {
		e.table.Mark(idx, text)
		if !e.table.Enabled(idx) {
			predicted = false
		}
	}
	actual := e.ref.Contains(text)
	o := outcome.Classify(predicted, actual)

	e.last = o
	e.lastQuery = text
	e.lastPredicted = &predicted
	e.stats.record(o)

	e.log.Debug("queried", "text", text, "slots", targets, "predicted", predicted, "actual", actual, "outcome", o.String())

	return Result{
		Text:      text,
		Outcome:   o,
		Predicted: boolPtr(predicted),
		Actual:    boolPtr(actual),
		Targets:   targets,
		Snapshot:  e.snapshot(),
	}, nil
}

// Reset returns the engine to its freshly constructed state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.table.Reset()
	e.ref.Reset()
	e.last = outcome.None
	e.lastQuery = ""
	e.lastPredicted = nil
	e.stats = Stats{}

	e.log.Info("simulator reset", "table_size", e.table.Size())
}

// Targets returns the slot each configured hash function assigns to raw,
// after normalization. Blank input has no targets.
func (e *Engine) Targets(raw string) ([]int, error) {
	text := Normalize(raw)
	if text == "" {
		return nil, nil
	}
	return e.targets(text)
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) LastOutcome() outcome.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// HashFunctions lists the configured hash function names in fan-out order.
func (e *Engine) HashFunctions() []string {
	return append([]string(nil), e.names...)
}

func (e *Engine) TableSize() int { return e.table.Size() }

func (e *Engine) targets(text string) ([]int, error) {
	out := make([]int, len(e.hashes))
	for i, h := range e.hashes {
		idx, err := h(text, e.table.Size())
		if err != nil {
			return nil, fmt.Errorf("hash %s of %q: %w", e.names[i], text, err)
		}
		out[i] = idx
	}
	return out, nil
}

func (e *Engine) snapshot() Snapshot {
	return Snapshot{
		Slots:         e.table.Snapshot(),
		Reference:     e.ref.Snapshot(),
		LastOutcome:   e.last,
		LastQuery:     e.lastQuery,
		LastPredicted: copyBoolPtr(e.lastPredicted),
	}
}

func boolPtr(b bool) *bool { return &b }

func copyBoolPtr(b *bool) *bool {
	if b == nil {
		return nil
	}
	return boolPtr(*b)
}
