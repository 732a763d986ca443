// Package render draws simulator snapshots as plain text.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"bloomsim/internal/outcome"
	"bloomsim/internal/simulator"
)

const emptyCell = "-"

// Snapshot writes the slot table followed by the reference set.
//
//	SLOT  ON  HIT  ITEMS
//	3     on  <-   [cat] dog
//
// A highlighted item is wrapped in brackets.
func Snapshot(w io.Writer, s simulator.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tON\tHIT\tITEMS")
	for i, slot := range s.Slots {
		on, hit := emptyCell, ""
		if slot.Enabled {
			on = "on"
		}
		if slot.PossiblyMatched {
			hit = "<-"
		}
		var items []string
		for _, c := range slot.Children {
			if !c.Occupied {
				continue
			}
			if c.Highlighted {
				items = append(items, "["+c.Text+"]")
			} else {
				items = append(items, c.Text)
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, on, hit, strings.Join(items, " "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	cells := make([]string, len(s.Reference))
	for i, c := range s.Reference {
		cells[i] = emptyCell
		if c.Filled {
			cells[i] = c.Text
		}
	}
	_, err := fmt.Fprintf(w, "reference: %s\n", strings.Join(cells, " | "))
	return err
}

// Result writes what the filter claimed and how that compares with reality.
func Result(w io.Writer, res simulator.Result) error {
	if res.Predicted == nil {
		_, err := fmt.Fprintf(w, "outcome: %s (%s) %s\n", res.Outcome, res.Outcome.Severity(), res.Outcome.Label())
		return err
	}
	_, err := fmt.Fprintf(w, "slots: %s\nfilter: %s\noutcome: %s (%s) %s\n",
		joinInts(res.Targets),
		outcome.Verdict(res.Text, *res.Predicted),
		res.Outcome, res.Outcome.Severity(), res.Outcome.Label())
	return err
}

// Targets writes one line per hash function with the slot it picks.
func Targets(w io.Writer, names []string, targets []int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HASH\tSLOT")
	for i, name := range names {
		if i >= len(targets) {
			break
		}
		fmt.Fprintf(tw, "%s\t%d\n", name, targets[i])
	}
	return tw.Flush()
}

func Stats(w io.Writer, s simulator.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "inserts\t%d\n", s.Inserts)
	fmt.Fprintf(tw, "queries\t%d\n", s.Queries())
	fmt.Fprintf(tw, "true positives\t%d\n", s.TruePositives)
	fmt.Fprintf(tw, "false positives\t%d\n", s.FalsePositives)
	fmt.Fprintf(tw, "true negatives\t%d\n", s.TrueNegatives)
	fmt.Fprintf(tw, "false negatives\t%d\n", s.FalseNegatives)
	fmt.Fprintf(tw, "blank queries\t%d\n", s.EmptyQueries)
	fmt.Fprintf(tw, "dropped display records\t%d\n", s.DroppedRecords)
	fmt.Fprintf(tw, "dropped reference inserts\t%d\n", s.DroppedReferences)
	fmt.Fprintf(tw, "false positive rate\t%.2f\n", s.FalsePositiveRate())
	return tw.Flush()
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ",")
}
