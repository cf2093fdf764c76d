package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// RenderConditions writes a human-readable condition table.
func RenderConditions(w io.Writer, set *domain.ConditionSet) error {
	table := tablewriter.NewTable(w)
	table.Header("Condition", "Events", "Representative event")
	for _, ci := range set.Conditions {
		table.Append(ci.Label, strconv.Itoa(ci.Count), ci.Representative)
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d conditions from %d events (%d labeled, %d skipped)\n",
		len(set.Conditions), set.TotalEvents, set.Labeled, set.Skipped.Total())
	if skipped := set.Skipped; skipped.Total() > 0 {
		fmt.Fprintf(w, "skipped: %d pattern mismatch, %d empty, %d generic, %d practice\n",
			skipped.PatternMismatch, skipped.EmptyLabel, skipped.GenericLabel, skipped.Practice)
	}
	return nil
}

// RenderFields writes a per-field discovery table: classification,
// statistics, and sample values.
func RenderFields(w io.Writer, discovery *domain.Discovery) error {
	table := tablewriter.NewTable(w)
	table.Header("Field", "Class", "Unique", "Cardinality", "Samples")

	classOf := func(name string) string {
		for _, f := range discovery.GroupingFields {
			if f == name {
				return string(domain.ClassCondition)
			}
		}
		if discovery.IsExcluded(name) {
			return "excluded"
		}
		return string(domain.ClassAmbiguous)
	}

	for _, name := range discovery.Fields {
		st := discovery.FieldStats[name]
		samples := ""
		for i, s := range st.SampleValues {
			if i > 0 {
				samples += ", "
			}
			samples += s
		}
		table.Append(name, classOf(name),
			strconv.Itoa(st.NumUnique),
			strconv.FormatFloat(st.Cardinality, 'f', 3, 64),
			samples)
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "grouping: %v  confidence: %.2f  external classifier: %v\n",
		discovery.GroupingFields, discovery.Confidence, discovery.UsedExternalClassifier)
	return nil
}
