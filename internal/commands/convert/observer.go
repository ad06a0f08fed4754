package convertcmd

import "github.com/goliatone/go-md2adapt/pkg/interfaces"

// SummaryObserver receives every conversion summary produced by the
// handlers. The CLI uses it to print a report; the zero value ignores
// summaries.
type SummaryObserver struct {
	OnSummary func(*interfaces.ConvertSummary)
}

func (o SummaryObserver) observe(summaries ...*interfaces.ConvertSummary) {
	if o.OnSummary == nil {
		return
	}
	for _, summary := range summaries {
		if summary != nil {
			o.OnSummary(summary)
		}
	}
}
