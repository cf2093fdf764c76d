package cli

import (
	"fmt"

	"github.com/ahmadachkar-boop/condlab/internal/filter"
)

// FilterFlags are the shared event-filtering flags for file commands.
type FilterFlags struct {
	Match       string  `help:"Only keep events whose text matches this regex"`
	Exclude     string  `help:"Drop events whose text matches this regex"`
	FromLatency float64 `help:"Drop events before this latency (samples)"`
	ToLatency   float64 `help:"Drop events after this latency (samples)"`
}

// Chain builds the filter chain from the flags.
func (f *FilterFlags) Chain() (*filter.Chain, error) {
	chain := filter.NewChain()
	if f.Match != "" {
		mf, err := filter.NewMatchPatternFilter(f.Match)
		if err != nil {
			return nil, fmt.Errorf("invalid --match pattern: %w", err)
		}
		chain.Add(mf)
	}
	if f.Exclude != "" {
		ef, err := filter.NewExcludePatternFilter(f.Exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid --exclude pattern: %w", err)
		}
		chain.Add(ef)
	}
	if f.FromLatency > 0 || f.ToLatency > 0 {
		chain.Add(filter.NewLatencyFilter(f.FromLatency, f.ToLatency))
	}
	return chain, nil
}
