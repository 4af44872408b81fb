package analysis

import "sort"

// RankedSummary is a provider summary with its position in the comparison
// and the savings it offers against the most expensive provider.
type RankedSummary struct {
	ProviderSummary

	Rank                   int     `json:"rank"`
	SavingsVsMostExpensive float64 `json:"savings_vs_most_expensive"`
	SavingsPercent         float64 `json:"savings_percent"`
}

// Rank orders summaries ascending by total cost (cheapest first) and fills
// in savings relative to the most expensive provider. Ties keep their input
// order.
func Rank(summaries []ProviderSummary) []RankedSummary {
	out := make([]RankedSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, RankedSummary{ProviderSummary: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCost < out[j].TotalCost
	})

	if len(out) == 0 {
		return out
	}
	mostExpensive := out[len(out)-1].TotalCost
	for i := range out {
		out[i].Rank = i + 1
		out[i].SavingsVsMostExpensive = mostExpensive - out[i].TotalCost
		if mostExpensive != 0 {
			out[i].SavingsPercent = out[i].SavingsVsMostExpensive / mostExpensive * 100
		}
	}
	return out
}
