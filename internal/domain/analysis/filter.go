package analysis

// MaxFilteredResults caps how many discovery candidates survive the filter.
const MaxFilteredResults = 15

// Filter normalizes raw discovery candidates: at most MaxFilteredResults
// entries, input order preserved, every missing field replaced with a safe
// placeholder. Pure, never fails; a nil input yields an empty slice.
func Filter(raw []Candidate) []Candidate {
	if len(raw) > MaxFilteredResults {
		raw = raw[:MaxFilteredResults]
	}
	out := make([]Candidate, 0, len(raw))
	for _, c := range raw {
		if c.Title == "" {
			c.Title = "Unknown Item"
		}
		if c.Price == "" {
			c.Price = "Price not available"
		}
		if c.Source == "" {
			c.Source = "Unknown Source"
		}
		if c.URL == "" {
			c.URL = "#"
		}
		if c.ExtractedPrice == "" {
			c.ExtractedPrice = "0"
		}
		out = append(out, c)
	}
	return out
}
