package analysis

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// HighConfidenceProbability is the weight of the "High" confidence label in
// the fallback annotator draw; the remainder is "Medium".
const HighConfidenceProbability = 0.7

var (
	fallbackConditions = []string{"Excellent", "Good", "Fair", "Poor"}
	fallbackEras       = []string{"Victorian", "Art Deco", "Mid-Century", "Contemporary", "Early 20th Century"}
	fallbackMaterials  = []string{"Wood", "Oak", "Mahogany", "Glass", "Crystal", "Porcelain", "Silver"}
	fallbackStyles     = []string{"Traditional", "Modern", "Rustic", "Industrial", "Minimalist"}
)

// FallbackHostedImage synthesizes a renderable image reference without any
// external upload. A payload that is already a data URL passes through
// unchanged.
func FallbackHostedImage(imageData string) HostedImage {
	url := imageData
	if !strings.HasPrefix(imageData, "data:") {
		url = "data:image/jpeg;base64," + imageData
	}
	return HostedImage{
		URL:       url,
		DeleteURL: "https://i.ibb.co/delete/mock-image",
	}
}

// FallbackCandidates returns the canned discovery result used when the
// search provider is unreachable or unconfigured.
func FallbackCandidates() []Candidate {
	return []Candidate{
		{Title: "Antique Oak Dining Table", Price: "$450", Source: "Auction Site", URL: "https://example.com/item1", ExtractedPrice: "450"},
		{Title: "Vintage Oak Table", Price: "$399", Source: "Marketplace", URL: "https://example.com/item2", ExtractedPrice: "399"},
		{Title: "Oak Dining Table 1920s", Price: "$525", Source: "Antique Store", URL: "https://example.com/item3", ExtractedPrice: "525"},
		{Title: "Antique Wooden Chair", Price: "$150", Source: "Estate Sale", URL: "https://example.com/item4", ExtractedPrice: "150"},
		{Title: "Vintage Crystal Vase", Price: "$85", Source: "Antique Mall", URL: "https://example.com/item5", ExtractedPrice: "85"},
	}
}

// Annotator is the local substitute for the valuation provider. The random
// source is injected so tests can seed it; production uses NewAnnotator.
type Annotator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewAnnotator(seed int64) *Annotator {
	return &Annotator{rnd: rand.New(rand.NewSource(seed))}
}

// Annotate attaches a synthesized appraisal to every item. Output length
// always equals input length and order is preserved.
func (a *Annotator) Annotate(items []Candidate) []Item {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Item, 0, len(items))
	for _, c := range items {
		price, err := strconv.Atoi(strings.TrimSpace(c.ExtractedPrice))
		if err != nil || price < 0 {
			price = 0
		}

		confidence := "Medium"
		if a.rnd.Float64() < HighConfidenceProbability {
			confidence = "High"
		}

		condition := a.pick(fallbackConditions)
		out = append(out, Item{
			Candidate: c,
			Analysis: &Appraisal{
				EstimatedValue: fmt.Sprintf("$%d", price),
				ValueRange: fmt.Sprintf("$%d - $%d",
					int(math.Floor(float64(price)*0.8)),
					int(math.Floor(float64(price)*1.2))),
				Confidence: confidence,
				Condition:  condition,
				Era:        a.pick(fallbackEras),
				Material:   a.pick(fallbackMaterials),
				Style:      a.pick(fallbackStyles),
				Description: fmt.Sprintf(
					"This appears to be a %s in %s condition. Similar items are selling for around $%d in the current market.",
					strings.ToLower(c.Title), strings.ToLower(a.pick(fallbackConditions)), price),
			},
		})
	}
	return out
}

func (a *Annotator) pick(options []string) string {
	return options[a.rnd.Intn(len(options))]
}
