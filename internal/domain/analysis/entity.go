package analysis

import (
	"time"
)

// ID tipe untuk Analysis
type AnalysisID string

// Credentials holds the three provider API keys resolved once per pipeline
// invocation. Any member may be empty; Incomplete reports whether the
// invocation must run fully degraded.
type Credentials struct {
	ImgBB     string
	SearchAPI string
	DeepSeek  string
}

// Incomplete is true when any key is missing. A single missing key forces
// every stage of that invocation onto the fallback path.
func (c Credentials) Incomplete() bool {
	return c.ImgBB == "" || c.SearchAPI == "" || c.DeepSeek == ""
}

// HostedImage is the Upload stage result. URL is never empty on a
// successful return; on fallback it is a renderable data URL.
type HostedImage struct {
	URL       string `json:"url"`
	DeleteURL string `json:"delete_url,omitempty"`
}

// Candidate is one raw reverse-image-search match. All fields are free-form
// and any of them may be absent before filtering.
type Candidate struct {
	Title          string `json:"title,omitempty"`
	Price          string `json:"price,omitempty"`
	Source         string `json:"source,omitempty"`
	URL            string `json:"url,omitempty"`
	ExtractedPrice string `json:"extracted_price,omitempty"`
}

// Appraisal is the per-item annotation attached by the Valuation stage.
type Appraisal struct {
	EstimatedValue string `json:"estimated_value,omitempty"`
	ValueRange     string `json:"value_range,omitempty"`
	Confidence     string `json:"confidence,omitempty"`
	Condition      string `json:"condition,omitempty"`
	Era            string `json:"era,omitempty"`
	Material       string `json:"material,omitempty"`
	Style          string `json:"style,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Item is a filtered candidate plus its valuation.
type Item struct {
	Candidate
	Analysis *Appraisal `json:"analysis,omitempty"`
}

// Record is one persisted pipeline invocation, kept for the dashboard
// history. The pipeline runs fine without persistence; History may be nil.
type Record struct {
	ID         AnalysisID `json:"id"`
	ImageURL   string     `json:"image_url"`
	ItemCount  int        `json:"item_count"`
	Degraded   bool       `json:"degraded"`
	DurationMS int64      `json:"duration_ms"`
	CreatedAt  time.Time  `json:"created_at"`
}
