package analysis

import "context"

// ImageHost port (interface untuk image hosting backends)
type ImageHost interface {
	Upload(ctx context.Context, imageData, key string) (HostedImage, error)
}

// MatchFinder port (interface untuk reverse image search)
type MatchFinder interface {
	Search(ctx context.Context, imageURL, key string) ([]Candidate, error)
}

// Appraiser port (interface untuk the valuation provider)
type Appraiser interface {
	Appraise(ctx context.Context, items []Candidate, key string) ([]Item, error)
}

// History port (interface untuk persistence of past invocations)
type History interface {
	Save(ctx context.Context, rec *Record) error
	Latest(ctx context.Context, limit int) ([]*Record, error)
}
