package analysis

import (
	"os"

	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
	"github.com/imageinsight/appraiser/internal/settings"
)

// LookupFunc reads one variable from the override source, os.LookupEnv in
// production.
type LookupFunc func(key string) (string, bool)

// Resolver resolves the three provider keys once per invocation.
// Precedence: environment override first, then the process-wide settings
// store. Read-only; presence is checked, format is not.
type Resolver struct {
	Lookup   LookupFunc
	Settings *settings.Store
}

func NewResolver(store *settings.Store) *Resolver {
	return &Resolver{Lookup: os.LookupEnv, Settings: store}
}

func (r *Resolver) Resolve() domain.Credentials {
	snap := r.Settings.Snapshot()
	return domain.Credentials{
		ImgBB:     r.resolve("IMGBB_API_KEY", snap.ImgBBAPIKey),
		SearchAPI: r.resolve("SEARCHAPI_KEY", snap.SearchAPIKey),
		DeepSeek:  r.resolve("DEEPSEEK_API_KEY", snap.DeepSeekAPIKey),
	}
}

func (r *Resolver) resolve(envKey, stored string) string {
	if v, ok := r.Lookup(envKey); ok && v != "" {
		return v
	}
	return stored
}
