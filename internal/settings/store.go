package settings

import (
	"fmt"
	"os"
	"sync"
)

// MaskedValue replaces every stored API key in responses.
const MaskedValue = "••••••••••••••••"

// Settings holds the three provider keys plus the non-secret display
// fields the admin screen edits.
type Settings struct {
	ImgBBAPIKey    string `json:"imgbb_api_key"`
	SearchAPIKey   string `json:"searchapi_key"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`
	CompanyName    string `json:"company_name"`
	SupportEmail   string `json:"support_email"`
	MaxUploadSize  string `json:"max_upload_size"`
}

// Store is the process-wide settings store. Written only by the admin
// endpoints, read by the pipeline's credential resolver; a stale read just
// changes which credential snapshot one invocation uses.
type Store struct {
	mu sync.RWMutex
	s  Settings
}

// NewStore seeds the store from the environment plus the display defaults.
func NewStore() *Store {
	return &Store{s: Settings{
		ImgBBAPIKey:    os.Getenv("IMGBB_API_KEY"),
		SearchAPIKey:   os.Getenv("SEARCHAPI_KEY"),
		DeepSeekAPIKey: os.Getenv("DEEPSEEK_API_KEY"),
		CompanyName:    "ImageInsight",
		SupportEmail:   "support@imageinsight.com",
		MaxUploadSize:  "10MB",
	}}
}

// Snapshot returns a copy of the current settings, secrets included.
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

// Masked returns the settings with every set API key replaced by
// MaskedValue; unset keys stay empty so the UI can tell the difference.
func (st *Store) Masked() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := st.s
	out.ImgBBAPIKey = mask(out.ImgBBAPIKey)
	out.SearchAPIKey = mask(out.SearchAPIKey)
	out.DeepSeekAPIKey = mask(out.DeepSeekAPIKey)
	return out
}

// KeysSet reports which provider keys are currently present.
func (st *Store) KeysSet() map[string]bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return map[string]bool{
		"imgbb_api_key":    st.s.ImgBBAPIKey != "",
		"searchapi_key":    st.s.SearchAPIKey != "",
		"deepseek_api_key": st.s.DeepSeekAPIKey != "",
	}
}

// Update merges every non-empty field of patch into the store, matching the
// partial-update semantics of the admin screen.
func (st *Store) Update(patch Settings) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if patch.ImgBBAPIKey != "" {
		st.s.ImgBBAPIKey = patch.ImgBBAPIKey
	}
	if patch.SearchAPIKey != "" {
		st.s.SearchAPIKey = patch.SearchAPIKey
	}
	if patch.DeepSeekAPIKey != "" {
		st.s.DeepSeekAPIKey = patch.DeepSeekAPIKey
	}
	if patch.CompanyName != "" {
		st.s.CompanyName = patch.CompanyName
	}
	if patch.SupportEmail != "" {
		st.s.SupportEmail = patch.SupportEmail
	}
	if patch.MaxUploadSize != "" {
		st.s.MaxUploadSize = patch.MaxUploadSize
	}
}

// SetKey updates a single provider key by its wire name.
func (st *Store) SetKey(key, value string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	switch key {
	case "imgbb_api_key":
		st.s.ImgBBAPIKey = value
	case "searchapi_key":
		st.s.SearchAPIKey = value
	case "deepseek_api_key":
		st.s.DeepSeekAPIKey = value
	default:
		return fmt.Errorf("unknown api key: %s", key)
	}
	return nil
}

func mask(v string) string {
	if v == "" {
		return ""
	}
	return MaskedValue
}
