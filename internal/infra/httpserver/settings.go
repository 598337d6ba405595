package httpserver

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/imageinsight/appraiser/internal/settings"
)

// POST /v1/settings
// Body: {"action": "...", "adminId": "...", "settings": {...}}
func (rt *Router) handleSettings(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Action   string         `json:"action"`
		AdminID  string         `json:"adminId"`
		Settings map[string]any `json:"settings"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequestf("invalid request body: %s", err.Error())
	}
	if body.Action == "" || body.AdminID == "" {
		return badRequestf("missing required parameters")
	}

	rt.log.Info("settings action", zap.String("action", body.Action), zap.String("admin", body.AdminID))

	switch body.Action {
	case "getSettings":
		return writeJSON(w, map[string]any{
			"success":    true,
			"settings":   rt.store.Masked(),
			"apiKeysSet": rt.store.KeysSet(),
		})

	case "updateSettings":
		if body.Settings == nil {
			return badRequestf("missing settings parameter")
		}
		rt.store.Update(settingsFromMap(body.Settings))
		return writeJSON(w, map[string]any{
			"success":  true,
			"message":  "Settings updated successfully",
			"settings": rt.store.Masked(),
		})

	case "updateApiKey":
		key, _ := body.Settings["key"].(string)
		value, _ := body.Settings["value"].(string)
		if key == "" || value == "" {
			return badRequestf("missing key or value parameters")
		}
		if err := rt.store.SetKey(key, value); err != nil {
			return badRequestf("%s", err.Error())
		}
		return writeJSON(w, map[string]any{
			"success":      true,
			"message":      "API key " + key + " updated successfully",
			"key":          key,
			"masked_value": settings.MaskedValue,
		})

	default:
		return badRequestf("invalid action")
	}
}

func settingsFromMap(m map[string]any) settings.Settings {
	str := func(key string) string {
		v, _ := m[key].(string)
		return v
	}
	return settings.Settings{
		ImgBBAPIKey:    str("imgbb_api_key"),
		SearchAPIKey:   str("searchapi_key"),
		DeepSeekAPIKey: str("deepseek_api_key"),
		CompanyName:    str("company_name"),
		SupportEmail:   str("support_email"),
		MaxUploadSize:  str("max_upload_size"),
	}
}
