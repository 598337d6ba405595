package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// POST /v1/reports
// Body: {"results": [...], "format": "pdf"|"excel", "userInfo": {...}}
// No file is rendered; the endpoint fabricates a download reference the UI
// links to, matching the product's current reporting behavior.
func (rt *Router) handleGenerateReport(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Results  []json.RawMessage `json:"results"`
		Format   string            `json:"format"`
		UserInfo map[string]any    `json:"userInfo"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequestf("invalid request body: %s", err.Error())
	}
	if body.Results == nil || body.Format == "" {
		return badRequestf("missing required parameters")
	}
	if body.Format != "pdf" && body.Format != "excel" {
		return badRequestf("invalid format, must be 'pdf' or 'excel'")
	}

	rt.log.Info("generating report",
		zap.String("format", body.Format),
		zap.Int("items", len(body.Results)),
	)

	timestamp := rt.analyzeSvc.Clock.Now().UTC().Format("2006-01-02T15-04-05Z")
	fileName := fmt.Sprintf("analysis-report-%s.%s", timestamp, body.Format)

	return writeJSON(w, map[string]any{
		"success":     true,
		"fileName":    fileName,
		"downloadUrl": fmt.Sprintf("https://example.com/reports/%s/%s", uuid.New().String(), fileName),
		"message":     fmt.Sprintf("%s report generated successfully", strings.ToUpper(body.Format)),
	})
}

// POST /v1/contact
func (rt *Router) handleContact(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequestf("invalid request body: %s", err.Error())
	}
	if body.Name == "" || body.Email == "" || body.Message == "" {
		return badRequestf("missing required fields")
	}
	if !looksLikeEmail(body.Email) {
		return badRequestf("invalid email format")
	}

	rt.log.Info("contact form submission",
		zap.String("name", body.Name),
		zap.String("email", body.Email),
		zap.String("subject", body.Subject),
	)

	return writeJSON(w, map[string]any{
		"success":      true,
		"message":      "Your message has been received. We'll get back to you soon.",
		"submissionId": uuid.New().String(),
	})
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	if strings.Contains(domain, "@") || strings.ContainsAny(s, " \t") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
