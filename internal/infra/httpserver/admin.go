package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

type adminUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Subscription string `json:"subscription"`
	LastLogin    string `json:"lastLogin"`
}

// static fixtures; there is no user database behind the admin screens
var adminUsers = []adminUser{
	{ID: "1", Email: "user1@example.com", Role: "user", Subscription: "Basic", LastLogin: "2023-05-15"},
	{ID: "2", Email: "user2@example.com", Role: "user", Subscription: "Professional", LastLogin: "2023-05-14"},
	{ID: "3", Email: "user3@example.com", Role: "user", Subscription: "Free", LastLogin: "2023-05-10"},
	{ID: "4", Email: "admin@example.com", Role: "admin", Subscription: "Enterprise", LastLogin: "2023-05-15"},
}

var adminSubscriptions = []map[string]any{
	{"id": "1", "name": "Free", "price": "$0", "features": "15 images/session, 3 sessions/day", "active": true},
	{"id": "2", "name": "Basic", "price": "$29", "features": "Unlimited images and sessions", "active": true},
	{"id": "3", "name": "Professional", "price": "$99", "features": "Everything in Basic + API access", "active": true},
	{"id": "4", "name": "Enterprise", "price": "$299", "features": "Custom features and support", "active": true},
}

var adminContent = map[string][]map[string]any{
	"blog": {
		{"id": "1", "title": "How AI is Transforming Estate Sales", "published": "2023-05-01", "status": "Published"},
		{"id": "2", "title": "Top 10 Items to Look for at Estate Sales", "published": "2023-04-15", "status": "Published"},
		{"id": "3", "title": "The Future of Auction Technology", "published": "2023-03-20", "status": "Draft"},
	},
	"services": {
		{"id": "1", "title": "AI Image Analysis", "description": "Identify items and estimate values automatically", "active": true},
		{"id": "2", "title": "Batch Processing", "description": "Process multiple images at once for efficiency", "active": true},
		{"id": "3", "title": "Custom Reports", "description": "Generate branded reports for your business", "active": true},
	},
	"about": {
		{"id": "1", "title": "About Us", "content": "Company information", "active": true},
	},
}

// POST /v1/admin
// Body: {"action": "...", "adminId": "...", "data": {...}}
func (rt *Router) handleAdmin(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Action  string `json:"action"`
		AdminID string `json:"adminId"`
		Data    struct {
			UserID           string         `json:"userId"`
			UserData         map[string]any `json:"userData"`
			SubscriptionID   string         `json:"subscriptionId"`
			SubscriptionData map[string]any `json:"subscriptionData"`
			ContentID        string         `json:"contentId"`
			ContentData      map[string]any `json:"contentData"`
			Type             string         `json:"type"`
			Settings         map[string]any `json:"settings"`
		} `json:"data"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequestf("invalid request body: %s", err.Error())
	}
	if body.Action == "" || body.AdminID == "" {
		return badRequestf("missing required parameters")
	}

	rt.log.Info("admin action", zap.String("action", body.Action), zap.String("admin", body.AdminID))

	switch body.Action {
	case "getUsers":
		return writeJSON(w, map[string]any{"success": true, "users": adminUsers})

	case "getUser":
		if body.Data.UserID == "" {
			return badRequestf("missing userId parameter")
		}
		for _, u := range adminUsers {
			if u.ID == body.Data.UserID {
				return writeJSON(w, map[string]any{"success": true, "user": u})
			}
		}
		return writeJSON(w, map[string]any{"success": false, "error": "User not found"})

	case "updateUser":
		if body.Data.UserID == "" || body.Data.UserData == nil {
			return badRequestf("missing userId or userData parameters")
		}
		user := map[string]any{"id": body.Data.UserID}
		for k, v := range body.Data.UserData {
			user[k] = v
		}
		return writeJSON(w, map[string]any{
			"success": true,
			"message": fmt.Sprintf("User %s updated successfully", body.Data.UserID),
			"user":    user,
		})

	case "deleteUser":
		if body.Data.UserID == "" {
			return badRequestf("missing userId parameter")
		}
		return writeJSON(w, map[string]any{
			"success": true,
			"message": fmt.Sprintf("User %s deleted successfully", body.Data.UserID),
		})

	case "getSubscriptions":
		return writeJSON(w, map[string]any{"success": true, "subscriptions": adminSubscriptions})

	case "updateSubscription":
		if body.Data.SubscriptionID == "" || body.Data.SubscriptionData == nil {
			return badRequestf("missing subscriptionId or subscriptionData parameters")
		}
		sub := map[string]any{"id": body.Data.SubscriptionID}
		for k, v := range body.Data.SubscriptionData {
			sub[k] = v
		}
		return writeJSON(w, map[string]any{
			"success":      true,
			"message":      fmt.Sprintf("Subscription %s updated successfully", body.Data.SubscriptionID),
			"subscription": sub,
		})

	case "getContent":
		if c, ok := adminContent[body.Data.Type]; ok {
			return writeJSON(w, map[string]any{"success": true, "content": c})
		}
		return writeJSON(w, map[string]any{"success": true, "content": adminContent})

	case "updateContent":
		if body.Data.ContentID == "" || body.Data.ContentData == nil {
			return badRequestf("missing contentId or contentData parameters")
		}
		content := map[string]any{"id": body.Data.ContentID}
		for k, v := range body.Data.ContentData {
			content[k] = v
		}
		return writeJSON(w, map[string]any{
			"success": true,
			"message": fmt.Sprintf("Content %s updated successfully", body.Data.ContentID),
			"content": content,
		})

	case "getSettings":
		return writeJSON(w, map[string]any{"success": true, "settings": rt.store.Masked()})

	case "updateSettings":
		if body.Data.Settings == nil {
			return badRequestf("missing settings parameter")
		}
		rt.store.Update(settingsFromMap(body.Data.Settings))
		return writeJSON(w, map[string]any{
			"success":  true,
			"message":  "Settings updated successfully",
			"settings": rt.store.Masked(),
		})

	default:
		return badRequestf("invalid action")
	}
}
