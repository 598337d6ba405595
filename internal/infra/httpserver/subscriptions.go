package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type tier struct {
	Name     string
	Price    int
	Features []string
}

// the fixed four-tier table; there is no billing backend behind it
var tiers = map[string]tier{
	"free":       {Name: "Free", Price: 0, Features: []string{"15 images/session", "3 sessions/day"}},
	"basic":      {Name: "Basic", Price: 29, Features: []string{"Unlimited images", "Unlimited sessions"}},
	"pro":        {Name: "Professional", Price: 99, Features: []string{"API access", "Team access"}},
	"enterprise": {Name: "Enterprise", Price: 299, Features: []string{"Custom features"}},
}

func tierOr(id, fallbackID string) (string, tier) {
	if t, ok := tiers[id]; ok {
		return id, t
	}
	return fallbackID, tiers[fallbackID]
}

// POST /v1/subscriptions
// Body: {"action": "...", "userId": "...", "subscriptionId": "..."}
func (rt *Router) handleSubscription(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Action         string `json:"action"`
		UserID         string `json:"userId"`
		SubscriptionID string `json:"subscriptionId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequestf("invalid request body: %s", err.Error())
	}
	if body.Action == "" || body.UserID == "" {
		return badRequestf("missing required parameters")
	}

	rt.log.Info("subscription action", zap.String("action", body.Action), zap.String("user", body.UserID))

	now := rt.analyzeSvc.Clock.Now().UTC()
	month := 30 * 24 * time.Hour

	switch body.Action {
	case "subscribe":
		if body.SubscriptionID == "" {
			return badRequestf("missing subscriptionId parameter")
		}
		id, t := tierOr(body.SubscriptionID, "free")
		return writeJSON(w, map[string]any{
			"success": true,
			"userId":  body.UserID,
			"subscription": map[string]any{
				"id": id, "name": t.Name, "price": t.Price, "features": t.Features,
				"startDate":       now.Format(time.RFC3339),
				"nextBillingDate": now.Add(month).Format(time.RFC3339),
				"status":          "active",
			},
		})

	case "cancel":
		t := tiers["free"]
		return writeJSON(w, map[string]any{
			"success": true,
			"userId":  body.UserID,
			"message": "Subscription cancelled successfully",
			"subscription": map[string]any{
				"id": "free", "name": t.Name, "price": t.Price, "features": t.Features,
				"status":  "cancelled",
				"endDate": now.Format(time.RFC3339),
			},
		})

	case "update":
		if body.SubscriptionID == "" {
			return badRequestf("missing subscriptionId parameter")
		}
		id, t := tierOr(body.SubscriptionID, "basic")
		return writeJSON(w, map[string]any{
			"success": true,
			"userId":  body.UserID,
			"message": "Subscription updated successfully",
			"subscription": map[string]any{
				"id": id, "name": t.Name, "price": t.Price, "features": t.Features,
				"startDate":       now.Format(time.RFC3339),
				"nextBillingDate": now.Add(month).Format(time.RFC3339),
				"status":          "active",
			},
		})

	case "get":
		t := tiers["basic"]
		return writeJSON(w, map[string]any{
			"success": true,
			"userId":  body.UserID,
			"subscription": map[string]any{
				"id": "basic", "name": t.Name, "price": t.Price, "features": t.Features,
				"startDate":       now.Add(-15 * 24 * time.Hour).Format(time.RFC3339),
				"nextBillingDate": now.Add(15 * 24 * time.Hour).Format(time.RFC3339),
				"status":          "active",
			},
		})

	default:
		return badRequestf("invalid action")
	}
}
