package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/DhruvKhambhata/trackflow/internal/types/subscription"
)

// PushPayload is what the service worker expects in the push event.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// WebPushService delivers notifications to browser Web Push endpoints
// using VAPID keys from the environment.
type WebPushService struct {
	subscriberEmail string
	publicKey       string
	privateKey      string
	ttl             int
}

func NewWebPushService() (*WebPushService, error) {
	email := os.Getenv("VAPID_EMAIL")
	publicKey := os.Getenv("VAPID_PUBLIC_KEY")
	privateKey := os.Getenv("VAPID_PRIVATE_KEY")
	if email == "" || publicKey == "" || privateKey == "" {
		return nil, fmt.Errorf("missing VAPID config: VAPID_EMAIL, VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY must be set")
	}

	return &WebPushService{
		subscriberEmail: "mailto:" + email,
		publicKey:       publicKey,
		privateKey:      privateKey,
		ttl:             60,
	}, nil
}

func (s *WebPushService) SendPush(ctx context.Context, sub *subscription.PushSubscription, payload *PushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, target, &webpush.Options{
		Subscriber:      s.subscriberEmail,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             s.ttl,
	})
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	defer resp.Body.Close()

	// 404/410 mean the browser dropped the subscription; surface it so the
	// dispatcher can deactivate the record.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return fmt.Errorf("subscription expired: endpoint returned %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// IsSubscriptionGone reports whether a delivery error came from a dropped
// endpoint rather than a transient failure. The dispatcher deactivates the
// subscription either way, matching the self-healing behavior of the
// original sender, so this is informational for logs only.
func IsSubscriptionGone(err error) bool {
	return err != nil && strings.Contains(err.Error(), "subscription expired")
}

// DefaultReminderPayload is the canned daily-reminder push message.
func DefaultReminderPayload() *PushPayload {
	return &PushPayload{
		Title: "TrackFlow Daily Reminder",
		Body:  "Don't forget to log your daily activities! Keep your streak going! 🔥",
		URL:   "/log",
	}
}
