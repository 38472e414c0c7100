package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignatureTTL is how long a signed webhook delivery stays valid.
const SignatureTTL = 5 * time.Minute

// ErrSecretTooShort indicates a webhook secret under 32 bytes.
var ErrSecretTooShort = errors.New("webhook secret must be at least 32 bytes")

// WebhookNotifier posts events as JSON to an HTTP endpoint.
// When Secret is set, each delivery carries an HS256 bearer token whose
// ID matches the event ID.
type WebhookNotifier struct {
	URL     string
	Headers map[string]string
	Secret  []byte
	Client  *http.Client
}

// NewWebhookNotifier creates a webhook notifier.
func NewWebhookNotifier(url string, headers map[string]string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:     url,
		Headers: headers,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	headers := n.Headers
	if len(n.Secret) > 0 {
		token, err := SignEvent(n.Secret, event, time.Now())
		if err != nil {
			return err
		}
		headers = make(map[string]string, len(n.Headers)+1)
		for k, v := range n.Headers {
			headers[k] = v
		}
		headers["Authorization"] = "Bearer " + token
	}

	return postJSON(ctx, n.Client, n.URL, headers, body, "webhook")
}

// SignEvent returns an HS256 token identifying the event.
func SignEvent(secret []byte, event Event, now time.Time) (string, error) {
	if len(secret) < 32 {
		return "", ErrSecretTooShort
	}

	claims := jwt.RegisteredClaims{
		Issuer:    "rellr",
		Subject:   string(event.Type),
		ID:        event.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SignatureTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign event: %w", err)
	}
	return token, nil
}

// VerifyEvent validates a token produced by SignEvent and returns its claims.
// Receivers compare the claim ID with the delivered event ID.
func VerifyEvent(secret []byte, token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer("rellr"))
	if err != nil {
		return nil, fmt.Errorf("verify event: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("verify event: invalid token")
	}
	return claims, nil
}

func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body []byte, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s returned %d", target, resp.StatusCode)
	}
	return nil
}
