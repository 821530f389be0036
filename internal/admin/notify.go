// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// # Notification Delivery

// Notifier delivers one broadcast message to one user. Implementations
// must treat per-recipient failure as a normal outcome; the fan-out
// continues regardless.
type Notifier interface {
	Notify(context context.Context, userID int64, message string) error
}

// WebhookNotifier posts each delivery to the messaging gateway that
// fronts the user base.
type WebhookNotifier struct {
	endpoint string
	client   *http.Client
}

// NewWebhookNotifier constructs a notifier targeting the gateway URL.
func NewWebhookNotifier(endpoint string) *WebhookNotifier {
	return &WebhookNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (notifier *WebhookNotifier) Notify(context context.Context, userID int64, message string) error {

	body, err := json.Marshal(map[string]any{
		"user_id": userID,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("admin: marshal notification: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, notifier.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("admin: build notification request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := notifier.client.Do(request)
	if err != nil {
		return fmt.Errorf("admin: deliver notification: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("admin: gateway answered %d", response.StatusCode)
	}

	return nil
}

// LogNotifier records deliveries in the log instead of sending them.
// Used when no gateway URL is configured (development, tests).
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs a log-only notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (notifier *LogNotifier) Notify(_ context.Context, userID int64, message string) error {
	notifier.logger.Info("broadcast delivery (log only)",
		slog.Int64("user_id", userID),
		slog.String("message", message),
	)
	return nil
}
