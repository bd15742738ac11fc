// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var errChannelFull = errors.New("subscriber channel full")

// WebhookSubscriber POSTs events as JSON to a downstream notification
// service. Failures are reported to the bus (which logs them); the
// downstream being unreachable never affects the vote path.
type WebhookSubscriber struct {
	url    string
	client *http.Client
}

// NewWebhookSubscriber creates a webhook subscriber with a short timeout.
func NewWebhookSubscriber(url string) *WebhookSubscriber {
	return &WebhookSubscriber{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (w *WebhookSubscriber) Deliver(evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func (w *WebhookSubscriber) Close() {
	w.client.CloseIdleConnections()
}
