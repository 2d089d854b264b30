// Package analytics wraps the posthog client so callers never have to care
// whether analytics is configured.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Event names emitted by the application.
const (
	EventUserRegistered     = "user_registered"
	EventTransactionCreated = "transaction_created"
	EventDebtCreated        = "debt_created"
	EventDebtSettled        = "debt_settled"
	EventReportExported     = "report_exported"
)

// Client wraps posthog.Client and degrades to a no-op when no API key is
// configured.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// NewClient initializes the posthog client. An empty API key yields a no-op
// client.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &Client{}
	}
	c := &Client{logger: logger}
	c.posthogClient, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	return c
}

// IsInitialized reports whether events will actually be sent.
func (c *Client) IsInitialized() bool {
	return c.posthogClient != nil
}

// Enqueue captures one event for the given user.
func (c *Client) Enqueue(distinctID string, event string, properties map[string]any) {
	if c.posthogClient == nil {
		return
	}
	if c.logger != nil {
		c.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

// Close flushes pending events.
func (c *Client) Close() {
	if c.posthogClient == nil {
		return
	}
	c.posthogClient.Close()
}
