package push

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/farmdesk/internal/config"
)

// Client exposes the push delivery operations used by the goal notifier.
// Delivery is best-effort: the in-app notification document is the source of
// truth and push is only a mirror for the mobile clients.
type Client interface {
	SendPush(ctx context.Context, req SendPushRequest) (*SendPushResponse, error)
}

// APIClient is a resty-backed implementation of Client targeting the Expo
// push service.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a push API client using the provided configuration values.
func NewClient(cfg config.PushConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.Token != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}

	return &APIClient{httpClient: restyClient}
}

// SendPushRequest represents one push message addressed to a device token.
type SendPushRequest struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SendPushResponse mirrors the per-ticket response from the push service.
type SendPushResponse struct {
	Data struct {
		Status  string `json:"status"`
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"data"`
}

// SendPush delivers one push message.
func (c *APIClient) SendPush(ctx context.Context, req SendPushRequest) (*SendPushResponse, error) {
	if req.To == "" {
		return nil, fmt.Errorf("push recipient must not be empty")
	}

	var out SendPushResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/--/api/v2/push/send")
	if err != nil {
		return nil, fmt.Errorf("send push: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("send push: unexpected status %s", resp.Status())
	}

	if out.Data.Status == "error" {
		return nil, fmt.Errorf("send push: %s", out.Data.Message)
	}

	return &out, nil
}
