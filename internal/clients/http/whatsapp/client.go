package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
)

// Message is the body accepted by the gateway's send endpoint.
type Message struct {
	Text      string `json:"text"`
	Reference string `json:"reference,omitempty"`
}

// Accepted is returned when the gateway queues a message.
type Accepted struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Error is the gateway's error body.
type Error struct {
	Message *string `json:"message,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// Client sends text messages through a WhatsApp HTTP gateway.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

// SendOption configures Send behavior.
type SendOption func(*sendOptions)

type sendOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header for the request.
func WithIdempotencyKey(key string) SendOption {
	return func(opts *sendOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// NewClient instantiates the gateway client with sane defaults.
func NewClient(baseURL, token string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("whatsapp base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse whatsapp base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: parsed, token: strings.TrimSpace(token), httpClient: httpClient}, nil
}

// Send posts msg to the given phone number (digits only, country code included).
func (c *Client) Send(ctx context.Context, phone string, msg Message, optFns ...SendOption) (*Accepted, error) {
	if c == nil || c.baseURL == nil {
		return nil, errors.New("whatsapp client not configured")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, errors.New("whatsapp phone is required")
	}
	if strings.TrimSpace(msg.Text) == "" {
		return nil, errors.New("whatsapp message text is required")
	}
	var opts sendOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	pathParam, err := runtime.StyleParamWithLocation("simple", false, "phone", runtime.ParamLocationPath, phone)
	if err != nil {
		return nil, fmt.Errorf("encode phone: %w", err)
	}
	endpoint := c.baseURL.JoinPath("v1", "messages", pathParam)

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read whatsapp response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted:
		var accepted Accepted
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &accepted); err != nil {
				return nil, fmt.Errorf("decode whatsapp response: %w", err)
			}
		}
		return &accepted, nil
	case resp.StatusCode == http.StatusConflict:
		return nil, fmt.Errorf("whatsapp gateway idempotency conflict: %s", errorMessage(raw, resp.Status))
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("whatsapp gateway error: %s", errorMessage(raw, resp.Status))
	default:
		return nil, fmt.Errorf("whatsapp gateway unexpected status: %s", resp.Status)
	}
}

func errorMessage(raw []byte, fallback string) string {
	var body Error
	if len(raw) == 0 || json.Unmarshal(raw, &body) != nil {
		return fallback
	}
	if body.Message != nil {
		if msg := strings.TrimSpace(*body.Message); msg != "" {
			return msg
		}
	}
	if body.Status != nil {
		if msg := strings.TrimSpace(*body.Status); msg != "" {
			return msg
		}
	}
	return fallback
}
