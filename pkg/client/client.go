package client

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

	"github.com/goliatone/go-configform/pkg/configdoc"
	"github.com/goliatone/go-configform/pkg/configschema"
	"github.com/goliatone/go-configform/pkg/uischema"
)

const defaultRequestTimeout = 30 * time.Second

// Envelope is everything the service returns for one assistant identity:
// the stored configuration, the schema describing its shape and defaults,
// and the presentation hints.
type Envelope struct {
	Config  configdoc.Document
	Schema  *configschema.Schema
	UIHints uischema.Hints
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client. The client is cloned so a
// shared instance is not mutated.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient == nil {
			return
		}
		clone := *httpClient
		c.http = &clone
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Client is a configuration-service client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// New constructs a Client for the service at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("client: base URL is required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL: trimmed,
		timeout: defaultRequestTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c, nil
}

type envelopePayload struct {
	Config     map[string]any `json:"config"`
	JSONSchema map[string]any `json:"jsonSchema"`
	UISchema   map[string]any `json:"uiSchema"`
}

type updatePayload struct {
	Config map[string]any `json:"config"`
}

// GetConfig fetches the configuration envelope for the assistant identity.
// Failures are reported as *FetchError.
func (c *Client) GetConfig(ctx context.Context, assistantID string) (Envelope, error) {
	if err := validateAssistantID(assistantID); err != nil {
		return Envelope{}, &FetchError{AssistantID: assistantID, Err: err}
	}

	body, status, err := c.roundTrip(ctx, http.MethodGet, c.configURL(assistantID), nil)
	if err != nil {
		return Envelope{}, &FetchError{AssistantID: assistantID, Err: err}
	}
	if status < 200 || status >= 300 {
		return Envelope{}, &FetchError{AssistantID: assistantID, Status: status}
	}

	var payload envelopePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Envelope{}, &FetchError{AssistantID: assistantID, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if payload.JSONSchema == nil {
		return Envelope{}, &FetchError{AssistantID: assistantID, Err: errors.New("envelope is missing jsonSchema")}
	}

	schema, err := configschema.FromValue(payload.JSONSchema)
	if err != nil {
		return Envelope{}, &FetchError{AssistantID: assistantID, Err: err}
	}
	hints, err := uischema.FromValue(payload.UISchema)
	if err != nil {
		return Envelope{}, &FetchError{AssistantID: assistantID, Err: err}
	}

	return Envelope{
		Config:  configdoc.Document(payload.Config),
		Schema:  schema,
		UIHints: hints,
	}, nil
}

// UpdateConfig replaces the stored configuration wholesale and returns the
// document the service persisted. The caller must merge partial edits into
// the full document first. Failures are reported as *SaveError.
func (c *Client) UpdateConfig(ctx context.Context, assistantID string, config configdoc.Document) (configdoc.Document, error) {
	if err := validateAssistantID(assistantID); err != nil {
		return nil, &SaveError{AssistantID: assistantID, Err: err}
	}
	if config == nil {
		return nil, &SaveError{AssistantID: assistantID, Err: errors.New("config document is nil")}
	}

	payload, err := json.Marshal(updatePayload{Config: config})
	if err != nil {
		return nil, &SaveError{AssistantID: assistantID, Err: fmt.Errorf("encode config: %w", err)}
	}

	body, status, err := c.roundTrip(ctx, http.MethodPut, c.configURL(assistantID), payload)
	if err != nil {
		return nil, &SaveError{AssistantID: assistantID, Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &SaveError{AssistantID: assistantID, Status: status}
	}

	var saved updatePayload
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, &SaveError{AssistantID: assistantID, Err: fmt.Errorf("decode saved config: %w", err)}
	}
	return configdoc.Document(saved.Config), nil
}

func (c *Client) configURL(assistantID string) string {
	return c.baseURL + "/assistants/" + url.PathEscape(assistantID) + "/config"
}

func (c *Client) roundTrip(ctx context.Context, method, target string, payload []byte) ([]byte, int, error) {
	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, target, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

func validateAssistantID(assistantID string) error {
	if strings.TrimSpace(assistantID) == "" {
		return errors.New("assistant id is required")
	}
	return nil
}
