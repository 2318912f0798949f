package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-configform/pkg/configdoc"
)

const assistantID = "assistant-1"

func newEnvelopeServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNew(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}

	c, err := New("http://localhost:8080/")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if got := c.configURL("a b"); got != "http://localhost:8080/assistants/a%20b/config" {
		t.Fatalf("unexpected config URL: %s", got)
	}
}

func TestGetConfig(t *testing.T) {
	server := newEnvelopeServer(t, `{
		"config": {"name": "assistant", "model": {"provider": "openai"}},
		"jsonSchema": {
			"properties": {"name": {"type": "string", "default": "assistant"}}
		},
		"uiSchema": {"fields": {"name": {"widget": "input"}}}
	}`)

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	envelope, err := c.GetConfig(context.Background(), assistantID)
	if err != nil {
		t.Fatalf("get config: %v", err)
	}

	wantConfig := configdoc.Document{
		"name":  "assistant",
		"model": map[string]any{"provider": "openai"},
	}
	if diff := cmp.Diff(wantConfig, envelope.Config); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	defaults, diags := envelope.Schema.Defaults()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if defaults["name"] != "assistant" {
		t.Fatalf("schema did not round-trip: %v", defaults)
	}

	if field, ok := envelope.UIHints.Field("name"); !ok || field.Widget != "input" {
		t.Fatalf("ui hints did not round-trip: %+v (ok=%v)", field, ok)
	}
}

func TestGetConfig_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "missing schema",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"config": {}}`))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			c, err := New(server.URL)
			if err != nil {
				t.Fatalf("new client: %v", err)
			}

			_, err = c.GetConfig(context.Background(), assistantID)
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected *FetchError, got %v", err)
			}
			if fetchErr.AssistantID != assistantID {
				t.Fatalf("error lost assistant id: %+v", fetchErr)
			}
		})
	}
}

func TestGetConfig_EmptyAssistantID(t *testing.T) {
	c, err := New("http://localhost:8080")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	var fetchErr *FetchError
	if _, err := c.GetConfig(context.Background(), "  "); !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}

func TestUpdateConfig(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"config": {"name": "updated"}}`))
	}))
	defer server.Close()

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	saved, err := c.UpdateConfig(context.Background(), assistantID, configdoc.Document{"name": "updated"})
	if err != nil {
		t.Fatalf("update config: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
	if gotPath != "/assistants/assistant-1/config" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type: %s", gotContentType)
	}
	if saved["name"] != "updated" {
		t.Fatalf("unexpected saved document: %v", saved)
	}
}

func TestUpdateConfig_Failures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conflict", http.StatusConflict)
	}))
	defer server.Close()

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = c.UpdateConfig(context.Background(), assistantID, configdoc.Document{})
	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("expected *SaveError, got %v", err)
	}
	if saveErr.Status != http.StatusConflict {
		t.Fatalf("error lost status: %+v", saveErr)
	}

	if _, err := c.UpdateConfig(context.Background(), assistantID, nil); !errors.As(err, &saveErr) {
		t.Fatalf("expected *SaveError for nil config, got %v", err)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := newEnvelopeServer(t, `{}`)

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var fetchErr *FetchError
	if _, err := c.GetConfig(ctx, assistantID); !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError for cancelled context, got %v", err)
	}
	if !errors.Is(fetchErr, context.Canceled) {
		t.Fatalf("expected wrapped context.Canceled, got %v", fetchErr.Err)
	}
}
