package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-configform/pkg/client"
	"github.com/goliatone/go-configform/pkg/configdoc"
	"github.com/goliatone/go-configform/pkg/editor"
)

const assistantID = "assistant-1"

const schemaRaw = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "default": "assistant"},
		"maxTurns": {"type": "integer", "default": 15}
	}
}`

func newTestService(t *testing.T, options ...Option) (*Service, *httptest.Server) {
	t.Helper()
	svc, err := New([]byte(schemaRaw), options...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	server := httptest.NewServer(svc.Handler())
	t.Cleanup(server.Close)
	return svc, server
}

func TestNew_RequiresSchema(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for missing schema")
	}
	if _, err := New([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid schema")
	}
}

func TestService_UnknownAssistant(t *testing.T) {
	_, server := newTestService(t)

	resp, err := http.Get(server.URL + "/assistants/unknown/config")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestService_EndToEndEditSession(t *testing.T) {
	svc, server := newTestService(t,
		WithConfig(assistantID, configdoc.Document{"name": "assistant", "maxTurns": float64(5)}),
		WithUISchema(map[string]any{
			"fields": map[string]any{"name": map[string]any{"widget": "input"}},
		}),
	)

	c, err := client.New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	session, err := editor.New(c, assistantID)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}

	ctx := context.Background()
	if err := session.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if session.Dirty() {
		t.Fatal("fresh session must be clean")
	}
	if field, ok := session.Hints().Field("name"); !ok || field.Widget != "input" {
		t.Fatalf("ui schema not delivered: %+v (ok=%v)", field, ok)
	}

	if err := session.SetValue([]string{"maxTurns"}, float64(9)); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if err := session.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if session.Dirty() {
		t.Fatal("session must be clean after save")
	}

	stored, ok := svc.Config(assistantID)
	if !ok {
		t.Fatal("service lost the stored config")
	}
	if turns, _ := stored.ValueAt("maxTurns"); turns != float64(9) {
		t.Fatalf("service did not persist the edit: %v", turns)
	}
	if name, _ := stored.ValueAt("name"); name != "assistant" {
		t.Fatalf("untouched field lost: %v", name)
	}
}

func TestService_SaveFailureLeavesEditorDirty(t *testing.T) {
	svc, server := newTestService(t,
		WithConfig(assistantID, configdoc.Document{"name": "assistant"}),
	)

	c, err := client.New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	session, err := editor.New(c, assistantID)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}

	ctx := context.Background()
	if err := session.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := session.SetValue([]string{"name"}, "renamed"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	svc.FailSaves(errors.New("storage offline"))
	err = session.Save(ctx)
	var saveErr *client.SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("expected *client.SaveError, got %v", err)
	}
	if !session.Dirty() {
		t.Fatal("editor must stay dirty after failed save")
	}

	svc.FailSaves(nil)
	if err := session.Save(ctx); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	stored, _ := svc.Config(assistantID)
	if name, _ := stored.ValueAt("name"); name != "renamed" {
		t.Fatalf("retry did not persist: %v", name)
	}
}

func TestService_RejectsMalformedUpdate(t *testing.T) {
	_, server := newTestService(t, WithConfig(assistantID, configdoc.Document{}))

	req, err := http.NewRequest(http.MethodPut, server.URL+"/assistants/"+assistantID+"/config", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
