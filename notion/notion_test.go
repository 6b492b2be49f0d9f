package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	tourconnect "github.com/himaSH97/tc-servey"
	"github.com/jomei/notionapi"
)

type roundTripFunc func(r *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func reply(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestRecordStore_CreateRecord(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody map[string]any
	)
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		return reply(http.StatusOK, `{"object":"page","id":"5c6a2821-6bb1-4a7e-b6e1-c50111515c3d"}`), nil
	})

	store := NewRecordStore(Config{Token: "secret"}, notionapi.WithHTTPClient(&http.Client{Transport: transport}))

	props := []tourconnect.Property{
		{Name: "Name", Type: tourconnect.PropertyTitle, Text: []string{"Kasun"}},
		{Name: "Email", Type: tourconnect.PropertyEmail, Text: []string{"a@b.com"}},
		{Name: "Likelihood Score", Type: tourconnect.PropertyRichText, Text: []string{"4"}},
		{Name: "Additional Comments", Type: tourconnect.PropertyRichText},
	}

	id, err := store.CreateRecord(context.Background(), "db-123", props)
	if err != nil {
		t.Fatalf("create record: %v", err)
	}
	if id != "5c6a2821-6bb1-4a7e-b6e1-c50111515c3d" {
		t.Fatalf("unexpected record id %q", id)
	}
	if !strings.HasSuffix(gotPath, "/pages") {
		t.Errorf("expected a pages call, got %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}

	parent := gotBody["parent"].(map[string]any)
	if parent["database_id"] != "db-123" {
		t.Errorf("expected parent database db-123, got %v", parent)
	}

	properties := gotBody["properties"].(map[string]any)

	email := properties["Email"].(map[string]any)
	if email["email"] != "a@b.com" {
		t.Errorf("expected email property, got %v", email)
	}

	title := properties["Name"].(map[string]any)["title"].([]any)
	content := title[0].(map[string]any)["text"].(map[string]any)["content"]
	if content != "Kasun" {
		t.Errorf("expected title Kasun, got %v", content)
	}

	comments, _ := properties["Additional Comments"].(map[string]any)["rich_text"].([]any)
	if len(comments) != 0 {
		t.Errorf("expected empty comments, got %v", comments)
	}
}

func TestRecordStore_CreateRecordWithoutEmail(t *testing.T) {
	var gotBody map[string]any
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		return reply(http.StatusOK, `{"object":"page","id":"5c6a2821-6bb1-4a7e-b6e1-c50111515c3d"}`), nil
	})
	store := NewRecordStore(Config{Token: "secret"}, notionapi.WithHTTPClient(&http.Client{Transport: transport}))

	props := []tourconnect.Property{
		{Name: "Name", Type: tourconnect.PropertyTitle, Text: []string{"Unknown"}},
		{Name: "Email", Type: tourconnect.PropertyEmail, Text: []string{""}},
	}
	if _, err := store.CreateRecord(context.Background(), "db-123", props); err != nil {
		t.Fatalf("create record: %v", err)
	}

	properties := gotBody["properties"].(map[string]any)
	if email, ok := properties["Email"]; ok {
		t.Fatalf("expected no email property, got %v", email)
	}
	if _, ok := properties["Name"]; !ok {
		t.Fatal("expected the title to be sent")
	}
}

func TestRecordStore_CreateRecordError(t *testing.T) {
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return reply(http.StatusBadRequest, `{"object":"error","status":400,"code":"validation_error","message":"Email is not a property that exists."}`), nil
	})
	store := NewRecordStore(Config{Token: "secret"}, notionapi.WithHTTPClient(&http.Client{Transport: transport}))

	props := []tourconnect.Property{{Name: "Email", Type: tourconnect.PropertyEmail, Text: []string{"a@b.com"}}}
	if _, err := store.CreateRecord(context.Background(), "db-123", props); err == nil {
		t.Fatal("expected an error")
	}
}

func TestToPropertiesUnknownType(t *testing.T) {
	_, err := toProperties([]tourconnect.Property{{Name: "Phone", Type: "phone_number"}})
	if err == nil {
		t.Fatal("expected unsupported type to fail")
	}
}
