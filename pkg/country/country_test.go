package country

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/RHDSz/GmailAPI/pkg/errs"
)

const chileFixture = `[{
	"name": {"common": "Chile", "official": "República de Chile"},
	"capital": ["Santiago"],
	"region": "Americas",
	"subregion": "South America",
	"population": 19458310,
	"languages": {"spa": "Spanish"},
	"currencies": {"CLP": {"name": "Chilean peso", "symbol": "$"}},
	"flags": {"png": "https://flagcdn.com/w320/cl.png"}
}]`

func testClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: http.DefaultClient}
}

func TestInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alpha/CL" {
			t.Errorf("expected path /alpha/CL, got %s", r.URL.Path)
		}
		w.Write([]byte(chileFixture))
	}))
	defer srv.Close()

	// Lowercase input must be normalized before hitting the API.
	info, err := testClient(srv.URL).Info(context.Background(), "cl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Name != "Chile" {
		t.Errorf("expected name 'Chile', got %q", info.Name)
	}
	if info.Capital != "Santiago" {
		t.Errorf("expected capital 'Santiago', got %q", info.Capital)
	}
	if info.OfficialName != "República de Chile" {
		t.Errorf("unexpected official name %q", info.OfficialName)
	}
	if info.Population != 19458310 {
		t.Errorf("expected population 19458310, got %d", info.Population)
	}
	if !reflect.DeepEqual(info.Languages, []string{"Spanish"}) {
		t.Errorf("unexpected languages: %v", info.Languages)
	}
	if !reflect.DeepEqual(info.Currencies, []string{"Chilean peso ($)"}) {
		t.Errorf("unexpected currencies: %v", info.Currencies)
	}
	if info.FlagURL == "" {
		t.Error("expected a flag URL")
	}
}

func TestInfoUnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":404,"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Info(context.Background(), "ZZ")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInfoEmptyCode(t *testing.T) {
	_, err := testClient("http://unused").Info(context.Background(), "")
	if !errors.Is(err, errs.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestInfoNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testClient(srv.URL).Info(context.Background(), "CL")
	if !errors.Is(err, errs.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestInfoCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chileFixture))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Info(ctx, "CL")
	if !errors.Is(err, errs.ErrNetwork) {
		t.Fatalf("expected ErrNetwork for a canceled context, got %v", err)
	}
}

func TestInfoEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Info(context.Background(), "CL")
	if !errors.Is(err, errs.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
