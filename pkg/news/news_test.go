package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/RHDSz/GmailAPI/pkg/config"
	"github.com/RHDSz/GmailAPI/pkg/errs"
)

const frontPageFixture = `<html><body>
<nav><a href="/noticias/">Noticias</a></nav>
<a href="/noticias/nacional/2025/08/22/incendio.html">Incendio forestal obliga a evacuar dos sectores de la región de Valparaíso</a>
<a href="/noticias/economia/2025/08/22/dolar.html">[Video] Dólar cae bajo los 900 pesos tras anuncio del Banco Central</a>
<a href="/noticias/economia/2025/08/22/dolar.html">Dólar cae bajo los 900 pesos tras anuncio del Banco Central</a>
<a href="/deportes/partido.html">Resultado del partido de anoche en el Estadio Nacional</a>
<a href="/noticias/ciencia/2025/08/22/telescopio.html">Nuevo telescopio en el norte capta su primera imagen del cielo austral</a>
</body></html>`

func testSource(code, home string) Source {
	return Source{
		Code:        code,
		Name:        "Test " + code,
		HomeURL:     home,
		LinkPattern: regexp.MustCompile(`/noticias/`),
	}
}

func TestFetchExtractsHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(frontPageFixture))
	}))
	defer srv.Close()

	c := &Client{
		Sources:      []Source{testSource("emol", srv.URL)},
		MaxPerSource: 5,
		MaxTotal:     10,
		HTTPClient:   http.DefaultClient,
	}

	items, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The nav link is too short, the sports link does not match the
	// pattern, and the tagged duplicate collapses into one headline.
	if len(items) != 3 {
		t.Fatalf("expected 3 headlines, got %d: %+v", len(items), items)
	}

	first := items[0]
	if !strings.HasPrefix(first.Title, "Incendio forestal") {
		t.Errorf("unexpected first title: %q", first.Title)
	}
	if first.Source != "emol" || first.SourceName != "Test emol" {
		t.Errorf("source fields not populated: %+v", first)
	}
	if !strings.HasPrefix(first.URL, srv.URL) {
		t.Errorf("expected absolute URL under %s, got %q", srv.URL, first.URL)
	}

	if strings.HasPrefix(items[1].Title, "[Video]") {
		t.Errorf("placement tag not stripped: %q", items[1].Title)
	}
}

func TestFetchCapsPerSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(frontPageFixture))
	}))
	defer srv.Close()

	c := &Client{
		Sources:      []Source{testSource("emol", srv.URL)},
		MaxPerSource: 1,
		MaxTotal:     10,
		HTTPClient:   http.DefaultClient,
	}

	items, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected per-source cap of 1, got %d", len(items))
	}
}

func TestFetchCapsTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(frontPageFixture))
	}))
	defer srv.Close()

	c := &Client{
		Sources: []Source{
			testSource("emol", srv.URL),
			testSource("biobio", srv.URL),
		},
		MaxPerSource: 5,
		MaxTotal:     4,
		HTTPClient:   http.DefaultClient,
	}

	items, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected total cap of 4, got %d", len(items))
	}
}

func TestFetchSkipsUnreachableSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(frontPageFixture))
	}))
	defer srv.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	c := &Client{
		Sources: []Source{
			testSource("la_tercera", dead.URL),
			testSource("emol", srv.URL),
		},
		MaxPerSource: 5,
		MaxTotal:     10,
		HTTPClient:   http.DefaultClient,
	}

	items, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected the live source to carry the run, got error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected headlines from the reachable source")
	}
	for _, item := range items {
		if item.Source != "emol" {
			t.Errorf("unexpected item from dead source: %+v", item)
		}
	}
}

func TestFetchAllSourcesDown(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	c := &Client{
		Sources:      []Source{testSource("emol", dead.URL)},
		MaxPerSource: 5,
		MaxTotal:     10,
		HTTPClient:   http.DefaultClient,
	}

	_, err := c.Fetch(context.Background())
	if !errors.Is(err, errs.ErrUpstream) {
		t.Fatalf("expected ErrUpstream when every source failed, got %v", err)
	}
}

func TestFetchNoSources(t *testing.T) {
	c := &Client{HTTPClient: http.DefaultClient}

	_, err := c.Fetch(context.Background())
	if !errors.Is(err, errs.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestFetchCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(frontPageFixture))
	}))
	defer srv.Close()

	c := &Client{
		Sources:      []Source{testSource("emol", srv.URL)},
		MaxPerSource: 5,
		MaxTotal:     10,
		HTTPClient:   http.DefaultClient,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Every request aborts, so the fetch reports all sources as failed.
	_, err := c.Fetch(ctx)
	if !errors.Is(err, errs.ErrUpstream) {
		t.Fatalf("expected ErrUpstream for a canceled context, got %v", err)
	}
}

func TestFetchUncappedTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(frontPageFixture))
	}))
	defer srv.Close()

	c := &Client{
		Sources:      []Source{testSource("emol", srv.URL)},
		MaxPerSource: 5,
		MaxTotal:     0, // unlimited, must not truncate to nothing
		HTTPClient:   http.DefaultClient,
	}

	items, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected all 3 headlines with no total cap, got %d", len(items))
	}
}

func TestNewClientKeepsRegistryOrder(t *testing.T) {
	cfg := config.Default()
	cfg.NewsSources = []string{"cooperativa", "biobio", "emol"}

	c := NewClient(cfg)

	got := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		got = append(got, s.Code)
	}
	want := []string{"emol", "biobio", "cooperativa"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sources, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected registry order %v, got %v", want, got)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"[Video] Dólar cae bajo los 900 pesos", "Dólar cae bajo los 900 pesos"},
		{"(En vivo)  Sigue aquí el debate", "Sigue aquí el debate"},
		{"  Título   con   espacios  ", "Título con espacios"},
	}
	for _, c := range cases {
		if got := cleanTitle(c.in); got != c.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
