package gmail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/RHDSz/GmailAPI/pkg/config"
	"github.com/RHDSz/GmailAPI/pkg/errs"
)

// Authenticator manages the OAuth2 credentials for the Gmail API. The first
// use runs an interactive consent flow and caches the token on disk; later
// uses load the cached token and refresh it transparently. A cached token
// that can no longer be used never re-triggers the interactive flow; the
// user deletes the token file to consent again.
type Authenticator struct {
	CredentialsFile string
	TokenFile       string
}

// NewAuthenticator builds an authenticator from the configuration.
func NewAuthenticator(cfg *config.Config) *Authenticator {
	return &Authenticator{
		CredentialsFile: cfg.CredentialsFile,
		TokenFile:       cfg.TokenFile,
	}
}

// Client returns an HTTP client that authenticates requests against the
// Gmail API, running the consent flow if no token has ever been cached.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	conf, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	tok, err := a.loadToken()
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First use.
		tok, err = a.authorize(ctx, conf)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if !tok.Valid() && tok.RefreshToken == "" {
		return nil, fmt.Errorf("%w: cached token expired and has no refresh token; delete %s and run the auth command again",
			errs.ErrAuth, a.TokenFile)
	}

	src := &savingSource{src: conf.TokenSource(ctx, tok), auth: a, lastAccess: tok.AccessToken}
	return oauth2.NewClient(ctx, src), nil
}

func (a *Authenticator) oauthConfig() (*oauth2.Config, error) {
	b, err := os.ReadFile(a.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v (download the OAuth client file from the Google Cloud console)",
			errs.ErrConfig, a.CredentialsFile, err)
	}
	conf, err := google.ConfigFromJSON(b, gmailapi.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", errs.ErrConfig, a.CredentialsFile, err)
	}
	return conf, nil
}

// authorize runs the interactive consent flow: it opens the provider's
// consent page in a browser and catches the redirect on a loopback server.
func (a *Authenticator) authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("%w: starting callback listener: %v", errs.ErrAuth, err)
	}
	defer listener.Close()

	state, err := randomState()
	if err != nil {
		return nil, fmt.Errorf("%w: generating state: %v", errs.ErrAuth, err)
	}

	conf.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr().String())

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	router := mux.NewRouter()
	router.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "estado inválido", http.StatusBadRequest)
			errCh <- fmt.Errorf("%w: oauth state mismatch", errs.ErrAuth)
			return
		}
		if reason := q.Get("error"); reason != "" {
			http.Error(w, "autorización rechazada", http.StatusForbidden)
			errCh <- fmt.Errorf("%w: consent denied: %s", errs.ErrAuth, reason)
			return
		}
		fmt.Fprint(w, "Autorización completada. Puedes cerrar esta ventana.")
		codeCh <- q.Get("code")
	}).Methods(http.MethodGet)

	srv := &http.Server{Handler: router}
	go srv.Serve(listener)
	defer srv.Close()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Printf("Abre esta URL en tu navegador para autorizar el acceso:\n%s\n", authURL)
	if err := openBrowser(authURL); err != nil {
		logrus.Debugf("could not open browser automatically: %v", err)
	}

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: authorization interrupted: %v", errs.ErrAuth, ctx.Err())
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: exchanging authorization code: %v", errs.ErrAuth, err)
	}

	if err := a.saveToken(tok); err != nil {
		return nil, err
	}
	logrus.WithField("file", a.TokenFile).Info("oauth token cached")
	return tok, nil
}

func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	b, err := os.ReadFile(a.TokenFile)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", errs.ErrAuth, a.TokenFile, err)
	}
	return &tok, nil
}

func (a *Authenticator) saveToken(tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("%w: encoding token: %v", errs.ErrAuth, err)
	}
	if err := os.WriteFile(a.TokenFile, b, 0600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", errs.ErrAuth, a.TokenFile, err)
	}
	return nil
}

// savingSource persists refreshed tokens so the next run skips the refresh.
type savingSource struct {
	src        oauth2.TokenSource
	auth       *Authenticator
	lastAccess string
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refreshing token: %v", errs.ErrAuth, err)
	}
	if tok.AccessToken != s.lastAccess {
		if err := s.auth.saveToken(tok); err != nil {
			logrus.Warnf("could not persist refreshed token: %v", err)
		}
		s.lastAccess = tok.AccessToken
	}
	return tok, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
