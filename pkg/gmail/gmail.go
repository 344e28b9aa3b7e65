// Package gmail sends the composed report through the Gmail API, handling
// the OAuth2 consent flow and token cache.
package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/RHDSz/GmailAPI/pkg/config"
	"github.com/RHDSz/GmailAPI/pkg/errs"
)

// Message is an outbound email with both bodies of the report.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages through the authenticated user's Gmail account.
type Sender struct {
	auth *Authenticator
	from string
}

// NewSender builds a sender from the configuration.
func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		auth: NewAuthenticator(cfg),
		from: cfg.Sender,
	}
}

// Authorize ensures usable credentials exist, running the consent flow if
// no token has ever been cached.
func (s *Sender) Authorize(ctx context.Context) error {
	_, err := s.auth.Client(ctx)
	return err
}

// Send builds the MIME message and calls users.messages.send. It returns
// the provider's message ID.
func (s *Sender) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", fmt.Errorf("%w: recipient address is required", errs.ErrConfig)
	}
	if msg.From == "" {
		msg.From = s.from
	}

	// Credentials are checked before anything is built or sent, so an auth
	// failure never produces a partial message.
	httpClient, err := s.auth.Client(ctx)
	if err != nil {
		return "", err
	}

	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return "", fmt.Errorf("%w: creating gmail service: %v", errs.ErrUpstream, err)
	}

	raw, err := buildMIME(msg)
	if err != nil {
		return "", fmt.Errorf("%w: building mime message: %v", errs.ErrUpstream, err)
	}

	res, err := svc.Users.Messages.Send("me", &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return "", sendError(err)
	}

	logrus.WithFields(logrus.Fields{"to": msg.To, "id": res.Id}).Info("report sent")
	return res.Id, nil
}

// sendError maps Gmail API failures onto the shared error kinds.
func sendError(err error) error {
	if errors.Is(err, errs.ErrAuth) {
		// Token refresh failures surface through the transport.
		return err
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 401 || gerr.Code == 403 {
			return fmt.Errorf("%w: gmail rejected the credentials: %v", errs.ErrAuth, err)
		}
		return fmt.Errorf("%w: gmail send failed with status %d: %v", errs.ErrUpstream, gerr.Code, err)
	}
	return fmt.Errorf("%w: gmail send failed: %v", errs.ErrUpstream, err)
}
