// Package sms sends the ultra-rare escalation texts through the Twilio
// Messages REST API.
package sms

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scout/config"
	"scout/internal/domain/service"
	"scout/internal/errors"

	"go.uber.org/fx"
)

const (
	apiBaseURL     = "https://api.twilio.com/2010-04-01"
	requestTimeout = 10 * time.Second
)

type twilioSender struct {
	cfg    *config.SMSConfig
	client *http.Client
}

// NewTwilioSender creates an SMSSender for the configured Twilio account.
func NewTwilioSender(cfg *config.SMSConfig) service.SMSSender {
	return &twilioSender{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// Send posts one message to the Twilio Messages endpoint.
func (s *twilioSender) Send(ctx context.Context, body, toNumber string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return errors.New("sms sending is disabled")
	}

	form := url.Values{}
	form.Set("From", s.cfg.FromNumber)
	form.Set("To", toNumber)
	form.Set("Body", body)

	endpoint := apiBaseURL + "/Accounts/" + url.PathEscape(s.cfg.AccountSID) + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "build sms request")
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send sms request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return errors.Errorf("twilio responded %d: %s", resp.StatusCode, string(payload))
	}

	return nil
}

// Params holds dependencies for the SMS sender.
type Params struct {
	fx.In

	Config *config.Config
}

// New provides the Twilio sender for the configured account.
func New(params Params) service.SMSSender {
	return NewTwilioSender(params.Config.SMS)
}
