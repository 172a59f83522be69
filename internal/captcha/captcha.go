package captcha

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"sitecms/internal/config"
)

// Package captcha verifies proof-of-humanity tokens against a
// Turnstile/reCAPTCHA-compatible siteverify endpoint.

var (
	// ErrNotConfigured means no verifier secret is set.
	ErrNotConfigured = errors.New("captcha: verifier secret not configured")
	// ErrRejected means the verifier answered and said no.
	ErrRejected = errors.New("captcha: token rejected")
	// ErrUnavailable means the verifier could not be reached or answered garbage.
	ErrUnavailable = errors.New("captcha: verifier unavailable")
)

// Verifier checks a client-supplied token.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

type siteVerifier struct {
	client *resty.Client
	url    string
	secret string
}

// New builds a siteverify client. A missing secret is not an error here;
// every Verify call reports ErrNotConfigured instead so the failure surfaces
// per request.
func New(cfg config.CaptchaConfig) Verifier {
	client := resty.New().
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetTimeout(cfg.Timeout)
	return &siteVerifier{client: client, url: cfg.VerifyURL, secret: strings.TrimSpace(cfg.Secret)}
}

func (v *siteVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if v.secret == "" {
		return ErrNotConfigured
	}

	form := map[string]string{
		"secret":   v.secret,
		"response": token,
	}
	if remoteIP != "" {
		form["remoteip"] = remoteIP
	}

	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&verifyResponse{}).
		Post(v.url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	out, ok := resp.Result().(*verifyResponse)
	if !ok || out == nil {
		return fmt.Errorf("%w: unexpected response body", ErrUnavailable)
	}
	if !out.Success {
		return fmt.Errorf("%w: %s", ErrRejected, strings.Join(out.ErrorCodes, ","))
	}
	return nil
}

