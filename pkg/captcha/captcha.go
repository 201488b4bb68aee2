package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

// Verifier checks a human-proof token supplied by an unauthenticated caller.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

type httpVerifier struct {
	secret    string
	verifyURL string
	client    *http.Client
	log       *zap.Logger
}

// noopVerifier accepts every token. Used in development when CAPTCHA_DISABLED
// is set.
type noopVerifier struct{}

func (noopVerifier) Verify(ctx context.Context, token string) (bool, error) {
	return true, nil
}

func NewVerifier(config utils.CaptchaConfig, log *zap.Logger) Verifier {
	if config.Disabled {
		return noopVerifier{}
	}

	return &httpVerifier{
		secret:    config.Secret,
		verifyURL: config.VerifyURL,
		client:    &http.Client{Timeout: 5 * time.Second},
		log:       log.With(zap.String("component", "captcha")),
	}
}

func (v *httpVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("verify captcha: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decode captcha response: %w", err)
	}

	if !result.Success {
		v.log.Warn("Captcha verification rejected")
	}

	return result.Success, nil
}
