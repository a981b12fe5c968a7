package form

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 5 * time.Second
)

// StatusError is returned for a non-2xx answer of the validation endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("validation endpoint returned %d: %s", e.Code, e.Body)
}

// ClientOptions tune the HTTP validator. The zero value sends every request
// exactly once.
type ClientOptions struct {
	HTTPClient *http.Client
	// RetryMax enables retries of transport errors and 5xx answers.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// HTTPValidator posts Blueprint text to the validation endpoint.
type HTTPValidator struct {
	endpoint string
	client   *http.Client
}

func NewHTTPValidator(endpoint string, opts ClientOptions) *HTTPValidator {
	return &HTTPValidator{
		endpoint: endpoint,
		client:   wrapHTTPClient(opts),
	}
}

// Validate posts text as the raw request body. No content type is set.
func (v *HTTPValidator) Validate(ctx context.Context, text string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(text))
	if err != nil {
		return "", err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", v.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

func wrapHTTPClient(opts ClientOptions) *http.Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	if opts.RetryMax <= 0 {
		return client
	}
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = client
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = opts.RetryWaitMin
	if retryClient.RetryWaitMin == 0 {
		retryClient.RetryWaitMin = defaultRetryWaitMin
	}
	retryClient.RetryWaitMax = opts.RetryWaitMax
	if retryClient.RetryWaitMax == 0 {
		retryClient.RetryWaitMax = defaultRetryWaitMax
	}
	return retryClient.StandardClient()
}
