package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyBlueprint is returned when a fetched Blueprint has no content.
var ErrEmptyBlueprint = errors.New("leeg Blueprint document (geen inhoud)")

const fetchTimeout = 30 * time.Second

// IsRemote reports whether source is an http(s) URL rather than a file path.
func IsRemote(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FetchURL haalt de inhoud op van een URL met een korte timeout.
// maxBytes <= 0 leest zonder limiet.
func FetchURL(ctx context.Context, rawURL string, maxBytes int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d bij ophalen van URL", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if maxBytes > 0 {
		body = io.LimitReader(resp.Body, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("document groter dan %d bytes", maxBytes)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptyBlueprint
	}
	return data, nil
}
