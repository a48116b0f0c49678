package metadata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// IsRemote reports whether location should be downloaded instead of opened.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch downloads the schema document at url and parses it.
func Fetch(ctx context.Context, logger *slog.Logger, url string) (*Reader, error) {
	body, err := queryGet(ctx, logger, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return Parse(body)
}

func queryGet(ctx context.Context, logger *slog.Logger, url string) (io.ReadCloser, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = nil
	if logger != nil {
		client.Logger = logger
	}

	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build schema request: %w", err)
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch schema %s: %w", url, err)
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("fetch schema %s: unexpected status %s", url, response.Status)
	}

	return response.Body, nil
}
