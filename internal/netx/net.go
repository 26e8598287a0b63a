// Package netx wraps the plain HTTP calls the bot makes outside of any SDK,
// such as fetching a photo from a Telegram file URL.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Download issues a GET for url and returns the response body. The caller
// must close it. Non-200 responses are turned into errors carrying the
// status and the first bytes of the body.
func Download(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	return resp.Body, nil
}
