package frames

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Loader fetches the raw bytes behind an image URL.
type Loader func(ctx context.Context, url string) ([]byte, error)

// DefaultLoader resolves http(s) URLs over the network and treats
// everything else as a filesystem path.
func DefaultLoader(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", url, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(url)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}
