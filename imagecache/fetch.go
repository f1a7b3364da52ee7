package imagecache

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/photowall/constants"
)

// ErrStatus reports a non-200 image response
var ErrStatus = errors.New("imagecache: unexpected status")

// Fetcher retrieves and decodes one image
type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, url string) (image.Image, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// HTTPFetcher downloads images over HTTP
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher creates a fetcher with the standard timeout and size cap
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: constants.ImageFetchTimeout},
		MaxBytes: constants.MaxImageBytes,
	}
}

// Fetch downloads url and decodes it as JPEG, PNG, GIF or WebP
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("imagecache: build request: %w", err)
	}
	req.Header.Set("User-Agent", "photowall/1.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagecache: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d for %s", ErrStatus, resp.StatusCode, url)
	}

	var body io.Reader = resp.Body
	if f.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.MaxBytes)
	}

	img, _, err := image.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("imagecache: decode %s: %w", url, err)
	}
	return img, nil
}
