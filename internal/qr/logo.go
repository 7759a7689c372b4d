package qr

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
)

// maxLogoBytes caps how much logo data raster export will read, from a
// data URI or over the network.
const maxLogoBytes = 5 << 20

// LogoFetcher resolves an ImageSettings source into a decoded image for
// raster export. Vector output embeds the source verbatim and never needs
// this.
type LogoFetcher interface {
	Fetch(ctx context.Context, src string) (image.Image, error)
}

type logoFetcher struct {
	client *retryablehttp.Client
}

// newLogoFetcher builds the default fetcher: data URIs decode inline,
// http(s) sources are fetched with bounded retries.
func newLogoFetcher() LogoFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil
	return &logoFetcher{client: client}
}

func (f *logoFetcher) Fetch(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "data:") {
		return decodeDataURI(src)
	}
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return nil, fmt.Errorf("unsupported logo source scheme")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("logo fetch returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return img, nil
}

// decodeDataURI decodes a data:image/...;base64,... payload.
func decodeDataURI(src string) (image.Image, error) {
	idx := strings.Index(src, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	meta, payload := src[:idx], src[idx+1:]
	if !strings.Contains(meta, ";base64") {
		return nil, fmt.Errorf("data URI must be base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	if len(raw) > maxLogoBytes {
		return nil, fmt.Errorf("logo data exceeds %d bytes", maxLogoBytes)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return img, nil
}
