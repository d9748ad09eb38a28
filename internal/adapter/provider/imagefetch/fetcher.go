// Package imagefetch downloads remote images and converts them to inline
// data URIs so stored pages never reference third-party hosts.
package imagefetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

// maxImageBytes caps a fetched image at 5 MiB.
const maxImageBytes = 5 << 20

// Fetcher downloads images over HTTP.
type Fetcher struct {
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Fetcher. Fetched URLs come straight from clients, so the
// transport refuses connections to non-public addresses; the check runs at
// connect time, after DNS resolution, and covers redirect targets too.
func New(logger *slog.Logger) *Fetcher {
	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: blockNonPublicAddr,
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: &http.Transport{DialContext: dialer.DialContext},
		},
		log: logger.With("adapter", "imagefetch"),
	}
}

// blockNonPublicAddr rejects loopback, private, link-local, and unspecified
// destinations.
func blockNonPublicAddr(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("imagefetch: split address %q: %w", address, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return fmt.Errorf("imagefetch: unresolved address %q", host)
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
		return fmt.Errorf("imagefetch: address %s is not public", ip)
	}
	return nil
}

// FetchDataURI downloads the image at rawURL and returns it as a base64
// data URI. Non-HTTP schemes and non-image responses are rejected.
func (f *Fetcher) FetchDataURI(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("imagefetch: parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("imagefetch: unsupported scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("imagefetch: create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("imagefetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imagefetch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("imagefetch: read body: %w", err)
	}
	if len(body) > maxImageBytes {
		return "", fmt.Errorf("imagefetch: image exceeds %d bytes", maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(body)
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("imagefetch: not an image: %s", contentType)
	}

	f.log.DebugContext(ctx, "image inlined",
		slog.String("content_type", contentType), slog.Int("bytes", len(body)))

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}
