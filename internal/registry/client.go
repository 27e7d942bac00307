package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opmodel/bulk-npm-publish/internal/output"
)

// Existence probe input errors.
var (
	ErrMissingCoordinates = errors.New("name and/or version is required")
	ErrLatestVersion      = errors.New("checking whether a package is published doesn't support 'latest' as the version")
)

// ErrPingFailed is returned by Ping when the registry is not reachable or
// answered with a non-success status.
var ErrPingFailed = errors.New("registry ping failed")

// DefaultTimeout bounds every registry request.
const DefaultTimeout = 30 * time.Second

// Coordinates identifies one package version in a registry.
type Coordinates struct {
	// Scope is optional; a leading "@" is accepted.
	Scope    string
	Name     string
	Version  string
	Registry string
}

// Client talks to npm compatible registries.
type Client struct {
	http       *http.Client
	configured func() string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithConfiguredRegistry overrides how the fallback registry is looked up.
func WithConfiguredRegistry(fn func() string) ClientOption {
	return func(cl *Client) {
		cl.configured = fn
	}
}

// NewClient creates a registry client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:       &http.Client{Timeout: DefaultTimeout},
		configured: Configured,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConfiguredRegistry returns the registry used when none is given.
func (c *Client) ConfiguredRegistry() string {
	return c.configured()
}

// Ping checks that the registry answers the npm ping endpoint with a JSON body.
func (c *Client) Ping(ctx context.Context, registry string) error {
	if registry == "" {
		registry = c.configured()
	}

	endpoint := joinRegistry(registry, "-/ping?write=true")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPingFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPingFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrPingFailed, resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrPingFailed, err)
	}

	return nil
}

// IsPublished reports whether the package version exists in the registry by
// issuing a HEAD request for its tarball. Transport failures and non-2xx
// responses are reported as not published. An error is returned only for
// invalid coordinates.
func (c *Client) IsPublished(ctx context.Context, coords Coordinates) (bool, error) {
	if coords.Name == "" || coords.Version == "" {
		return false, ErrMissingCoordinates
	}
	if coords.Version == "latest" {
		return false, ErrLatestVersion
	}

	registry := coords.Registry
	if registry == "" {
		registry = c.configured()
	}

	endpoint := joinRegistry(registry, TarballPath(coords.Scope, coords.Name, coords.Version))
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, endpoint, nil)
	if err != nil {
		output.Debug("cannot build existence request", "url", endpoint, "error", err)
		return false, nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		output.Debug("existence request failed", "url", endpoint, "error", err)
		return false, nil
	}
	resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode <= 299, nil
}

// TarballPath returns the registry path of a package tarball.
// The HEAD on the tarball is used instead of GET <name>/<version> because the
// latter is not supported by every registry.
//
//	TarballPath("", "is", "3.3.0")        == "is/-/is-3.3.0.tgz"
//	TarballPath("jest", "core", "26.6.3") == "@jest/core/-/core-26.6.3.tgz"
func TarballPath(scope, name, version string) string {
	var b strings.Builder
	if scope != "" {
		b.WriteString("@")
		b.WriteString(strings.TrimPrefix(scope, "@"))
		b.WriteString("/")
	}
	b.WriteString(name)
	b.WriteString("/-/")
	b.WriteString(name)
	b.WriteString("-")
	b.WriteString(version)
	b.WriteString(".tgz")
	return b.String()
}

// IsWebURL reports whether s is a well-formed http or https URL with a host.
func IsWebURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

func joinRegistry(registry, path string) string {
	return strings.TrimRight(registry, "/") + "/" + path
}
