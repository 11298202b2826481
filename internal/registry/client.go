package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/sdboyer/constext"

	"github.com/elmtooling/elm-json-go/internal/manifest"
)

const defaultRegistryOrigin = "https://package.elm-lang.org"

// client is a minimal HTTPS client for the package registry: two GET
// endpoints, no auth, no retries.
type client struct {
	origin string
	httpc  *http.Client
	ctx    context.Context
}

func newClient(ctx context.Context, origin string) *client {
	if origin == "" {
		origin = defaultRegistryOrigin
	}
	return &client{
		origin: origin,
		httpc:  pooledClient(),
		ctx:    ctx,
	}
}

func pooledClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
			Proxy:                 http.ProxyFromEnvironment,
		},
	}
}

// get combines the client's process-lifetime context with a
// per-request timeout context before issuing the GET, so a caller's
// cancellation and this request's own deadline both tear the call
// down.
func (c *client) get(urlStr string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cctx, cancelCons := constext.Cons(c.ctx, reqCtx)
	defer cancelCons()

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(cctx)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", urlStr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected HTTP status for GET %s: %s", urlStr, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response body from %s", urlStr)
	}
	return body, nil
}

// allPackagesSince fetches every "author/project@M.N.P" entry
// published since the caller's current total version count.
func (c *client) allPackagesSince(since int) ([]string, error) {
	url := fmt.Sprintf("%s/all-packages/since/%d", c.origin, since)
	body, err := c.get(url)
	if err != nil {
		return nil, errors.Wrap(err, "fetching package list")
	}

	var entries []string
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, errors.Wrap(err, "parsing package list")
	}
	return entries, nil
}

// fetchManifest fetches and parses a single package's elm.json at
// name@version, returning both the parsed manifest and its raw bytes
// (for side-cache persistence).
func (c *client) fetchManifest(name, version string) (*manifest.Package, []byte, error) {
	url := fmt.Sprintf("%s/packages/%s/%s/elm.json", c.origin, name, version)
	body, err := c.get(url)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "fetching manifest for %s@%s", name, version)
	}

	m, err := manifest.Read(bytes.NewReader(body))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing manifest for %s@%s", name, version)
	}
	pkg, ok := m.(*manifest.Package)
	if !ok {
		return nil, nil, errors.Errorf("manifest for %s@%s is not a package manifest", name, version)
	}
	return pkg, body, nil
}
