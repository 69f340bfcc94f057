package wiki

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strings"

	"github.com/osrstools/geflip/date"
)

// diskCache implements a simple disk cache for HTTP responses.
//
// Only the static item mapping is cached: that endpoint weighs several
// megabytes and changes at most on game updates, while the price endpoints
// must stay live. The key embeds today's date, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
}

func newDiskCache() *diskCache {
	return &diskCache{base: http.DefaultTransport}
}

func (c *diskCache) cacheable(req *http.Request) bool {
	return req.Method == http.MethodGet && strings.HasSuffix(req.URL.Path, "/mapping")
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	if !c.cacheable(req) {
		return c.base.RoundTrip(req)
	}

	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("geflip-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	// A broken cache must never break the request.
	_ = c.put(key, resp)
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	file := filepath.Join(os.TempDir(), key)
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}
