package fixture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source retrieves a raw fixture body by its logical path, e.g.
// "channels/index.json". Implementations report missing or unreachable
// resources as *FetchError.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FetchError reports a fixture request that did not return success.
type FetchError struct {
	Path   string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.Path, e.Status)
}

// ParseError reports a fixture body that was not well-formed JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecodeJSON unmarshals a fetched body, wrapping malformed input in a
// *ParseError carrying the fixture path.
func DecodeJSON(path string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// HTTPSource fetches fixtures from a base URL, the way the page itself
// loads them in the browser.
type HTTPSource struct {
	base   string
	client *http.Client
}

// NewHTTPSource builds a source rooted at base ("https://host/app").
func NewHTTPSource(base string) *HTTPSource {
	return &HTTPSource{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch performs the GET and returns *FetchError on any non-2xx status.
func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := s.base + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Path: path, Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// DirSource fetches fixtures from a directory on disk, used when the
// server hosts its own fixture tree.
type DirSource struct {
	dir string
}

// NewDirSource builds a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Fetch reads the fixture file. A missing file maps to *FetchError with a
// 404 status so callers see the same taxonomy as over HTTP.
func (s *DirSource) Fetch(_ context.Context, path string) ([]byte, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(strings.TrimLeft(path, "/")))
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FetchError{Path: path, Status: http.StatusNotFound}
		}
		return nil, err
	}
	return data, nil
}
