package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v75/github"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

const defaultGistFilename = "vinted_seen_items.json"

// GistStore keeps the seen-set as one file inside a GitHub Gist.
type GistStore struct {
	gistID   string
	filename string
	apiURL   string
	client   *http.Client
	gh       *github.Client
}

// GistOption configures a GistStore.
type GistOption func(*GistStore)

// WithGistAPIURL overrides the GitHub API base URL.
func WithGistAPIURL(u string) GistOption {
	return func(g *GistStore) {
		if u != "" {
			g.apiURL = strings.TrimRight(u, "/") + "/"
		}
	}
}

// WithGistFilename overrides the file inside the gist that holds the set.
func WithGistFilename(name string) GistOption {
	return func(g *GistStore) {
		if name != "" {
			g.filename = name
		}
	}
}

// WithGistHTTPClient sets a custom HTTP client.
func WithGistHTTPClient(c *http.Client) GistOption {
	return func(g *GistStore) {
		g.client = c
	}
}

// NewGistStore creates a store backed by the gist identified by gistID.
func NewGistStore(token, gistID string, opts ...GistOption) *GistStore {
	g := &GistStore{
		gistID:   gistID,
		filename: defaultGistFilename,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.gh = github.NewClient(g.client).WithAuthToken(token)
	if g.apiURL != "" {
		if base, err := url.Parse(g.apiURL); err == nil {
			g.gh.BaseURL = base
		}
	}
	return g
}

// Name implements SeenStore.
func (g *GistStore) Name() string { return "gist" }

// Close implements SeenStore.
func (g *GistStore) Close() error { return nil }

// Load fetches the gist and parses the named file. A gist without the file
// is an empty set.
func (g *GistStore) Load(ctx context.Context) (domain.SeenSet, error) {
	gist, resp, err := g.gh.Gists.Get(ctx, g.gistID)
	if err != nil {
		return nil, g.wrap("fetching", resp, err)
	}

	file, ok := gist.GetFiles()[github.GistFilename(g.filename)]
	if !ok {
		return domain.NewSeenSet(), nil
	}

	content := []byte(file.GetContent())
	// The API inlines at most 1 MB of each file; the rest is behind raw_url.
	if file.GetRawURL() != "" && file.GetSize() > len(content) {
		content, err = g.fetchRaw(ctx, file.GetRawURL())
		if err != nil {
			return nil, err
		}
	}

	return decodeIDs(content)
}

// Save overwrites the named file with the full set.
func (g *GistStore) Save(ctx context.Context, ids domain.SeenSet) error {
	content, err := encodeIDs(ids)
	if err != nil {
		return err
	}

	edit := &github.Gist{
		Files: map[github.GistFilename]github.GistFile{
			github.GistFilename(g.filename): {Content: github.Ptr(string(content))},
		},
	}
	if _, resp, err := g.gh.Gists.Edit(ctx, g.gistID, edit); err != nil {
		return g.wrap("updating", resp, err)
	}
	return nil
}

func (g *GistStore) fetchRaw(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := g.gh.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating raw gist request: %w", err)
	}

	var buf bytes.Buffer
	if _, err := g.gh.Do(ctx, req, &buf); err != nil {
		return nil, fmt.Errorf("fetching raw gist content: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *GistStore) wrap(action string, resp *github.Response, err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && resp != nil && resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("gist %s: %w", g.gistID, ErrDocumentNotFound)
	}
	return fmt.Errorf("%s gist %s: %w", action, g.gistID, err)
}
