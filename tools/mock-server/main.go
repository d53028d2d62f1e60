// Package main implements a mock Vinted catalog server for local development.
// It serves canned listings from a JSON fixture behind the same session
// cookie handshake the real site uses, so a scan can run end to end without
// network access.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const sessionCookie = "access_token_web"

type catalogFixture struct {
	Items []json.RawMessage `json:"items"`
}

type catalogResponse struct {
	Items      []json.RawMessage `json:"items"`
	Pagination pagination        `json:"pagination"`
}

type pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalEntries int `json:"total_entries"`
	PerPage      int `json:"per_page"`
}

type itemSummary struct {
	ID    json.Number `json:"id"`
	Title string      `json:"title"`
}

type indexedItem struct {
	raw   json.RawMessage
	id    string
	title string
}

type options struct {
	requireSession bool
	botWall        bool
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/catalog_items.json", "path to catalog fixture")
	requireSession := flag.Bool("require-session", true, "reject API calls without the homepage session cookie")
	botWall := flag.Bool("botwall", false, "answer every API call with a 403 challenge page")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(fixture.Items))

	mux := newMux(logger, fixture, options{requireSession: *requireSession, botWall: *botWall})

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Vinted server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, fixture *catalogFixture, opts options) *http.ServeMux {
	items := indexItems(fixture)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", homepageHandler(logger))
	mux.Handle("GET /api/v2/catalog/items", guard(opts, searchHandler(logger, items)))
	mux.Handle("GET /api/v2/items/{id}", guard(opts, itemHandler(logger, items)))
	return mux
}

func loadFixture(path string) (*catalogFixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f catalogFixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

func indexItems(fixture *catalogFixture) []indexedItem {
	items := make([]indexedItem, 0, len(fixture.Items))
	for _, raw := range fixture.Items {
		var s itemSummary
		//nolint:errcheck,gosec // fixture data is trusted; extraction is best-effort
		json.Unmarshal(raw, &s)
		items = append(items, indexedItem{raw: raw, id: s.ID.String(), title: strings.ToLower(s.Title)})
	}
	return items
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func homepageHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:  sessionCookie,
			Value: "mock-session-" + strconv.FormatInt(int64(os.Getpid()), 16),
			Path:  "/",
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		w.Write([]byte("<!DOCTYPE html><html><head><title>Vinted | Mock</title></head><body></body></html>"))
		logger.Info("issued session cookie")
	}
}

// guard rejects API calls the way the real site does when the session
// handshake was skipped or a challenge page is active.
func guard(opts options, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if opts.botWall {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			w.Write([]byte("<html><head><title>Just a moment...</title></head><body>challenge</body></html>"))
			return
		}
		if opts.requireSession {
			if _, err := r.Cookie(sessionCookie); err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]any{
					"code":    100,
					"message": "Please sign in",
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func searchHandler(logger *slog.Logger, items []indexedItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search_text")))
		perPage := intParam(r, "per_page", 96)
		page := intParam(r, "page", 1)

		// Every word of the search text must appear in the title.
		words := strings.Fields(q)
		var matched []json.RawMessage
		for _, item := range items {
			if containsAll(item.title, words) {
				matched = append(matched, item.raw)
			}
		}

		total := len(matched)
		offset := (page - 1) * perPage
		if offset >= len(matched) {
			matched = nil
		} else {
			end := min(offset+perPage, len(matched))
			matched = matched[offset:end]
		}

		resp := catalogResponse{
			Items: matched,
			Pagination: pagination{
				CurrentPage:  page,
				TotalPages:   (total + perPage - 1) / perPage,
				TotalEntries: total,
				PerPage:      perPage,
			},
		}
		if resp.Items == nil {
			resp.Items = []json.RawMessage{}
		}

		writeJSON(w, http.StatusOK, resp)
		logger.Info("search", "search_text", q, "matched", total, "returned", len(resp.Items), "page", page)
	}
}

func itemHandler(logger *slog.Logger, items []indexedItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		for _, item := range items {
			if item.id == id {
				writeJSON(w, http.StatusOK, map[string]json.RawMessage{"item": item.raw})
				logger.Info("item", "id", id)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"code": 104, "message": "Not found"})
	}
}

func intParam(r *http.Request, name string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil && v > 0 {
		return v
	}
	return def
}

func containsAll(title string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(title, w) {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
