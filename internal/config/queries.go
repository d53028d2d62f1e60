package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// QuerySource names where the resolved queries came from.
type QuerySource string

// Query sources, in precedence order.
const (
	QuerySourceEnv    QuerySource = "env"
	QuerySourceFile   QuerySource = "file"
	QuerySourceInline QuerySource = "inline"
	QuerySourceNone   QuerySource = "none"
)

// ResolveQueries returns the configured search queries. The VINTED_QUERIES
// environment value wins, then the queries file, then inline YAML queries.
// A missing queries file falls through to the inline list.
func (c *Config) ResolveQueries() ([]domain.Query, QuerySource, error) {
	if c.QueriesJSON != "" {
		qs, err := ParseQueries([]byte(c.QueriesJSON))
		if err != nil {
			return nil, QuerySourceEnv, fmt.Errorf("parsing VINTED_QUERIES: %w", err)
		}
		return qs, QuerySourceEnv, nil
	}

	if c.QueriesFile != "" {
		data, err := os.ReadFile(c.QueriesFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, QuerySourceFile, fmt.Errorf("reading %s: %w", c.QueriesFile, err)
		default:
			qs, err := ParseQueries(data)
			if err != nil {
				return nil, QuerySourceFile, fmt.Errorf("parsing %s: %w", c.QueriesFile, err)
			}
			return qs, QuerySourceFile, nil
		}
	}

	if len(c.Queries) > 0 {
		qs := make([]domain.Query, 0, len(c.Queries))
		for _, q := range c.Queries {
			qs = append(qs, domain.Query(q))
		}
		return qs, QuerySourceInline, nil
	}

	return nil, QuerySourceNone, nil
}

// ParseQueries decodes a JSON array of query objects. Numbers are kept as
// json.Number so integer identifiers survive unchanged into URL parameters.
func ParseQueries(data []byte) ([]domain.Query, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding queries: %w", err)
	}

	qs := make([]domain.Query, 0, len(raw))
	for i, q := range raw {
		if q == nil {
			return nil, fmt.Errorf("query %d is not an object", i)
		}
		qs = append(qs, domain.Query(q))
	}
	return qs, nil
}
