package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v2"
)

// ProductSearch reads point-in-time stock quantities from the products index.
type ProductSearch struct {
	client *opensearch.Client
	index  string
}

type ProductSearchConfig struct {
	URL      string
	Username string
	Password string
	Index    string
	Insecure bool
}

// NewProductSearch builds and pings an OpenSearch-backed product index client.
func NewProductSearch(cfg ProductSearchConfig) (*ProductSearch, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.Insecure},
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create opensearch client: %w", err)
	}

	info, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("ping opensearch: %w", err)
	}
	defer info.Body.Close()
	if info.IsError() {
		return nil, fmt.Errorf("opensearch returned error: %s", info.Status())
	}

	return &ProductSearch{client: client, index: cfg.Index}, nil
}

// ProductQuantity matches the title against the index and returns the
// quantity of the first hit, or (0, nil) when nothing matches.
func (s *ProductSearch) ProductQuantity(ctx context.Context, title string) (int, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"title": title,
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return 0, fmt.Errorf("encode query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
		s.client.Search.WithSize(1),
	)
	if err != nil {
		return 0, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("search error: %s", res.Status())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source struct {
					Title    string `json:"title"`
					Quantity int    `json:"quantity"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return 0, fmt.Errorf("decode search response: %w", err)
	}

	if len(searchResult.Hits.Hits) == 0 {
		return 0, nil
	}
	return searchResult.Hits.Hits[0].Source.Quantity, nil
}
