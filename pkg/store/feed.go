package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matst80/shophub-catalog/pkg/types"
)

const defaultFeedUrl = "https://fakestoreapi.com/products"

// FeedClient fetches the product collection from a JSON feed over HTTP.
type FeedClient struct {
	Url        string
	HttpClient *http.Client
}

func NewFeedClient(url string) *FeedClient {
	if url == "" {
		url = defaultFeedUrl
	}
	return &FeedClient{
		Url:        url,
		HttpClient: &http.Client{},
	}
}

// FetchProducts implements ProductStore. No retries; the caller decides
// whether to re-invoke.
func (f *FeedClient) FetchProducts(ctx context.Context) ([]types.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching product feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK response from product feed: %d", resp.StatusCode)
	}

	var products []types.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("error decoding product feed: %w", err)
	}
	return products, nil
}
