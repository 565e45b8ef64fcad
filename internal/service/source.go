package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/khizana-app/khizana/internal/filestore"
	"github.com/khizana-app/khizana/internal/model"
)

// NewStoreSourceLoader resolves a document source to bytes: the filestore
// first, the source URL as a fallback for stores that cannot open objects.
func NewStoreSourceLoader(store filestore.Store) SourceLoader {
	client := &http.Client{Timeout: 60 * time.Second}
	return func(ctx context.Context, doc *model.Document) ([]byte, error) {
		if doc.SourceKey != "" {
			reader, err := store.Open(ctx, doc.SourceKey)
			if err == nil {
				defer reader.Close()
				return io.ReadAll(reader)
			}
			if url := store.URL(doc.SourceKey, ""); url != "" {
				if data, fetchErr := fetchURL(ctx, client, url); fetchErr == nil {
					return data, nil
				}
			}
		}
		if doc.SourceURL != "" {
			return fetchURL(ctx, client, doc.SourceURL)
		}
		return nil, fmt.Errorf("document %s has no readable source", doc.ID)
	}
}

func fetchURL(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch source: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
