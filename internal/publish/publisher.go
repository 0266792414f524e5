// Package publish delivers rendered diagrams to a remote documentation
// service.
//
// The core treats the returned page identifier as an opaque token; this
// package owns the wire format and the HTTP plumbing.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/insfabric/modelgraph/internal/types"
)

// Publisher pushes a rendered diagram for a model to a documentation
// service and returns the opaque page identifier.
type Publisher interface {
	Publish(ctx context.Context, m types.DomainModel, diagram string, format types.DiagramFormat, sourceURL, editURL string) (string, error)
}

// WikiPublisher publishes to a wiki-style HTTP endpoint.
type WikiPublisher struct {
	BaseURL  string
	SpaceKey string
	Token    string
	Client   *http.Client
}

// NewWikiPublisher creates a publisher with a sane request timeout.
func NewWikiPublisher(baseURL, spaceKey, token string) *WikiPublisher {
	return &WikiPublisher{
		BaseURL:  baseURL,
		SpaceKey: spaceKey,
		Token:    token,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type pageRequest struct {
	Space     string `json:"space"`
	Title     string `json:"title"`
	Version   string `json:"version"`
	Format    string `json:"format"`
	Diagram   string `json:"diagram"`
	SourceURL string `json:"sourceUrl"`
	EditURL   string `json:"editUrl"`
}

type pageResponse struct {
	PageID string `json:"pageId"`
}

// Publish implements Publisher.
func (p *WikiPublisher) Publish(ctx context.Context, m types.DomainModel, diagram string, format types.DiagramFormat, sourceURL, editURL string) (string, error) {
	payload, err := json.Marshal(pageRequest{
		Space:     p.SpaceKey,
		Title:     fmt.Sprintf("%s v%s", m.Name, m.Version),
		Version:   m.Version,
		Format:    format.String(),
		Diagram:   diagram,
		SourceURL: sourceURL,
		EditURL:   editURL,
	})
	if err != nil {
		return "", fmt.Errorf("encoding page payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/pages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.Token)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("publishing %q: %w", m.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("publishing %q: service returned %d: %s", m.Name, resp.StatusCode, body)
	}

	var pr pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("decoding publish response: %w", err)
	}
	if pr.PageID == "" {
		return "", fmt.Errorf("publishing %q: service returned no page id", m.Name)
	}
	return pr.PageID, nil
}
