package publish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insfabric/modelgraph/internal/types"
)

func testModel() types.DomainModel {
	return types.DomainModel{Name: "acme", Version: "1.0.0"}
}

func TestPublishSuccess(t *testing.T) {
	var got pageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/pages", r.URL.Path)
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(pageResponse{PageID: "page-42"})
	}))
	defer srv.Close()

	p := NewWikiPublisher(srv.URL, "INS", "s3cret")
	pageID, err := p.Publish(context.Background(), testModel(), "classDiagram\n",
		types.FormatMermaid, "https://git.example/models/acme.yaml", "https://git.example/edit/acme.yaml")
	require.NoError(t, err)

	assert.Equal(t, "page-42", pageID)
	assert.Equal(t, "INS", got.Space)
	assert.Equal(t, "acme v1.0.0", got.Title)
	assert.Equal(t, "mermaid", got.Format)
	assert.Equal(t, "classDiagram\n", got.Diagram)
	assert.Equal(t, "https://git.example/models/acme.yaml", got.SourceURL)
}

func TestPublishServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "space not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewWikiPublisher(srv.URL, "NOPE", "")
	_, err := p.Publish(context.Background(), testModel(), "x", types.FormatPlantUML, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "space not found")
}

func TestPublishEmptyPageIDRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pageResponse{})
	}))
	defer srv.Close()

	p := NewWikiPublisher(srv.URL, "INS", "")
	_, err := p.Publish(context.Background(), testModel(), "x", types.FormatMermaid, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no page id")
}
