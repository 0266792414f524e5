package imaging

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insfabric/modelgraph/internal/types"
)

func TestRenderImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mermaid/svg", r.URL.Path)
		assert.Equal(t, "1600", r.Header.Get("Kroki-Diagram-Options-Width"))
		assert.Equal(t, "1200", r.Header.Get("Kroki-Diagram-Options-Height"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "classDiagram\n", string(body))
		_, _ = w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	c := NewKrokiClient(srv.URL)
	img, err := c.RenderImage(context.Background(), "classDiagram\n", types.FormatMermaid, 1600, 1200)
	require.NoError(t, err)
	assert.Equal(t, []byte("<svg/>"), img)
}

func TestRenderImagePlantUMLPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plantuml/svg", r.URL.Path)
		_, _ = w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	c := NewKrokiClient(srv.URL + "/")
	_, err := c.RenderImage(context.Background(), "@startuml\n@enduml\n", types.FormatPlantUML, 0, 0)
	require.NoError(t, err)
}

func TestRenderImageServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "syntax error", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewKrokiClient(srv.URL)
	_, err := c.RenderImage(context.Background(), "nonsense", types.FormatMermaid, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "syntax error")
}
