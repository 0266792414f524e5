package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/insfabric/modelgraph/internal/catalog"
	"github.com/insfabric/modelgraph/internal/renderer"
	"github.com/insfabric/modelgraph/internal/types"
)

func writeModelFile(t *testing.T, m types.DomainModel) string {
	t.Helper()
	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestServer(t *testing.T, m types.DomainModel) (*PreviewServer, *httptest.Server) {
	t.Helper()
	path := writeModelFile(t, m)
	s := New("127.0.0.1:0", path, types.FormatMermaid, renderer.New(), nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

// findNodes walks the parsed page collecting elements with the given tag.
func findNodes(n *html.Node, tag string, out *[]*html.Node) {
	if n.Type == html.ElementNode && n.Data == tag {
		*out = append(*out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		findNodes(c, tag, out)
	}
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func TestIndexPageShowsDiagram(t *testing.T) {
	_, ts := newTestServer(t, catalog.Bootstrap("acme", ""))

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)

	var pres []*html.Node
	findNodes(doc, "pre", &pres)
	require.Len(t, pres, 1)
	assert.Contains(t, textOf(pres[0]), "classDiagram")
	assert.Contains(t, textOf(pres[0]), "class policy {")
}

func TestIndexPageShowsValidationError(t *testing.T) {
	m := catalog.Bootstrap("acme", "")
	m.Entities[0].Relationships[0].TargetID = "ghost"
	_, ts := newTestServer(t, m)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)

	var pres []*html.Node
	findNodes(doc, "pre", &pres)
	require.Len(t, pres, 1)
	assert.Contains(t, textOf(pres[0]), `references unknown entity "ghost"`)
}

func TestDiagramEndpoint(t *testing.T) {
	_, ts := newTestServer(t, catalog.Bootstrap("acme", ""))

	resp, err := http.Get(ts.URL + "/diagram")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, textOf(doc), "classDiagram")
}

func TestDiagramEndpointRejectsInvalidModel(t *testing.T) {
	m := catalog.Bootstrap("acme", "")
	m.Entities[0].ID = ""
	_, ts := newTestServer(t, m)

	resp, err := http.Get(ts.URL + "/diagram")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestWebsocketReloadSignal(t *testing.T) {
	s, ts := newTestServer(t, catalog.Bootstrap("acme", ""))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	// Give the handler a moment to register the client.
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.clients) == 1
	}, 2*time.Second, 10*time.Millisecond)

	s.NotifyReload()

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reload", string(data))
}
