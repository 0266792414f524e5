// Package imaging converts diagram source text into raster or vector bytes
// through a Kroki-compatible rendering service. The bytes come back opaque;
// nothing in modelgraph inspects them.
package imaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/insfabric/modelgraph/internal/types"
)

// Renderer turns diagram source into image bytes.
type Renderer interface {
	RenderImage(ctx context.Context, diagram string, format types.DiagramFormat, width, height int) ([]byte, error)
}

// KrokiClient renders diagrams through a Kroki server's plain-POST API.
type KrokiClient struct {
	Endpoint string
	// ImageType is the output image type, "svg" or "png".
	ImageType string
	Client    *http.Client
}

// NewKrokiClient creates a client producing SVG output.
func NewKrokiClient(endpoint string) *KrokiClient {
	return &KrokiClient{
		Endpoint:  strings.TrimRight(endpoint, "/"),
		ImageType: "svg",
		Client:    &http.Client{Timeout: 60 * time.Second},
	}
}

// diagramType maps the grammar to Kroki's diagram type path segment.
func diagramType(format types.DiagramFormat) string {
	if format == types.FormatPlantUML {
		return "plantuml"
	}
	return "mermaid"
}

// RenderImage implements Renderer.
func (k *KrokiClient) RenderImage(ctx context.Context, diagram string, format types.DiagramFormat, width, height int) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", k.Endpoint, diagramType(format), k.ImageType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(diagram))
	if err != nil {
		return nil, fmt.Errorf("building image request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	if width > 0 {
		req.Header.Set("Kroki-Diagram-Options-Width", strconv.Itoa(width))
	}
	if height > 0 {
		req.Header.Set("Kroki-Diagram-Options-Height", strconv.Itoa(height))
	}

	client := k.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rendering %s image: %w", format, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("rendering %s image: service returned %d: %s", format, resp.StatusCode, body)
	}
	return io.ReadAll(resp.Body)
}
