// Package server provides the local diagram preview server.
//
// It serves a single page showing the rendered diagram source for one model
// file and pushes a reload signal over a websocket whenever the watcher
// reports that the model changed.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/insfabric/modelgraph/internal/logging"
	"github.com/insfabric/modelgraph/internal/renderer"
	"github.com/insfabric/modelgraph/internal/storage"
	"github.com/insfabric/modelgraph/internal/types"
	"github.com/insfabric/modelgraph/internal/validation"
)

// PreviewServer serves the live preview for one model file.
type PreviewServer struct {
	Addr      string
	ModelPath string
	Format    types.DiagramFormat
	Renderer  *renderer.Renderer
	Log       logging.Logger

	mu      sync.Mutex
	clients map[chan struct{}]struct{}

	httpServer *http.Server
}

// New creates a preview server for the model file at path.
func New(addr, modelPath string, format types.DiagramFormat, r *renderer.Renderer, log logging.Logger) *PreviewServer {
	if log == nil {
		log = logging.Default()
	}
	return &PreviewServer{
		Addr:      addr,
		ModelPath: modelPath,
		Format:    format,
		Renderer:  r,
		Log:       log.WithComponent("server"),
		clients:   make(map[chan struct{}]struct{}),
	}
}

// Handler builds the HTTP routes.
func (s *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/diagram", s.handleDiagram)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Start runs the server until ctx is cancelled.
func (s *PreviewServer) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr, err)
	}
	s.Log.Info(ctx, "preview server listening", "addr", ln.Addr().String(), "model", s.ModelPath)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// NotifyReload tells every connected preview page to refresh.
func (s *PreviewServer) NotifyReload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.clients {
		select {
		case ch <- struct{}{}:
		default:
			// Slow client, a pending reload is already queued.
		}
	}
}

// renderCurrent loads, validates and renders the model file.
func (s *PreviewServer) renderCurrent() (string, error) {
	m, err := storage.LoadModelFile(s.ModelPath)
	if err != nil {
		return "", err
	}
	if err := validation.ValidateModel(&m); err != nil {
		return "", err
	}
	return s.Renderer.Render(m, types.DefaultRenderOptions(s.Format))
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>modelgraph preview: {{.Model}}</title>
</head>
<body>
<h1>{{.Model}}</h1>
<p class="meta">format: {{.Format}}</p>
{{if .Err}}<pre class="error">{{.Err}}</pre>{{else}}<pre class="diagram">{{.Diagram}}</pre>{{end}}
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws");
  ws.onmessage = function () { location.reload(); };
})();
</script>
</body>
</html>
`))

func (s *PreviewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := struct {
		Model   string
		Format  types.DiagramFormat
		Diagram string
		Err     string
	}{Model: s.ModelPath, Format: s.Format}

	diagram, err := s.renderCurrent()
	if err != nil {
		data.Err = err.Error()
	} else {
		data.Diagram = diagram
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.Log.Error(r.Context(), err, "rendering preview page")
	}
}

func (s *PreviewServer) handleDiagram(w http.ResponseWriter, r *http.Request) {
	diagram, err := s.renderCurrent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(diagram))
}

func (s *PreviewServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.Log.Warn(r.Context(), err, "websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, ch)
		s.mu.Unlock()
	}()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ch:
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, []byte("reload"))
			cancel()
			if err != nil {
				return
			}
		}
	}
}
