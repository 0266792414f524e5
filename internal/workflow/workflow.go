// Package workflow sequences the core components into the full
// validate-render-store-publish pipeline.
//
// Each model is an independent value, so RunAll fans models out over a small
// worker pool without any coordination beyond the result channel.
package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/insfabric/modelgraph/internal/imaging"
	"github.com/insfabric/modelgraph/internal/logging"
	"github.com/insfabric/modelgraph/internal/publish"
	"github.com/insfabric/modelgraph/internal/renderer"
	"github.com/insfabric/modelgraph/internal/storage"
	"github.com/insfabric/modelgraph/internal/types"
	"github.com/insfabric/modelgraph/internal/validation"
)

// Orchestrator runs the pipeline. Publisher and Imager are optional; when
// nil those stages are skipped.
type Orchestrator struct {
	Renderer  *renderer.Renderer
	Store     *storage.Store
	Publisher publish.Publisher
	Imager    imaging.Renderer
	Log       logging.Logger

	// Formats selects the grammars to render; defaults to both.
	Formats []types.DiagramFormat
	// Force re-renders diagrams that already exist in the store.
	Force bool
	// ImageWidth and ImageHeight are passed to the imaging collaborator.
	ImageWidth  int
	ImageHeight int
}

// Result reports one model's trip through the pipeline.
type Result struct {
	Model    string
	Diagrams map[types.DiagramFormat]string // format -> stored path
	PageIDs  map[types.DiagramFormat]string
	Skipped  []types.DiagramFormat
	Err      error
}

func (o *Orchestrator) formats() []types.DiagramFormat {
	if len(o.Formats) > 0 {
		return o.Formats
	}
	return []types.DiagramFormat{types.FormatMermaid, types.FormatPlantUML}
}

func (o *Orchestrator) log() logging.Logger {
	if o.Log != nil {
		return o.Log
	}
	return logging.Default()
}

// Run processes a single model.
func (o *Orchestrator) Run(ctx context.Context, m types.DomainModel) Result {
	res := Result{
		Model:    m.Name,
		Diagrams: make(map[types.DiagramFormat]string),
		PageIDs:  make(map[types.DiagramFormat]string),
	}
	log := o.log().WithComponent("workflow").With("model", m.Name)

	if err := validation.ValidateModel(&m); err != nil {
		res.Err = err
		return res
	}

	for _, format := range o.formats() {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}

		if !o.Force && o.Store != nil && o.Store.DiagramExists(m.Name, format) {
			log.Info(ctx, "diagram up to date, skipping", "format", format)
			res.Skipped = append(res.Skipped, format)
			continue
		}

		text, err := o.Renderer.Render(m, types.DefaultRenderOptions(format))
		if err != nil {
			res.Err = fmt.Errorf("rendering %s: %w", format, err)
			return res
		}

		if o.Store != nil {
			path, err := o.Store.SaveDiagram(m.Name, text, format)
			if err != nil {
				res.Err = err
				return res
			}
			res.Diagrams[format] = path
		}

		if o.Publisher != nil {
			sourceURL := ""
			editURL := ""
			if o.Store != nil {
				sourceURL = o.Store.ModelPath(m.Name)
				editURL = o.Store.DiagramPath(m.Name, format)
			}
			pageID, err := o.Publisher.Publish(ctx, m, text, format, sourceURL, editURL)
			if err != nil {
				res.Err = fmt.Errorf("publishing %s: %w", format, err)
				return res
			}
			res.PageIDs[format] = pageID
		}

		if o.Imager != nil {
			if _, err := o.Imager.RenderImage(ctx, text, format, o.ImageWidth, o.ImageHeight); err != nil {
				res.Err = fmt.Errorf("imaging %s: %w", format, err)
				return res
			}
		}
	}
	return res
}

// RunAll processes models concurrently with at most workers goroutines and
// returns results in input order.
func (o *Orchestrator) RunAll(ctx context.Context, models []types.DomainModel, workers int) []Result {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(models))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = o.Run(ctx, models[i])
			}
		}()
	}

dispatch:
	for i := range models {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	return results
}
