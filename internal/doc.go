// Package internal contains the core implementation packages for modelgraph.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the modelgraph CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - types: Domain model, entity taxonomy, and render option types
//   - catalog: Built-in entity templates and model bootstrapping
//   - validation: Structural model validation with violation collection
//   - errors: Violation types, aggregate model errors, and collectors
//   - renderer: Class diagram rendering for the Mermaid and PlantUML grammars
//   - sequence: Sequence diagram templates for standard processes
//   - storage: Model and diagram persistence on the local filesystem
//   - publish: Wiki page publishing over HTTP
//   - imaging: Diagram-to-image rendering through a Kroki service
//   - workflow: Validate, render, publish orchestration with worker pools
//   - server: Preview HTTP server with WebSocket live reload
//   - watcher: File system monitoring with debouncing
//   - config: Configuration management with validation
//   - logging: Structured logging built on slog
//   - version: Build version information
//
// # Inter-Package Communication
//
// Packages communicate through well-defined interfaces:
//
//   - The renderer consumes types.DomainModel and produces diagram text
//   - Validation reports through errors.ModelError so callers see every
//     violation at once
//   - The workflow orchestrator coordinates storage, publishing, and imaging
//     behind small interfaces so each collaborator can be swapped in tests
//   - The watcher triggers server reloads and re-renders without either side
//     knowing about the other
package internal
