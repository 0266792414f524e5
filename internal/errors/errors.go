// Package errors provides structured validation errors for domain models.
//
// A Violation pinpoints a single broken invariant on one entity; a ModelError
// aggregates every violation found in one validation pass so callers can
// report a single consolidated, actionable message instead of fixing errors
// one retry at a time.
package errors

import (
	"fmt"
	"strings"
	"sync"
)

// Violation describes one broken model invariant.
type Violation struct {
	// EntityIndex is the position of the owning entity in the model's
	// entity slice, or -1 for model-level violations.
	EntityIndex int
	// EntityName is the owning entity's name, empty for model-level
	// violations.
	EntityName string
	// Field names the offending field or sub-element (e.g. "kind",
	// "attribute[2].type", "relationship[0].targetEntityId").
	Field string
	// Message is the human-readable description of the violation.
	Message string
}

// Error implements the error interface.
func (v Violation) Error() string {
	if v.EntityIndex < 0 {
		return fmt.Sprintf("model: %s: %s", v.Field, v.Message)
	}
	name := v.EntityName
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("entity[%d] %q: %s: %s", v.EntityIndex, name, v.Field, v.Message)
}

// ModelError is the aggregate failure returned by model validation. It
// carries every violation found in a single pass.
type ModelError struct {
	Model      string
	Violations []Violation
}

// Error implements the error interface by joining all violations.
func (e *ModelError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "model %q is invalid (%d violation", e.Model, len(e.Violations))
	if len(e.Violations) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("):")
	for _, v := range e.Violations {
		sb.WriteString("\n  - ")
		sb.WriteString(v.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual violations to errors.Is/As traversal.
func (e *ModelError) Unwrap() []error {
	errs := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		errs[i] = v
	}
	return errs
}

// Collector accumulates violations during a validation pass. It is
// mutex-guarded so the workflow shell can validate independent models from
// multiple goroutines against per-model collectors without care.
type Collector struct {
	mu         sync.Mutex
	violations []Violation
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{violations: make([]Violation, 0)}
}

// Add records a violation.
func (c *Collector) Add(v Violation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.violations = append(c.violations, v)
}

// Addf records an entity-scoped violation with a formatted message.
func (c *Collector) Addf(index int, name, field, format string, args ...interface{}) {
	c.Add(Violation{
		EntityIndex: index,
		EntityName:  name,
		Field:       field,
		Message:     fmt.Sprintf(format, args...),
	})
}

// HasViolations reports whether anything was collected.
func (c *Collector) HasViolations() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.violations) > 0
}

// Violations returns a copy of the collected violations in insertion order.
func (c *Collector) Violations() []Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Violation, len(c.violations))
	copy(out, c.violations)
	return out
}

// Err finalizes the collector into a ModelError for the named model, or nil
// if nothing was collected.
func (c *Collector) Err(model string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.violations) == 0 {
		return nil
	}
	out := make([]Violation, len(c.violations))
	copy(out, c.violations)
	return &ModelError{Model: model, Violations: out}
}
