// Package template defines the engine-agnostic rendering seam used when
// htmlstring values have to flow through a full template engine, with
// adapters living in subpackages.
package template
