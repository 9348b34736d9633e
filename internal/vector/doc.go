// Package vector defines the payloads that flow through node ports: points,
// colours and gradients, drawable elements, grids and warp functions.
//
// These are plain data. Turning an Element tree into pixels or SVG is the job
// of an external renderer.
package vector
