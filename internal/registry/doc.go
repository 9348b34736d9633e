// Package registry provides the central "glue" for the node catalogue.
//
// The Registry maps the type names stored in sessions (e.g. "rectangle") to
// the Go constructors that build fresh node instances, and holds the custom
// node definitions a session declares. Modules add their node types through
// the Module interface.
//
// During application startup the registry is populated and then validated,
// so that every constructor builds a node that agrees with the name it is
// registered under and whose property defaults satisfy their own types.
package registry
