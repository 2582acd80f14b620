// Package registry provides a generic, type-safe registry system
// for managing matcher factories and hooks. It supports automatic
// registration through init() functions.
package registry
