// Package domain contains the core types of Inkwell: templates, sessions,
// the append-log record format, and the error taxonomy shared by all
// adapters. It has no dependencies on storage or presentation layers.
package domain
