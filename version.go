// Package schemadrift detects structural drift between two versions of a
// declarative data-model schema.
package schemadrift

// Version is the current schemadrift release.
const Version = "0.3.0"
