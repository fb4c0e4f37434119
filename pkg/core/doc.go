// Package core defines the shared configuration language of the Scrawl system.
//
// This package contains:
//   - The effective diagram configuration (Config) and its per-kind sections
//   - Baseline defaults (DefaultConfig)
//   - Security level constants
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
