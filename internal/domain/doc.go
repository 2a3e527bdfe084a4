// Package domain holds the data model shared by every layer: loci, type
// calls, per-sample results, the batch report, and the error taxonomy.
//
// It imports nothing from this module; keep it that way.
package domain
