// Package typing contains the decision logic that turns alignment hits into
// one type call per locus: coverage gate, best-hit selection, and the
// per-locus driver that ties them together with an audit trace.
//
// It never imports sample, pipeline, writers, app, or cmd; keep it
// domain-only. Nothing here blocks except the injected LengthResolver.
package typing
