// Package pipeline runs a SampleTyper over a batch of inputs on a bounded
// worker pool and collects one report row per sample, in input order.
//
// The only contract to implement is SampleTyper (Type).
// This keeps the pipeline swappable and testable.
package pipeline
