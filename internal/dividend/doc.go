// Package dividend implements the dividend analytics core: normalization of
// raw dividend rows, per-ticker aggregation, deterministic growth projection,
// DRIP simulation, and presentation ranking.
//
// # Architecture
//
// The package is a set of pure transformations; each stage consumes the
// previous stage's output and constructs fresh value objects:
//
//	raw rows -> Normalizer -> Aggregator -> Projector / Ranker
//
//   - types.go: core value objects and rejection reason codes
//   - normalizer.go: validate-then-convert boundary for untyped rows
//   - aggregator.go: per-ticker summary statistics
//   - projection.go: closed-form compound growth projections
//   - drip.go: dividend reinvestment simulation
//   - rank.go: metric ranking and palette color assignment
//   - currency.go: ticker suffix to currency symbol mapping
//
// Nothing here performs I/O or holds mutable state. File parsing lives in
// internal/dataprocessing and report writing in internal/exporter; both feed
// and consume this package.
package dividend
