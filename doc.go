// Package preipo computes descriptive analytics over the funding history of private
// companies: valuation and capital raised per round.
//
// The core is a stateless engine:
//   - BuildCumulativeSeries sorts the events of one entity by date and accumulates the
//     capital raised, giving a time series ready to plot.
//   - ComputeMetrics derives the compound annual growth rate between the first and last
//     valuation, the valuation per unit of capital raised, and the deviation from a baseline
//     growth projection whose annual rate is chosen by the caller.
//
// Both are pure functions of their arguments: they never modify the events, never cache,
// and can run concurrently.
//
// Around the engine, the package provides the collaborators of a small tracker
// application: a Dataset grouping events by entity, decoders for CSV, XLSX, JSON and JSONL
// files, the descriptive Profiles of each company, and the Report consumed by the
// renderer, the HTTP api and the `pmt` command-line tool.
package preipo
