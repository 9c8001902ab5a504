// Package models defines the data transfer objects returned by the playlist exporter.
//
//   - [VideoRecord] : One playlist entry mapped from an upstream snippet
//   - [AggregationResult] : Every record of one playlist plus fetch metadata
//
// Records are built once while a page is mapped and are never mutated afterwards.
// Every string field is always present when encoded; missing upstream values become "".
package models
