// Package horizons is a typed client for the JPL Horizons ephemeris API.
//
// A query is built as an immutable Request with functional options, checked
// against the parameter compatibility rules of the requested ephemeris type
// at construction time. The Client encodes the request into the Horizons
// command language, fetches it over the Transport, frames the data section
// between the $$SOE/$$EOE sentinels, and decodes the rows into typed records
// (ObserverRecord, VectorRecord, ElementRecord).
//
// Failures carry a stage tag; use IsStage to tell a malformed request apart
// from a network failure or an unexpected table layout:
//
//	recs, err := client.Vectors(ctx, req)
//	if horizons.IsStage(err, horizons.StageFrame) {
//		// the service answered with explanatory text instead of data
//	}
package horizons
