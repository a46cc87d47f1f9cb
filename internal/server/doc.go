// Package server exposes the schema lifecycle API over HTTP.
//
// The surface is three POST endpoints behind the admission gate plus an
// ungated liveness probe:
//
//	POST /api/schemas                           create a schema
//	POST /api/schemas/:schemaName/versions      register a version
//	POST /api/check-schema-version-validity     check a definition
//	GET  /healthz                               liveness
//
// Every response behind the gate carries X-RateLimit-Limit, -Remaining and
// -Reset headers; exhausted or unverifiable callers get the fixed 429 body.
// Request bodies are validated before any remote call, and a validation
// failure answers 400 with per-field JSON-Pointer diagnostics. Store faults
// of any kind surface as the generic 500 INTERNAL_ERROR envelope; the
// underlying cause stays in the logs.
//
// Registering a version also drops a deletion announcement on the lifecycle
// queue. That publish is fire-and-forget: the API response is already
// decided when it happens.
package server
