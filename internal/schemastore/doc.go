// Package schemastore is the single point of contact with the external
// schema registry.
//
// The store owns schema persistence and the compatibility-checking
// algorithm; this package only issues its commands and normalizes every
// outcome into either a typed output or a *faults.Failure with a closed
// code set:
//
//   - UNKNOWN_ERROR: the remote call itself failed (network, auth,
//     throttling, timeout). Potentially transient.
//   - EMPTY_RESPONSE: the call was acknowledged but required fields were
//     missing from the response. Terminal, because retrying an ambiguous
//     partial success could double-create a schema.
//
// Methods carry no retry logic of their own: the synchronous API surface
// and the asynchronous deletion consumer retry under different policies, so
// the decision stays with them.
//
// Schema identity is generated client-side as a random opaque token. Two
// CreateSchema calls with identical definitions therefore always produce
// two distinct schemas.
package schemastore
