// Package quota implements the admission gate that protects the API from
// request floods.
//
// The gate is a fixed-window rate limiter: each client identifier gets a
// counter in a shared Redis store, the counter is incremented on every
// request and expires when the window ends. Increment and expiry arming run
// as one Lua script so the counter can never outlive its window.
//
// Every decision carries the limit, the admissions remaining and the window
// reset time, so callers can expose this metadata on permitted and denied
// responses alike. When the counter store is unreachable the gate fails
// closed: the decision denies and the error reports why.
//
// The window is shared across all instances of the service that point at the
// same store, which makes the limit a property of the client rather than of
// the instance it happened to reach.
package quota
