// Package consumer drains the schema lifecycle queue and applies deletion
// messages against the remote schema store.
//
// The central property is partial-failure isolation. Deliveries are handled
// strictly per message: a payload that fails validation, a store fault, even
// a panic inside the message path only fails that one message. The batch
// always runs to completion and the surviving messages are acked normally.
//
// Outcomes per message:
//   - valid payload, delete succeeded: silent, acked
//   - undecodable or invalid payload: VALIDATION_ERROR with per-field
//     diagnostics, acked (redelivery cannot fix a malformed payload)
//   - delete fault or panic: UNKNOWN_ERROR, nacked without requeue so the
//     broker's dead-letter setup decides what happens next
//
// All failures of a batch are reported in one aggregated log entry after
// the batch finished, never one line per message mid-flight.
package consumer
