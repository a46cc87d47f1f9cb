// Package notifier publishes schema lifecycle events to downstream consumers.
//
// The only event today is the deletion announcement: when the API schedules a
// schema version for deletion, the notifier puts a DeletionMessage onto the
// durable queue and the reaper later performs the actual remote deletion.
//
// Publishing is decoupled from request handling. The synchronous
// SchemaVersionDeleted method exists for callers that want the error;
// DispatchSchemaVersionDeleted is the fire-and-forget path used by the HTTP
// handlers, where a broker fault must never fail the API response.
package notifier
