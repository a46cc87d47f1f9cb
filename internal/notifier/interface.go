package notifier

import "context"

// DeletionMessage is the payload announcing that one schema version has been
// scheduled for deletion. Consumers use it to remove the version from the
// remote store.
type DeletionMessage struct {
	SchemaName    string `json:"schemaName"`
	VersionID     string `json:"versionId"`
	VersionNumber int    `json:"versionNumber"`
}

// Publisher is the slice of the broker client the notifier depends on.
type Publisher interface {
	Publish(ctx context.Context, body []byte, headers ...map[string]interface{}) error
}

// Notifier announces schema lifecycle events to downstream consumers.
type Notifier interface {
	// SchemaVersionDeleted publishes a DeletionMessage onto the durable
	// queue. The error reports a publish fault; the message may still be
	// processed later if the broker accepted it.
	SchemaVersionDeleted(ctx context.Context, msg DeletionMessage) error

	// DispatchSchemaVersionDeleted publishes without blocking the caller.
	// Failures are logged, never surfaced.
	DispatchSchemaVersionDeleted(msg DeletionMessage)
}
