package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/schemaworks/registrar/internal/faults"
	"github.com/schemaworks/registrar/internal/logger"
)

// DefaultDispatchTimeout bounds how long an asynchronous dispatch may spend
// talking to the broker.
const DefaultDispatchTimeout = 5 * time.Second

// QueueNotifier publishes lifecycle messages onto the broker. It implements
// Notifier.
type QueueNotifier struct {
	publisher Publisher
	log       *logger.Logger
}

// NewNotifier creates a notifier backed by the given publisher.
func NewNotifier(publisher Publisher, log *logger.Logger) *QueueNotifier {
	return &QueueNotifier{
		publisher: publisher,
		log:       log,
	}
}

// SchemaVersionDeleted publishes one DeletionMessage. Publish faults are
// reported as UNKNOWN_ERROR.
func (n *QueueNotifier) SchemaVersionDeleted(ctx context.Context, msg DeletionMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return faults.Unknown("notifier.schema_version_deleted", err)
	}

	if err := n.publisher.Publish(ctx, body); err != nil {
		return faults.Unknown("notifier.schema_version_deleted", err)
	}
	return nil
}

// DispatchSchemaVersionDeleted publishes in the background so request
// handling never waits on the broker. A publish fault is logged and dropped;
// the caller has already committed the state change the message describes.
func (n *QueueNotifier) DispatchSchemaVersionDeleted(msg DeletionMessage) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultDispatchTimeout)
		defer cancel()

		if err := n.SchemaVersionDeleted(ctx, msg); err != nil {
			n.log.Error("Failed to publish deletion message", err, map[string]interface{}{
				"schemaName":    msg.SchemaName,
				"versionId":     msg.VersionID,
				"versionNumber": msg.VersionNumber,
			})
		}
	}()
}
