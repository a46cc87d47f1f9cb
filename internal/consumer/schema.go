package consumer

import (
	"context"

	goskema "github.com/reoring/goskema"
	g "github.com/reoring/goskema/dsl"

	"github.com/schemaworks/registrar/internal/notifier"
)

// deletionMessageSchema validates the wire form of a DeletionMessage. The
// three identity fields are required; unknown fields are stripped so older
// producers can add fields without breaking the consumer.
func deletionMessageSchema() goskema.Schema[notifier.DeletionMessage] {
	return g.ObjectOf[notifier.DeletionMessage]().
		Field("schemaName", g.StringOf[string]()).Required().
		Field("versionId", g.StringOf[string]()).Required().
		Field("versionNumber", g.IntOf[int]()).Required().
		UnknownStrip().
		RefineT("identity_present", func(dc goskema.DomainCtx[notifier.DeletionMessage], m notifier.DeletionMessage) []goskema.Issue {
			var out []goskema.Issue
			if m.SchemaName == "" {
				out = append(out, dc.Ref.At("/schemaName").Issue(goskema.CodeTooShort, "schemaName must not be empty"))
			}
			if m.VersionID == "" {
				out = append(out, dc.Ref.At("/versionId").Issue(goskema.CodeTooShort, "versionId must not be empty"))
			}
			if m.VersionNumber < 1 {
				out = append(out, dc.Ref.At("/versionNumber").Issue(goskema.CodeTooSmall, "versionNumber must be at least 1"))
			}
			return out
		}).
		MustBind()
}

var messageSchema = deletionMessageSchema()

// parseDeletionMessage decodes and validates one queue payload. On failure
// the error carries per-field issues retrievable via faults.FieldErrors.
func parseDeletionMessage(ctx context.Context, body []byte) (notifier.DeletionMessage, error) {
	return goskema.ParseFrom(ctx, messageSchema, goskema.JSONBytes(body))
}
