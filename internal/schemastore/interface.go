package schemastore

import "context"

// DataFormat enumerates the data-interchange formats accepted by the
// external schema store.
type DataFormat string

const (
	FormatJSON     DataFormat = "JSON"
	FormatAvro     DataFormat = "AVRO"
	FormatProtobuf DataFormat = "PROTOBUF"
)

// Known reports whether f is one of the supported formats.
func (f DataFormat) Known() bool {
	switch f {
	case FormatJSON, FormatAvro, FormatProtobuf:
		return true
	}
	return false
}

// Compatibility enumerates the schema evolution policies understood by the
// store. The "_ALL" variants check a candidate version against every prior
// version instead of only the latest.
type Compatibility string

const (
	CompatibilityNone        Compatibility = "NONE"
	CompatibilityDisabled    Compatibility = "DISABLED"
	CompatibilityBackward    Compatibility = "BACKWARD"
	CompatibilityBackwardAll Compatibility = "BACKWARD_ALL"
	CompatibilityForward     Compatibility = "FORWARD"
	CompatibilityForwardAll  Compatibility = "FORWARD_ALL"
	CompatibilityFull        Compatibility = "FULL"
	CompatibilityFullAll     Compatibility = "FULL_ALL"
)

// Known reports whether c is one of the supported compatibility modes.
func (c Compatibility) Known() bool {
	switch c {
	case CompatibilityNone, CompatibilityDisabled,
		CompatibilityBackward, CompatibilityBackwardAll,
		CompatibilityForward, CompatibilityForwardAll,
		CompatibilityFull, CompatibilityFullAll:
		return true
	}
	return false
}

// VersionStatus is the lifecycle state the store reports for a schema
// version. Versions only move forward: PENDING to AVAILABLE or FAILURE,
// AVAILABLE to DELETING, DELETING to gone.
type VersionStatus string

const (
	StatusPending   VersionStatus = "PENDING"
	StatusAvailable VersionStatus = "AVAILABLE"
	StatusDeleting  VersionStatus = "DELETING"
	StatusFailure   VersionStatus = "FAILURE"
)

// CheckValidityInput carries a candidate definition for a structural
// validity check. No side effects at the store.
type CheckValidityInput struct {
	Format     DataFormat
	Definition string
}

// CheckValidityOutput is the store's validity judgment. The judgment itself
// is opaque to this service; Error carries the store's own diagnostic when
// the definition is rejected.
type CheckValidityOutput struct {
	IsValid bool
	Error   string
}

// CreateSchemaInput describes a new schema. The schema name is not part of
// the input: the client generates it, so identity stays under our control
// and a collision can be retried with a fresh token.
type CreateSchemaInput struct {
	Format        DataFormat
	Definition    string
	Compatibility Compatibility
}

// CreateSchemaOutput is the identity of a freshly created schema.
type CreateSchemaOutput struct {
	Name             string
	InitialVersionID string
}

// RegisterVersionInput appends a new version to an existing schema.
type RegisterVersionInput struct {
	SchemaName string
	Definition string
}

// RegisterVersionOutput describes the store-assigned version.
type RegisterVersionOutput struct {
	VersionID     string
	VersionNumber int
	Status        VersionStatus
}

// Store is the single point of contact with the external schema store.
// Every method is pure input to result with no hidden retry: retry policy
// belongs to callers, because the synchronous API and the asynchronous
// consumer need different backoff strategies.
//
// All methods return a typed *faults.Failure on error, never a raw
// transport error, and never panic past their boundary.
type Store interface {
	// CheckVersionValidity asks the store whether a definition is
	// structurally valid for its format. Failures are always classified
	// UNKNOWN_ERROR: the validity judgment is delegated entirely.
	CheckVersionValidity(ctx context.Context, in CheckValidityInput) (CheckValidityOutput, error)

	// CreateSchema allocates a new schema under a client-generated name.
	// Fails with EMPTY_RESPONSE when the store acknowledges the call but
	// omits the name or initial version id.
	CreateSchema(ctx context.Context, in CreateSchemaInput) (CreateSchemaOutput, error)

	// RegisterVersion appends a version to an existing schema. Same
	// failure classification as CreateSchema.
	RegisterVersion(ctx context.Context, in RegisterVersionInput) (RegisterVersionOutput, error)

	// DeleteSchema marks a schema for removal. Idempotent from the
	// caller's perspective: deleting an unknown or already-deleted schema
	// is benign and returns nil.
	DeleteSchema(ctx context.Context, schemaName string) error
}
