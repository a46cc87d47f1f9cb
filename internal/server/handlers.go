package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schemaworks/registrar/internal/faults"
	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/metrics"
	"github.com/schemaworks/registrar/internal/notifier"
	"github.com/schemaworks/registrar/internal/schemastore"
)

// Handlers owns the API endpoints. All remote work goes through the schema
// store client; the notifier is fire-and-forget.
type Handlers struct {
	store   schemastore.Store
	notify  notifier.Notifier
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewHandlers creates the API handlers. The metrics instance may be nil.
func NewHandlers(store schemastore.Store, notify notifier.Notifier, log *logger.Logger, m *metrics.Metrics) *Handlers {
	return &Handlers{
		store:   store,
		notify:  notify,
		log:     log,
		metrics: m,
	}
}

// CreateSchema handles POST /api/schemas.
func (h *Handlers) CreateSchema(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidRequest("Unable to read request body"))
		return
	}

	req, err := parseBody(c.Request.Context(), createSchemaBody, body)
	if err != nil {
		fields, _ := faults.FieldErrors(err)
		h.log.Info("Request body validation failed", nil, map[string]interface{}{
			"requestId": requestID(c),
			"endpoint":  c.FullPath(),
		})
		c.JSON(http.StatusBadRequest, validationError(
			"Provided an invalid format, definition and/or compatibility", fields))
		return
	}

	out, err := h.store.CreateSchema(c.Request.Context(), schemastore.CreateSchemaInput{
		Format:        schemastore.DataFormat(req.Format),
		Definition:    req.Definition,
		Compatibility: schemastore.Compatibility(req.Compatibility),
	})
	if err != nil {
		h.recordCommand("create_schema", "failure")
		h.log.Error("New schema failed to be created", err, map[string]interface{}{
			"requestId": requestID(c),
			"code":      string(faults.CodeOf(err)),
		})
		c.JSON(http.StatusInternalServerError, internalError("Unable to create schema"))
		return
	}

	h.recordCommand("create_schema", "success")
	h.log.Info("Schema created", nil, map[string]interface{}{
		"requestId":  requestID(c),
		"schemaName": out.Name,
	})
	c.JSON(http.StatusOK, CreateSchemaResponse{
		Name:             out.Name,
		InitialVersionID: out.InitialVersionID,
	})
}

// RegisterVersion handles POST /api/schemas/:schemaName/versions. A
// successful registration also announces the version on the lifecycle queue
// so the reaper can collect it later; the announcement never delays or fails
// the response.
func (h *Handlers) RegisterVersion(c *gin.Context) {
	schemaName := c.Param("schemaName")
	if schemaName == "" {
		c.JSON(http.StatusBadRequest, invalidRequest("A schema name is required"))
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidRequest("Unable to read request body"))
		return
	}

	req, err := parseBody(c.Request.Context(), registerVersionBody, body)
	if err != nil {
		fields, _ := faults.FieldErrors(err)
		h.log.Info("Request body validation failed", nil, map[string]interface{}{
			"requestId": requestID(c),
			"endpoint":  c.FullPath(),
		})
		c.JSON(http.StatusBadRequest, validationError("Provided an invalid definition", fields))
		return
	}

	out, err := h.store.RegisterVersion(c.Request.Context(), schemastore.RegisterVersionInput{
		SchemaName: schemaName,
		Definition: req.Definition,
	})
	if err != nil {
		h.recordCommand("register_version", "failure")
		h.log.Error("Failed to register schema version", err, map[string]interface{}{
			"requestId":  requestID(c),
			"schemaName": schemaName,
			"code":       string(faults.CodeOf(err)),
		})
		c.JSON(http.StatusInternalServerError, internalError("Unable to register schema version"))
		return
	}

	h.recordCommand("register_version", "success")
	h.notify.DispatchSchemaVersionDeleted(notifier.DeletionMessage{
		SchemaName:    schemaName,
		VersionID:     out.VersionID,
		VersionNumber: out.VersionNumber,
	})

	h.log.Info("Schema version registered", nil, map[string]interface{}{
		"requestId":     requestID(c),
		"schemaName":    schemaName,
		"versionId":     out.VersionID,
		"versionNumber": out.VersionNumber,
	})
	c.JSON(http.StatusOK, RegisterVersionResponse{
		VersionID:     out.VersionID,
		VersionNumber: out.VersionNumber,
		Status:        string(out.Status),
	})
}

// CheckValidity handles POST /api/check-schema-version-validity.
func (h *Handlers) CheckValidity(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidRequest("Unable to read request body"))
		return
	}

	req, err := parseBody(c.Request.Context(), checkValidityBody, body)
	if err != nil {
		fields, _ := faults.FieldErrors(err)
		c.JSON(http.StatusBadRequest, validationError("Provided an invalid format and/or definition", fields))
		return
	}

	out, err := h.store.CheckVersionValidity(c.Request.Context(), schemastore.CheckValidityInput{
		Format:     schemastore.DataFormat(req.Format),
		Definition: req.Definition,
	})
	if err != nil {
		h.recordCommand("check_validity", "failure")
		h.log.Error("Failed to check schema version validity", err, map[string]interface{}{
			"requestId": requestID(c),
			"code":      string(faults.CodeOf(err)),
		})
		c.JSON(http.StatusInternalServerError, internalError("Unable to check schema version validity"))
		return
	}

	h.recordCommand("check_validity", "success")
	c.JSON(http.StatusOK, CheckValidityResponse{
		IsValid: out.IsValid,
		Error:   out.Error,
	})
}

// Health handles GET /healthz. It reports process liveness only; dependency
// health shows up in metrics instead.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) recordCommand(operation, result string) {
	if h.metrics != nil {
		h.metrics.IncrementStoreCommands(operation, result)
	}
}
