package schemastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/schemaworks/registrar/internal/faults"
)

// Client is the default implementation of Store. It speaks the registry's
// JSON command API over HTTP.
//
// The client is constructed once at startup and shared by all handlers and
// consumers; it holds no mutable state beyond the HTTP connection pool.
type Client struct {
	cfg        Config
	httpClient *http.Client

	// newName generates the opaque, collision-resistant schema name for
	// CreateSchema. Overridable in tests.
	newName func() string
}

// NewClient creates a schema store client. Returns the concrete *Client type.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("schema store base URL is required")
	}
	if cfg.RegistryName == "" {
		return nil, fmt.Errorf("schema store registry name is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		newName: uuid.NewString,
	}, nil
}

// CheckVersionValidity asks the store to judge a candidate definition.
func (c *Client) CheckVersionValidity(ctx context.Context, in CheckValidityInput) (CheckValidityOutput, error) {
	const op = "schemastore.CheckVersionValidity"

	body := map[string]interface{}{
		"dataFormat":       in.Format,
		"schemaDefinition": in.Definition,
	}

	var res struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	if fail := c.postJSON(ctx, op, c.commandURL("schema-version-validity"), body, &res); fail != nil {
		return CheckValidityOutput{}, fail
	}

	return CheckValidityOutput{
		IsValid: res.Valid,
		Error:   res.Error,
	}, nil
}

// CreateSchema allocates a new schema identity under a locally generated,
// collision-resistant name.
func (c *Client) CreateSchema(ctx context.Context, in CreateSchemaInput) (CreateSchemaOutput, error) {
	const op = "schemastore.CreateSchema"

	body := map[string]interface{}{
		"schemaName":       c.newName(),
		"dataFormat":       in.Format,
		"schemaDefinition": in.Definition,
		"compatibility":    in.Compatibility,
	}

	var res struct {
		SchemaName      string `json:"schemaName"`
		SchemaVersionID string `json:"schemaVersionId"`
	}
	if fail := c.postJSON(ctx, op, c.commandURL("schemas"), body, &res); fail != nil {
		return CreateSchemaOutput{}, fail
	}

	// A 2xx with missing identity fields is an ambiguous partial success:
	// the schema may or may not exist, so the failure is terminal rather
	// than retried with a second create.
	if res.SchemaName == "" || res.SchemaVersionID == "" {
		return CreateSchemaOutput{}, faults.EmptyResponse(op)
	}

	return CreateSchemaOutput{
		Name:             res.SchemaName,
		InitialVersionID: res.SchemaVersionID,
	}, nil
}

// RegisterVersion appends a new version to an existing schema.
func (c *Client) RegisterVersion(ctx context.Context, in RegisterVersionInput) (RegisterVersionOutput, error) {
	const op = "schemastore.RegisterVersion"

	body := map[string]interface{}{
		"schemaDefinition": in.Definition,
	}

	var res struct {
		SchemaVersionID string        `json:"schemaVersionId"`
		VersionNumber   int           `json:"versionNumber"`
		Status          VersionStatus `json:"status"`
	}
	u := c.commandURL("schemas", in.SchemaName, "versions")
	if fail := c.postJSON(ctx, op, u, body, &res); fail != nil {
		return RegisterVersionOutput{}, fail
	}

	if res.SchemaVersionID == "" || res.VersionNumber == 0 || res.Status == "" {
		return RegisterVersionOutput{}, faults.EmptyResponse(op)
	}

	return RegisterVersionOutput{
		VersionID:     res.SchemaVersionID,
		VersionNumber: res.VersionNumber,
		Status:        res.Status,
	}, nil
}

// DeleteSchema marks a schema for removal. A store response indicating the
// schema is already gone is treated as success so batch deletions stay
// idempotent.
func (c *Client) DeleteSchema(ctx context.Context, schemaName string) error {
	const op = "schemastore.DeleteSchema"

	if schemaName == "" {
		return faults.Unknown(op, fmt.Errorf("empty schema name"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.commandURL("schemas", schemaName), nil)
	if err != nil {
		return faults.Unknown(op, err)
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return faults.Unknown(op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		// Already deleted, or never existed. Benign.
		return nil
	default:
		return faults.Unknown(op, statusError(resp))
	}
}

// commandURL joins the base URL, the registry segment and the given path
// segments, escaping each segment.
func (c *Client) commandURL(segments ...string) string {
	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, "registries", c.cfg.RegistryName)
	parts = append(parts, segments...)
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.Join(parts, "/")
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}
}

// postJSON issues one POST command and decodes the 2xx response into out.
// Every transport, status or decode problem is classified UNKNOWN_ERROR.
func (c *Client) postJSON(ctx context.Context, op, u string, body, out interface{}) *faults.Failure {
	raw, err := json.Marshal(body)
	if err != nil {
		return faults.Unknown(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
	if err != nil {
		return faults.Unknown(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return faults.Unknown(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return faults.Unknown(op, statusError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return faults.Unknown(op, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// statusError summarizes a non-2xx response. The body is truncated so a
// misbehaving store cannot flood logs.
func statusError(resp *http.Response) error {
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("schema store returned status %d: %s", resp.StatusCode, string(excerpt))
}
