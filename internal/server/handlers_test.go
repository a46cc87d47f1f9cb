package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaworks/registrar/internal/faults"
	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/notifier"
	"github.com/schemaworks/registrar/internal/quota"
	"github.com/schemaworks/registrar/internal/schemastore"
)

// fakeStore scripts the schema store for handler tests.
type fakeStore struct {
	validity    schemastore.CheckValidityOutput
	validityErr error

	created   schemastore.CreateSchemaOutput
	createErr error

	registered  schemastore.RegisterVersionOutput
	registerErr error
	registerIn  schemastore.RegisterVersionInput
}

func (f *fakeStore) CheckVersionValidity(ctx context.Context, in schemastore.CheckValidityInput) (schemastore.CheckValidityOutput, error) {
	return f.validity, f.validityErr
}

func (f *fakeStore) CreateSchema(ctx context.Context, in schemastore.CreateSchemaInput) (schemastore.CreateSchemaOutput, error) {
	return f.created, f.createErr
}

func (f *fakeStore) RegisterVersion(ctx context.Context, in schemastore.RegisterVersionInput) (schemastore.RegisterVersionOutput, error) {
	f.registerIn = in
	return f.registered, f.registerErr
}

func (f *fakeStore) DeleteSchema(ctx context.Context, schemaName string) error {
	return nil
}

// fakeNotifier records dispatched messages synchronously.
type fakeNotifier struct {
	dispatched []notifier.DeletionMessage
}

func (f *fakeNotifier) SchemaVersionDeleted(ctx context.Context, msg notifier.DeletionMessage) error {
	f.dispatched = append(f.dispatched, msg)
	return nil
}

func (f *fakeNotifier) DispatchSchemaVersionDeleted(msg notifier.DeletionMessage) {
	f.dispatched = append(f.dispatched, msg)
}

// openLimiter permits everything.
type openLimiter struct{}

func (openLimiter) Allow(ctx context.Context, identifier string) (quota.Decision, error) {
	return quota.Decision{
		Permitted: true,
		Limit:     10,
		Remaining: 9,
		Reset:     time.Now().Add(10 * time.Second),
	}, nil
}

func testLogger() *logger.Logger {
	return logger.NewLoggerClient(logger.Config{Level: "error", ServiceName: "server-test"})
}

func newTestRouter(store schemastore.Store, notify notifier.Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandlers(store, notify, testLogger(), nil)
	return NewRouter(h, openLimiter{}, testLogger(), nil)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func errorPaths(resp ErrorResponse) []string {
	paths := make([]string, 0, len(resp.Errors))
	for _, fe := range resp.Errors {
		paths = append(paths, fe.Path)
	}
	return paths
}

func TestCreateSchemaSuccess(t *testing.T) {
	store := &fakeStore{created: schemastore.CreateSchemaOutput{
		Name:             "mw_9f2c1ab0",
		InitialVersionID: "init-version-id",
	}}
	router := newTestRouter(store, &fakeNotifier{})

	w := doRequest(router, http.MethodPost, "/api/schemas",
		`{"format":"JSON","definition":"{}","compatibility":"BACKWARD"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CreateSchemaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mw_9f2c1ab0", resp.Name)
	assert.Equal(t, "init-version-id", resp.InitialVersionID)
}

func TestCreateSchemaUnknownFormat(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeNotifier{})

	w := doRequest(router, http.MethodPost, "/api/schemas",
		`{"format":"XML","definition":"{}","compatibility":"BACKWARD"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Contains(t, errorPaths(resp), "/format")
}

func TestCreateSchemaMissingFields(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeNotifier{})

	w := doRequest(router, http.MethodPost, "/api/schemas", `{"format":"JSON"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	paths := errorPaths(resp)
	assert.Contains(t, paths, "/definition")
	assert.Contains(t, paths, "/compatibility")
}

func TestCreateSchemaStoreFault(t *testing.T) {
	store := &fakeStore{createErr: faults.Unknown("schemastore.create_schema", errors.New("status 503"))}
	router := newTestRouter(store, &fakeNotifier{})

	w := doRequest(router, http.MethodPost, "/api/schemas",
		`{"format":"JSON","definition":"{}","compatibility":"NONE"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
	assert.Equal(t, "Unable to create schema", resp.Message)
}

func TestRegisterVersionSuccessNotifies(t *testing.T) {
	store := &fakeStore{registered: schemastore.RegisterVersionOutput{
		VersionID:     "version-4411",
		VersionNumber: 3,
		Status:        schemastore.StatusAvailable,
	}}
	notify := &fakeNotifier{}
	router := newTestRouter(store, notify)

	w := doRequest(router, http.MethodPost, "/api/schemas/mw_9f2c1ab0/versions",
		`{"definition":"{\"type\":\"object\"}"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp RegisterVersionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "version-4411", resp.VersionID)
	assert.Equal(t, 3, resp.VersionNumber)
	assert.Equal(t, "AVAILABLE", resp.Status)

	assert.Equal(t, "mw_9f2c1ab0", store.registerIn.SchemaName)

	require.Len(t, notify.dispatched, 1)
	msg := notify.dispatched[0]
	assert.Equal(t, "mw_9f2c1ab0", msg.SchemaName)
	assert.Equal(t, "version-4411", msg.VersionID)
	assert.Equal(t, 3, msg.VersionNumber)
}

func TestRegisterVersionEmptyDefinition(t *testing.T) {
	notify := &fakeNotifier{}
	router := newTestRouter(&fakeStore{}, notify)

	w := doRequest(router, http.MethodPost, "/api/schemas/mw_9f2c1ab0/versions",
		`{"definition":""}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Contains(t, errorPaths(resp), "/definition")
	assert.Empty(t, notify.dispatched)
}

func TestRegisterVersionStoreFaultDoesNotNotify(t *testing.T) {
	store := &fakeStore{registerErr: faults.Unknown("schemastore.register_version", errors.New("status 500"))}
	notify := &fakeNotifier{}
	router := newTestRouter(store, notify)

	w := doRequest(router, http.MethodPost, "/api/schemas/mw_9f2c1ab0/versions",
		`{"definition":"{}"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, notify.dispatched)
}

func TestCheckValidityPassThrough(t *testing.T) {
	store := &fakeStore{validity: schemastore.CheckValidityOutput{
		IsValid: false,
		Error:   "definition is not valid JSON",
	}}
	router := newTestRouter(store, &fakeNotifier{})

	w := doRequest(router, http.MethodPost, "/api/check-schema-version-validity",
		`{"format":"JSON","definition":"{"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CheckValidityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.IsValid)
	assert.Equal(t, "definition is not valid JSON", resp.Error)
}

func TestCheckValidityUnknownFormat(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeNotifier{})

	w := doRequest(router, http.MethodPost, "/api/check-schema-version-validity",
		`{"format":"THRIFT","definition":"{}"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Contains(t, errorPaths(resp), "/format")
}

func TestUnsupportedMethod(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeNotifier{})

	w := doRequest(router, http.MethodGet, "/api/schemas", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Contains(t, resp.Message, "GET")
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeNotifier{})

	w := doRequest(router, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"), "liveness stays outside the gate")
}

func TestRequestIDEchoed(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-12345")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-12345", w.Header().Get(RequestIDHeader))
}

func TestRequestIDMinted(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeNotifier{})

	w := doRequest(router, http.MethodGet, "/healthz", "")

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
