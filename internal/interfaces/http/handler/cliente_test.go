package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcliente "github.com/crm/backend/internal/application/cliente"
	"github.com/crm/backend/internal/domain/cliente"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClienteRepository is an in-memory cliente.Repository for handler tests.
type fakeClienteRepository struct {
	byID map[uuid.UUID]*cliente.Cliente
}

func newFakeClienteRepository() *fakeClienteRepository {
	return &fakeClienteRepository{byID: make(map[uuid.UUID]*cliente.Cliente)}
}

func (f *fakeClienteRepository) Create(_ context.Context, c *cliente.Cliente) (*cliente.Cliente, error) {
	for _, existing := range f.byID {
		if existing.Email == c.Email {
			return nil, shared.ErrAlreadyExists
		}
	}
	copied := *c
	f.byID[c.ID] = &copied
	return &copied, nil
}

func (f *fakeClienteRepository) FindByID(_ context.Context, id uuid.UUID) (*cliente.Cliente, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClienteRepository) FindByEmail(_ context.Context, email string) (*cliente.Cliente, error) {
	for _, c := range f.byID {
		if c.Email == email {
			copied := *c
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeClienteRepository) FindAll(_ context.Context) ([]cliente.Cliente, error) {
	out := make([]cliente.Cliente, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClienteRepository) UpdateFields(_ context.Context, id uuid.UUID, update cliente.FieldUpdate) (*cliente.Cliente, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if update.Nome != nil {
		c.Nome = *update.Nome
	}
	if update.Email != nil {
		c.Email = *update.Email
	}
	if update.Telefone != nil {
		c.Telefone = *update.Telefone
	}
	c.Touch()
	copied := *c
	return &copied, nil
}

// noopCache always misses and accepts every write.
type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, error) {
	return nil, shared.ErrCacheMiss
}

func (noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, string) error { return nil }

func (noopCache) Exists(context.Context, string) (bool, error) { return false, nil }

// noopPublisher swallows every event.
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, shared.DomainEvent) error { return nil }

func setupRouter(t *testing.T) (*gin.Engine, *fakeClienteRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	repo := newFakeClienteRepository()
	service := appcliente.NewClienteService(repo, noopCache{}, noopPublisher{}, nil)
	h := NewClienteHandler(service)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine, repo
}

func seedCliente(t *testing.T, repo *fakeClienteRepository) *cliente.Cliente {
	t.Helper()
	c, err := cliente.NewCliente("Ana Silva", "ana@example.com", "11987654321")
	require.NoError(t, err)
	created, err := repo.Create(context.Background(), c)
	require.NoError(t, err)
	return created
}

func performRequest(engine *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCreateClienteEndpoint(t *testing.T) {
	engine, _ := setupRouter(t)

	body := []byte(`{"nome":"Ana Silva","email":"ana@example.com","telefone":"11987654321"}`)
	w := performRequest(engine, http.MethodPost, "/api/v1/clientes", body)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Cliente criado com sucesso", env.Message)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Ana Silva", data["nome"])
}

func TestCreateClienteEndpointMissingFields(t *testing.T) {
	engine, _ := setupRouter(t)

	w := performRequest(engine, http.MethodPost, "/api/v1/clientes", []byte(`{"nome":"Ana Silva"}`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
	assert.NotEmpty(t, env.Error.Details)
}

func TestCreateClienteEndpointInvalidShapes(t *testing.T) {
	engine, _ := setupRouter(t)

	body := []byte(`{"nome":"Jo","email":"not-an-email","telefone":"123"}`)
	w := performRequest(engine, http.MethodPost, "/api/v1/clientes", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
	assert.Len(t, env.Error.Details, 3)
}

func TestCreateClienteEndpointDuplicate(t *testing.T) {
	engine, repo := setupRouter(t)
	seedCliente(t, repo)

	body := []byte(`{"nome":"Outra Ana","email":"ana@example.com","telefone":"11987654321"}`)
	w := performRequest(engine, http.MethodPost, "/api/v1/clientes", body)

	require.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_ALREADY_EXISTS", env.Error.Code)
}

func TestGetClienteEndpoint(t *testing.T) {
	engine, repo := setupRouter(t)
	c := seedCliente(t, repo)

	w := performRequest(engine, http.MethodGet, "/api/v1/clientes/"+c.ID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, c.ID.String(), data["id"])
}

func TestGetClienteEndpointNotFound(t *testing.T) {
	engine, _ := setupRouter(t)

	w := performRequest(engine, http.MethodGet, "/api/v1/clientes/"+uuid.NewString(), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_NOT_FOUND", env.Error.Code)
}

func TestGetClienteEndpointInvalidID(t *testing.T) {
	engine, _ := setupRouter(t)

	w := performRequest(engine, http.MethodGet, "/api/v1/clientes/not-a-uuid", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListClientesEndpoint(t *testing.T) {
	engine, repo := setupRouter(t)
	seedCliente(t, repo)

	w := performRequest(engine, http.MethodGet, "/api/v1/clientes", nil)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var data struct {
		Clientes []map[string]interface{} `json:"clientes"`
		Total    int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Total)
	assert.Len(t, data.Clientes, 1)
}

func TestUpdateClienteEndpoint(t *testing.T) {
	engine, repo := setupRouter(t)
	c := seedCliente(t, repo)

	body := []byte(`{"nome":"Ana Souza"}`)
	w := performRequest(engine, http.MethodPut, "/api/v1/clientes/"+c.ID.String(), body)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Cliente atualizado com sucesso", env.Message)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Ana Souza", data["nome"])
	assert.Equal(t, "ana@example.com", data["email"])
}

func TestUpdateClienteEndpointNotFound(t *testing.T) {
	engine, _ := setupRouter(t)

	body := []byte(`{"nome":"Ana Souza"}`)
	w := performRequest(engine, http.MethodPut, "/api/v1/clientes/"+uuid.NewString(), body)

	require.Equal(t, http.StatusNotFound, w.Code)
}
