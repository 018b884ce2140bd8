package cliente

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/cliente"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cache key scheme shared by all orchestrators. Entity entries and the list
// snapshot are invalidated together on every write.
const (
	cacheKeyPrefix = "cliente:"
	cacheKeyList   = "clientes:list"

	// DefaultCacheTTL bounds staleness for read-through entries when no
	// TTL is configured.
	DefaultCacheTTL = 300 * time.Second
)

func clienteCacheKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}

// ClienteService orchestrates cliente operations across the durable store,
// the cache and the event broker. The store is the source of truth; cache
// and broker failures are logged and never fail the operation.
type ClienteService struct {
	repo      cliente.Repository
	cache     shared.CacheService
	publisher shared.EventPublisher
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// ServiceOption configures the service
type ServiceOption func(*ClienteService)

// WithCacheTTL overrides the TTL applied to cache entries. Non-positive
// values keep the default.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *ClienteService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// NewClienteService creates the service with its injected ports.
func NewClienteService(
	repo cliente.Repository,
	cache shared.CacheService,
	publisher shared.EventPublisher,
	logger *zap.Logger,
	opts ...ServiceOption,
) *ClienteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ClienteService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		cacheTTL:  DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and persists a new cliente, invalidates the list cache
// and publishes the creation event.
func (s *ClienteService) Create(ctx context.Context, input CreateClienteInput) (*ClienteResponse, error) {
	email := cliente.NormalizeEmail(input.Email)

	if violations := cliente.ValidateNew(input.Nome, email, input.Telefone); len(violations) > 0 {
		return nil, shared.NewValidationError("cliente data is invalid", violations)
	}

	// Fast-path uniqueness check for a friendly error. The unique index is
	// still the authoritative guard against concurrent creates.
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return nil, shared.NewConflictError("a cliente with this email already exists")
	}

	c, err := cliente.NewCliente(input.Nome, email, input.Telefone)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewConflictError("a cliente with this email already exists")
		}
		return nil, fmt.Errorf("failed to create cliente: %w", err)
	}

	s.invalidateCache(ctx, cacheKeyList)
	s.publish(ctx, cliente.QueueClienteCriado, cliente.NewClienteCriadoEvent(created))

	return ToClienteResponse(created), nil
}

// GetByID returns a cliente, serving from cache when possible and caching
// the store result on a miss.
func (s *ClienteService) GetByID(ctx context.Context, id uuid.UUID) (*ClienteResponse, error) {
	key := clienteCacheKey(id)

	if cached, ok := s.cacheGet(ctx, key); ok {
		var resp ClienteResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Cliente", id.String())
		}
		return nil, fmt.Errorf("failed to find cliente: %w", err)
	}

	resp := ToClienteResponse(c)
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// List returns the full collection with its total, serving the cached
// snapshot when present.
func (s *ClienteService) List(ctx context.Context) (*ListClientesResponse, error) {
	if cached, ok := s.cacheGet(ctx, cacheKeyList); ok {
		var resp ListClientesResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", cacheKeyList))
	}

	clientes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clientes: %w", err)
	}

	resp := &ListClientesResponse{
		Clientes: make([]ClienteResponse, 0, len(clientes)),
		Total:    len(clientes),
	}
	for i := range clientes {
		resp.Clientes = append(resp.Clientes, *ToClienteResponse(&clientes[i]))
	}

	s.cacheSet(ctx, cacheKeyList, resp)
	return resp, nil
}

// Update applies a partial update, invalidates both cache entries and
// publishes the update event carrying only the touched fields.
func (s *ClienteService) Update(ctx context.Context, id uuid.UUID, input UpdateClienteInput) (*ClienteResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Cliente", id.String())
		}
		return nil, fmt.Errorf("failed to find cliente: %w", err)
	}

	update := cliente.FieldUpdate{
		Nome:     input.Nome,
		Telefone: input.Telefone,
	}
	if input.Email != nil {
		normalized := cliente.NormalizeEmail(*input.Email)
		update.Email = &normalized
	}

	// Nothing to change: skip the store write, the invalidations and the
	// event entirely.
	if update.Empty() {
		return ToClienteResponse(existing), nil
	}

	if violations := cliente.ValidateUpdate(update); len(violations) > 0 {
		return nil, shared.NewValidationError("cliente data is invalid", violations)
	}

	if update.Email != nil && *update.Email != existing.Email {
		owner, err := s.repo.FindByEmail(ctx, *update.Email)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if owner != nil && owner.ID != existing.ID {
			return nil, shared.NewConflictError("a cliente with this email already exists")
		}
	}

	updated, err := s.repo.UpdateFields(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrNotFound):
			return nil, shared.NewNotFoundError("Cliente", id.String())
		case errors.Is(err, shared.ErrAlreadyExists):
			return nil, shared.NewConflictError("a cliente with this email already exists")
		default:
			return nil, fmt.Errorf("failed to update cliente: %w", err)
		}
	}

	s.invalidateCache(ctx, clienteCacheKey(id))
	s.invalidateCache(ctx, cacheKeyList)
	s.publish(ctx, cliente.QueueClienteAtualizado, cliente.NewClienteAtualizadoEvent(id, update))

	return ToClienteResponse(updated), nil
}

// cacheGet attempts a cache read. A miss or cache failure both report
// not-ok; failures are logged.
func (s *ClienteService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, shared.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// cacheSet marshals and stores a value, logging instead of failing.
func (s *ClienteService) cacheSet(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidateCache deletes a key, logging instead of failing.
func (s *ClienteService) invalidateCache(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

// publish emits an event, logging instead of failing.
func (s *ClienteService) publish(ctx context.Context, queue string, event shared.DomainEvent) {
	if err := s.publisher.Publish(ctx, queue, event); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("queue", queue),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}
