package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/cliente"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClienteRepository implements cliente.Repository using GORM
type GormClienteRepository struct {
	db *gorm.DB
}

// NewGormClienteRepository creates a new GormClienteRepository
func NewGormClienteRepository(db *gorm.DB) *GormClienteRepository {
	return &GormClienteRepository{db: db}
}

// Create inserts a new cliente. A unique index violation on email is
// reported as shared.ErrAlreadyExists.
func (r *GormClienteRepository) Create(ctx context.Context, c *cliente.Cliente) (*cliente.Cliente, error) {
	model := models.ClienteModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, shared.ErrAlreadyExists
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds a cliente by its ID
func (r *GormClienteRepository) FindByID(ctx context.Context, id uuid.UUID) (*cliente.Cliente, error) {
	var model models.ClienteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a cliente by email. Emails are stored lowercased.
func (r *GormClienteRepository) FindByEmail(ctx context.Context, email string) (*cliente.Cliente, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.ClienteModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every cliente ordered by creation time
func (r *GormClienteRepository) FindAll(ctx context.Context) ([]cliente.Cliente, error) {
	var clienteModels []models.ClienteModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&clienteModels).Error; err != nil {
		return nil, err
	}

	clientes := make([]cliente.Cliente, len(clienteModels))
	for i, model := range clienteModels {
		clientes[i] = *model.ToDomain()
	}
	return clientes, nil
}

// UpdateFields applies a partial update and returns the refreshed record.
// Returns shared.ErrNotFound when no row matches and shared.ErrAlreadyExists
// when the new email collides with the unique index.
func (r *GormClienteRepository) UpdateFields(ctx context.Context, id uuid.UUID, update cliente.FieldUpdate) (*cliente.Cliente, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if update.Nome != nil {
		updates["nome"] = *update.Nome
	}
	if update.Email != nil {
		updates["email"] = strings.ToLower(*update.Email)
	}
	if update.Telefone != nil {
		updates["telefone"] = *update.Telefone
	}

	result := r.db.WithContext(ctx).
		Model(&models.ClienteModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, shared.ErrAlreadyExists
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// Ensure GormClienteRepository implements cliente.Repository
var _ cliente.Repository = (*GormClienteRepository)(nil)
