package models

import (
	"time"

	"github.com/crm/backend/internal/domain/cliente"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClienteModel is the persistence model for clientes. Email carries a unique
// index, which is the authoritative uniqueness guard under concurrency.
type ClienteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_clientes_email"`
	Telefone  string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ClienteModel) TableName() string {
	return "clientes"
}

// ToDomain converts the persistence model to the domain aggregate
func (m *ClienteModel) ToDomain() *cliente.Cliente {
	return &cliente.Cliente{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Nome:     m.Nome,
		Email:    m.Email,
		Telefone: m.Telefone,
	}
}

// ClienteModelFromDomain converts the domain aggregate to the persistence model
func ClienteModelFromDomain(c *cliente.Cliente) *ClienteModel {
	return &ClienteModel{
		ID:        c.ID,
		Nome:      c.Nome,
		Email:     c.Email,
		Telefone:  c.Telefone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
