package cliente

import (
	"context"

	"github.com/google/uuid"
)

// FieldUpdate carries the fields of a partial update. A nil pointer means
// the field is untouched; a non-nil pointer overwrites, even with an
// equal value.
type FieldUpdate struct {
	Nome     *string
	Email    *string
	Telefone *string
}

// Empty reports whether the update carries no fields at all.
func (u FieldUpdate) Empty() bool {
	return u.Nome == nil && u.Email == nil && u.Telefone == nil
}

// Repository is the durable store port for clientes.
//
// Lookup methods return shared.ErrNotFound when no record matches, so
// callers can tell absence apart from store failures with errors.Is.
// Write methods return shared.ErrAlreadyExists when the unique email
// constraint is violated.
type Repository interface {
	Create(ctx context.Context, c *Cliente) (*Cliente, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Cliente, error)
	FindByEmail(ctx context.Context, email string) (*Cliente, error)
	FindAll(ctx context.Context) ([]Cliente, error)
	UpdateFields(ctx context.Context, id uuid.UUID, update FieldUpdate) (*Cliente, error)
}
