package cliente

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
)

// Cliente is the customer aggregate. Email is stored lowercased and is
// unique across the collection.
type Cliente struct {
	shared.BaseEntity
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
}

// NewCliente creates a validated cliente. Every violated rule is collected
// into a single ValidationError.
func NewCliente(nome, email, telefone string) (*Cliente, error) {
	nome = strings.TrimSpace(nome)
	email = NormalizeEmail(email)
	telefone = strings.TrimSpace(telefone)

	if violations := ValidateNew(nome, email, telefone); len(violations) > 0 {
		return nil, shared.NewValidationError("cliente data is invalid", violations)
	}

	return &Cliente{
		BaseEntity: shared.NewBaseEntity(),
		Nome:       nome,
		Email:      email,
		Telefone:   telefone,
	}, nil
}
