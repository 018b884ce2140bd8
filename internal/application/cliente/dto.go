package cliente

import (
	"time"

	"github.com/crm/backend/internal/domain/cliente"
)

// CreateClienteInput carries the data for a new cliente.
type CreateClienteInput struct {
	Nome     string
	Email    string
	Telefone string
}

// UpdateClienteInput carries a partial update. Nil fields are untouched.
type UpdateClienteInput struct {
	Nome     *string
	Email    *string
	Telefone *string
}

// ClienteResponse is the read projection returned to callers and cached
// verbatim in Redis.
type ClienteResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Telefone  string    `json:"telefone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListClientesResponse is the collection projection with its total count,
// cached as one unit.
type ListClientesResponse struct {
	Clientes []ClienteResponse `json:"clientes"`
	Total    int               `json:"total"`
}

// ToClienteResponse projects a cliente aggregate into its response shape.
func ToClienteResponse(c *cliente.Cliente) *ClienteResponse {
	return &ClienteResponse{
		ID:        c.ID.String(),
		Nome:      c.Nome,
		Email:     c.Email,
		Telefone:  c.Telefone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
