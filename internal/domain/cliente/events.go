package cliente

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Queue names and event type discriminators. These are part of the wire
// contract with downstream consumers and must not change.
const (
	QueueClienteCriado     = "cliente.criado"
	QueueClienteAtualizado = "cliente.atualizado"

	EventClienteCriado     = "CLIENTE_CRIADO"
	EventClienteAtualizado = "CLIENTE_ATUALIZADO"
)

// ClienteCriadoData is the full projection published on creation.
type ClienteCriadoData struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
}

// ClienteAtualizadoData carries the record identity plus only the fields
// that changed. Untouched fields are omitted from the payload.
type ClienteAtualizadoData struct {
	ID       string  `json:"id"`
	Nome     *string `json:"nome,omitempty"`
	Email    *string `json:"email,omitempty"`
	Telefone *string `json:"telefone,omitempty"`
}

// NewClienteCriadoEvent builds the creation event for a persisted cliente.
func NewClienteCriadoEvent(c *Cliente) shared.DomainEvent {
	return shared.NewDomainEvent(EventClienteCriado, ClienteCriadoData{
		ID:       c.ID.String(),
		Nome:     c.Nome,
		Email:    c.Email,
		Telefone: c.Telefone,
	})
}

// NewClienteAtualizadoEvent builds the update event from the applied
// field update.
func NewClienteAtualizadoEvent(id uuid.UUID, update FieldUpdate) shared.DomainEvent {
	return shared.NewDomainEvent(EventClienteAtualizado, ClienteAtualizadoData{
		ID:       id.String(),
		Nome:     update.Nome,
		Email:    update.Email,
		Telefone: update.Telefone,
	})
}
