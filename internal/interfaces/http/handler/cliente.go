package handler

import (
	appcliente "github.com/crm/backend/internal/application/cliente"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClienteHandler handles cliente HTTP requests
type ClienteHandler struct {
	BaseHandler
	service *appcliente.ClienteService
}

// NewClienteHandler creates a new ClienteHandler
func NewClienteHandler(service *appcliente.ClienteService) *ClienteHandler {
	return &ClienteHandler{service: service}
}

// RegisterRoutes registers cliente routes
func (h *ClienteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clientes := rg.Group("/clientes")
	{
		clientes.POST("", h.Create)
		clientes.GET("", h.List)
		clientes.GET("/:id", h.GetByID)
		clientes.PUT("/:id", h.Update)
	}
}

// CreateClienteRequest represents the creation payload. Field shapes are
// checked by the domain validation policy; the binding only requires
// presence.
type CreateClienteRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Telefone string `json:"telefone" binding:"required"`
}

// UpdateClienteRequest represents a partial update payload. Absent fields
// are left untouched.
type UpdateClienteRequest struct {
	Nome     *string `json:"nome"`
	Email    *string `json:"email"`
	Telefone *string `json:"telefone"`
}

// Create handles POST /clientes
func (h *ClienteHandler) Create(c *gin.Context) {
	var req CreateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), appcliente.CreateClienteInput{
		Nome:     req.Nome,
		Email:    req.Email,
		Telefone: req.Telefone,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp, "Cliente criado com sucesso")
}

// GetByID handles GET /clientes/:id
func (h *ClienteHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid cliente ID")
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid cliente ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /clientes
func (h *ClienteHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update handles PUT /clientes/:id
func (h *ClienteHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid cliente ID")
		return
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid cliente ID")
		return
	}

	var req UpdateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, appcliente.UpdateClienteInput{
		Nome:     req.Nome,
		Email:    req.Email,
		Telefone: req.Telefone,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, resp, "Cliente atualizado com sucesso")
}
