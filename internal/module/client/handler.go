package client

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/pkg"
)

// ClientHandler serves the JSON API for clients.
type ClientHandler struct {
	svc domain.ClientService
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(svc domain.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	pkg.Success(c, clients)
}

// Get handles GET /api/v1/clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	client, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if client == nil {
		pkg.Error(c, notFound())
		return
	}
	pkg.Success(c, client)
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	id, err := h.svc.Create(c.Request.Context(), req.Input())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, CreatedResponse{ID: id})
}

// Update handles PUT /api/v1/clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req ClientRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	client, err := h.svc.Update(c.Request.Context(), id, req.Input())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, client)
}

// Delete handles DELETE /api/v1/clients/:id.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}

// bindID parses the :id parameter, answering 400 when it is not a positive integer.
func bindID(c *gin.Context) (uint, bool) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return 0, false
	}
	return id, true
}
