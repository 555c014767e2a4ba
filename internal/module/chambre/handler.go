package chambre

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/pkg"
)

// ChambreHandler serves the JSON API for rooms.
type ChambreHandler struct {
	svc domain.ChambreService
}

// NewChambreHandler creates a ChambreHandler.
func NewChambreHandler(svc domain.ChambreService) *ChambreHandler {
	return &ChambreHandler{svc: svc}
}

// List handles GET /api/v1/chambres.
func (h *ChambreHandler) List(c *gin.Context) {
	chambres, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if chambres == nil {
		chambres = []domain.Chambre{}
	}
	pkg.Success(c, chambres)
}

// Get handles GET /api/v1/chambres/:id.
func (h *ChambreHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	ch, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if ch == nil {
		pkg.Error(c, notFound())
		return
	}
	pkg.Success(c, ch)
}

// Availability handles GET /api/v1/chambres/:id/availability. An unknown
// room is reported as unavailable.
func (h *ChambreHandler) Availability(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	available, err := h.svc.IsAvailable(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, AvailabilityResponse{ID: id, Disponibilite: available})
}

// Create handles POST /api/v1/chambres.
func (h *ChambreHandler) Create(c *gin.Context) {
	var req ChambreRequest
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

// Update handles PUT /api/v1/chambres/:id.
func (h *ChambreHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req ChambreUpdateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	ch, err := h.svc.Update(c.Request.Context(), id, req.Input())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, ch)
}

// Delete handles DELETE /api/v1/chambres/:id.
func (h *ChambreHandler) Delete(c *gin.Context) {
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

func bindID(c *gin.Context) (uint, bool) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return 0, false
	}
	return id, true
}
