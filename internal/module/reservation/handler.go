package reservation

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/pkg"
)

// ReservationHandler serves the JSON API for reservations.
type ReservationHandler struct {
	svc domain.ReservationService
}

// NewReservationHandler creates a ReservationHandler.
func NewReservationHandler(svc domain.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// List handles GET /api/v1/reservations.
func (h *ReservationHandler) List(c *gin.Context) {
	views, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if views == nil {
		views = []domain.ReservationView{}
	}
	pkg.Success(c, views)
}

// Get handles GET /api/v1/reservations/:id.
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	view, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if view == nil {
		pkg.Error(c, notFound())
		return
	}
	pkg.Success(c, view)
}

// Create handles POST /api/v1/reservations and answers with the stored view.
func (h *ReservationHandler) Create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	id, err := h.svc.Create(ctx, in)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	view, err := h.svc.FindByID(ctx, id)
	if err != nil {
		_ = c.Error(err)
	}
	if view == nil {
		pkg.Created(c, CreatedResponse{ID: id})
		return
	}
	pkg.Created(c, view)
}

// Update handles PUT /api/v1/reservations/:id.
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}

	view, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, view)
}

// Delete handles DELETE /api/v1/reservations/:id.
func (h *ReservationHandler) Delete(c *gin.Context) {
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

func bindInput(c *gin.Context) (domain.ReservationInput, bool) {
	var req ReservationRequest
	if !pkg.BindAndValidate(c, &req) {
		return domain.ReservationInput{}, false
	}
	in, err := req.Input()
	if err != nil {
		pkg.Error(c, err)
		return domain.ReservationInput{}, false
	}
	return in, true
}

func bindID(c *gin.Context) (uint, bool) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return 0, false
	}
	return id, true
}
