package reservation

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/middleware"
	"github.com/simp-lee/gohotel/internal/pkg"
)

const (
	listTemplate   = "reservation/list.html"
	formTemplate   = "reservation/form.html"
	deleteTemplate = "reservation/delete.html"
	listURL        = "/reservations"
	inputErrorMsg  = "Veuillez vérifier les champs du formulaire"
)

// formData holds the submitted or stored values of the reservation form.
type formData struct {
	ID        uint
	ClientID  uint
	ChambreID uint
	DateDebut string
	DateFin   string
}

// ReservationPageHandler renders the reservation pages and handles their htmx forms.
type ReservationPageHandler struct {
	svc      domain.ReservationService
	clients  domain.ClientService
	chambres domain.ChambreService
}

// NewReservationPageHandler creates a ReservationPageHandler.
func NewReservationPageHandler(svc domain.ReservationService, clients domain.ClientService, chambres domain.ChambreService) *ReservationPageHandler {
	return &ReservationPageHandler{svc: svc, clients: clients, chambres: chambres}
}

// ListPage handles GET /reservations.
func (h *ReservationPageHandler) ListPage(c *gin.Context) {
	views, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
		return
	}
	c.HTML(http.StatusOK, listTemplate, gin.H{
		"Title":        "Réservations",
		"Reservations": views,
		"CSRFToken":    middleware.GetCSRFToken(c),
	})
}

// NewPage handles GET /reservations/new.
func (h *ReservationPageHandler) NewPage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, formData{}, "")
}

// EditPage handles GET /reservations/:id/edit.
func (h *ReservationPageHandler) EditPage(c *gin.Context) {
	view, ok := h.load(c)
	if !ok {
		return
	}
	h.renderForm(c, http.StatusOK, formData{
		ID:        view.ID,
		ClientID:  view.ClientID,
		ChambreID: view.ChambreID,
		DateDebut: view.DateDebut.String(),
		DateFin:   view.DateFin.String(),
	}, "")
}

// DeletePage handles GET /reservations/:id/delete.
func (h *ReservationPageHandler) DeletePage(c *gin.Context) {
	view, ok := h.load(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, deleteTemplate, gin.H{
		"Title":       "Annuler la réservation",
		"Reservation": view,
		"CSRFToken":   middleware.GetCSRFToken(c),
	})
}

// CreateHTMX handles POST /reservations.
func (h *ReservationPageHandler) CreateHTMX(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.DebugContext(c.Request.Context(), "create reservation: bind error", "error", err)
		h.renderForm(c, http.StatusOK, formValues(0, req), inputErrorMsg)
		return
	}
	in, err := req.Input()
	if err == nil {
		_, err = h.svc.Create(c.Request.Context(), in)
	}
	if err != nil {
		h.renderForm(c, http.StatusOK, formValues(0, req), pkg.PageErrorMessage(err, "La création de la réservation a échoué"))
		return
	}

	pkg.ShowToast(c, "Réservation créée", pkg.ToastSuccess)
	pkg.Redirect(c, listURL)
	c.Status(http.StatusOK)
}

// UpdateHTMX handles PUT /reservations/:id.
func (h *ReservationPageHandler) UpdateHTMX(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", gin.H{})
		return
	}

	var req ReservationRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.DebugContext(c.Request.Context(), "update reservation: bind error", "error", err, "id", id)
		h.renderForm(c, http.StatusOK, formValues(id, req), inputErrorMsg)
		return
	}
	in, err := req.Input()
	if err == nil {
		_, err = h.svc.Update(c.Request.Context(), id, in)
	}
	if err != nil {
		if domain.IsNotFound(err) {
			c.HTML(http.StatusNotFound, "errors/404.html", gin.H{})
			return
		}
		h.renderForm(c, http.StatusOK, formValues(id, req), pkg.PageErrorMessage(err, "La mise à jour de la réservation a échoué"))
		return
	}

	pkg.ShowToast(c, "Réservation mise à jour", pkg.ToastSuccess)
	pkg.Redirect(c, listURL)
	c.Status(http.StatusOK)
}

// DeleteHTMX handles DELETE /reservations/:id.
func (h *ReservationPageHandler) DeleteHTMX(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		c.Header("HX-Reswap", "none")
		pkg.ShowToast(c, "Identifiant de réservation invalide", pkg.ToastError)
		c.Status(http.StatusOK)
		return
	}

	err = h.svc.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		pkg.ShowToast(c, "Réservation annulée", pkg.ToastSuccess)
		pkg.Redirect(c, listURL)
	case domain.IsNotFound(err):
		c.Header("HX-Reswap", "none")
		pkg.ShowToast(c, "Réservation introuvable ou déjà annulée", pkg.ToastError)
	default:
		_ = c.Error(err)
		c.Header("HX-Reswap", "none")
		pkg.ShowToast(c, "L'annulation a échoué, réessayez plus tard", pkg.ToastError)
	}
	c.Status(http.StatusOK)
}

func (h *ReservationPageHandler) load(c *gin.Context) (*domain.ReservationView, bool) {
	id, err := pkg.ParseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", gin.H{})
		return nil, false
	}
	view, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
		return nil, false
	}
	if view == nil {
		c.HTML(http.StatusNotFound, "errors/404.html", gin.H{})
		return nil, false
	}
	return view, true
}

// renderForm renders the form with the client and room choices. A failure to
// list them leaves the selects empty rather than failing the page.
func (h *ReservationPageHandler) renderForm(c *gin.Context, status int, data formData, errMsg string) {
	ctx := c.Request.Context()
	clients, err := h.clients.FindAll(ctx)
	if err != nil {
		_ = c.Error(err)
	}
	chambres, err := h.chambres.FindAll(ctx)
	if err != nil {
		_ = c.Error(err)
	}

	title := "Nouvelle réservation"
	if data.ID != 0 {
		title = "Modifier la réservation"
	}
	c.HTML(status, formTemplate, gin.H{
		"Title":       title,
		"Reservation": data,
		"IsEdit":      data.ID != 0,
		"Clients":     clients,
		"Chambres":    chambres,
		"Error":       errMsg,
		"CSRFToken":   middleware.GetCSRFToken(c),
	})
}

func formValues(id uint, req ReservationRequest) formData {
	return formData{
		ID:        id,
		ClientID:  req.ClientID,
		ChambreID: req.ChambreID,
		DateDebut: req.DateDebut,
		DateFin:   req.DateFin,
	}
}
