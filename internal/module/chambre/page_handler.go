package chambre

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/middleware"
	"github.com/simp-lee/gohotel/internal/pkg"
)

const (
	listTemplate   = "chambre/list.html"
	formTemplate   = "chambre/form.html"
	deleteTemplate = "chambre/delete.html"
	listURL        = "/chambres"
	inputErrorMsg  = "Veuillez vérifier les champs du formulaire"
)

// ChambrePageHandler renders the room pages and handles their htmx forms.
type ChambrePageHandler struct {
	svc domain.ChambreService
}

// NewChambrePageHandler creates a ChambrePageHandler.
func NewChambrePageHandler(svc domain.ChambreService) *ChambrePageHandler {
	return &ChambrePageHandler{svc: svc}
}

// ListPage handles GET /chambres.
func (h *ChambrePageHandler) ListPage(c *gin.Context) {
	chambres, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
		return
	}
	c.HTML(http.StatusOK, listTemplate, gin.H{
		"Title":     "Chambres",
		"Chambres":  chambres,
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

// NewPage handles GET /chambres/new. New rooms start available.
func (h *ChambrePageHandler) NewPage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, &domain.Chambre{Disponibilite: true}, "")
}

// EditPage handles GET /chambres/:id/edit.
func (h *ChambrePageHandler) EditPage(c *gin.Context) {
	ch, ok := h.load(c)
	if !ok {
		return
	}
	h.renderForm(c, http.StatusOK, ch, "")
}

// DeletePage handles GET /chambres/:id/delete.
func (h *ChambrePageHandler) DeletePage(c *gin.Context) {
	ch, ok := h.load(c)
	if !ok {
		return
	}
	h.renderDelete(c, http.StatusOK, ch, "")
}

// CreateHTMX handles POST /chambres.
func (h *ChambrePageHandler) CreateHTMX(c *gin.Context) {
	var req ChambreRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.DebugContext(c.Request.Context(), "create chambre: bind error", "error", err)
		h.renderForm(c, http.StatusOK, formValues(0, req), inputErrorMsg)
		return
	}

	if _, err := h.svc.Create(c.Request.Context(), req.Input()); err != nil {
		h.renderForm(c, http.StatusOK, formValues(0, req), pkg.PageErrorMessage(err, "La création de la chambre a échoué"))
		return
	}

	pkg.ShowToast(c, "Chambre créée", pkg.ToastSuccess)
	pkg.Redirect(c, listURL)
	c.Status(http.StatusOK)
}

// UpdateHTMX handles PUT /chambres/:id.
func (h *ChambrePageHandler) UpdateHTMX(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", gin.H{})
		return
	}

	var req ChambreUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.DebugContext(c.Request.Context(), "update chambre: bind error", "error", err, "id", id)
		h.renderForm(c, http.StatusOK, formValues(id, ChambreRequest(req)), inputErrorMsg)
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), id, req.Input()); err != nil {
		if domain.IsNotFound(err) {
			c.HTML(http.StatusNotFound, "errors/404.html", gin.H{})
			return
		}
		h.renderForm(c, http.StatusOK, formValues(id, ChambreRequest(req)), pkg.PageErrorMessage(err, "La mise à jour de la chambre a échoué"))
		return
	}

	pkg.ShowToast(c, "Chambre mise à jour", pkg.ToastSuccess)
	pkg.Redirect(c, listURL)
	c.Status(http.StatusOK)
}

// DeleteHTMX handles DELETE /chambres/:id. A room used by reservations is
// kept and its confirmation page is rendered again with status 409.
func (h *ChambrePageHandler) DeleteHTMX(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		c.Header("HX-Reswap", "none")
		pkg.ShowToast(c, "Identifiant de chambre invalide", pkg.ToastError)
		c.Status(http.StatusOK)
		return
	}

	err = h.svc.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		pkg.ShowToast(c, "Chambre supprimée", pkg.ToastSuccess)
		pkg.Redirect(c, listURL)
		c.Status(http.StatusOK)
	case domain.IsInUse(err):
		ch, _ := h.svc.FindByID(c.Request.Context(), id)
		if ch == nil {
			ch = &domain.Chambre{BaseModel: domain.BaseModel{ID: id}}
		}
		h.renderDelete(c, http.StatusConflict, ch, pkg.PageErrorMessage(err, ""))
	case domain.IsNotFound(err):
		c.Header("HX-Reswap", "none")
		pkg.ShowToast(c, "Chambre introuvable ou déjà supprimée", pkg.ToastError)
		c.Status(http.StatusOK)
	default:
		_ = c.Error(err)
		c.Header("HX-Reswap", "none")
		pkg.ShowToast(c, "La suppression a échoué, réessayez plus tard", pkg.ToastError)
		c.Status(http.StatusOK)
	}
}

func (h *ChambrePageHandler) load(c *gin.Context) (*domain.Chambre, bool) {
	id, err := pkg.ParseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", gin.H{})
		return nil, false
	}
	ch, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
		return nil, false
	}
	if ch == nil {
		c.HTML(http.StatusNotFound, "errors/404.html", gin.H{})
		return nil, false
	}
	return ch, true
}

func (h *ChambrePageHandler) renderForm(c *gin.Context, status int, ch *domain.Chambre, errMsg string) {
	isEdit := ch != nil && ch.ID != 0
	title := "Nouvelle chambre"
	if isEdit {
		title = "Modifier la chambre"
	}
	c.HTML(status, formTemplate, gin.H{
		"Title":     title,
		"Chambre":   ch,
		"IsEdit":    isEdit,
		"Error":     errMsg,
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

func (h *ChambrePageHandler) renderDelete(c *gin.Context, status int, ch *domain.Chambre, errMsg string) {
	c.HTML(status, deleteTemplate, gin.H{
		"Title":     "Supprimer la chambre",
		"Chambre":   ch,
		"Error":     errMsg,
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

func formValues(id uint, req ChambreRequest) *domain.Chambre {
	in := req.Input()
	return &domain.Chambre{
		BaseModel:     domain.BaseModel{ID: id},
		Numero:        in.Numero,
		Capacite:      in.Capacite,
		Disponibilite: in.Disponibilite,
	}
}
