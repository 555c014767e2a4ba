package client

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/middleware"
	"github.com/simp-lee/gohotel/internal/pkg"
)

const (
	listTemplate   = "client/list.html"
	formTemplate   = "client/form.html"
	deleteTemplate = "client/delete.html"
	listURL        = "/clients"
	inputErrorMsg  = "Veuillez vérifier les champs du formulaire"
)

// ClientPageHandler renders the client pages and handles their htmx forms.
type ClientPageHandler struct {
	svc domain.ClientService
}

// NewClientPageHandler creates a ClientPageHandler.
func NewClientPageHandler(svc domain.ClientService) *ClientPageHandler {
	return &ClientPageHandler{svc: svc}
}

// ListPage handles GET /clients.
func (h *ClientPageHandler) ListPage(c *gin.Context) {
	clients, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
		return
	}
	c.HTML(http.StatusOK, listTemplate, gin.H{
		"Title":     "Clients",
		"Clients":   clients,
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

// NewPage handles GET /clients/new.
func (h *ClientPageHandler) NewPage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, nil, "")
}

// EditPage handles GET /clients/:id/edit.
func (h *ClientPageHandler) EditPage(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}
	h.renderForm(c, http.StatusOK, client, "")
}

// DeletePage handles GET /clients/:id/delete, the confirmation page.
func (h *ClientPageHandler) DeletePage(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}
	h.renderDelete(c, http.StatusOK, client, "")
}

// CreateHTMX handles POST /clients.
func (h *ClientPageHandler) CreateHTMX(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.DebugContext(c.Request.Context(), "create client: bind error", "error", err)
		h.renderForm(c, http.StatusOK, formValues(0, req), inputErrorMsg)
		return
	}

	if _, err := h.svc.Create(c.Request.Context(), req.Input()); err != nil {
		h.renderForm(c, http.StatusOK, formValues(0, req), pkg.PageErrorMessage(err, "La création du client a échoué"))
		return
	}

	pkg.ShowToast(c, "Client créé", pkg.ToastSuccess)
	pkg.Redirect(c, listURL)
	c.Status(http.StatusOK)
}

// UpdateHTMX handles PUT /clients/:id.
func (h *ClientPageHandler) UpdateHTMX(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", gin.H{})
		return
	}

	var req ClientRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.DebugContext(c.Request.Context(), "update client: bind error", "error", err, "id", id)
		h.renderForm(c, http.StatusOK, formValues(id, req), inputErrorMsg)
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), id, req.Input()); err != nil {
		if domain.IsNotFound(err) {
			c.HTML(http.StatusNotFound, "errors/404.html", gin.H{})
			return
		}
		h.renderForm(c, http.StatusOK, formValues(id, req), pkg.PageErrorMessage(err, "La mise à jour du client a échoué"))
		return
	}

	pkg.ShowToast(c, "Client mis à jour", pkg.ToastSuccess)
	pkg.Redirect(c, listURL)
	c.Status(http.StatusOK)
}

// DeleteHTMX handles DELETE /clients/:id. A client with reservations is not
// deleted; the confirmation page is rendered again with the reason.
func (h *ClientPageHandler) DeleteHTMX(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		c.Header("HX-Reswap", "none")
		pkg.ShowToast(c, "Identifiant de client invalide", pkg.ToastError)
		c.Status(http.StatusOK)
		return
	}

	err = h.svc.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		pkg.ShowToast(c, "Client supprimé", pkg.ToastSuccess)
		pkg.Redirect(c, listURL)
		c.Status(http.StatusOK)
	case domain.IsInUse(err):
		client, _ := h.svc.FindByID(c.Request.Context(), id)
		if client == nil {
			client = &domain.Client{BaseModel: domain.BaseModel{ID: id}}
		}
		h.renderDelete(c, http.StatusConflict, client, pkg.PageErrorMessage(err, ""))
	case domain.IsNotFound(err):
		c.Header("HX-Reswap", "none")
		pkg.ShowToast(c, "Client introuvable ou déjà supprimé", pkg.ToastError)
		c.Status(http.StatusOK)
	default:
		_ = c.Error(err)
		c.Header("HX-Reswap", "none")
		pkg.ShowToast(c, "La suppression a échoué, réessayez plus tard", pkg.ToastError)
		c.Status(http.StatusOK)
	}
}

// load fetches the client named by :id, rendering an error page and
// returning false when that is not possible.
func (h *ClientPageHandler) load(c *gin.Context) (*domain.Client, bool) {
	id, err := pkg.ParseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", gin.H{})
		return nil, false
	}
	client, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
		return nil, false
	}
	if client == nil {
		c.HTML(http.StatusNotFound, "errors/404.html", gin.H{})
		return nil, false
	}
	return client, true
}

func (h *ClientPageHandler) renderForm(c *gin.Context, status int, client *domain.Client, errMsg string) {
	isEdit := client != nil && client.ID != 0
	title := "Nouveau client"
	if isEdit {
		title = "Modifier le client"
	}
	c.HTML(status, formTemplate, gin.H{
		"Title":     title,
		"Client":    client,
		"IsEdit":    isEdit,
		"Error":     errMsg,
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

func (h *ClientPageHandler) renderDelete(c *gin.Context, status int, client *domain.Client, errMsg string) {
	c.HTML(status, deleteTemplate, gin.H{
		"Title":     "Supprimer le client",
		"Client":    client,
		"Error":     errMsg,
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

// formValues echoes submitted values back into the form after a failure.
func formValues(id uint, req ClientRequest) *domain.Client {
	return &domain.Client{
		BaseModel:   domain.BaseModel{ID: id},
		Nom:         req.Nom,
		Telephone:   req.Telephone,
		Email:       req.Email,
		NbPersonnes: req.NbPersonnes,
	}
}
