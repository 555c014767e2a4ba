package chambre

import "github.com/gin-gonic/gin"

// ChambreModule registers the room API and page routes.
type ChambreModule struct {
	handler     *ChambreHandler
	pageHandler *ChambrePageHandler
}

// NewModule creates a ChambreModule. It panics if either handler is nil.
func NewModule(h *ChambreHandler, ph *ChambrePageHandler) *ChambreModule {
	if h == nil {
		panic("chambre.NewModule: handler must not be nil")
	}
	if ph == nil {
		panic("chambre.NewModule: pageHandler must not be nil")
	}
	return &ChambreModule{handler: h, pageHandler: ph}
}

// RegisterRoutes implements app.Module.
func (m *ChambreModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	api.GET("/chambres", m.handler.List)
	api.POST("/chambres", m.handler.Create)
	api.GET("/chambres/:id", m.handler.Get)
	api.GET("/chambres/:id/availability", m.handler.Availability)
	api.PUT("/chambres/:id", m.handler.Update)
	api.DELETE("/chambres/:id", m.handler.Delete)

	pages.GET("/chambres", m.pageHandler.ListPage)
	pages.GET("/chambres/new", m.pageHandler.NewPage)
	pages.GET("/chambres/:id/edit", m.pageHandler.EditPage)
	pages.GET("/chambres/:id/delete", m.pageHandler.DeletePage)
	pages.POST("/chambres", m.pageHandler.CreateHTMX)
	pages.PUT("/chambres/:id", m.pageHandler.UpdateHTMX)
	pages.DELETE("/chambres/:id", m.pageHandler.DeleteHTMX)
}
