package client

import "github.com/gin-gonic/gin"

// ClientModule registers the client API and page routes.
type ClientModule struct {
	handler     *ClientHandler
	pageHandler *ClientPageHandler
}

// NewModule creates a ClientModule. It panics if either handler is nil.
func NewModule(h *ClientHandler, ph *ClientPageHandler) *ClientModule {
	if h == nil {
		panic("client.NewModule: handler must not be nil")
	}
	if ph == nil {
		panic("client.NewModule: pageHandler must not be nil")
	}
	return &ClientModule{handler: h, pageHandler: ph}
}

// RegisterRoutes implements app.Module.
func (m *ClientModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	api.GET("/clients", m.handler.List)
	api.POST("/clients", m.handler.Create)
	api.GET("/clients/:id", m.handler.Get)
	api.PUT("/clients/:id", m.handler.Update)
	api.DELETE("/clients/:id", m.handler.Delete)

	pages.GET("/clients", m.pageHandler.ListPage)
	pages.GET("/clients/new", m.pageHandler.NewPage)
	pages.GET("/clients/:id/edit", m.pageHandler.EditPage)
	pages.GET("/clients/:id/delete", m.pageHandler.DeletePage)
	pages.POST("/clients", m.pageHandler.CreateHTMX)
	pages.PUT("/clients/:id", m.pageHandler.UpdateHTMX)
	pages.DELETE("/clients/:id", m.pageHandler.DeleteHTMX)
}
