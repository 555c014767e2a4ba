package reservation

import "github.com/gin-gonic/gin"

// ReservationModule registers the reservation API and page routes.
type ReservationModule struct {
	handler     *ReservationHandler
	pageHandler *ReservationPageHandler
}

// NewModule creates a ReservationModule. It panics if either handler is nil.
func NewModule(h *ReservationHandler, ph *ReservationPageHandler) *ReservationModule {
	if h == nil {
		panic("reservation.NewModule: handler must not be nil")
	}
	if ph == nil {
		panic("reservation.NewModule: pageHandler must not be nil")
	}
	return &ReservationModule{handler: h, pageHandler: ph}
}

// RegisterRoutes implements app.Module.
func (m *ReservationModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	api.GET("/reservations", m.handler.List)
	api.POST("/reservations", m.handler.Create)
	api.GET("/reservations/:id", m.handler.Get)
	api.PUT("/reservations/:id", m.handler.Update)
	api.DELETE("/reservations/:id", m.handler.Delete)

	pages.GET("/reservations", m.pageHandler.ListPage)
	pages.GET("/reservations/new", m.pageHandler.NewPage)
	pages.GET("/reservations/:id/edit", m.pageHandler.EditPage)
	pages.GET("/reservations/:id/delete", m.pageHandler.DeletePage)
	pages.POST("/reservations", m.pageHandler.CreateHTMX)
	pages.PUT("/reservations/:id", m.pageHandler.UpdateHTMX)
	pages.DELETE("/reservations/:id", m.pageHandler.DeleteHTMX)
}
