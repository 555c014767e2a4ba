package app

import "github.com/gin-gonic/gin"

// Module is a feature that mounts its own routes. api is /api/v1, behind the
// mutation guard when auth is on; pages is the CSRF-protected HTML group.
// A module without pages ignores the second group.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup)
}
