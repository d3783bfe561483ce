package i

import "github.com/gin-gonic/gin"

// Controller registers its routes on the API router.
type Controller interface {
	Register(*gin.RouterGroup)
}
