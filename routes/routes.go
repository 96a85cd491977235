package routes

import (
	"Wikirace/controllers"
	"Wikirace/middleware"
	"Wikirace/services/wiki"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, wikiClient *wiki.Client) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/login", controllers.Login())

	// The embedded navigation surface: rewritten wiki articles
	api.GET("/wiki-proxy", controllers.WikiProxy(wikiClient))

	authentication := api.Group("/auth")
	{
		// Anonymous callers get null; clients probe this for an existing session
		authentication.GET("/me", controllers.Me)

		authentication.DELETE("/logout", middleware.AuthRequired, controllers.Logout)
	}
}
