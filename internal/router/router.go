package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmpark/company-catalog-backend/config"
	"github.com/jmpark/company-catalog-backend/internal/app/controller"
	"github.com/jmpark/company-catalog-backend/internal/middleware"
)

type Router struct {
	companyController *controller.CompanyController
	tagController     *controller.TagController
	config            *config.Config
}

func NewRouter(
	companyController *controller.CompanyController,
	tagController *controller.TagController,
	cfg *config.Config,
) *Router {
	return &Router{
		companyController: companyController,
		tagController:     tagController,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Company catalog API is running",
		})
	})

	companies := router.Group("/companies")
	{
		companies.GET("/name/auto/:name", r.companyController.GetCompaniesByNameAuto)
		companies.GET("/name/:name", r.companyController.GetCompaniesByNameExact)
		companies.GET("/tags/:tag", r.companyController.GetCompaniesByTag)
		companies.GET("/:company", r.companyController.GetCompanyByID)

		// Name-based association routes; :company holds a display name.
		companies.POST("/:company/tag/name/:tag", r.tagController.AttachTagByName)
		companies.DELETE("/:company/tag/name/:tag", r.tagController.DetachTagByName)

		// ID-based variants, immune to name ambiguity.
		companies.POST("/:company/tag/:tag_id", r.tagController.AttachTagByID)
		companies.DELETE("/:company/tag/:tag_id", r.tagController.DetachTagByID)
	}

	router.POST("/tags", r.tagController.CreateTag)

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
