package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/qmsdocs/backend/config"
	"github.com/qmsdocs/backend/internal/handler"
	"github.com/qmsdocs/backend/internal/middleware"
)

func Setup(
	cfg *config.Config,
	manualHandler *handler.ManualHandler,
	sectionHandler *handler.SectionHandler,
	procedureHandler *handler.ProcedureHandler,
	documentHandler *handler.DocumentHandler,
	searchHandler *handler.SearchHandler,
	userHandler *handler.UserHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.UserResolver())

	mustUser := middleware.RequireUser()

	api := r.Group("/api")
	{
		manuals := api.Group("/manuals")
		{
			manuals.POST("", mustUser, manualHandler.Create)
			manuals.GET("", manualHandler.List)
			manuals.GET("/:id", manualHandler.Get)
			manuals.PUT("/:id", mustUser, manualHandler.Update)
			manuals.DELETE("/:id", mustUser, manualHandler.Delete)
			manuals.POST("/:id/submit-for-review", mustUser, manualHandler.SubmitForReview)
			manuals.POST("/:id/approve", mustUser, manualHandler.Approve)
			manuals.POST("/:id/archive", mustUser, manualHandler.Archive)
		}

		sections := api.Group("/sections")
		{
			sections.POST("", mustUser, sectionHandler.Create)
			sections.GET("", sectionHandler.List)
			sections.POST("/reorder", mustUser, sectionHandler.Reorder)
			sections.GET("/:id", sectionHandler.Get)
			sections.PUT("/:id", mustUser, sectionHandler.Update)
			sections.DELETE("/:id", mustUser, sectionHandler.Delete)
		}

		procedures := api.Group("/procedures")
		{
			procedures.POST("", mustUser, procedureHandler.Create)
			procedures.GET("", procedureHandler.List)
			procedures.GET("/:id", procedureHandler.Get)
			procedures.PUT("/:id", mustUser, procedureHandler.Update)
			procedures.DELETE("/:id", mustUser, procedureHandler.Delete)
			procedures.POST("/:id/submit-for-review", mustUser, procedureHandler.SubmitForReview)
			procedures.POST("/:id/approve", mustUser, procedureHandler.Approve)
			procedures.POST("/:id/mark-obsolete", mustUser, procedureHandler.MarkObsolete)
		}

		documents := api.Group("/documents")
		{
			documents.POST("", mustUser, documentHandler.Create)
			documents.GET("", documentHandler.List)
			documents.GET("/:id", documentHandler.Get)
			documents.PUT("/:id", mustUser, documentHandler.Update)
			documents.DELETE("/:id", mustUser, documentHandler.Delete)
			documents.POST("/:id/submit-for-review", mustUser, documentHandler.SubmitForReview)
			documents.POST("/:id/approve", mustUser, documentHandler.Approve)
			documents.POST("/:id/upload", mustUser, documentHandler.Upload)
			documents.GET("/:id/download", documentHandler.Download)
		}

		api.GET("/search/global", searchHandler.Global)

		users := api.Group("/users")
		{
			users.POST("", userHandler.Create)
			users.GET("/me", userHandler.Me)
		}
	}

	return r
}
