package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rolodex-dev/rolodex/internal/handlers"
	"github.com/rolodex-dev/rolodex/internal/middleware"
	"github.com/rolodex-dev/rolodex/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:contact_id", middleware.AuthMiddleware(), handlers.WebSocket)
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		contacts := api.Group("/contacts", middleware.AuthMiddleware())
		{
			contacts.POST("", handlers.CreateContact)
			contacts.GET("", handlers.ListContacts)
			contacts.GET("/:contact_id", handlers.GetContact)
			contacts.PUT("/:contact_id", handlers.UpdateContact)
			contacts.PUT("/:contact_id/favorite", handlers.SetFavorite)
			contacts.DELETE("/:contact_id", handlers.DeleteContact)

			// Note endpoints (form-intent dispatch on POST)
			contacts.GET("/:contact_id/notes", handlers.ListNotes)
			contacts.POST("/:contact_id/notes", handlers.MutateNote)

			// Task endpoints
			contacts.GET("/:contact_id/todos", handlers.ListTasks)
			contacts.POST("/:contact_id/todos", handlers.MutateTask)
		}
	}

	return r
}
