package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"petlink/internal/db"
	"petlink/internal/discussion"
	"petlink/internal/handlers"
	"petlink/internal/middleware"
	"petlink/internal/services"
)

func RegisterRoutes(r *gin.Engine, allowOrigin string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: allowOrigin != "*",
		MaxAge:           300 * time.Second,
	}))

	// Wiring: the lifecycle manager drives the gorm store; the counter
	// side channel keeps the denormalized comment counts current.
	store := discussion.NewGormStore(db.DB)
	svc := discussion.NewService(store, services.NewCounterService())
	notify := services.NewNotifyService()

	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	brandHandler := handlers.NewBrandHandler()
	productHandler := handlers.NewProductHandler()
	reviewHandler := handlers.NewReviewHandler(svc)
	petLogHandler := handlers.NewPetLogHandler(svc)
	discussionHandler := handlers.NewDiscussionHandler(svc, notify)
	favoriteHandler := handlers.NewFavoriteHandler()
	notificationHandler := handlers.NewNotificationHandler()

	// Public routes
	r.GET("/brands", brandHandler.ListBrands)
	r.GET("/brands/:id", brandHandler.Detail)
	r.GET("/products", productHandler.List)
	r.GET("/products/:id", productHandler.Detail)
	r.GET("/products/:id/reviews", reviewHandler.ListByProduct)
	r.GET("/reviews/:rid", reviewHandler.Detail)
	r.GET("/logs", petLogHandler.List)
	r.GET("/logs/:lid", petLogHandler.Detail)
	r.GET("/logs/:lid/threads", discussionHandler.ListThreads)
	r.GET("/threads/:id", discussionHandler.ThreadDetail)
	r.GET("/u/:id", userHandler.Profile)

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/me", authHandler.Me)

	// Discussion mutations stay on the public group: the lifecycle
	// manager itself turns an anonymous actor into a login prompt instead
	// of dropping the action at the door.
	r.POST("/reviews/:rid/comments", discussionHandler.CreateReviewComment)
	r.POST("/logs/:lid/comments", discussionHandler.CreateLogComment)
	r.POST("/logs/:lid/threads", discussionHandler.CreateQuestion)
	r.POST("/threads/:id/answers", discussionHandler.CreateAnswer)
	r.POST("/threads/:id/comments", discussionHandler.CreateThreadComment)
	r.PUT("/posts/:id", discussionHandler.EditPost)
	r.DELETE("/posts/:id", discussionHandler.DeletePost)
	r.POST("/posts/:id/accept", discussionHandler.AcceptAnswer)
	r.POST("/posts/:id/upvote", discussionHandler.Upvote)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/reviews", reviewHandler.Create)
		authorized.PUT("/reviews/:rid", reviewHandler.Update)
		authorized.DELETE("/reviews/:rid", reviewHandler.Delete)

		authorized.POST("/logs", petLogHandler.Create)
		authorized.PUT("/logs/:lid", petLogHandler.Update)
		authorized.DELETE("/logs/:lid", petLogHandler.Delete)

		authorized.POST("/favorites/:id", favoriteHandler.Toggle)
		authorized.GET("/favorites", favoriteHandler.List)

		authorized.POST("/settings", userHandler.UpdateSettings)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)
	}
}
