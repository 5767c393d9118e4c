package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gotodo/internal/app"
	"gotodo/internal/bootstrap"
	"gotodo/internal/cache"
	"gotodo/internal/platform/rabbitmq"
	"gotodo/internal/repository"
	"gotodo/internal/transport/http/handler"
	"gotodo/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	todoRepo := repository.NewTodoRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)
	listCache := cache.NewTodoListCache(
		app.Redis,
		time.Duration(app.Config.Redis.TodoListTTLSeconds)*time.Second,
	)
	activityPublisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
		app.Config.Auth.BcryptCost,
	)
	todoService := appsvc.NewTodoService(todoRepo, activityPublisher, listCache)

	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	activityHandler := handler.NewActivityHandler(activityRepo)

	authGate := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	authGroup := router.Group("/authentication")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/change-password", authGate, authHandler.ChangePassword)

	todoGroup := router.Group("/todos")
	todoGroup.Use(authGate)
	todoGroup.POST("/create", todoHandler.Create)
	todoGroup.GET("", todoHandler.List)
	todoGroup.GET("/:id", todoHandler.GetByID)
	todoGroup.PUT("/:id", todoHandler.Update)
	todoGroup.DELETE("/:id", todoHandler.Delete)

	router.GET("/activity", authGate, activityHandler.List)

	return router
}
