package http

import (
	"github.com/gin-gonic/gin"

	appsvc "gopherblog/internal/app"
	"gopherblog/internal/bootstrap"
	"gopherblog/internal/cache"
	"gopherblog/internal/platform/rabbitmq"
	"gopherblog/internal/repository"
	"gopherblog/internal/transport/http/handler"
	"gopherblog/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	authService := appsvc.NewAuthService(userRepo, app.Config.Auth.JWTSecret)
	blogService := appsvc.NewBlogService(
		postRepo,
		rabbitmq.NewPostEventPublisher(app.MQConn, app.Config.RabbitMQ.PostEventQueue),
		cache.NewPageCache(app.Redis, app.PageTTL(), app.PageDirtyTTL()),
	)
	authHandler := handler.NewAuthHandler(authService)
	blogHandler := handler.NewBlogHandler(blogService)
	healthHandler := handler.NewHealthHandler(app)

	authRequired := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	router.GET("/", func(c *gin.Context) {
		c.String(200, "Hello!")
	})
	router.GET("/healthz", healthHandler.Check)

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/protected", authRequired, authHandler.Protected)

	router.POST("/blogs", authRequired, blogHandler.Create)
	router.GET("/blogs", blogHandler.List)
	router.PUT("/blogs/:id", authRequired, blogHandler.Update)
	router.DELETE("/blogs/:id", authRequired, blogHandler.Delete)

	return router
}
