package routes

import (
	"taskboard/internal/adapter/http/handler"
	"taskboard/internal/adapter/http/helper"
	"taskboard/pkg/auth"
	"taskboard/pkg/middlewares"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	Health *handler.HealthHandler
	User   *handler.UserHandler
	List   *handler.ListHandler
	Todo   *handler.TodoHandler
}

func SetupRouter(handlers HandlersConfig, opts middlewares.Options, jwt *auth.JWT) *gin.Engine {
	if opts.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middlewares.SetupGinMiddleware(router, opts)

	if handlers.Health != nil {
		router.GET("/health", handlers.Health.Health)
	}

	api := router.Group("/", middlewares.RouteMiddleware(opts, jwt, false)...)

	if handlers.User != nil {
		setupUserRoutes(api, handlers.User)
	}

	if handlers.List != nil {
		setupListRoutes(api, handlers.List)
	}

	if handlers.Todo != nil {
		setupTodoRoutes(api, handlers.Todo)
	}

	router.NoRoute(func(c *gin.Context) {
		helper.SendNotFoundError(c, "Route "+c.Request.Method+" "+c.Request.URL.Path+" not found")
	})

	return router
}

func setupUserRoutes(api *gin.RouterGroup, h *handler.UserHandler) {
	users := api.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.GetUsers)
		users.POST("/login", h.Login)
		users.GET("/:id", h.GetUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func setupListRoutes(api *gin.RouterGroup, h *handler.ListHandler) {
	lists := api.Group("/lists")
	{
		lists.POST("", h.CreateList)
		lists.GET("", h.GetLists)
		lists.POST("/defaults", h.EnsureDefaults)
		lists.GET("/:id", h.GetList)
		lists.PUT("/:id", h.UpdateList)
		lists.DELETE("/:id", h.DeleteList)
		lists.POST("/:id/reorder", h.ReorderList)
	}
}

func setupTodoRoutes(api *gin.RouterGroup, h *handler.TodoHandler) {
	todos := api.Group("/todos")
	{
		todos.POST("", h.CreateTodo)
		todos.GET("", h.GetTodos)
		todos.GET("/:id", h.GetTodo)
		todos.PUT("/:id", h.UpdateTodo)
		todos.DELETE("/:id", h.DeleteTodo)
		todos.POST("/:id/reorder", h.ReorderTodo)
		todos.POST("/:id/move", h.MoveTodo)
	}
}
