package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/todoflow/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Task     *apiHandler.TaskHandler
	List     *apiHandler.ListHandler
	Tag      *apiHandler.TagHandler
	Settings *apiHandler.SettingsHandler
	Pages    *apiHandler.PagesHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, guard func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Pages
	r.GET("/", guard(handlers.Pages.App))
	r.GET("/login", handlers.Pages.Login)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/logout", guard(handlers.Auth.Logout))
	r.GET("/api/v1/auth/session", handlers.Auth.Session)

	// Protected routes
	r.GET("/api/v1/tasks", guard(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", guard(handlers.Task.CreateTask))
	r.PUT("/api/v1/tasks/{id}", guard(handlers.Task.UpdateTask))
	r.POST("/api/v1/tasks/{id}/toggle", guard(handlers.Task.ToggleTask))
	r.DELETE("/api/v1/tasks/{id}", guard(handlers.Task.DeleteTask))

	r.GET("/api/v1/lists", guard(handlers.List.GetLists))
	r.POST("/api/v1/lists", guard(handlers.List.CreateList))
	r.DELETE("/api/v1/lists/{id}", guard(handlers.List.DeleteList))
	r.POST("/api/v1/lists/{id}/shares", guard(handlers.List.ShareList))
	r.DELETE("/api/v1/lists/{id}/shares/{username}", guard(handlers.List.UnshareList))

	r.GET("/api/v1/tags", guard(handlers.Tag.GetTags))
	r.POST("/api/v1/tags", guard(handlers.Tag.CreateTag))
	r.PUT("/api/v1/tags/{name}", guard(handlers.Tag.RenameTag))
	r.DELETE("/api/v1/tags/{name}", guard(handlers.Tag.DeleteTag))

	r.GET("/api/v1/theme", guard(handlers.Settings.GetTheme))
	r.PUT("/api/v1/theme", guard(handlers.Settings.SetTheme))

	return r
}
