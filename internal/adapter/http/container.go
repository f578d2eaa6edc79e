package http

import (
	"errors"

	"taskboard/internal/adapter/database"
	"taskboard/internal/adapter/http/handler"
	"taskboard/internal/adapter/http/routes"
	"taskboard/internal/core/port"
	"taskboard/internal/core/service"
	"taskboard/internal/core/telemetry"
	"taskboard/pkg/auth"
	"taskboard/pkg/config"

	"go.uber.org/zap"
)

// Container wires the services and handlers of one binary. The users service
// gets only the user handler; the todos service gets the list and todo handlers.
type Container struct {
	Repositories *database.Repositories
	Cache        port.CacheRepository

	ListService port.ListService
	TodoService port.TodoService
	UserService port.UserService

	HealthHandler *handler.HealthHandler
	ListHandler   *handler.ListHandler
	TodoHandler   *handler.TodoHandler
	UserHandler   *handler.UserHandler
}

type ContainerDeps struct {
	Repositories *database.Repositories
	Cache        port.CacheRepository
	JWT          *auth.JWT
	Probe        port.Telemetry
	Metrics      *telemetry.AppMetrics
	Logger       *zap.Logger
}

func NewContainer(serviceName string, deps ContainerDeps) *Container {
	repos := deps.Repositories

	c := &Container{
		Repositories:  repos,
		Cache:         deps.Cache,
		HealthHandler: handler.NewHealthHandler(serviceName),
	}

	switch serviceName {
	case config.ServiceUsers:
		userSvc := service.NewUserService(repos.Users, deps.Probe, deps.Logger)

		c.UserService = userSvc
		c.UserHandler = handler.NewUserHandler(userSvc, deps.JWT, deps.Metrics, deps.Logger)
	default:
		locker := service.NewScopeLocker()
		listSvc := service.NewListService(repos.Lists, repos.Todos, locker, deps.Probe, deps.Logger)
		todoSvc := service.NewTodoService(repos.Todos, repos.Lists, locker, deps.Probe, deps.Logger)

		c.ListService = listSvc
		c.TodoService = todoSvc
		c.ListHandler = handler.NewListHandler(listSvc, deps.Metrics, deps.Logger)
		c.TodoHandler = handler.NewTodoHandler(todoSvc, deps.Metrics, deps.Logger)
	}

	return c
}

func (c *Container) Handlers() routes.HandlersConfig {
	return routes.HandlersConfig{
		Health: c.HealthHandler,
		User:   c.UserHandler,
		List:   c.ListHandler,
		Todo:   c.TodoHandler,
	}
}

func (c *Container) Close() error {
	var errs []error

	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}

	if c.Repositories != nil && c.Repositories.Close != nil {
		errs = append(errs, c.Repositories.Close())
	}

	return errors.Join(errs...)
}
