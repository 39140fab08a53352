package router

import (
	userapp "github.com/seuhd/campuscoffee/internal/application"
	"github.com/seuhd/campuscoffee/internal/container"
	repouser "github.com/seuhd/campuscoffee/internal/domain/repository"
	pginfra "github.com/seuhd/campuscoffee/internal/infrastructure/postgres"
	handlers "github.com/seuhd/campuscoffee/internal/interface/http"
	"github.com/seuhd/campuscoffee/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	service := userapp.NewService(repo, container.GetLogger())
	handler := handlers.NewUserHandler(service, container.GetLogger())

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules constructs all application modules and registers them
// with the router registry. Called once during startup.
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
