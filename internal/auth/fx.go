package auth

import (
	"github.com/kapitulo/kapitulo/internal/auth/repository"
	"github.com/kapitulo/kapitulo/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
