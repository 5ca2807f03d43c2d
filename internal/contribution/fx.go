package contribution

import (
	"github.com/kapitulo/kapitulo/internal/contribution/repository"
	"github.com/kapitulo/kapitulo/internal/contribution/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contribution.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
