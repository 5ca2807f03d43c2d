package activity

import (
	"github.com/kapitulo/kapitulo/internal/activity/repository"
	"github.com/kapitulo/kapitulo/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
