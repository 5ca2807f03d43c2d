package chapter

import (
	"github.com/kapitulo/kapitulo/internal/chapter/repository"
	"github.com/kapitulo/kapitulo/internal/chapter/service"
	"go.uber.org/fx"
)

var Module = fx.Module("chapter.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
