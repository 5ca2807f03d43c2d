package member

import (
	"github.com/kapitulo/kapitulo/internal/member/repository"
	"github.com/kapitulo/kapitulo/internal/member/service"
	"go.uber.org/fx"
)

var Module = fx.Module("member.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
