package payment

import (
	"github.com/kapitulo/kapitulo/internal/payment/repository"
	"github.com/kapitulo/kapitulo/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
