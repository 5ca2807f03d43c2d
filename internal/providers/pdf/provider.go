package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

// Provider renders downloadable report artifacts.
type Provider interface {
	GeneratePaymentReport(ctx context.Context, data PaymentReportData) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
