package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/kapitulo/kapitulo/internal/activity"
	activitydomain "github.com/kapitulo/kapitulo/internal/activity/domain"
	"github.com/kapitulo/kapitulo/internal/auth"
	authdomain "github.com/kapitulo/kapitulo/internal/auth/domain"
	"github.com/kapitulo/kapitulo/internal/chapter"
	chapterdomain "github.com/kapitulo/kapitulo/internal/chapter/domain"
	"github.com/kapitulo/kapitulo/internal/clock"
	"github.com/kapitulo/kapitulo/internal/config"
	"github.com/kapitulo/kapitulo/internal/contribution"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	"github.com/kapitulo/kapitulo/internal/member"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	"github.com/kapitulo/kapitulo/internal/payment"
	paymentdomain "github.com/kapitulo/kapitulo/internal/payment/domain"
	"github.com/kapitulo/kapitulo/internal/providers/pdf"
	"github.com/kapitulo/kapitulo/internal/report"
	reportdomain "github.com/kapitulo/kapitulo/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(registerGin),
	auth.Module,
	member.Module,
	payment.Module,
	chapter.Module,
	activity.Module,
	contribution.Module,
	report.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	clock           clock.Clock
	dues            *config.DuesPolicyHolder
	authSvc         authdomain.Service
	memberSvc       memberdomain.Service
	paymentSvc      paymentdomain.Service
	chapterSvc      chapterdomain.Service
	activitySvc     activitydomain.Service
	contributionSvc contributiondomain.Service
	reportSvc       reportdomain.Service
	pdfProvider     pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	Clock           clock.Clock
	Dues            *config.DuesPolicyHolder
	AuthSvc         authdomain.Service
	MemberSvc       memberdomain.Service
	PaymentSvc      paymentdomain.Service
	ChapterSvc      chapterdomain.Service
	ActivitySvc     activitydomain.Service
	ContributionSvc contributiondomain.Service
	ReportSvc       reportdomain.Service
	PDFProvider     pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		clock:           p.Clock,
		dues:            p.Dues,
		authSvc:         p.AuthSvc,
		memberSvc:       p.MemberSvc,
		paymentSvc:      p.PaymentSvc,
		chapterSvc:      p.ChapterSvc,
		activitySvc:     p.ActivitySvc,
		contributionSvc: p.ContributionSvc,
		reportSvc:       p.ReportSvc,
		pdfProvider:     p.PDFProvider,
	}

	svc.registerPublicRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerPublicRoutes() {
	s.engine.POST("/login", s.Login)

	// Member self-service: batch-number lookup, no credentials involved.
	s.engine.GET("/portal/:batchNumber", s.GetPortalStatus)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/", s.RequireAdmin())

	api.PUT("/account", s.UpdateAccount)

	// -------- Members --------
	api.GET("/members", s.ListMembers)
	api.POST("/members", s.CreateMember)
	api.GET("/members/:id", s.GetMemberByID)
	api.PUT("/members/:id", s.UpdateMember)
	api.DELETE("/members/:id", s.DeleteMember)

	// -------- Payments --------
	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/member/:memberId", s.ListPaymentsByMember)
	api.DELETE("/payments/clear", s.ClearPayments)
	api.DELETE("/payments/:id", s.DeletePayment)
	api.GET("/recent-payments", s.ListRecentPayments)

	// -------- Dashboard / Reports --------
	api.GET("/stats", s.GetStats)
	api.GET("/reports/monthly", s.GetMonthlyReport)
	api.GET("/reports/members", s.ListMemberSummaries)

	// -------- Chapter Info --------
	api.GET("/chapter-info", s.GetChapterInfo)
	api.POST("/chapter-info", s.UpsertChapterInfo)

	// -------- Activities --------
	api.GET("/activities", s.ListActivities)
	api.POST("/activities", s.CreateActivity)
	api.GET("/activities/:id", s.GetActivityByID)
	api.PUT("/activities/:id", s.UpdateActivity)
	api.DELETE("/activities/:id", s.DeleteActivity)
	api.POST("/activities/:id/recompute", s.RecomputeActivity)

	// -------- Contributions --------
	api.GET("/contributions", s.ListContributions)
	api.POST("/contributions", s.CreateContribution)
	api.GET("/contributions/activity/:activityId", s.ListContributionsByActivity)
	api.DELETE("/contributions/:id", s.DeleteContribution)

	// -------- Exports --------
	api.GET("/export/payments.pdf", s.ExportPaymentsPDF)
	api.GET("/export/backup.json", s.ExportBackupJSON)
}
