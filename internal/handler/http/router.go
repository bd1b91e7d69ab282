package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paietrack/paietrack-backend-go/internal/config"
	"github.com/paietrack/paietrack-backend-go/internal/domain/user"
	"github.com/paietrack/paietrack-backend-go/internal/handler/http/middleware"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/jwt"
)

// Handlers groups every HTTP handler wired into the router.
type Handlers struct {
	Auth       AuthHandler
	Company    CompanyHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	User       UserHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers, registry *prometheus.Registry) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "paietrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(cfg.App.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method("GET", "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints are brute-forceable, so they get a per-IP cap.
			r.Use(httprate.LimitByIP(cfg.App.AuthRateLimit, time.Minute))

			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/companies", func(r chi.Router) {
				r.Post("/", h.Company.Create)

				r.Route("/my", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionCompanyView)).Get("/", h.Company.GetMine)
					r.With(middleware.RequirePermission(user.PermissionCompanyManage)).Put("/", h.Company.Update)
				})

				// Cross-company operations, platform administrators only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Get("/", h.Company.List)
					r.Delete("/{id}", h.Company.Deactivate)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.List)
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/{id}", h.Employee.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Terminate)
					r.Post("/{id}/qr-token", h.Employee.RotateQRToken)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCheckSelf)).Post("/check-in", h.Attendance.CheckIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCheckSelf)).Post("/check-out", h.Attendance.CheckOut)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/today", h.Attendance.GetToday)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/my", h.Attendance.ListMine)

				r.With(middleware.RequirePermission(user.PermissionAttendanceScanQR)).Post("/scan", h.Attendance.ScanQR)
				r.With(middleware.RequirePermission(user.PermissionAttendanceOverride)).Post("/override", h.Attendance.Override)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.List)

				r.Route("/rules", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.GetRules)
					r.With(middleware.RequirePermission(user.PermissionAttendanceOverride)).Put("/", h.Attendance.UpdateRules)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/runs", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/", h.Payroll.ListPayRuns)
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/{id}", h.Payroll.GetPayRun)
					r.With(middleware.RequirePermission(user.PermissionPayrollManage)).Post("/", h.Payroll.CreatePayRun)
					r.With(middleware.RequirePermission(user.PermissionPayrollManage)).Post("/{id}/generate", h.Payroll.Generate)
				})

				r.Route("/bulletins", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollViewOwn)).Get("/my", h.Payroll.ListMyBulletins)
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/", h.Payroll.ListBulletins)
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/{id}", h.Payroll.GetBulletin)
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/{id}/payslip", h.Payroll.DownloadPayslip)
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/{id}/payments", h.Payroll.ListPayments)
					r.With(middleware.RequirePermission(user.PermissionPaymentProcess)).Post("/{id}/payments", h.Payroll.RecordPayment)
				})

				r.With(middleware.RequirePermission(user.PermissionPaymentProcess)).Post("/payments/bulk", h.Payroll.RecordBulkPayment)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/attendance", h.Report.AttendanceReport)
				r.Get("/payroll/{id}", h.Report.PayrollReport)
			})

			r.With(middleware.RequirePermission(user.PermissionDashboardView)).Get("/dashboard", h.Dashboard.GetSummary)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Patch("/{id}/activate", h.User.Activate)
				r.Patch("/{id}/deactivate", h.User.Deactivate)
			})
		})
	})
	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
