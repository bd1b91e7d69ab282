package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/paietrack/paietrack-backend-go/internal/config"
	appHTTP "github.com/paietrack/paietrack-backend-go/internal/handler/http"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/cron"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/jwt"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/metrics"
	"github.com/paietrack/paietrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/paietrack/paietrack-backend-go/internal/service/attendance"
	authService "github.com/paietrack/paietrack-backend-go/internal/service/auth"
	companyService "github.com/paietrack/paietrack-backend-go/internal/service/company"
	dashboardService "github.com/paietrack/paietrack-backend-go/internal/service/dashboard"
	employeeService "github.com/paietrack/paietrack-backend-go/internal/service/employee"
	payrollService "github.com/paietrack/paietrack-backend-go/internal/service/payroll"
	reportService "github.com/paietrack/paietrack-backend-go/internal/service/report"
	userService "github.com/paietrack/paietrack-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(registry)

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	rulesRepo := postgresql.NewRulesRepository(db)
	payRunRepo := postgresql.NewPayRunRepository(db)
	bulletinRepo := postgresql.NewBulletinRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo)
	companySvc := companyService.NewCompanyService(db, companyRepo, userRepo, rulesRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, rulesRepo, employeeRepo, appMetrics)
	payrollSvc := payrollService.NewPayrollService(db, payRunRepo, bulletinRepo, paymentRepo, employeeRepo, attendanceRepo, rulesRepo, companyRepo, appMetrics)
	dashboardSvc := dashboardService.NewDashboardService(db, dashboardRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, payRunRepo, bulletinRepo, appMetrics)
	userSvc := userService.NewUserService(db, userRepo, employeeRepo)

	scheduler := cron.NewScheduler()
	cron.NewAbsenceJobs(companyRepo, employeeRepo, rulesRepo, attendanceRepo).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc),
		Company:    appHTTP.NewCompanyHandler(companySvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		User:       appHTTP.NewUserHandler(userSvc),
	}, registry)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdown
	slog.Info("shutting down")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
