package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/config"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/hrms-lite-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/memory"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/mongodb"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hrms-lite-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hrms-lite-go/internal/service/employee"
	"github.com/go-chi/httplog/v3"
)

// gateway bundles one storage backend's repositories with its lifecycle hooks.
type gateway struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	transactor     database.Transactor
	pinger         database.Pinger
	close          func(ctx context.Context) error
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
}

func openGateway(ctx context.Context, cfg *config.Config) (*gateway, error) {
	switch cfg.Database.Driver {
	case config.DriverMongoDB:
		db, err := database.NewMongoDB(ctx, cfg.MongoDB.URL, cfg.MongoDB.Database)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		if err := db.EnsureIndexes(ctx); err != nil {
			_ = db.Close(ctx)
			return nil, err
		}
		return &gateway{
			employeeRepo:   mongodb.NewEmployeeRepository(db),
			attendanceRepo: mongodb.NewAttendanceRepository(db),
			transactor:     mongodb.NewTransactor(),
			pinger:         db,
			close:          db.Close,
		}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return &gateway{
			employeeRepo:   postgresql.NewEmployeeRepository(db),
			attendanceRepo: postgresql.NewAttendanceRepository(db),
			transactor:     postgresql.NewTransactor(db),
			pinger:         db,
			close: func(context.Context) error {
				db.Close()
				return nil
			},
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		return &gateway{
			employeeRepo:   memory.NewEmployeeRepository(store),
			attendanceRepo: memory.NewAttendanceRepository(store),
			transactor:     memory.NewTransactor(),
			pinger:         store,
			close:          func(context.Context) error { return nil },
		}, nil
	}

	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	gw, err := openGateway(startCtx, cfg)
	cancel()
	if err != nil {
		slog.Error("Failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}

	employeeSvc := employeeService.NewEmployeeService(gw.transactor, gw.employeeRepo, gw.attendanceRepo)
	attendanceSvc := attendanceService.NewAttendanceService(gw.attendanceRepo, gw.employeeRepo)

	router := appHTTP.NewRouter(
		cfg,
		logger,
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewHealthHandler(gw.pinger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting",
			"port", cfg.App.Port,
			"base_path", cfg.HTTP.BasePath,
			"driver", cfg.Database.Driver,
			"cors_origins", strings.Join(cfg.HTTP.CORSAllowedOrigins, ","),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-quit:
		slog.Info("Shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		exitCode = 1
	}
	if err := gw.close(shutdownCtx); err != nil {
		slog.Error("Failed to close database", "error", err)
		exitCode = 1
	}

	slog.Info("Server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
