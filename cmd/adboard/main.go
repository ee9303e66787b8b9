package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/adboard/internal/config"
	"github.com/xxxsen/adboard/internal/db"
	"github.com/xxxsen/adboard/internal/handler"
	"github.com/xxxsen/adboard/internal/middleware"
	"github.com/xxxsen/adboard/internal/repo"
	"github.com/xxxsen/adboard/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "adboard",
		Short: "adboard classified ads server",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json (optional, env overrides apply)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run adboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, conn, err := setup(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			return runServer(cfg, conn)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, conn, err := setup(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			logutil.GetLogger(context.Background()).Info("migrations applied")
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func setup(configPath string) (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded",
		zap.String("config", configPath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return cfg, conn, nil
}

func runServer(cfg *config.Config, conn *sqlx.DB) error {
	jwtSecret := []byte(cfg.JWTSecret)
	jwtTTL := time.Duration(cfg.JWTTTLHours) * time.Hour

	authService := service.NewAuthService(repo.NewUserRepo(conn), jwtSecret, jwtTTL)
	adService := service.NewAdService(repo.NewAdRepo(conn))

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Ads:       handler.NewAdHandler(adService),
		Health:    handler.NewHealthHandler(conn),
		JWTSecret: jwtSecret,
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.Recover(),
			middleware.CORS(cfg.CORSAllowOrigins),
			gzip.Gzip(gzip.DefaultCompression),
			middleware.Timeout(time.Duration(cfg.RequestTimeoutMs)*time.Millisecond),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening",
		zap.String("addr", addr),
		zap.Int("jwt_ttl_hours", cfg.JWTTTLHours),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logutil.GetLogger(context.Background()).Info("server stopping...")
		return nil
	case err := <-errCh:
		return fmt.Errorf("serve http: %w", err)
	}
}
