package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"droscher.com/Taproom/configs"
	"droscher.com/Taproom/pkg/auth"
	"droscher.com/Taproom/pkg/integrations"
	"droscher.com/Taproom/pkg/repository"
	"droscher.com/Taproom/pkg/server"
)

type ServeCmd struct {
	ConfigFile string `default:".taproom.toml" help:"Path to config file" short:"c"`
}

func (s *ServeCmd) Run(ctx *Context) error {
	logger := newLogger(true, ctx.Debug)
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(s.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	if !ctx.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager := auth.NewAuthManager(conf, repo, logger)

	handlers := server.Handlers{
		Bars:   server.NewBarServer(repo, logger),
		Beers:  server.NewBeerServer(repo, integrations.FromConfig(conf, logger), logger),
		Orders: server.NewOrderServer(repo, logger),
		Users:  server.NewUserServer(authManager, repo, logger),
	}

	mux := http.NewServeMux()
	mux.Handle(server.NewHealthHandler(logger))
	mux.Handle("/", server.NewRouter(handlers, authManager.Middleware(), server.NewMetrics(), logger))

	svr := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Server.Port),
		ReadHeaderTimeout: conf.Server.ReadHeaderTimeout,
		Handler:           h2c.NewHandler(configureCORS(mux, conf.Server.AllowedOrigins), &http2.Server{}),
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)

	go func() {
		logger.Info("server listening", zap.String("address", svr.Addr))
		serveErr <- svr.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", zap.Error(err))

			return err
		}
	case <-signalCtx.Done():
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := svr.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down server", zap.Error(err))

			return err
		}
	}

	return nil
}

func configureCORS(mux *http.ServeMux, allowedOrigins []string) http.Handler {
	corsOpts := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH"},
		AllowedHeaders: []string{
			"accept",
			"accept-encoding",
			"accept-language",
			"authorization",
			"cache-control",
			"connect-protocol-version",
			"connect-timeout-ms",
			"content-length",
			"content-type",
			"grpc-timeout",
			"origin",
			"referer",
			"user-agent",
			"x-grpc-web",
			"x-user-agent",
		},
		ExposedHeaders: []string{
			"connect-protocol-version",
			"grpc-message",
			"grpc-status",
			"grpc-status-details-bin",
		},
		MaxAge: 86400, // 24 hours
	})

	return corsOpts.Handler(mux)
}
