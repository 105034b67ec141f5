package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/cbrecommend/pkg/cli/config"
	httpctrl "github.com/secmon-lab/cbrecommend/pkg/controller/http"
	"github.com/secmon-lab/cbrecommend/pkg/service/worker"
	"github.com/secmon-lab/cbrecommend/pkg/usecase"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var refreshInterval time.Duration
	var topK, topN int
	var maxBodySize int64
	var strict bool
	var engineCfg config.Engine
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CBRECOMMEND_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "refresh-interval",
			Usage:       "Interval to reload the case base (0 disables reloading)",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("CBRECOMMEND_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
		&cli.IntFlag{
			Name:        "top-k",
			Usage:       "Default number of similar cases when the request omits top_k",
			Value:       usecase.DefaultTopK,
			Sources:     cli.EnvVars("CBRECOMMEND_TOP_K"),
			Destination: &topK,
		},
		&cli.IntFlag{
			Name:        "top-n",
			Usage:       "Default number of solutions when the request omits top_n",
			Value:       usecase.DefaultTopN,
			Sources:     cli.EnvVars("CBRECOMMEND_TOP_N"),
			Destination: &topN,
		},
		&cli.Int64Flag{
			Name:        "max-body-size",
			Usage:       "Maximum request body size in bytes",
			Value:       1 << 20,
			Sources:     cli.EnvVars("CBRECOMMEND_MAX_BODY_SIZE"),
			Destination: &maxBodySize,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Reject queries and corpus cases with undeclared codes",
			Sources:     cli.EnvVars("CBRECOMMEND_STRICT"),
			Destination: &strict,
		},
	}

	// Add shared config flags
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load engine configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// The worker serves every request from an in-memory snapshot. A failed
			// initial load means there is no corpus to serve.
			corpusWorker := worker.NewCorpusRefreshWorker(repo.Case(), refreshInterval)
			if err := corpusWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start corpus refresh worker")
			}
			defer corpusWorker.Stop()

			uc := usecase.New(repo,
				usecase.WithSimilarityConfig(engine.Similarity),
				usecase.WithClassifierRules(engine.Classifier),
				usecase.WithStrictValidation(strict),
				usecase.WithCorpusSource(corpusWorker),
			)

			server := &http.Server{
				Addr: addr,
				Handler: httpctrl.New(uc,
					httpctrl.WithDefaultLimits(topK, topN),
					httpctrl.WithMaxBodySize(maxBodySize),
					httpctrl.WithCorpusLoadedAt(corpusWorker.LoadedAt),
				),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"repository", repoCfg,
					"refresh_interval", refreshInterval,
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logging.Default().Info("Context canceled, shutting down")
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			}

			// Stop reloading before draining requests
			corpusWorker.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
