package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSearch/internal/config"
	"github.com/Rorical/RoriSearch/internal/llmconfig"
	"github.com/Rorical/RoriSearch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the LLM configuration endpoint",
	Long:  `Serve GET /api/llm-config from LLM_PROVIDER and the *_MODEL environment variables (a .env file is read if present).`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		cfg := config.LoadServerConfig()

		if len(llmconfig.ModelOptions(server.LLMConfigFrom(cfg))) == 0 {
			logger.Warn("unrecognized LLM provider, clients will see no models", "provider", cfg.LLMProvider)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := server.Run(ctx, ":"+cfg.Port, server.NewHandler(cfg, logger), logger); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
