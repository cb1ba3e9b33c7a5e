// Package server exposes the LLM configuration consumed by the input form.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Rorical/RoriSearch/internal/config"
	"github.com/Rorical/RoriSearch/internal/llmconfig"
)

const Version = "0.1.0"

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// LLMConfigFrom maps server settings onto the wire response.
func LLMConfigFrom(cfg config.ServerConfig) llmconfig.LLMConfig {
	return llmconfig.LLMConfig{
		LLMProvider:                 cfg.LLMProvider,
		GeminiQueryGeneratorModel:   cfg.QueryGeneratorModel,
		GeminiReflectionModel:       cfg.ReflectionModel,
		GeminiAnswerModel:           cfg.AnswerModel,
		DeepSeekQueryGeneratorModel: cfg.DeepSeekQueryGeneratorModel,
		DeepSeekReflectionModel:     cfg.DeepSeekReflectionModel,
		DeepSeekAnswerModel:         cfg.DeepSeekAnswerModel,
	}
}

func NewHandler(cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	llmCfg := LLMConfigFrom(cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/llm-config", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, llmCfg)
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: Version})
	})

	return logRequests(logger, mux)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response: "+err.Error(), http.StatusInternalServerError)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
