package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/kopibot/agent/completion"
	contractx "github.com/tanpawarit/kopibot/agent/contract"
	"github.com/tanpawarit/kopibot/agent/conversation"
	memoryx "github.com/tanpawarit/kopibot/agent/memory"
	outletx "github.com/tanpawarit/kopibot/agent/outlet"
	promptx "github.com/tanpawarit/kopibot/agent/prompt"
	searchx "github.com/tanpawarit/kopibot/agent/search"
	toolx "github.com/tanpawarit/kopibot/agent/tool"
	configx "github.com/tanpawarit/kopibot/pkg/config"
	groqx "github.com/tanpawarit/kopibot/pkg/groq"
	_ "github.com/tanpawarit/kopibot/pkg/logger/autoload"
)

type AppConfig struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type calculateRequest struct {
	Num1     float64 `json:"num1"`
	Operator string  `json:"operator"`
	Num2     float64 `json:"num2"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")
	groqCfg := configx.MustNew[groqx.Config]("GROQ")
	archiveCfg := configx.MustNew[memoryx.UpstashRedisConfig]("UPSTASH_REDIS")
	embedCfg := configx.MustNew[searchx.Config]("EMBEDDING")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chatModel, err := groqCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("init chat model failed")
	}

	prompts := promptx.LoadPromptSet()
	chatCompleter, err := completion.NewGeneralChat(ctx, chatModel, prompts.Assistant)
	if err != nil {
		log.Fatal().Err(err).Msg("init general chat failed")
	}
	summarizer, err := completion.NewGeneralChat(ctx, chatModel, prompts.Summary)
	if err != nil {
		log.Fatal().Err(err).Msg("init search summarizer failed")
	}

	outletStore, closeOutlets, err := buildOutletStore(ctx, appCfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("init outlet store failed")
	}
	defer closeOutlets()

	tools, err := toolx.NewToolset(
		toolx.NewCalculator(),
		toolx.NewOutletLookup(outletStore),
		chatCompleter,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init toolset failed")
	}

	var archive contractx.TranscriptArchive
	if archiveCfg.Enabled() {
		upstash, err := memoryx.NewUpstashRedisArchive(*archiveCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("init transcript archive failed")
		}
		archive = upstash
		log.Info().Msg("transcript archive enabled")
	}

	svc, err := conversation.New(memoryx.NewStore(), tools, archive)
	if err != nil {
		log.Fatal().Err(err).Msg("init conversation service failed")
	}

	productIndex := buildProductIndex(ctx, *embedCfg, summarizer)

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Post("/chat", func(w http.ResponseWriter, req *http.Request) {
		var in chatRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			return
		}
		if in.SessionID == "" {
			in.SessionID = uuid.NewString()
		}

		reply, err := svc.Handle(req.Context(), in.SessionID, in.Message)
		if err != nil {
			if errors.Is(err, conversation.ErrInvalidMessage) || errors.Is(err, conversation.ErrInvalidSession) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
				return
			}
			log.Error().Err(err).Str("session_id", in.SessionID).Msg("chat failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, chatResponse{SessionID: in.SessionID, Reply: reply})
	})

	r.Post("/products/search", func(w http.ResponseWriter, req *http.Request) {
		if productIndex == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "product search is not configured"})
			return
		}

		var in searchRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			return
		}

		resp, err := productIndex.Search(req.Context(), in.Query, in.TopK)
		if err != nil {
			if errors.Is(err, contractx.ErrValidation) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
				return
			}
			log.Error().Err(err).Msg("product search failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/calculate", func(w http.ResponseWriter, req *http.Request) {
		var in calculateRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			return
		}

		result, err := calculate(in)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"result": result})
	})

	httpServer := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", appCfg.HTTPAddr).Msg("kopibot server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info().Msg("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

// buildOutletStore picks Postgres when a DSN is configured and the built-in
// dataset otherwise. The returned closer is a no-op for the static store.
func buildOutletStore(ctx context.Context, dsn string) (outletx.Store, func(), error) {
	if dsn == "" {
		return outletx.NewStaticStore(), func() {}, nil
	}

	store, err := outletx.NewPostgresStore(dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	log.Info().Msg("outlet store backed by postgres")
	return store, func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("close outlet store failed")
		}
	}, nil
}

// buildProductIndex seeds the semantic product index when embeddings are
// configured. Returns nil when the feature is off.
func buildProductIndex(ctx context.Context, cfg searchx.Config, summarizer contractx.Completer) *searchx.Index {
	if !cfg.Enabled() {
		log.Info().Msg("product search disabled: no embedding api key")
		return nil
	}

	embedder, err := cfg.NewEmbedder()
	if err != nil {
		log.Fatal().Err(err).Msg("init embedder failed")
	}

	index, err := searchx.NewIndex(embedder, summarizer)
	if err != nil {
		log.Fatal().Err(err).Msg("init product index failed")
	}
	if err := index.Add(ctx, searchx.DefaultCatalog()...); err != nil {
		log.Fatal().Err(err).Msg("seed product catalog failed")
	}

	log.Info().Int("products", index.Len()).Msg("product search enabled")
	return index
}

func calculate(in calculateRequest) (float64, error) {
	switch in.Operator {
	case "+":
		return in.Num1 + in.Num2, nil
	case "-":
		return in.Num1 - in.Num2, nil
	case "*":
		return in.Num1 * in.Num2, nil
	case "/":
		if in.Num2 == 0 {
			return 0, errors.New("division by zero is not allowed")
		}
		return in.Num1 / in.Num2, nil
	default:
		return 0, errors.New("operator must be one of +, -, *, /")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
