package web

import (
	"context"
	"net/http"
	"time"

	"github.com/shadsidd/akamai-config-validator/internal/broker"
	"github.com/shadsidd/akamai-config-validator/internal/config"
	"github.com/shadsidd/akamai-config-validator/internal/middlewares"
	"github.com/shadsidd/akamai-config-validator/internal/models"
	"github.com/shadsidd/akamai-config-validator/internal/websocket"
)

type storageI interface {
	AddRule(sessionID, text string)
	RemoveRule(sessionID string, index int)
	CustomRules(sessionID string) []string
	EffectiveRules(sessionID string) []string
	StoreReport(sessionID string, report *models.AnalysisReport)
	RecordFailure(sessionID string)
	GetReports(sessionID string) []*models.AnalysisReport
	GetSummaryStats(sessionID string) models.SummaryStats
}

type dispatcherI interface {
	Analyze(ctx context.Context, config any, rules []string, model, apiKey string) (string, error)
}

type Server struct {
	config     *config.Config
	storage    storageI
	dispatcher dispatcherI
	events     *broker.Broker[models.AnalysisEvent]
	hub        *websocket.Hub
	server     *http.Server
}

func NewServer(
	cfg *config.Config,
	store storageI,
	dispatcher dispatcherI,
	events *broker.Broker[models.AnalysisEvent],
	hub *websocket.Hub,
) *Server {
	return &Server{
		config:     cfg,
		storage:    store,
		dispatcher: dispatcher,
		events:     events,
		hub:        hub,
	}
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.config.Web.ListenAddr,
		Handler: middlewares.CORS(s.routes()),
		// WriteTimeout не ставим: запрос к LLM блокирующий и может идти долго
		ReadTimeout: 30 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Дашборд
	mux.HandleFunc("/", s.handleIndex)

	// API endpoints
	mux.HandleFunc("/api/rules", s.handleRules)
	mux.HandleFunc("/api/rules/", s.handleDeleteRule)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/reports", s.handleReports)
	mux.HandleFunc("/api/stats", s.handleStats)

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.hub.ServeWS)

	// Health check
	mux.HandleFunc(
		"/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write([]byte(`{"status":"ok","service":"akamai-config-validator"}`))
		},
	)

	return mux
}

func (s *Server) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}
