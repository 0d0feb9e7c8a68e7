package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shadsidd/akamai-config-validator/internal/llm"
	"github.com/shadsidd/akamai-config-validator/internal/models"
	"github.com/shadsidd/akamai-config-validator/internal/rules"
)

const sessionCookie = "analyzer_session"

// sessionID достаёт идентификатор сессии из cookie, создавая его при первом визите
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.sessionID(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(getDashboardHTML()))
}

// handleRules: GET - правила сессии, POST - добавить пользовательское правило
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	session := s.sessionID(w, r)

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, models.RulesDTO{
			DefaultRules: rules.Defaults(),
			CustomRules:  s.storage.CustomRules(session),
		})

	case http.MethodPost:
		var body struct {
			Rule string `json:"rule"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(body.Rule) == "" {
			writeError(w, http.StatusBadRequest, "rule text is required")
			return
		}

		s.storage.AddRule(session, body.Rule)
		writeJSON(w, http.StatusOK, models.RulesDTO{
			DefaultRules: rules.Defaults(),
			CustomRules:  s.storage.CustomRules(session),
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleDeleteRule удаляет пользовательское правило по индексу.
// Индекс вне границ - не ошибка: список просто не меняется
func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := s.sessionID(w, r)

	raw := strings.TrimPrefix(r.URL.Path, "/api/rules/")
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "rule index must be an integer")
		return
	}

	s.storage.RemoveRule(session, index)
	writeJSON(w, http.StatusOK, models.RulesDTO{
		DefaultRules: rules.Defaults(),
		CustomRules:  s.storage.CustomRules(session),
	})
}

// handleAnalyze - основной поток: файл конфигурации + модель + ключ →
// один блокирующий вызов LLM → текст анализа как есть
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := s.sessionID(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.config.Limits.MaxUploadSize)
	if err := r.ParseMultipartForm(s.config.Limits.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	model := r.FormValue("model")
	apiKey := r.FormValue("api_key")
	if model == "" || apiKey == "" {
		writeError(w, http.StatusBadRequest, "model and api_key are required")
		return
	}

	file, _, err := r.FormFile("config")
	if err != nil {
		writeError(w, http.StatusBadRequest, "configuration file is required")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read configuration file")
		return
	}

	// Malformed-Input отсекается до любого обращения к диспетчеру
	var configData any
	if err := json.Unmarshal(raw, &configData); err != nil {
		writeError(w, http.StatusBadRequest, "uploaded file is not valid JSON")
		return
	}

	effectiveRules := s.storage.EffectiveRules(session)

	s.publish(models.AnalysisEvent{
		Type:      models.EventAnalysisStarted,
		SessionID: session,
		Model:     model,
	})

	start := time.Now()
	analysis, err := s.dispatcher.Analyze(r.Context(), configData, effectiveRules, model, apiKey)
	if err != nil {
		s.storage.RecordFailure(session)
		s.publish(models.AnalysisEvent{
			Type:      models.EventAnalysisFailed,
			SessionID: session,
			Model:     model,
			Message:   err.Error(),
		})

		status := http.StatusBadGateway
		if errors.Is(err, llm.ErrUnsupportedModel) {
			status = http.StatusBadRequest
		}
		writeError(w, status, fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	report := &models.AnalysisReport{
		ID:             uuid.New().String(),
		ModelUsed:      model,
		Analysis:       analysis,
		RuleCount:      len(effectiveRules),
		ProcessingTime: time.Since(start).Milliseconds(),
		Timestamp:      time.Now(),
	}
	s.storage.StoreReport(session, report)

	s.publish(models.AnalysisEvent{
		Type:      models.EventAnalysisCompleted,
		SessionID: session,
		Model:     model,
		ReportID:  report.ID,
	})

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := s.sessionID(w, r)
	writeJSON(w, http.StatusOK, s.storage.GetReports(session))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := s.sessionID(w, r)
	writeJSON(w, http.StatusOK, s.storage.GetSummaryStats(session))
}

func (s *Server) publish(event models.AnalysisEvent) {
	if s.events != nil {
		s.events.Publish(models.AnalysisTopic, event)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
