package models

import "time"

// Топик брокера, в который анализатор публикует события анализа
const AnalysisTopic = "analysis"

// Типы событий, которые уходят на дашборд через WebSocket
const (
	EventAnalysisStarted   = "analysis_started"
	EventAnalysisCompleted = "analysis_completed"
	EventAnalysisFailed    = "analysis_failed"
)

// AnalysisReport - один завершённый анализ конфигурации.
// Текст анализа хранится как есть, без какого-либо парсинга.
type AnalysisReport struct {
	ID             string    `json:"id"`
	ModelUsed      string    `json:"model_used"`
	Analysis       string    `json:"analysis"`
	RuleCount      int       `json:"rule_count"`
	ProcessingTime int64     `json:"processing_time_ms"`
	Timestamp      time.Time `json:"timestamp"`
}

// AnalysisEvent - live-событие для дашборда
type AnalysisEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Model     string `json:"model,omitempty"`
	ReportID  string `json:"report_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// RulesDTO используется для отдачи правил сессии через API
type RulesDTO struct {
	DefaultRules []string `json:"default_rules"`
	CustomRules  []string `json:"custom_rules"`
}

// SummaryStats - общая статистика анализов в рамках сессии
type SummaryStats struct {
	TotalAnalyses   int     `json:"total_analyses"`
	FailedAnalyses  int     `json:"failed_analyses"`
	CustomRules     int     `json:"custom_rules"`
	AvgProcessingMs float64 `json:"avg_processing_ms"`
}
