package storage

import (
	"sync"
	"time"

	"github.com/shadsidd/akamai-config-validator/internal/models"
	"github.com/shadsidd/akamai-config-validator/internal/rules"
)

// Отчётов на сессию храним ограниченно, старые вытесняются
const maxReportsPerSession = 50

// Session - состояние одного интерактивного визита: пользовательские правила,
// история отчётов и счётчики. Живёт только в памяти процесса
type Session struct {
	ID        string
	Rules     *rules.Set
	Reports   []*models.AnalysisReport
	CreatedAt time.Time
	LastSeen  time.Time

	totalAnalyses  int
	failedAnalyses int
	totalMs        int64
}

// MemoryStorage - in-memory хранилище сессий
type MemoryStorage struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
}

func NewMemoryStorage(sessionTTL time.Duration) *MemoryStorage {
	return &MemoryStorage{
		sessions: make(map[string]*Session),
		ttl:      sessionTTL,
	}
}

// touchSession возвращает сессию, создавая её при первом обращении.
// Вызывается только под полным локом
func (s *MemoryStorage) touchSession(id string) *Session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{
			ID:        id,
			Rules:     rules.NewSet(),
			CreatedAt: time.Now(),
		}
		s.sessions[id] = sess
		s.sweepExpired()
	}
	sess.LastSeen = time.Now()
	return sess
}

// sweepExpired лениво выбрасывает протухшие сессии. Уже под локом
func (s *MemoryStorage) sweepExpired() {
	if s.ttl <= 0 {
		return
	}
	deadline := time.Now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if !sess.LastSeen.IsZero() && sess.LastSeen.Before(deadline) {
			delete(s.sessions, id)
		}
	}
}

// AddRule добавляет пользовательское правило в сессию
func (s *MemoryStorage) AddRule(sessionID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchSession(sessionID).Rules.Add(text)
}

// RemoveRule удаляет правило по индексу; вне границ - no-op
func (s *MemoryStorage) RemoveRule(sessionID string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchSession(sessionID).Rules.Remove(index)
}

// CustomRules возвращает пользовательские правила сессии
func (s *MemoryStorage) CustomRules(sessionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchSession(sessionID).Rules.Custom()
}

// EffectiveRules возвращает итоговый список: встроенные + пользовательские
func (s *MemoryStorage) EffectiveRules(sessionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchSession(sessionID).Rules.Effective()
}

// StoreReport сохраняет завершённый анализ в истории сессии
func (s *MemoryStorage) StoreReport(sessionID string, report *models.AnalysisReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touchSession(sessionID)
	sess.Reports = append(sess.Reports, report)
	if len(sess.Reports) > maxReportsPerSession {
		sess.Reports = sess.Reports[len(sess.Reports)-maxReportsPerSession:]
	}

	sess.totalAnalyses++
	sess.totalMs += report.ProcessingTime
}

// RecordFailure учитывает неудавшийся анализ в статистике
func (s *MemoryStorage) RecordFailure(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touchSession(sessionID)
	sess.totalAnalyses++
	sess.failedAnalyses++
}

// GetReports возвращает отчёты сессии в порядке добавления
func (s *MemoryStorage) GetReports(sessionID string) []*models.AnalysisReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touchSession(sessionID)
	reports := make([]*models.AnalysisReport, len(sess.Reports))
	copy(reports, sess.Reports)
	return reports
}

// GetSummaryStats возвращает агрегированную статистику сессии
func (s *MemoryStorage) GetSummaryStats(sessionID string) models.SummaryStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touchSession(sessionID)
	stats := models.SummaryStats{
		TotalAnalyses:  sess.totalAnalyses,
		FailedAnalyses: sess.failedAnalyses,
		CustomRules:    len(sess.Rules.Custom()),
	}

	if succeeded := sess.totalAnalyses - sess.failedAnalyses; succeeded > 0 {
		stats.AvgProcessingMs = float64(sess.totalMs) / float64(succeeded)
	}
	return stats
}
