package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shadsidd/akamai-config-validator/internal/config"
	"github.com/shadsidd/akamai-config-validator/internal/llm"
	"github.com/shadsidd/akamai-config-validator/internal/models"
	"github.com/shadsidd/akamai-config-validator/internal/rules"
	"github.com/shadsidd/akamai-config-validator/internal/storage"
	"github.com/shadsidd/akamai-config-validator/internal/websocket"
)

// stubDispatcher записывает вызовы и возвращает заранее заданный результат
type stubDispatcher struct {
	calls  int
	config any
	rules  []string
	model  string
	apiKey string
	reply  string
	err    error
}

func (d *stubDispatcher) Analyze(
	_ context.Context, config any, rules []string, model, apiKey string,
) (string, error) {
	d.calls++
	d.config = config
	d.rules = rules
	d.model = model
	d.apiKey = apiKey
	if d.err != nil {
		return "", d.err
	}
	return d.reply, nil
}

func newTestServer(dispatcher *stubDispatcher) http.Handler {
	cfg := &config.Config{
		Web:    config.WebConfig{ListenAddr: ":0"},
		Limits: config.LimitsConfig{MaxUploadSize: 5 << 20},
	}
	s := NewServer(cfg, storage.NewMemoryStorage(0), dispatcher, nil, websocket.NewHub())
	return s.routes()
}

// multipartBody собирает multipart форму для /api/analyze
func multipartBody(t *testing.T, fileContents, model, apiKey string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if fileContents != "" {
		fw, err := mw.CreateFormFile("config", "akamai.json")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(fileContents)); err != nil {
			t.Fatal(err)
		}
	}
	if model != "" {
		mw.WriteField("model", model)
	}
	if apiKey != "" {
		mw.WriteField("api_key", apiKey)
	}
	mw.Close()

	return &buf, mw.FormDataContentType()
}

func sessionCookieOf(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("Ответ не установил session cookie")
	return nil
}

func TestHandleAnalyze_InvalidJSON(t *testing.T) {
	dispatcher := &stubDispatcher{reply: "should never be returned"}
	handler := newTestServer(dispatcher)

	body, contentType := multipartBody(t, "{not valid json", "gpt-4", "sk-test")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Ожидали 400, получили %d", rec.Code)
	}
	if dispatcher.calls != 0 {
		t.Errorf("Диспетчер не должен вызываться при невалидном JSON, вызовов: %d", dispatcher.calls)
	}
	if !strings.Contains(rec.Body.String(), "not valid JSON") {
		t.Errorf("Ожидали сообщение о невалидном JSON: %s", rec.Body.String())
	}
}

func TestHandleAnalyze_FullScenario(t *testing.T) {
	dispatcher := &stubDispatcher{reply: "Overall score: 8/10\nAll checks passed."}
	handler := newTestServer(dispatcher)

	// Добавляем пользовательское правило в сессию
	addReq := httptest.NewRequest(
		http.MethodPost, "/api/rules",
		strings.NewReader(`{"rule":"CUSTOM1"}`),
	)
	addReq.Header.Set("Content-Type", "application/json")
	addRec := httptest.NewRecorder()
	handler.ServeHTTP(addRec, addReq)

	if addRec.Code != http.StatusOK {
		t.Fatalf("Добавление правила вернуло %d: %s", addRec.Code, addRec.Body.String())
	}
	cookie := sessionCookieOf(t, addRec)

	// Запускаем анализ той же сессией
	body, contentType := multipartBody(t, `{"waf": true}`, "gpt-4", "sk-test")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Анализ вернул %d: %s", rec.Code, rec.Body.String())
	}

	// Диспетчер вызван ровно один раз с семью правилами
	if dispatcher.calls != 1 {
		t.Errorf("Ожидали ровно 1 вызов диспетчера, получили %d", dispatcher.calls)
	}
	wantRules := len(rules.Defaults()) + 1
	if len(dispatcher.rules) != wantRules {
		t.Errorf("Ожидали %d правил, получили %d: %v", wantRules, len(dispatcher.rules), dispatcher.rules)
	}
	if dispatcher.rules[len(dispatcher.rules)-1] != "CUSTOM1" {
		t.Errorf("Последним правилом должно быть CUSTOM1: %v", dispatcher.rules)
	}
	if dispatcher.model != "gpt-4" || dispatcher.apiKey != "sk-test" {
		t.Errorf("Диспетчер получил model=%q key=%q", dispatcher.model, dispatcher.apiKey)
	}

	cfg, ok := dispatcher.config.(map[string]any)
	if !ok || cfg["waf"] != true {
		t.Errorf("Диспетчер получил неожиданную конфигурацию: %#v", dispatcher.config)
	}

	// Текст анализа отдаётся без изменений
	var report models.AnalysisReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Невалидный JSON ответа: %v", err)
	}
	if report.Analysis != dispatcher.reply {
		t.Errorf("Текст анализа изменён: got %q, want %q", report.Analysis, dispatcher.reply)
	}
	if report.ModelUsed != "gpt-4" || report.RuleCount != wantRules {
		t.Errorf("Метаданные отчёта: model=%q rules=%d", report.ModelUsed, report.RuleCount)
	}
}

func TestHandleAnalyze_MissingCredentials(t *testing.T) {
	dispatcher := &stubDispatcher{}
	handler := newTestServer(dispatcher)

	body, contentType := multipartBody(t, `{"a":1}`, "gpt-4", "")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Ожидали 400 без ключа, получили %d", rec.Code)
	}
	if dispatcher.calls != 0 {
		t.Error("Диспетчер не должен вызываться без ключа")
	}
}

func TestHandleAnalyze_UnsupportedModel(t *testing.T) {
	dispatcher := &stubDispatcher{err: fmt.Errorf("%w: claude-3", llm.ErrUnsupportedModel)}
	handler := newTestServer(dispatcher)

	body, contentType := multipartBody(t, `{"a":1}`, "claude-3", "key")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Неподдерживаемая модель должна давать 400, получили %d", rec.Code)
	}
}

func TestHandleAnalyze_BackendFailure(t *testing.T) {
	dispatcher := &stubDispatcher{err: fmt.Errorf("analysis failed: quota exceeded")}
	handler := newTestServer(dispatcher)

	body, contentType := multipartBody(t, `{"a":1}`, "gpt-4", "key")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("Ошибка бэкенда должна давать 502, получили %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Analysis failed:") {
		t.Errorf("Ожидали единое сообщение об ошибке: %s", rec.Body.String())
	}
}

func TestHandleRules_AddListDelete(t *testing.T) {
	handler := newTestServer(&stubDispatcher{})

	// GET: видны шесть встроенных правил
	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var dto models.RulesDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatal(err)
	}
	if len(dto.DefaultRules) != 6 {
		t.Fatalf("Ожидали 6 встроенных правил, получили %d", len(dto.DefaultRules))
	}
	cookie := sessionCookieOf(t, rec)

	// POST: добавляем правило
	addReq := httptest.NewRequest(http.MethodPost, "/api/rules", strings.NewReader(`{"rule":"NEW"}`))
	addReq.AddCookie(cookie)
	addRec := httptest.NewRecorder()
	handler.ServeHTTP(addRec, addReq)

	json.Unmarshal(addRec.Body.Bytes(), &dto)
	if len(dto.CustomRules) != 1 || dto.CustomRules[0] != "NEW" {
		t.Fatalf("После добавления ожидали [NEW], получили %v", dto.CustomRules)
	}

	// DELETE вне границ - no-op со статусом 200
	delReq := httptest.NewRequest(http.MethodDelete, "/api/rules/42", nil)
	delReq.AddCookie(cookie)
	delRec := httptest.NewRecorder()
	handler.ServeHTTP(delRec, delReq)

	if delRec.Code != http.StatusOK {
		t.Errorf("Out-of-range DELETE должен быть no-op 200, получили %d", delRec.Code)
	}
	json.Unmarshal(delRec.Body.Bytes(), &dto)
	if len(dto.CustomRules) != 1 {
		t.Errorf("Out-of-range DELETE изменил список: %v", dto.CustomRules)
	}

	// DELETE по существующему индексу
	delReq = httptest.NewRequest(http.MethodDelete, "/api/rules/0", nil)
	delReq.AddCookie(cookie)
	delRec = httptest.NewRecorder()
	handler.ServeHTTP(delRec, delReq)

	json.Unmarshal(delRec.Body.Bytes(), &dto)
	if len(dto.CustomRules) != 0 {
		t.Errorf("Правило не удалилось: %v", dto.CustomRules)
	}
}

func TestHandleRules_EmptyRuleRejected(t *testing.T) {
	handler := newTestServer(&stubDispatcher{})

	req := httptest.NewRequest(http.MethodPost, "/api/rules", strings.NewReader(`{"rule":"  "}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Пустое правило должно отклоняться, получили %d", rec.Code)
	}
}

func TestHandleStats_AfterAnalysis(t *testing.T) {
	dispatcher := &stubDispatcher{reply: "ok"}
	handler := newTestServer(dispatcher)

	body, contentType := multipartBody(t, `{"a":1}`, "gemini-pro", "key")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	cookie := sessionCookieOf(t, rec)

	statsReq := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	statsReq.AddCookie(cookie)
	statsRec := httptest.NewRecorder()
	handler.ServeHTTP(statsRec, statsReq)

	var stats models.SummaryStats
	if err := json.Unmarshal(statsRec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalAnalyses != 1 || stats.FailedAnalyses != 0 {
		t.Errorf("Статистика после одного анализа: %+v", stats)
	}
}

func TestHealth(t *testing.T) {
	handler := newTestServer(&stubDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Ожидали 200, получили %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("Неожиданное тело health: %s", rec.Body.String())
	}
}
