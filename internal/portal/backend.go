package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// CookieSink собирает Set-Cookie из ответов бэкенда, чтобы шлюз мог
// передать сессию бэкенда браузеру.
type CookieSink struct {
	mu      sync.Mutex
	cookies []*http.Cookie
}

func (s *CookieSink) add(cookies []*http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = append(s.cookies, cookies...)
}

func (s *CookieSink) Cookies() []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Cookie(nil), s.cookies...)
}

type cookieSinkKey struct{}

func WithCookieSink(ctx context.Context, sink *CookieSink) context.Context {
	return context.WithValue(ctx, cookieSinkKey{}, sink)
}

func cookieSinkFrom(ctx context.Context) *CookieSink {
	sink, _ := ctx.Value(cookieSinkKey{}).(*CookieSink)
	return sink
}

// Reply - разобранный ответ бэкенда
type Reply struct {
	Status int
	OK     bool
	// Body - любое JSON значение: объект, массив, строка, число, true/false или nil
	Body interface{}
}

// Message возвращает поле message, если тело - объект и поле непустое.
// Числа и true показываются текстом; пустые, нулевые и составные значения
// дают "", и тогда вызывающий подставляет свой текст.
func (r Reply) Message() string {
	obj, ok := r.Body.(map[string]interface{})
	if !ok {
		return ""
	}

	switch msg := obj["message"].(type) {
	case string:
		return msg
	case float64:
		if msg == 0 || math.IsNaN(msg) {
			return ""
		}
		return strconv.FormatFloat(msg, 'f', -1, 64)
	case bool:
		if msg {
			return "true"
		}
	}
	return ""
}

// Backend отправляет формы на сервер, который отвечает за вход и регистрацию
type Backend interface {
	PostJSON(ctx context.Context, endpoint string, body interface{}) (Reply, error)
}

type HTTPBackend struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewHTTPBackend(baseURL string, client *http.Client, log *zap.Logger) *HTTPBackend {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     log,
	}
}

// PostJSON делает POST с JSON телом и читает JSON ответ при любом статусе.
// Ошибка возвращается только если запрос не дошёл или тело не JSON;
// тело, которое JSON, но не объект, ошибкой не считается.
func (b *HTTPBackend) PostJSON(ctx context.Context, endpoint string, body interface{}) (Reply, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Reply{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return Reply{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if sink := cookieSinkFrom(ctx); sink != nil {
		sink.add(resp.Cookies())
	}

	reply := Reply{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode <= 299,
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply.Body); err != nil {
		return reply, fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	b.log.Debug("backend round trip",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode))

	return reply, nil
}
