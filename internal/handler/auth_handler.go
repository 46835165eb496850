package handler

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// NewBackendProxy проксирует страницы, которые отдаёт бэкенд (кабинеты,
// выход, api), чтобы куки сессии бэкенда работали на одном origin.
func NewBackendProxy(backendURL string, log *zap.Logger) (http.Handler, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn("Бэкенд недоступен", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Сервис временно недоступен", http.StatusBadGateway)
	}
	return proxy, nil
}

// LogoutHandler очищает сессию шлюза и передаёт выход бэкенду
func LogoutHandler(store sessions.Store, backend http.Handler, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, sessionName)
		if err == nil {
			session.Options.MaxAge = -1
			if err := session.Save(r, w); err != nil {
				log.Warn("Ошибка удаления сессии", zap.Error(err))
			}
		}

		backend.ServeHTTP(w, r)
	}
}
