package middleware

import (
	"net/http"

	"eduportal/internal/entity"

	"github.com/gorilla/sessions"
)

// RedirectIfAuthenticated отправляет уже вошедшего пользователя в его
// кабинет вместо повторного показа страницы входа.
func RedirectIfAuthenticated(store sessions.Store, sessionName, dashboardBase string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			session, _ := store.Get(r, sessionName)
			roleStr, _ := session.Values["role"].(string)
			role, err := entity.ParseRole(roleStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			http.Redirect(w, r, dashboardBase+role.DashboardPath(), http.StatusSeeOther)
		})
	}
}
