package handler

import (
	"net/http"

	"eduportal/internal/entity"
	"eduportal/internal/middleware"
	"eduportal/internal/portal"
	"eduportal/internal/redirector"

	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type Deps struct {
	Portals map[entity.Role]*portal.Handler
	// Checker может быть nil, тогда /login не регистрируется
	Checker       redirector.CredentialChecker
	Store         sessions.Store
	BackendURL    string
	DashboardBase string
	Log           *zap.Logger
}

// NewSessionStore создаёт хранилище сессий. Без ключа генерируется
// случайный, и сессии не переживают перезапуск.
func NewSessionStore(key string) *sessions.CookieStore {
	var secret []byte
	if key != "" {
		secret = []byte(key)
	} else {
		secret = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func NewRouter(d Deps) (*mux.Router, error) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	tmpl := parseTemplates()
	proxy, err := NewBackendProxy(d.BackendURL, d.Log)
	if err != nil {
		return nil, err
	}

	index := NewIndexHandler(tmpl, d.Log)
	login := NewLoginHandler(d.Portals, d.Store, tmpl, d.DashboardBase, d.Log)
	registration := NewRegistrationHandler(d.Portals, d.Store, tmpl, d.Log)

	r := mux.NewRouter()
	r.Use(middleware.Recover(d.Log), middleware.RequestLogger(d.Log))

	r.HandleFunc("/", index.IndexPage).Methods(http.MethodGet)
	r.HandleFunc("/healthz", Healthz).Methods(http.MethodGet)

	roles := r.PathPrefix("/{role:student|teacher}").Subrouter()

	loginPage := middleware.RedirectIfAuthenticated(d.Store, sessionName, d.DashboardBase)(http.HandlerFunc(login.LoginPage))
	roles.Handle("/login", loginPage).Methods(http.MethodGet)
	roles.HandleFunc("/login", login.Login).Methods(http.MethodPost)
	roles.HandleFunc("/register", registration.RegisterPage).Methods(http.MethodGet)
	roles.HandleFunc("/register", registration.Register).Methods(http.MethodPost)
	roles.PathPrefix("/dashboard").Handler(proxy)

	if d.Checker != nil {
		redirect := NewRedirectHandler(d.Checker, tmpl, d.Log)
		r.HandleFunc("/login", redirect.LoginPage).Methods(http.MethodGet)
		r.HandleFunc("/login", redirect.Login).Methods(http.MethodPost)
	}

	r.Handle("/logout", LogoutHandler(d.Store, proxy, d.Log))
	r.PathPrefix("/api/").Handler(proxy)
	r.Handle("/"+redirector.TeacherDashboard, proxy)
	r.Handle("/"+redirector.StudentDashboard, proxy)

	return r, nil
}
