package handler

import (
	"html/template"
	"net/http"

	"eduportal/internal/entity"
	"eduportal/internal/portal"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// LoginHandler - страницы входа студента и учителя
type LoginHandler struct {
	portals       map[entity.Role]*portal.Handler
	store         sessions.Store
	tmpl          *template.Template
	dashboardBase string
	log           *zap.Logger
}

func NewLoginHandler(portals map[entity.Role]*portal.Handler, store sessions.Store, tmpl *template.Template, dashboardBase string, log *zap.Logger) *LoginHandler {
	return &LoginHandler{
		portals:       portals,
		store:         store,
		tmpl:          tmpl,
		dashboardBase: dashboardBase,
		log:           log,
	}
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	page := newFormPage(roleFrom(r), false)
	popFlash(w, r, h.store, page, h.log)
	render(w, h.tmpl, "role_login.html", page, h.log)
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	role := roleFrom(r)
	page := newFormPage(role, false)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	form := entity.LoginForm{
		ID:       r.PostFormValue(role.IDField()),
		Password: r.PostFormValue("password"),
	}
	page.Form.ID = form.ID

	sink := &portal.CookieSink{}
	res := h.portals[role].Login(portal.WithCookieSink(r.Context(), sink), form)

	if _, ok := res.(portal.Success); ok {
		for _, c := range sink.Cookies() {
			c.Domain = ""
			http.SetCookie(w, c)
		}

		session, _ := h.store.Get(r, sessionName)
		session.Values["role"] = string(role)
		session.Values["id"] = form.ID
		if err := session.Save(r, w); err != nil {
			h.log.Warn("Ошибка сохранения сессии", zap.Error(err))
		}

		h.log.Info("Успешный вход", zap.String("role", role.String()), zap.String("id", form.ID))
	}

	page.apply(res, h.dashboardBase)
	render(w, h.tmpl, "role_login.html", page, h.log)
}
