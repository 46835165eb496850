package handler

import (
	"html/template"
	"net/http"

	"eduportal/internal/entity"
	"eduportal/internal/portal"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Текст одноразового сообщения на странице входа после регистрации
const flashRegistered = "Registration successful! Please login."

type RegistrationHandler struct {
	portals map[entity.Role]*portal.Handler
	store   sessions.Store
	tmpl    *template.Template
	log     *zap.Logger
}

func NewRegistrationHandler(portals map[entity.Role]*portal.Handler, store sessions.Store, tmpl *template.Template, log *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		portals: portals,
		store:   store,
		tmpl:    tmpl,
		log:     log,
	}
}

func (h *RegistrationHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.tmpl, "role_register.html", newFormPage(roleFrom(r), true), h.log)
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	role := roleFrom(r)
	page := newFormPage(role, true)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	form := entity.RegistrationForm{
		ID:         r.PostFormValue(role.IDField()),
		FullName:   r.PostFormValue("fullName"),
		Department: r.PostFormValue("department"),
		Password:   r.PostFormValue("password"),
	}
	if role == entity.RoleTeacher {
		form.Specialization = r.PostFormValue("specialization")
	}

	res := h.portals[role].Register(r.Context(), form)

	if _, ok := res.(portal.Success); ok {
		// вошедшего пользователя страница входа сразу отправит в кабинет,
		// и флеш там никто не прочитает
		session, _ := h.store.Get(r, sessionName)
		if _, loggedIn := session.Values["role"].(string); !loggedIn {
			session.AddFlash(flashRegistered, string(entity.SeveritySuccess))
			if err := session.Save(r, w); err != nil {
				h.log.Warn("Ошибка сохранения сессии", zap.Error(err))
			}
		}
	} else {
		// введённые данные остаются в форме, кроме пароля
		page.Form = form
		page.Form.Password = ""
	}

	page.apply(res, "")
	render(w, h.tmpl, "role_register.html", page, h.log)
}
