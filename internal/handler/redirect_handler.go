package handler

import (
	"errors"
	"html/template"
	"net/http"

	"eduportal/internal/entity"
	"eduportal/internal/redirector"
	"eduportal/internal/repository"

	"go.uber.org/zap"
)

const msgCheckUnavailable = "An error occurred during login"

type loginPage struct {
	Title        string
	Username     string
	Error        string
	ErrorVisible bool
	Redirect     *redirect
}

// RedirectHandler - общая форма входа /login. Роль определяет
// синхронная проверка логина и пароля.
type RedirectHandler struct {
	checker redirector.CredentialChecker
	tmpl    *template.Template
	log     *zap.Logger
}

func NewRedirectHandler(checker redirector.CredentialChecker, tmpl *template.Template, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		checker: safeChecker{next: checker, log: log},
		tmpl:    tmpl,
		log:     log,
	}
}

func (h *RedirectHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.tmpl, "login.html", loginPage{Title: "Login"}, h.log)
}

func (h *RedirectHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	label := &redirector.ErrorLabel{}
	var target string
	nav := navigatorFunc(func(path string) { target = path })

	if _, err := redirector.New(h.checker, label, nav, h.log).Submit(username, password); err != nil {
		render(w, h.tmpl, "login.html", loginPage{
			Title:        "Login",
			Username:     username,
			Error:        label.Text(),
			ErrorVisible: label.Visible(),
		}, h.log)
		return
	}

	http.Redirect(w, r, "/"+target, http.StatusSeeOther)
}

type navigatorFunc func(path string)

func (f navigatorFunc) Navigate(path string) { f(path) }

// safeChecker не даёт тексту внутренних ошибок попасть на страницу
type safeChecker struct {
	next redirector.CredentialChecker
	log  *zap.Logger
}

func (c safeChecker) LoginUser(username, password string) (*entity.User, error) {
	user, err := c.next.LoginUser(username, password)
	if err == nil {
		return user, nil
	}

	var accErr *repository.AccountError
	if errors.As(err, &accErr) {
		return nil, accErr
	}

	c.log.Error("Ошибка проверки пользователя", zap.String("username", username), zap.Error(err))
	return nil, errors.New(msgCheckUnavailable)
}
