package handler

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"eduportal/internal/entity"
	"eduportal/internal/feedback"
	"eduportal/internal/portal"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

const sessionName = "portal-session"

func parseTemplates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

type redirect struct {
	URL     string
	Seconds int
}

// formPage - данные страницы входа или регистрации
type formPage struct {
	Title     string
	Role      entity.Role
	Teacher   bool
	FormID    string
	Action    string
	IDField   string
	SwitchURL string
	Form      entity.RegistrationForm
	Message   *entity.Message
	DismissMs int64
	Redirect  *redirect
}

func newFormPage(role entity.Role, register bool) *formPage {
	p := &formPage{
		Role:    role,
		Teacher: role == entity.RoleTeacher,
		IDField: role.IDField(),
	}
	if register {
		p.Title = titleFor(role) + " Registration"
		p.FormID = role.RegisterFormID()
		p.Action = role.RegisterEndpoint()
		p.SwitchURL = role.LoginPagePath()
	} else {
		p.Title = titleFor(role) + " Login"
		p.FormID = role.LoginFormID()
		p.Action = role.LoginEndpoint()
		p.SwitchURL = role.RegisterEndpoint()
	}
	return p
}

func titleFor(role entity.Role) string {
	if role == entity.RoleTeacher {
		return "Teacher"
	}
	return "Student"
}

// apply переносит результат отправки формы на страницу: баннер и,
// для успеха, отложенный переход через meta refresh.
func (p *formPage) apply(res portal.Result, redirectBase string) {
	p.show(res.Message(), portal.Severity(res))

	if success, ok := res.(portal.Success); ok && success.RedirectPath != "" {
		p.Redirect = &redirect{
			URL:     redirectBase + success.RedirectPath,
			Seconds: int(success.RedirectAfter / time.Second),
		}
	}
}

func (p *formPage) show(text string, severity entity.Severity) {
	p.Message = &entity.Message{Severity: severity, Text: text}
	if severity == entity.SeveritySuccess {
		p.DismissMs = feedback.DismissAfter.Milliseconds()
	} else {
		p.DismissMs = 0
	}
}

// popFlash показывает одноразовое сообщение из сессии, если оно есть
func popFlash(w http.ResponseWriter, r *http.Request, store sessions.Store, p *formPage, log *zap.Logger) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return
	}
	flashes := session.Flashes(string(entity.SeveritySuccess))
	if len(flashes) == 0 {
		return
	}
	if text, ok := flashes[len(flashes)-1].(string); ok {
		p.show(text, entity.SeveritySuccess)
	}
	if err := session.Save(r, w); err != nil {
		log.Warn("Ошибка сохранения сессии", zap.Error(err))
	}
}

func roleFrom(r *http.Request) entity.Role {
	role, err := entity.ParseRole(mux.Vars(r)["role"])
	if err != nil {
		return entity.RoleStudent
	}
	return role
}

func render(w http.ResponseWriter, tmpl *template.Template, name string, data interface{}, log *zap.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error("Ошибка рендеринга шаблона", zap.String("template", name), zap.Error(err))
		http.Error(w, "Ошибка отображения страницы", http.StatusInternalServerError)
	}
}
