// Package redirector - общая форма входа: проверяет логин и пароль
// синхронно и отправляет пользователя на страницу его роли.
package redirector

import (
	"errors"
	"sync"

	"eduportal/internal/entity"

	"go.uber.org/zap"
)

const (
	TeacherDashboard = "teacher-dashboard.html"
	StudentDashboard = "student-dashboard.html"
)

// CredentialChecker проверяет логин и пароль. При неудаче возвращает
// ошибку с понятным пользователю текстом.
type CredentialChecker interface {
	LoginUser(username, password string) (*entity.User, error)
}

type CredentialCheckerFunc func(username, password string) (*entity.User, error)

func (f CredentialCheckerFunc) LoginUser(username, password string) (*entity.User, error) {
	return f(username, password)
}

type Navigator interface {
	Navigate(path string)
}

// ErrorLabel - элемент #errorMessage
type ErrorLabel struct {
	mu      sync.Mutex
	text    string
	visible bool
}

func (l *ErrorLabel) Set(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = text
	l.visible = true
}

func (l *ErrorLabel) Hide() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = ""
	l.visible = false
}

func (l *ErrorLabel) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

func (l *ErrorLabel) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

type Redirector struct {
	checker CredentialChecker
	label   *ErrorLabel
	nav     Navigator
	log     *zap.Logger
}

func New(checker CredentialChecker, label *ErrorLabel, nav Navigator, log *zap.Logger) *Redirector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Redirector{
		checker: checker,
		label:   label,
		nav:     nav,
		log:     log,
	}
}

// Submit обрабатывает одну отправку формы. Возвращает адрес перехода
// или ошибку проверщика; повторных попыток нет.
func (r *Redirector) Submit(username, password string) (string, error) {
	user, err := r.checker.LoginUser(username, password)
	if err == nil && user == nil {
		err = errors.New("Invalid username or password")
	}
	if err != nil {
		r.label.Set(err.Error())
		r.log.Debug("login rejected", zap.String("username", username))
		return "", err
	}

	r.label.Hide()

	target := DashboardFor(user.Role)
	r.nav.Navigate(target)
	return target, nil
}

// DashboardFor - teacher идёт на страницу учителя, все остальные на страницу студента
func DashboardFor(role entity.Role) string {
	if role == entity.RoleTeacher {
		return TeacherDashboard
	}
	return StudentDashboard
}
