package entity

import "fmt"

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole разбирает роль из строки формы или флага
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleTeacher:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}

func (r Role) LoginEndpoint() string {
	return "/" + string(r) + "/login"
}

func (r Role) RegisterEndpoint() string {
	return "/" + string(r) + "/register"
}

// DashboardPath - куда уходит пользователь после успешного входа
func (r Role) DashboardPath() string {
	return "/" + string(r) + "/dashboard"
}

// LoginPagePath - куда уходит пользователь после успешной регистрации
func (r Role) LoginPagePath() string {
	return "/" + string(r) + "/login"
}

// IDField - имя поля идентификатора в JSON и в HTML форме
func (r Role) IDField() string {
	if r == RoleTeacher {
		return "teacherId"
	}
	return "studentId"
}

func (r Role) LoginFormID() string {
	return string(r) + "LoginForm"
}

func (r Role) RegisterFormID() string {
	return string(r) + "RegisterForm"
}
