// Package portal отправляет формы входа и регистрации студентов и учителей
// на бэкенд и превращает ответ в сообщение для пользователя.
package portal

import (
	"context"
	"time"

	"eduportal/internal/entity"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	MsgFillAllFields = "Please fill in all fields"

	MsgLoginSuccess = "Login successful!"
	MsgLoginFailed  = "Invalid credentials"
	MsgLoginError   = "An error occurred during login"

	MsgRegisterSuccess = "Registration successful! Redirecting to login..."
	MsgRegisterFailed  = "Registration failed"
	MsgRegisterError   = "An error occurred during registration"
)

const (
	LoginRedirectDelay    = 1 * time.Second
	RegisterRedirectDelay = 2 * time.Second
)

type Handler struct {
	role     entity.Role
	backend  Backend
	validate *validator.Validate
	log      *zap.Logger
}

func NewHandler(role entity.Role, backend Backend, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		role:     role,
		backend:  backend,
		validate: validator.New(),
		log:      log.With(zap.String("role", role.String())),
	}
}

func (h *Handler) Role() entity.Role {
	return h.role
}

// Login проверяет форму входа, отправляет её на /<role>/login и
// возвращает результат. При пустых полях запрос не отправляется.
func (h *Handler) Login(ctx context.Context, form entity.LoginForm) Result {
	if err := h.validate.Struct(form); err != nil {
		return ValidationError{Text: MsgFillAllFields}
	}

	reply, err := h.backend.PostJSON(ctx, h.role.LoginEndpoint(), form.Body(h.role))
	if err != nil {
		h.log.Warn("login request failed", zap.Error(err))
		return TransportError{Text: MsgLoginError, Err: err}
	}

	if !reply.OK {
		return ServerError{Text: orDefault(reply.Message(), MsgLoginFailed), Status: reply.Status}
	}

	return Success{
		Text:          MsgLoginSuccess,
		RedirectPath:  h.role.DashboardPath(),
		RedirectAfter: LoginRedirectDelay,
	}
}

// Register проверяет форму регистрации, отправляет её на /<role>/register
// и возвращает результат.
func (h *Handler) Register(ctx context.Context, form entity.RegistrationForm) Result {
	if err := h.validate.Struct(form.Required(h.role)); err != nil {
		return ValidationError{Text: MsgFillAllFields}
	}

	reply, err := h.backend.PostJSON(ctx, h.role.RegisterEndpoint(), form.Body(h.role))
	if err != nil {
		h.log.Warn("registration request failed", zap.Error(err))
		return TransportError{Text: MsgRegisterError, Err: err}
	}

	if !reply.OK {
		return ServerError{Text: orDefault(reply.Message(), MsgRegisterFailed), Status: reply.Status}
	}

	return Success{
		Text:          MsgRegisterSuccess,
		RedirectPath:  h.role.LoginPagePath(),
		RedirectAfter: RegisterRedirectDelay,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
