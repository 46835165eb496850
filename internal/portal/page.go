package portal

import (
	"context"

	"eduportal/internal/entity"

	"k8s.io/utils/clock"
)

// Page - страница студента или учителя. Обработчик формы активен только
// если форма есть на странице; отправка отсутствующей формы ничего не делает.
type Page struct {
	handler *Handler
	view    View

	HasLoginForm    bool
	HasRegisterForm bool
}

func NewPage(h *Handler, v View, hasLogin, hasRegister bool) *Page {
	return &Page{
		handler:         h,
		view:            v,
		HasLoginForm:    hasLogin,
		HasRegisterForm: hasRegister,
	}
}

// SubmitLogin обрабатывает отправку формы входа. Возвращает nil результат,
// если формы входа на странице нет.
func (p *Page) SubmitLogin(ctx context.Context, form entity.LoginForm) (Result, clock.Timer) {
	if !p.HasLoginForm {
		return nil, nil
	}
	res := p.handler.Login(ctx, form)
	return res, Render(res, p.view)
}

func (p *Page) SubmitRegister(ctx context.Context, form entity.RegistrationForm) (Result, clock.Timer) {
	if !p.HasRegisterForm {
		return nil, nil
	}
	res := p.handler.Register(ctx, form)
	return res, Render(res, p.view)
}
