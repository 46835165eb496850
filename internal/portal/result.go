package portal

import "time"

// Result - итог одной отправки формы. Конкретные типы: Success,
// ValidationError, ServerError, TransportError.
type Result interface {
	Message() string
	result()
}

type Success struct {
	Text          string
	RedirectPath  string
	RedirectAfter time.Duration
}

// ValidationError - не заполнено обязательное поле, запрос не отправлялся
type ValidationError struct {
	Text string
}

// ServerError - бэкенд ответил статусом не из 2xx
type ServerError struct {
	Text   string
	Status int
}

// TransportError - сеть недоступна или ответ не разобрался.
// Err никогда не показывается пользователю.
type TransportError struct {
	Text string
	Err  error
}

func (r Success) Message() string         { return r.Text }
func (r ValidationError) Message() string { return r.Text }
func (r ServerError) Message() string     { return r.Text }
func (r TransportError) Message() string  { return r.Text }

func (Success) result()         {}
func (ValidationError) result() {}
func (ServerError) result()     {}
func (TransportError) result()  {}
