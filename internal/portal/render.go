package portal

import (
	"eduportal/internal/entity"
	"eduportal/internal/feedback"

	"k8s.io/utils/clock"
)

// Navigator меняет текущую страницу
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// View - то, во что отрисовывается результат: баннер, навигация и часы
// для отложенного перехода.
type View struct {
	Banner    *feedback.Banner
	Navigator Navigator
	Clock     clock.WithDelayedExecution
}

// Render показывает сообщение результата и для Success планирует переход.
// Возвращает таймер перехода или nil. Таймер перехода не зависит от
// таймера скрытия баннера.
func Render(res Result, v View) clock.Timer {
	if res == nil {
		return nil
	}

	success, ok := res.(Success)
	if !ok {
		v.Banner.Show(res.Message(), entity.SeverityError)
		return nil
	}

	v.Banner.Show(success.Text, entity.SeveritySuccess)
	if success.RedirectPath == "" || v.Navigator == nil {
		return nil
	}

	c := v.Clock
	if c == nil {
		c = clock.RealClock{}
	}
	path := success.RedirectPath
	return c.AfterFunc(success.RedirectAfter, func() {
		v.Navigator.Navigate(path)
	})
}

// Severity - уровень сообщения для результата
func Severity(res Result) entity.Severity {
	if _, ok := res.(Success); ok {
		return entity.SeveritySuccess
	}
	return entity.SeverityError
}
