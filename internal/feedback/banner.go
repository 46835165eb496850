// Package feedback хранит баннер с сообщением об успехе или ошибке.
package feedback

import (
	"sync"
	"time"

	"eduportal/internal/entity"

	"k8s.io/utils/clock"
)

// DismissAfter - через сколько исчезает сообщение об успехе
const DismissAfter = 3000 * time.Millisecond

// Banner - контейнер .register-container с элементами .alert.
// В контейнере одновременно находится не больше одного сообщения.
type Banner struct {
	clock clock.WithDelayedExecution

	mu      sync.Mutex
	nextID  uint64
	current *shown
}

type shown struct {
	msg   entity.Message
	timer clock.Timer
}

func NewBanner(c clock.WithDelayedExecution) *Banner {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Banner{clock: c}
}

// Show удаляет все показанные сообщения и вставляет новое первым элементом.
// Сообщение об успехе удаляется само через DismissAfter.
func (b *Banner) Show(text string, severity entity.Severity) entity.Message {
	b.mu.Lock()
	b.nextID++
	msg := entity.Message{ID: b.nextID, Severity: severity, Text: text}
	prev := b.current
	next := &shown{msg: msg}
	b.current = next
	b.mu.Unlock()

	// таймер останавливаем вне блокировки: FakeClock вызывает колбэки под своим мьютексом
	if prev != nil && prev.timer != nil {
		prev.timer.Stop()
	}

	if severity == entity.SeveritySuccess {
		id := msg.ID
		timer := b.clock.AfterFunc(DismissAfter, func() {
			b.remove(id)
		})
		b.mu.Lock()
		if b.current == next {
			next.timer = timer
			b.mu.Unlock()
		} else {
			b.mu.Unlock()
			timer.Stop()
		}
	}

	return msg
}

// remove удаляет сообщение только если оно всё ещё показано
func (b *Banner) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil && b.current.msg.ID == id {
		b.current = nil
	}
}

// Current возвращает показанное сообщение, если оно есть
func (b *Banner) Current() (entity.Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return entity.Message{}, false
	}
	return b.current.msg, true
}

// Messages - снимок всех элементов .alert в контейнере
func (b *Banner) Messages() []entity.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return nil
	}
	return []entity.Message{b.current.msg}
}
