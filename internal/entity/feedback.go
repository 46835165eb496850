package entity

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Message - баннер с обратной связью для пользователя
type Message struct {
	ID       uint64   `json:"-"`
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Class - CSS класс элемента баннера
func (m Message) Class() string {
	return "alert alert-" + string(m.Severity)
}
