package entity

// LoginForm - значения полей формы входа на момент отправки
type LoginForm struct {
	ID       string `validate:"required"`
	Password string `validate:"required"`
}

// RegistrationForm - значения полей формы регистрации.
// Specialization заполняется только учителем.
type RegistrationForm struct {
	ID             string
	FullName       string
	Department     string
	Specialization string
	Password       string
}

type studentRegistration struct {
	ID         string `validate:"required"`
	FullName   string `validate:"required"`
	Department string `validate:"required"`
	Password   string `validate:"required"`
}

type teacherRegistration struct {
	ID             string `validate:"required"`
	FullName       string `validate:"required"`
	Department     string `validate:"required"`
	Specialization string `validate:"required"`
	Password       string `validate:"required"`
}

// Required возвращает структуру с набором обязательных полей для роли.
func (f RegistrationForm) Required(role Role) interface{} {
	if role == RoleTeacher {
		return teacherRegistration{
			ID:             f.ID,
			FullName:       f.FullName,
			Department:     f.Department,
			Specialization: f.Specialization,
			Password:       f.Password,
		}
	}
	return studentRegistration{
		ID:         f.ID,
		FullName:   f.FullName,
		Department: f.Department,
		Password:   f.Password,
	}
}

// Body собирает JSON тело запроса. Ключ идентификатора зависит от роли.
func (f LoginForm) Body(role Role) map[string]string {
	return map[string]string{
		role.IDField(): f.ID,
		"password":     f.Password,
	}
}

func (f RegistrationForm) Body(role Role) map[string]string {
	body := map[string]string{
		role.IDField(): f.ID,
		"fullName":     f.FullName,
		"department":   f.Department,
		"password":     f.Password,
	}
	if role == RoleTeacher {
		body["specialization"] = f.Specialization
	}
	return body
}
