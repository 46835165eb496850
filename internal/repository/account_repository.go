package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eduportal/internal/entity"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyCredentials   = &AccountError{"Please enter username and password"}
	ErrInvalidCredentials = &AccountError{"Invalid username or password"}
	ErrAccountExists      = &AccountError{"Username already exists"}
)

// AccountError - ошибка, текст которой можно показать пользователю
type AccountError struct {
	Message string
}

func (e *AccountError) Error() string {
	return e.Message
}

// AccountRepository - учётные записи для общей формы входа
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// LoginUser проверяет логин и пароль. Не найденный пользователь и неверный
// пароль дают одну и ту же ошибку.
func (r *AccountRepository) LoginUser(username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	user, err := r.FindByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя %s: %w", username, err)
	}

	return authenticate(user, password)
}

func (r *AccountRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(`
		SELECT id, username, password_hash, role, full_name, created_at
		FROM accounts
		WHERE username = $1
	`, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.FullName,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAccount хэширует пароль и сохраняет учётную запись
func (r *AccountRepository) CreateAccount(username, password string, role entity.Role, fullName string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FullName:     fullName,
	}

	err = r.db.QueryRow(`
		INSERT INTO accounts (username, password_hash, role, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, user.Username, user.PasswordHash, user.Role, user.FullName).Scan(&user.ID, &user.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return nil, ErrAccountExists
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя %s: %w", username, err)
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func authenticate(user *entity.User, password string) (*entity.User, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
