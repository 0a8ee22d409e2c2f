package models

import "github.com/google/uuid"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// UserRef - ссылка на пользователя с полями, подставляемыми из таблицы users.
// Пользователи ведутся внешним сервисом, поэтому Name/Email/Phone могут быть пустыми.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

// Caller - аутентифицированный пользователь текущего запроса
type Caller struct {
	ID   uuid.UUID
	Role Role
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

func (c Caller) IsModerator() bool { return c.Role == RoleModerator || c.Role == RoleAdmin }
