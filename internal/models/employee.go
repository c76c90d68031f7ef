package models

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Employee is a roster employee, optionally linked to a Telegram chat.
type Employee struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ChatID    *int64    `gorm:"uniqueIndex" json:"chat_id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Name      string    `json:"name"`
	Role      string    `gorm:"default:'employee'" json:"role"`
}

func (e *Employee) IsAdmin() bool {
	return e.Role == string(RoleAdmin)
}

// IsLinked reports whether the employee has a chat attached.
func (e *Employee) IsLinked() bool {
	return e.ChatID != nil
}

func (e *Employee) SetRole(role Role) {
	e.Role = string(role)
}

// DisplayName falls back to the code when no name was imported.
func (e *Employee) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Code
}

func (Employee) TableName() string {
	return "employees"
}
