package models

import "time"

// Empleado del taller. Role usa el mismo enum cerrado que User
// (owner / manager / mechanic).
type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Role  string `gorm:"size:20;not null" json:"role"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
