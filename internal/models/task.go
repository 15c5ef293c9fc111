package models

import "time"

// Tarea interna del personal. Puede colgar de una reparación o ser
// suelta (limpieza, pedidos, llamadas a clientes).
type Task struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Status   string `gorm:"size:20;default:'todo'" json:"status"`
	Priority string `gorm:"size:10;default:'medium'" json:"priority"`
	Label    string `gorm:"size:50" json:"label"`

	AssigneeID *uint     `json:"assignee_id"`
	Assignee   *Employee `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"assignee,omitempty"`

	RepairID *uint   `json:"repair_id"`
	Repair   *Repair `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"repair,omitempty"`

	DueDate *time.Time `json:"due_date"`

	CreatedByID uint `json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
