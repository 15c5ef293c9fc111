package models

import "time"

// Orden de reparación. MechanicID queda en NULL hasta que un mecánico
// la toma desde su panel.
type Repair struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VehicleID uint    `gorm:"not null" json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"vehicle"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	MechanicID *uint     `json:"mechanic_id"`
	Mechanic   *Employee `gorm:"foreignKey:MechanicID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mechanic,omitempty"`

	Status    string `gorm:"size:20;default:'pending'" json:"status"`
	Condition string `gorm:"size:20;default:'fair'" json:"condition"`
	Notes     string `gorm:"type:text" json:"notes"`

	CheckedInAt  time.Time  `gorm:"autoCreateTime" json:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
