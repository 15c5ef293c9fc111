package models

import "time"

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	Make  string `gorm:"size:50;not null" json:"make"`
	Model string `gorm:"size:50;not null" json:"model"`
	Year  int    `json:"year"`
	Plate string `gorm:"size:10;uniqueIndex;not null" json:"plate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
