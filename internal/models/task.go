package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	ContactID   uint   `gorm:"not null;index"`
	Description string `gorm:"not null"`
	Completed   bool   `gorm:"not null;default:false"`
	CompletedAt *time.Time // Meaningful only while Completed is true

	// Relationships
	Contact Contact `gorm:"foreignKey:ContactID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
