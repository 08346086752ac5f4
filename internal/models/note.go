package models

import (
	"time"

	"gorm.io/gorm"
)

type Note struct {
	gorm.Model

	ContactID uint      `gorm:"not null;index"`
	Content   string    `gorm:"not null"`
	Date      time.Time `gorm:"not null"` // User-assigned effective date, distinct from CreatedAt

	// Relationships
	Contact Contact `gorm:"foreignKey:ContactID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
