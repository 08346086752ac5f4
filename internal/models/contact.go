package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Contact struct {
	gorm.Model

	UserID   uint `gorm:"not null;index"` // Foreign key to the owning User
	First    string
	Last     string
	Avatar   string
	Bio      string
	Company  string
	Location string
	Birthday *time.Time
	Socials  datatypes.JSON `gorm:"type:jsonb"` // Social link name -> URL
	Favorite bool           `gorm:"default:false"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notes []Note `gorm:"foreignKey:ContactID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks []Task `gorm:"foreignKey:ContactID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
