package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Plan struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Slug          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description   string    `gorm:"type:text"`
	Price         float64   `gorm:"type:decimal(10,2);not null"`
	Currency      string    `gorm:"type:varchar(3);not null;default:'USD'"`
	Interval      string    `gorm:"type:varchar(20);not null"`
	StripePriceId *string   `gorm:"type:varchar(255)"`
	Features      datatypes.JSON `gorm:"type:jsonb"`
	Limits        datatypes.JSON `gorm:"type:jsonb"`
	IsActive      bool      `gorm:"default:true"`
	SortOrder     int       `gorm:"default:0"`
}

func (Plan) TableName() string {
	return "plans"
}
