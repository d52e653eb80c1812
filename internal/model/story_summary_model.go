package model

import (
	"time"

	"gorm.io/datatypes"
)

type StorySummary struct {
	Slug          string                     `gorm:"type:varchar(255);primaryKey"`
	Title         string                     `gorm:"type:varchar(255);not null"`
	Department    string                     `gorm:"type:varchar(255)"`
	Company       string                     `gorm:"type:varchar(255)"`
	Role          string                     `gorm:"type:varchar(255)"`
	BatchYear     string                     `gorm:"type:varchar(16)"`
	PlacementType string                     `gorm:"type:varchar(64)"`
	Tags          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Status        string                     `gorm:"type:varchar(16);not null;default:'active';index"`
	AuthorId      string                     `gorm:"type:varchar(255);index"`
	Content       string                     `gorm:"type:text"`
	AssetId       *string                    `gorm:"type:varchar(255)"`
	CreatedAt     time.Time                  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time                  `gorm:"autoUpdateTime"`
}

func (StorySummary) TableName() string {
	return "story_summaries"
}
