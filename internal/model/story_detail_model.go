package model

import (
	"time"
)

type StoryDetail struct {
	Slug        string    `gorm:"type:varchar(255);primaryKey"`
	Journey     string    `gorm:"type:text"`
	Experiences string    `gorm:"type:text"`
	Strategy    string    `gorm:"type:text"`
	Advice      string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (StoryDetail) TableName() string {
	return "story_details"
}
