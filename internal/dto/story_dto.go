package dto

import (
	"time"
)

type CreateStoryRequest struct {
	Slug          string `json:"slug" form:"slug" validate:"required,max=255"`
	Title         string `json:"title" form:"title" validate:"required,max=255"`
	Department    string `json:"department" form:"department"`
	Company       string `json:"company" form:"company"`
	Role          string `json:"role" form:"role"`
	BatchYear     string `json:"batch_year" form:"batch_year"`
	PlacementType string `json:"placement_type" form:"placement_type"`
	Tags          string `json:"tags" form:"tags"` // comma-separated
	Status        string `json:"status" form:"status" validate:"omitempty,oneof=active inactive"`
	Content       string `json:"content" form:"content"`
	Journey       string `json:"journey" form:"journey"`
	Experiences   string `json:"experiences" form:"experiences"`
	Strategy      string `json:"strategy" form:"strategy"`
	Advice        string `json:"advice" form:"advice"`
}

type UpdateStoryRequest struct {
	Title         string `json:"title" form:"title" validate:"required,max=255"`
	Department    string `json:"department" form:"department"`
	Company       string `json:"company" form:"company"`
	Role          string `json:"role" form:"role"`
	BatchYear     string `json:"batch_year" form:"batch_year"`
	PlacementType string `json:"placement_type" form:"placement_type"`
	Tags          string `json:"tags" form:"tags"`
	Status        string `json:"status" form:"status" validate:"omitempty,oneof=active inactive"`
	Content       string `json:"content" form:"content"`
	Journey       string `json:"journey" form:"journey"`
	Experiences   string `json:"experiences" form:"experiences"`
	Strategy      string `json:"strategy" form:"strategy"`
	Advice        string `json:"advice" form:"advice"`
}

type StorySummaryResponse struct {
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Department    string     `json:"department"`
	Company       string     `json:"company"`
	Role          string     `json:"role"`
	BatchYear     string     `json:"batch_year"`
	PlacementType string     `json:"placement_type"`
	Tags          []string   `json:"tags"`
	Status        string     `json:"status"`
	AuthorId      string     `json:"author_id"`
	Content       string     `json:"content"`
	AssetId       *string    `json:"asset_id"`
	PreviewURL    string     `json:"preview_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type StoryDetailResponse struct {
	Journey     string `json:"journey"`
	Experiences string `json:"experiences"`
	Strategy    string `json:"strategy"`
	Advice      string `json:"advice"`
}

type StoryAggregateResponse struct {
	Summary *StorySummaryResponse `json:"summary"`
	// Detail is null for a degraded aggregate (detail write failed or the
	// detail row is gone).
	Detail *StoryDetailResponse `json:"detail"`
}

type ListStoriesRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=active inactive"`
	AuthorId string `query:"author_id"`
}

type PublishCleanupMessage struct {
	Kind    string `json:"kind"`
	AssetId string `json:"asset_id,omitempty"`
	Slug    string `json:"slug,omitempty"`
}
