package mapper

import (
	"time"

	"placement-mentor-be/internal/entity"
	"placement-mentor-be/internal/model"
)

type StoryMapper struct{}

func NewStoryMapper() *StoryMapper {
	return &StoryMapper{}
}

func (m *StoryMapper) ToSummaryEntity(s *model.StorySummary) *entity.StorySummary {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.StorySummary{
		Slug:          s.Slug,
		Title:         s.Title,
		Department:    s.Department,
		Company:       s.Company,
		Role:          s.Role,
		BatchYear:     s.BatchYear,
		PlacementType: s.PlacementType,
		Tags:          s.Tags,
		Status:        s.Status,
		AuthorId:      s.AuthorId,
		Content:       s.Content,
		AssetId:       s.AssetId,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *StoryMapper) ToSummaryModel(s *entity.StorySummary) *model.StorySummary {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.StorySummary{
		Slug:          s.Slug,
		Title:         s.Title,
		Department:    s.Department,
		Company:       s.Company,
		Role:          s.Role,
		BatchYear:     s.BatchYear,
		PlacementType: s.PlacementType,
		Tags:          s.Tags,
		Status:        s.Status,
		AuthorId:      s.AuthorId,
		Content:       s.Content,
		AssetId:       s.AssetId,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *StoryMapper) ToSummaryEntities(summaries []*model.StorySummary) []*entity.StorySummary {
	entities := make([]*entity.StorySummary, len(summaries))
	for i, s := range summaries {
		entities[i] = m.ToSummaryEntity(s)
	}
	return entities
}

func (m *StoryMapper) ToDetailEntity(d *model.StoryDetail) *entity.StoryDetail {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.StoryDetail{
		Slug:        d.Slug,
		Journey:     d.Journey,
		Experiences: d.Experiences,
		Strategy:    d.Strategy,
		Advice:      d.Advice,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *StoryMapper) ToDetailModel(d *entity.StoryDetail) *model.StoryDetail {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.StoryDetail{
		Slug:        d.Slug,
		Journey:     d.Journey,
		Experiences: d.Experiences,
		Strategy:    d.Strategy,
		Advice:      d.Advice,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}
