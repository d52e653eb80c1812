package contract

import (
	"context"

	"placement-mentor-be/internal/entity"
)

// StoryFilter narrows List results. Zero values mean "no filter".
type StoryFilter struct {
	Status   string
	AuthorId string
}

type StorySummaryRepository interface {
	Create(ctx context.Context, summary *entity.StorySummary) error
	Update(ctx context.Context, summary *entity.StorySummary) error
	Delete(ctx context.Context, slug string) error
	FindBySlug(ctx context.Context, slug string) (*entity.StorySummary, error)
	FindAll(ctx context.Context, filter StoryFilter) ([]*entity.StorySummary, error)
	Count(ctx context.Context, filter StoryFilter) (int64, error)
}
