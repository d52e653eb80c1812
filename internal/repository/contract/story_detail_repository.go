package contract

import (
	"context"

	"placement-mentor-be/internal/entity"
)

type StoryDetailRepository interface {
	Create(ctx context.Context, detail *entity.StoryDetail) error
	Update(ctx context.Context, detail *entity.StoryDetail) error
	Delete(ctx context.Context, slug string) error
	FindBySlug(ctx context.Context, slug string) (*entity.StoryDetail, error)
	// FindOrphans returns details whose slug has no matching summary. These
	// are leftovers of crashed create sequences and are cleaned up by the
	// reconciliation job.
	FindOrphans(ctx context.Context) ([]*entity.StoryDetail, error)
}
