package implementation

import (
	"context"
	"errors"

	"placement-mentor-be/internal/entity"
	"placement-mentor-be/internal/mapper"
	"placement-mentor-be/internal/model"
	"placement-mentor-be/internal/repository/contract"

	"gorm.io/gorm"
)

type StoryDetailRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StoryMapper
}

func NewStoryDetailRepository(db *gorm.DB) contract.StoryDetailRepository {
	return &StoryDetailRepositoryImpl{
		db:     db,
		mapper: mapper.NewStoryMapper(),
	}
}

func (r *StoryDetailRepositoryImpl) Create(ctx context.Context, detail *entity.StoryDetail) error {
	m := r.mapper.ToDetailModel(detail)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*detail = *r.mapper.ToDetailEntity(m)
	return nil
}

func (r *StoryDetailRepositoryImpl) Update(ctx context.Context, detail *entity.StoryDetail) error {
	m := r.mapper.ToDetailModel(detail)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*detail = *r.mapper.ToDetailEntity(m)
	return nil
}

func (r *StoryDetailRepositoryImpl) Delete(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.StoryDetail{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StoryDetailRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*entity.StoryDetail, error) {
	var m model.StoryDetail
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToDetailEntity(&m), nil
}

func (r *StoryDetailRepositoryImpl) FindOrphans(ctx context.Context) ([]*entity.StoryDetail, error) {
	var models []*model.StoryDetail
	err := r.db.WithContext(ctx).
		Where("slug NOT IN (?)", r.db.Model(&model.StorySummary{}).Select("slug")).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	details := make([]*entity.StoryDetail, len(models))
	for i, m := range models {
		details[i] = r.mapper.ToDetailEntity(m)
	}
	return details, nil
}
