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

type StorySummaryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StoryMapper
}

func NewStorySummaryRepository(db *gorm.DB) contract.StorySummaryRepository {
	return &StorySummaryRepositoryImpl{
		db:     db,
		mapper: mapper.NewStoryMapper(),
	}
}

func (r *StorySummaryRepositoryImpl) applyFilter(db *gorm.DB, filter contract.StoryFilter) *gorm.DB {
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.AuthorId != "" {
		db = db.Where("author_id = ?", filter.AuthorId)
	}
	return db
}

func (r *StorySummaryRepositoryImpl) Create(ctx context.Context, summary *entity.StorySummary) error {
	m := r.mapper.ToSummaryModel(summary)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*summary = *r.mapper.ToSummaryEntity(m)
	return nil
}

func (r *StorySummaryRepositoryImpl) Update(ctx context.Context, summary *entity.StorySummary) error {
	m := r.mapper.ToSummaryModel(summary)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*summary = *r.mapper.ToSummaryEntity(m)
	return nil
}

func (r *StorySummaryRepositoryImpl) Delete(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.StorySummary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StorySummaryRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*entity.StorySummary, error) {
	var m model.StorySummary
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToSummaryEntity(&m), nil
}

func (r *StorySummaryRepositoryImpl) FindAll(ctx context.Context, filter contract.StoryFilter) ([]*entity.StorySummary, error) {
	var models []*model.StorySummary
	query := r.applyFilter(r.db.WithContext(ctx), filter).Order("created_at DESC")
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToSummaryEntities(models), nil
}

func (r *StorySummaryRepositoryImpl) Count(ctx context.Context, filter contract.StoryFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.StorySummary{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
