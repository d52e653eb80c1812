package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"placement-mentor-be/internal/dto"
	"placement-mentor-be/internal/entity"
	"placement-mentor-be/internal/pkg/logger"
	"placement-mentor-be/internal/repository/cache"
	"placement-mentor-be/internal/repository/contract"
	"placement-mentor-be/pkg/storage"
	"placement-mentor-be/pkg/utils"

	"gorm.io/gorm"
)

const logModule = "story_service"

// UploadedAsset is a binary attachment handed in by the presentation layer.
type UploadedAsset struct {
	Filename string
	File     io.Reader
}

type IStoryService interface {
	Create(ctx context.Context, authorId string, req *dto.CreateStoryRequest, asset *UploadedAsset) (*dto.StoryAggregateResponse, error)
	Update(ctx context.Context, slug string, req *dto.UpdateStoryRequest, asset *UploadedAsset) (*dto.StoryAggregateResponse, error)
	Get(ctx context.Context, slug string) (*dto.StoryAggregateResponse, error)
	GetAggregate(ctx context.Context, slug string) (*entity.StoryAggregate, error)
	List(ctx context.Context, req *dto.ListStoriesRequest) ([]*dto.StorySummaryResponse, error)
	Delete(ctx context.Context, slug string, assetId *string) error
}

// storyService owns the multi-step choreography that keeps a summary record,
// its detail record, and the attached asset consistent. The store has no
// cross-collection transactions, so every ordering below is chosen to never
// lose data the user can still see, at the cost of orphaned secondary state
// that the cleanup consumer sweeps up later.
type storyService struct {
	summaryRepo contract.StorySummaryRepository
	detailRepo  contract.StoryDetailRepository
	assetStore  storage.AssetStore
	storyCache  *cache.StoryCache
	publisher   IPublisherService
	log         logger.ILogger
}

func NewStoryService(
	summaryRepo contract.StorySummaryRepository,
	detailRepo contract.StoryDetailRepository,
	assetStore storage.AssetStore,
	storyCache *cache.StoryCache,
	publisher IPublisherService,
	log logger.ILogger,
) IStoryService {
	return &storyService{
		summaryRepo: summaryRepo,
		detailRepo:  detailRepo,
		assetStore:  assetStore,
		storyCache:  storyCache,
		publisher:   publisher,
		log:         log,
	}
}

func (s *storyService) Create(ctx context.Context, authorId string, req *dto.CreateStoryRequest, asset *UploadedAsset) (*dto.StoryAggregateResponse, error) {
	slug := utils.Slugify(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}

	// Step 1: the asset goes in first. A failed upload aborts everything,
	// no record comes into existence pointing at a missing image.
	var assetId *string
	if asset != nil {
		id, err := s.assetStore.Upload(ctx, asset.Filename, asset.File)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetUpload, err)
		}
		assetId = &id
	}

	status := req.Status
	if status == "" {
		status = entity.StoryStatusActive
	}

	summary := &entity.StorySummary{
		Slug:          slug,
		Title:         req.Title,
		Department:    req.Department,
		Company:       req.Company,
		Role:          req.Role,
		BatchYear:     req.BatchYear,
		PlacementType: req.PlacementType,
		Tags:          utils.ParseTags(req.Tags),
		Status:        status,
		AuthorId:      authorId,
		Content:       req.Content,
		AssetId:       assetId,
		CreatedAt:     time.Now(),
	}

	// Step 2: summary record. On failure the uploaded asset is already
	// orphaned; hand it to the cleanup consumer and report the failure.
	if err := s.summaryRepo.Create(ctx, summary); err != nil {
		if assetId != nil {
			s.reportOrphanAsset(ctx, *assetId, "summary create failed after upload")
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrSlugTaken, slug)
		}
		return nil, fmt.Errorf("%w: %v", ErrSummaryWrite, err)
	}

	detail := &entity.StoryDetail{
		Slug:        slug,
		Journey:     req.Journey,
		Experiences: req.Experiences,
		Strategy:    req.Strategy,
		Advice:      req.Advice,
		CreatedAt:   time.Now(),
	}

	// Step 3: detail record. The summary is NOT rolled back on failure; the
	// caller gets ErrDetailWrite and the aggregate stays degraded until the
	// next successful update.
	if err := s.detailRepo.Create(ctx, detail); err != nil {
		s.log.Warn(logModule, "detail write failed, aggregate left degraded", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrDetailWrite, err)
	}

	aggregate := &entity.StoryAggregate{Summary: summary, Detail: detail}
	s.cacheAggregate(ctx, aggregate)

	return s.toAggregateResponse(aggregate), nil
}

func (s *storyService) Update(ctx context.Context, slug string, req *dto.UpdateStoryRequest, asset *UploadedAsset) (*dto.StoryAggregateResponse, error) {
	existing, err := s.summaryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, slug)
	}

	// Asset swap: upload the replacement before touching the old object, so
	// a failed upload leaves the story's current image intact. Once the new
	// object exists the old one is best-effort deleted; a leftover is
	// unreferenced, not user-visible, and cleanup handles it.
	assetId := existing.AssetId
	if asset != nil {
		newId, err := s.assetStore.Upload(ctx, asset.Filename, asset.File)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetUpload, err)
		}
		if assetId != nil {
			if err := s.assetStore.Delete(ctx, *assetId); err != nil {
				s.log.Warn(logModule, "previous asset delete failed", map[string]interface{}{
					"slug":     slug,
					"asset_id": *assetId,
					"error":    err.Error(),
				})
				s.reportOrphanAsset(ctx, *assetId, "replaced asset delete failed")
			}
		}
		assetId = &newId
	}

	now := time.Now()
	status := req.Status
	if status == "" {
		status = existing.Status
	}

	summary := &entity.StorySummary{
		Slug:          existing.Slug,
		Title:         req.Title,
		Department:    req.Department,
		Company:       req.Company,
		Role:          req.Role,
		BatchYear:     req.BatchYear,
		PlacementType: req.PlacementType,
		Tags:          utils.ParseTags(req.Tags),
		Status:        status,
		AuthorId:      existing.AuthorId,
		Content:       req.Content,
		AssetId:       assetId,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     &now,
	}

	if err := s.summaryRepo.Update(ctx, summary); err != nil {
		if asset != nil && assetId != nil {
			s.reportOrphanAsset(ctx, *assetId, "summary update failed after upload")
		}
		return nil, fmt.Errorf("%w: %v", ErrSummaryWrite, err)
	}

	detail, err := s.writeDetail(ctx, slug, req, now)
	if err != nil {
		// Summary changes are already committed and stay.
		s.invalidateCache(ctx, slug)
		return nil, err
	}

	aggregate := &entity.StoryAggregate{Summary: summary, Detail: detail}
	s.invalidateCache(ctx, slug)
	s.cacheAggregate(ctx, aggregate)

	return s.toAggregateResponse(aggregate), nil
}

// writeDetail upserts the detail row. A degraded aggregate (detail row lost
// to an earlier failed create) is repaired here instead of erroring.
func (s *storyService) writeDetail(ctx context.Context, slug string, req *dto.UpdateStoryRequest, now time.Time) (*entity.StoryDetail, error) {
	existing, err := s.detailRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetailWrite, err)
	}

	detail := &entity.StoryDetail{
		Slug:        slug,
		Journey:     req.Journey,
		Experiences: req.Experiences,
		Strategy:    req.Strategy,
		Advice:      req.Advice,
		UpdatedAt:   &now,
	}

	if existing == nil {
		detail.CreatedAt = now
		if err := s.detailRepo.Create(ctx, detail); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDetailWrite, err)
		}
		return detail, nil
	}

	detail.CreatedAt = existing.CreatedAt
	if err := s.detailRepo.Update(ctx, detail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetailWrite, err)
	}
	return detail, nil
}

func (s *storyService) Get(ctx context.Context, slug string) (*dto.StoryAggregateResponse, error) {
	aggregate, err := s.GetAggregate(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.toAggregateResponse(aggregate), nil
}

// GetAggregate reads and merges one aggregate. A missing or unreadable
// detail row degrades the result instead of failing it, mirroring the
// degraded state a crashed create can leave behind.
func (s *storyService) GetAggregate(ctx context.Context, slug string) (*entity.StoryAggregate, error) {
	if cached, hit, err := s.storyCache.Get(ctx, slug); err != nil {
		s.log.Warn(logModule, "aggregate cache read failed", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
	} else if hit {
		return cached, nil
	}

	summary, err := s.summaryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, slug)
	}

	detail, err := s.detailRepo.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Warn(logModule, "detail read failed, serving degraded aggregate", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
		detail = nil
	}

	aggregate := &entity.StoryAggregate{Summary: summary, Detail: detail}
	s.cacheAggregate(ctx, aggregate)
	return aggregate, nil
}

func (s *storyService) List(ctx context.Context, req *dto.ListStoriesRequest) ([]*dto.StorySummaryResponse, error) {
	filter := contract.StoryFilter{}
	if req != nil {
		filter.Status = req.Status
		filter.AuthorId = req.AuthorId
	}
	if filter.Status == "" && filter.AuthorId == "" {
		filter.Status = entity.StoryStatusActive
	}

	summaries, err := s.summaryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.StorySummaryResponse, len(summaries))
	for i, summary := range summaries {
		out[i] = s.toSummaryResponse(summary)
	}
	return out, nil
}

func (s *storyService) Delete(ctx context.Context, slug string, assetId *string) error {
	// Detail goes first. Whatever happens here, even a missing row, never
	// stops the sequence.
	if err := s.detailRepo.Delete(ctx, slug); err != nil {
		s.log.Warn(logModule, "detail delete failed, continuing", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
	}

	// Summary delete failure stops everything. The asset is deliberately
	// left alone: the story still exists, so its image must survive.
	if err := s.summaryRepo.Delete(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrStoryNotFound, slug)
		}
		return fmt.Errorf("%w: %v", ErrSummaryWrite, err)
	}

	if assetId != nil {
		if err := s.assetStore.Delete(ctx, *assetId); err != nil {
			s.log.Warn(logModule, "asset delete failed after summary delete", map[string]interface{}{
				"slug":     slug,
				"asset_id": *assetId,
				"error":    err.Error(),
			})
			s.reportOrphanAsset(ctx, *assetId, "asset delete failed during story delete")
		}
	}

	s.invalidateCache(ctx, slug)
	return nil
}

func (s *storyService) reportOrphanAsset(ctx context.Context, assetId, reason string) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(dto.PublishCleanupMessage{
		Kind:    "asset",
		AssetId: assetId,
	})
	if err != nil {
		return
	}

	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Warn(logModule, "failed to publish orphan asset event", map[string]interface{}{
			"asset_id": assetId,
			"reason":   reason,
			"error":    err.Error(),
		})
	}
}

func (s *storyService) cacheAggregate(ctx context.Context, aggregate *entity.StoryAggregate) {
	if err := s.storyCache.Set(ctx, aggregate); err != nil {
		s.log.Warn(logModule, "aggregate cache write failed", map[string]interface{}{
			"slug":  aggregate.Slug(),
			"error": err.Error(),
		})
	}
}

func (s *storyService) invalidateCache(ctx context.Context, slug string) {
	if err := s.storyCache.Invalidate(ctx, slug); err != nil {
		s.log.Warn(logModule, "aggregate cache invalidate failed", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
	}
}

func (s *storyService) toSummaryResponse(summary *entity.StorySummary) *dto.StorySummaryResponse {
	previewURL := ""
	if summary.AssetId != nil {
		previewURL = s.assetStore.PreviewURL(*summary.AssetId)
	}

	return &dto.StorySummaryResponse{
		Slug:          summary.Slug,
		Title:         summary.Title,
		Department:    summary.Department,
		Company:       summary.Company,
		Role:          summary.Role,
		BatchYear:     summary.BatchYear,
		PlacementType: summary.PlacementType,
		Tags:          summary.Tags,
		Status:        summary.Status,
		AuthorId:      summary.AuthorId,
		Content:       summary.Content,
		AssetId:       summary.AssetId,
		PreviewURL:    previewURL,
		CreatedAt:     summary.CreatedAt,
		UpdatedAt:     summary.UpdatedAt,
	}
}

func (s *storyService) toAggregateResponse(aggregate *entity.StoryAggregate) *dto.StoryAggregateResponse {
	res := &dto.StoryAggregateResponse{
		Summary: s.toSummaryResponse(aggregate.Summary),
	}
	if aggregate.Detail != nil {
		res.Detail = &dto.StoryDetailResponse{
			Journey:     aggregate.Detail.Journey,
			Experiences: aggregate.Detail.Experiences,
			Strategy:    aggregate.Detail.Strategy,
			Advice:      aggregate.Detail.Advice,
		}
	}
	return res
}
