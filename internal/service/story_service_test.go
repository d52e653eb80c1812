package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"placement-mentor-be/internal/dto"
	"placement-mentor-be/internal/entity"
	"placement-mentor-be/internal/repository/cache"
	"placement-mentor-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- fakes -----------------------------------------------------------------

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeSummaryRepo struct {
	rows      map[string]*entity.StorySummary
	createErr error
	updateErr error
	deleteErr error
	findErr   error
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{rows: map[string]*entity.StorySummary{}}
}

func (r *fakeSummaryRepo) Create(ctx context.Context, summary *entity.StorySummary) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.rows[summary.Slug]; exists {
		return gorm.ErrDuplicatedKey
	}
	cp := *summary
	r.rows[summary.Slug] = &cp
	return nil
}

func (r *fakeSummaryRepo) Update(ctx context.Context, summary *entity.StorySummary) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *summary
	r.rows[summary.Slug] = &cp
	return nil
}

func (r *fakeSummaryRepo) Delete(ctx context.Context, slug string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, exists := r.rows[slug]; !exists {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, slug)
	return nil
}

func (r *fakeSummaryRepo) FindBySlug(ctx context.Context, slug string) (*entity.StorySummary, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	row, exists := r.rows[slug]
	if !exists {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *fakeSummaryRepo) FindAll(ctx context.Context, filter contract.StoryFilter) ([]*entity.StorySummary, error) {
	var out []*entity.StorySummary
	for _, row := range r.rows {
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		if filter.AuthorId != "" && row.AuthorId != filter.AuthorId {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSummaryRepo) Count(ctx context.Context, filter contract.StoryFilter) (int64, error) {
	rows, _ := r.FindAll(ctx, filter)
	return int64(len(rows)), nil
}

type fakeDetailRepo struct {
	rows      map[string]*entity.StoryDetail
	orphans   []*entity.StoryDetail
	createErr error
	updateErr error
	deleteErr error
	findErr   error
}

func newFakeDetailRepo() *fakeDetailRepo {
	return &fakeDetailRepo{rows: map[string]*entity.StoryDetail{}}
}

func (r *fakeDetailRepo) Create(ctx context.Context, detail *entity.StoryDetail) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *detail
	r.rows[detail.Slug] = &cp
	return nil
}

func (r *fakeDetailRepo) Update(ctx context.Context, detail *entity.StoryDetail) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *detail
	r.rows[detail.Slug] = &cp
	return nil
}

func (r *fakeDetailRepo) Delete(ctx context.Context, slug string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, exists := r.rows[slug]; !exists {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, slug)
	return nil
}

func (r *fakeDetailRepo) FindBySlug(ctx context.Context, slug string) (*entity.StoryDetail, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	row, exists := r.rows[slug]
	if !exists {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *fakeDetailRepo) FindOrphans(ctx context.Context) ([]*entity.StoryDetail, error) {
	return r.orphans, nil
}

type memAssetStore struct {
	uploads   int
	deleted   []string
	uploadErr error
	deleteErr error
}

func newMemAssetStore() *memAssetStore {
	return &memAssetStore{}
}

func (s *memAssetStore) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	s.uploads++
	return fmt.Sprintf("asset-%d", s.uploads), nil
}

func (s *memAssetStore) Delete(ctx context.Context, assetId string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, assetId)
	return nil
}

func (s *memAssetStore) PreviewURL(assetId string) string {
	return "https://assets.test/" + assetId
}

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) orphanAssets(t *testing.T) []string {
	t.Helper()
	var ids []string
	for _, raw := range p.payloads {
		var msg dto.PublishCleanupMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		if msg.Kind == "asset" {
			ids = append(ids, msg.AssetId)
		}
	}
	return ids
}

// --- harness ---------------------------------------------------------------

type storyFixture struct {
	service   IStoryService
	summaries *fakeSummaryRepo
	details   *fakeDetailRepo
	assets    *memAssetStore
	publisher *recordingPublisher
}

func newStoryFixture() *storyFixture {
	summaries := newFakeSummaryRepo()
	details := newFakeDetailRepo()
	assets := newMemAssetStore()
	publisher := &recordingPublisher{}

	svc := NewStoryService(
		summaries,
		details,
		assets,
		cache.NewStoryCache(nil),
		publisher,
		nopLogger{},
	)

	return &storyFixture{
		service:   svc,
		summaries: summaries,
		details:   details,
		assets:    assets,
		publisher: publisher,
	}
}

func createReq(slug string) *dto.CreateStoryRequest {
	return &dto.CreateStoryRequest{
		Slug:        slug,
		Title:       "A Placement Story",
		Company:     "Initech",
		Role:        "Backend Engineer",
		Tags:        "dsa, system design",
		Content:     "Intro text",
		Journey:     "The journey",
		Experiences: "The rounds",
		Strategy:    "The prep",
		Advice:      "The advice",
	}
}

func updateReq() *dto.UpdateStoryRequest {
	return &dto.UpdateStoryRequest{
		Title:       "A Placement Story (edited)",
		Company:     "Initech",
		Role:        "Backend Engineer",
		Content:     "New intro",
		Journey:     "New journey",
		Experiences: "New rounds",
		Strategy:    "New prep",
		Advice:      "New advice",
	}
}

func testAsset() *UploadedAsset {
	return &UploadedAsset{
		Filename: "photo.png",
		File:     strings.NewReader("fake image bytes"),
	}
}

// --- create ----------------------------------------------------------------

func TestCreateMergesBothRecordsUnderOneSlug(t *testing.T) {
	f := newStoryFixture()

	res, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), nil)

	require.NoError(t, err)
	assert.Equal(t, "a-cse-2025", res.Summary.Slug)
	require.NotNil(t, res.Detail)
	assert.Equal(t, "The journey", res.Detail.Journey)
	assert.Equal(t, "author-1", res.Summary.AuthorId)
	assert.Equal(t, []string{"dsa", "system design"}, res.Summary.Tags)
	assert.Equal(t, entity.StoryStatusActive, res.Summary.Status)

	_, summaryExists := f.summaries.rows["a-cse-2025"]
	_, detailExists := f.details.rows["a-cse-2025"]
	assert.True(t, summaryExists)
	assert.True(t, detailExists)
}

func TestCreateNormalizesSlug(t *testing.T) {
	f := newStoryFixture()

	res, err := f.service.Create(context.Background(), "author-1", createReq("  My Störy! 2025 "), nil)

	require.NoError(t, err)
	assert.Equal(t, "my-st-ry-2025", res.Summary.Slug)
}

func TestCreateUploadsAssetBeforeAnyRecord(t *testing.T) {
	f := newStoryFixture()

	res, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), testAsset())

	require.NoError(t, err)
	require.NotNil(t, res.Summary.AssetId)
	assert.Equal(t, 1, f.assets.uploads)
	assert.NotEmpty(t, res.Summary.PreviewURL)
}

func TestCreateFailedUploadAbortsEverything(t *testing.T) {
	f := newStoryFixture()
	f.assets.uploadErr = errors.New("bucket unavailable")

	_, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), testAsset())

	assert.ErrorIs(t, err, ErrAssetUpload)
	assert.Empty(t, f.summaries.rows)
	assert.Empty(t, f.details.rows)
}

func TestCreateSummaryFailureReportsOrphanedAsset(t *testing.T) {
	f := newStoryFixture()
	f.summaries.createErr = errors.New("db down")

	_, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), testAsset())

	assert.ErrorIs(t, err, ErrSummaryWrite)
	assert.Empty(t, f.details.rows)
	// The uploaded asset has no owner any more; cleanup must hear about it.
	assert.Len(t, f.publisher.orphanAssets(t), 1)
}

func TestCreateDuplicateSlugIsConflict(t *testing.T) {
	f := newStoryFixture()
	_, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), nil)
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), "author-2", createReq("a-cse-2025"), nil)

	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateDetailFailureLeavesDegradedAggregate(t *testing.T) {
	f := newStoryFixture()
	f.details.createErr = errors.New("db hiccup")

	_, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), nil)
	assert.ErrorIs(t, err, ErrDetailWrite)

	// The summary survives: no rollback.
	_, summaryExists := f.summaries.rows["a-cse-2025"]
	assert.True(t, summaryExists)

	// And reads recover it as a degraded aggregate, not an error.
	res, err := f.service.Get(context.Background(), "a-cse-2025")
	require.NoError(t, err)
	assert.Equal(t, "a-cse-2025", res.Summary.Slug)
	assert.Nil(t, res.Detail)
}

// --- get -------------------------------------------------------------------

func TestGetMissingSummaryIsNotFound(t *testing.T) {
	f := newStoryFixture()

	_, err := f.service.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestGetDetailReadFailureDegradesInsteadOfFailing(t *testing.T) {
	f := newStoryFixture()
	_, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), nil)
	require.NoError(t, err)

	f.details.findErr = errors.New("detail collection unreachable")

	res, err := f.service.Get(context.Background(), "a-cse-2025")

	require.NoError(t, err)
	assert.Equal(t, "a-cse-2025", res.Summary.Slug)
	assert.Nil(t, res.Detail)
}

// --- update ----------------------------------------------------------------

func TestUpdateFailedUploadLeavesOldAssetReference(t *testing.T) {
	f := newStoryFixture()
	created, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), testAsset())
	require.NoError(t, err)
	oldAssetId := *created.Summary.AssetId

	f.assets.uploadErr = errors.New("bucket unavailable")

	_, err = f.service.Update(context.Background(), "a-cse-2025", updateReq(), testAsset())

	assert.ErrorIs(t, err, ErrAssetUpload)
	assert.Empty(t, f.assets.deleted, "old asset must not be touched")
	stored := f.summaries.rows["a-cse-2025"]
	require.NotNil(t, stored.AssetId)
	assert.Equal(t, oldAssetId, *stored.AssetId)
	assert.Equal(t, "A Placement Story", stored.Title, "summary fields unchanged")
}

func TestUpdateSwapsAssetAfterSuccessfulUpload(t *testing.T) {
	f := newStoryFixture()
	created, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), testAsset())
	require.NoError(t, err)
	oldAssetId := *created.Summary.AssetId

	res, err := f.service.Update(context.Background(), "a-cse-2025", updateReq(), testAsset())

	require.NoError(t, err)
	require.NotNil(t, res.Summary.AssetId)
	assert.NotEqual(t, oldAssetId, *res.Summary.AssetId)
	assert.Equal(t, []string{oldAssetId}, f.assets.deleted)
}

func TestUpdateOldAssetDeleteFailureIsSwallowed(t *testing.T) {
	f := newStoryFixture()
	created, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), testAsset())
	require.NoError(t, err)
	oldAssetId := *created.Summary.AssetId

	f.assets.deleteErr = errors.New("storage flaking")

	res, err := f.service.Update(context.Background(), "a-cse-2025", updateReq(), testAsset())

	require.NoError(t, err, "stale asset is not a fatal condition")
	assert.NotEqual(t, oldAssetId, *res.Summary.AssetId)
	assert.Equal(t, []string{oldAssetId}, f.publisher.orphanAssets(t))
}

func TestUpdateUnknownSlugIsNotFound(t *testing.T) {
	f := newStoryFixture()

	_, err := f.service.Update(context.Background(), "missing", updateReq(), nil)

	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestUpdateDetailFailureKeepsSummaryChanges(t *testing.T) {
	f := newStoryFixture()
	_, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), nil)
	require.NoError(t, err)

	f.details.updateErr = errors.New("db hiccup")

	_, err = f.service.Update(context.Background(), "a-cse-2025", updateReq(), nil)

	assert.ErrorIs(t, err, ErrDetailWrite)
	assert.Equal(t, "A Placement Story (edited)", f.summaries.rows["a-cse-2025"].Title)
	assert.Equal(t, "The journey", f.details.rows["a-cse-2025"].Journey, "detail untouched")
}

func TestUpdateRepairsDegradedAggregate(t *testing.T) {
	f := newStoryFixture()
	f.details.createErr = errors.New("db hiccup")
	_, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), nil)
	require.ErrorIs(t, err, ErrDetailWrite)

	f.details.createErr = nil

	res, err := f.service.Update(context.Background(), "a-cse-2025", updateReq(), nil)

	require.NoError(t, err)
	require.NotNil(t, res.Detail)
	assert.Equal(t, "New journey", res.Detail.Journey)
}

func TestUpdatePreservesAuthorAndSlug(t *testing.T) {
	f := newStoryFixture()
	_, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), nil)
	require.NoError(t, err)

	res, err := f.service.Update(context.Background(), "a-cse-2025", updateReq(), nil)

	require.NoError(t, err)
	assert.Equal(t, "a-cse-2025", res.Summary.Slug)
	assert.Equal(t, "author-1", res.Summary.AuthorId)
}

// --- delete ----------------------------------------------------------------

func TestDeleteSucceedsWhenDetailAlreadyMissing(t *testing.T) {
	f := newStoryFixture()
	created, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), testAsset())
	require.NoError(t, err)
	assetId := *created.Summary.AssetId

	// Simulate the degraded state: the detail row is already gone.
	delete(f.details.rows, "a-cse-2025")

	err = f.service.Delete(context.Background(), "a-cse-2025", &assetId)

	require.NoError(t, err)
	assert.Empty(t, f.summaries.rows)
	assert.Equal(t, []string{assetId}, f.assets.deleted)
}

func TestDeleteSummaryFailureLeavesAssetAlone(t *testing.T) {
	f := newStoryFixture()
	created, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), testAsset())
	require.NoError(t, err)
	assetId := *created.Summary.AssetId

	f.summaries.deleteErr = errors.New("db down")

	err = f.service.Delete(context.Background(), "a-cse-2025", &assetId)

	require.Error(t, err)
	assert.Empty(t, f.assets.deleted, "the story still exists, its image must survive")
}

func TestDeleteAssetFailureDoesNotFailTheDelete(t *testing.T) {
	f := newStoryFixture()
	created, err := f.service.Create(context.Background(), "author-1", createReq("a-cse-2025"), testAsset())
	require.NoError(t, err)
	assetId := *created.Summary.AssetId

	f.assets.deleteErr = errors.New("storage flaking")

	err = f.service.Delete(context.Background(), "a-cse-2025", &assetId)

	require.NoError(t, err, "the record is already gone, the delete stands")
	assert.Empty(t, f.summaries.rows)
	assert.Equal(t, []string{assetId}, f.publisher.orphanAssets(t))
}

func TestDeleteMissingSlugIsNotFound(t *testing.T) {
	f := newStoryFixture()

	err := f.service.Delete(context.Background(), "missing", nil)

	assert.ErrorIs(t, err, ErrStoryNotFound)
}

// --- list ------------------------------------------------------------------

func TestListDefaultsToActiveStories(t *testing.T) {
	f := newStoryFixture()
	_, err := f.service.Create(context.Background(), "author-1", createReq("active-story"), nil)
	require.NoError(t, err)

	inactive := createReq("inactive-story")
	inactive.Status = entity.StoryStatusInactive
	_, err = f.service.Create(context.Background(), "author-1", inactive, nil)
	require.NoError(t, err)

	res, err := f.service.List(context.Background(), &dto.ListStoriesRequest{})

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "active-story", res[0].Slug)
}

func TestListByAuthorIncludesInactive(t *testing.T) {
	f := newStoryFixture()
	inactive := createReq("inactive-story")
	inactive.Status = entity.StoryStatusInactive
	_, err := f.service.Create(context.Background(), "author-1", inactive, nil)
	require.NoError(t, err)

	res, err := f.service.List(context.Background(), &dto.ListStoriesRequest{AuthorId: "author-1"})

	require.NoError(t, err)
	assert.Len(t, res, 1)
}
