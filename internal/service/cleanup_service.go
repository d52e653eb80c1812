package service

import (
	"context"
	"encoding/json"
	"errors"

	"placement-mentor-be/internal/dto"
	"placement-mentor-be/internal/pkg/logger"
	"placement-mentor-be/internal/repository/contract"
	"placement-mentor-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const cleanupLogModule = "cleanup_service"

type ICleanupService interface {
	Consume(ctx context.Context) error
}

// cleanupService drains the orphan queue the synchronizer feeds: assets that
// lost their record and detail rows that lost their summary.
type cleanupService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	detailRepo contract.StoryDetailRepository
	assetStore storage.AssetStore
	log        logger.ILogger
}

func NewCleanupService(
	pubSub *gochannel.GoChannel,
	topicName string,
	detailRepo contract.StoryDetailRepository,
	assetStore storage.AssetStore,
	log logger.ILogger,
) ICleanupService {
	return &cleanupService{
		pubSub:     pubSub,
		topicName:  topicName,
		detailRepo: detailRepo,
		assetStore: assetStore,
		log:        log,
	}
}

func (cs *cleanupService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *cleanupService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishCleanupMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error(cleanupLogModule, "failed to unmarshal cleanup message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed messages must not loop forever
		return
	}

	switch payload.Kind {
	case "asset":
		cs.removeAsset(ctx, msg, payload.AssetId)
	case "detail":
		cs.removeDetail(ctx, msg, payload.Slug)
	default:
		cs.log.Warn(cleanupLogModule, "unknown cleanup kind", map[string]interface{}{
			"kind": payload.Kind,
		})
		msg.Ack()
	}
}

func (cs *cleanupService) removeAsset(ctx context.Context, msg *message.Message, assetId string) {
	err := cs.assetStore.Delete(ctx, assetId)
	if err != nil && !errors.Is(err, storage.ErrAssetNotFound) {
		cs.log.Warn(cleanupLogModule, "orphan asset delete failed, retrying", map[string]interface{}{
			"asset_id": assetId,
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info(cleanupLogModule, "orphan asset removed", map[string]interface{}{
		"asset_id": assetId,
	})
	msg.Ack()
}

func (cs *cleanupService) removeDetail(ctx context.Context, msg *message.Message, slug string) {
	if err := cs.detailRepo.Delete(ctx, slug); err != nil {
		// Already gone is fine; anything else gets retried.
		cs.log.Warn(cleanupLogModule, "orphan detail delete failed", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	cs.log.Info(cleanupLogModule, "orphan detail removed", map[string]interface{}{
		"slug": slug,
	})
	msg.Ack()
}
