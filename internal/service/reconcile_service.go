package service

import (
	"context"

	"placement-mentor-be/internal/pkg/logger"
	"placement-mentor-be/internal/repository/contract"
)

const reconcileLogModule = "reconcile_service"

type ReconcileReport struct {
	OrphanDetailsFound   int
	OrphanDetailsRemoved int
}

type IReconcileService interface {
	Run(ctx context.Context) (*ReconcileReport, error)
}

// reconcileService is the repair pass for invariants the store cannot
// enforce: a detail row must never outlive its summary. A crash between the
// summary and detail deletes (or a summary create that never happened) leaves
// such rows behind; this sweep removes them.
type reconcileService struct {
	detailRepo contract.StoryDetailRepository
	log        logger.ILogger
}

func NewReconcileService(detailRepo contract.StoryDetailRepository, log logger.ILogger) IReconcileService {
	return &reconcileService{
		detailRepo: detailRepo,
		log:        log,
	}
}

func (r *reconcileService) Run(ctx context.Context) (*ReconcileReport, error) {
	orphans, err := r.detailRepo.FindOrphans(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{OrphanDetailsFound: len(orphans)}

	for _, orphan := range orphans {
		if err := r.detailRepo.Delete(ctx, orphan.Slug); err != nil {
			r.log.Warn(reconcileLogModule, "orphan detail delete failed", map[string]interface{}{
				"slug":  orphan.Slug,
				"error": err.Error(),
			})
			continue
		}
		report.OrphanDetailsRemoved++
	}

	r.log.Info(reconcileLogModule, "reconciliation pass complete", map[string]interface{}{
		"found":   report.OrphanDetailsFound,
		"removed": report.OrphanDetailsRemoved,
	})

	return report, nil
}
