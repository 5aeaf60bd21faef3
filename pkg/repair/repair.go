package repair

import (
	"context"

	"github.com/chris/onchain-marketplace/pkg/models"
)

// Scheduler enqueues a failed post-confirmation metadata write for
// asynchronous retry. Tasks are idempotent by listing id, so at-least-once
// delivery is fine.
type Scheduler interface {
	ScheduleRepair(ctx context.Context, task *models.RepairTask) error
}
