package market

import (
	"context"
	"fmt"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/logger"
)

// step is one stage of a multi-account flow. rollback undoes run and may be
// nil for steps that need no compensation.
type step struct {
	name     string
	run      func() error
	rollback func() error
}

// runCompensated executes steps in order. When a step fails, the rollbacks
// of every completed step are applied in reverse. A rollback that itself
// fails leaves the books inconsistent; that is surfaced as
// domain.ErrCompensationFailed and never swallowed.
func runCompensated(ctx context.Context, steps []step) error {
	log := logger.FromContext(ctx)

	for i, st := range steps {
		err := st.run()
		if err == nil {
			continue
		}

		for j := i - 1; j >= 0; j-- {
			if steps[j].rollback == nil {
				continue
			}
			if rbErr := steps[j].rollback(); rbErr != nil {
				log.Error(LogMsgCompensationFailed,
					"failed_step", st.name, "rollback_step", steps[j].name, "error", rbErr)
				return fmt.Errorf("%w: rolling back %s after %s failed: %v (original: %w)",
					domain.ErrCompensationFailed, steps[j].name, st.name, rbErr, err)
			}
			log.Warn(LogMsgCompensationApplied,
				"failed_step", st.name, "rollback_step", steps[j].name)
		}
		return err
	}
	return nil
}
