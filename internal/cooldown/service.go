// Package cooldown gates repeatable actions behind per-user, per-action
// timers. Expiry is an absolute persisted instant; records past expiry are
// logically absent and pruned lazily on read. Concurrent callers racing the
// gate can at worst both pass, which shortens one wait and is accepted.
package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/repository"
)

// Service manages action cooldowns for users
type Service interface {
	// CheckCooldown reports whether the action is gated and for how much
	// longer.
	CheckCooldown(ctx context.Context, userID, action string) (bool, time.Duration, error)

	// EnforceCooldown runs fn if the gate is open and arms the cooldown after
	// fn succeeds. A failing fn leaves the gate open.
	EnforceCooldown(ctx context.Context, userID, action string, reductions []float64, fn func() error) error

	// StartCooldown arms the cooldown without running anything.
	StartCooldown(ctx context.Context, userID, action string, reductions []float64) error

	// ResetCooldown clears a cooldown (admin/testing)
	ResetCooldown(ctx context.Context, userID, action string) error

	// EffectiveDuration returns the base duration for the action after
	// stacking reductions, clamped at the configured cap.
	EffectiveDuration(action string, reductions []float64) time.Duration
}

type service struct {
	repo repository.Cooldown
	cfg  Config
	now  func() time.Time
}

// NewService creates a new cooldown service.
func NewService(repo repository.Cooldown, cfg Config) Service {
	return &service{repo: repo, cfg: cfg, now: time.Now}
}

func (s *service) CheckCooldown(ctx context.Context, userID, action string) (bool, time.Duration, error) {
	if s.cfg.DevMode {
		return false, 0, nil
	}

	var rec *domain.CooldownRecord
	err := repository.WithRetry(ctx, func() error {
		var err error
		rec, err = s.repo.GetCooldown(ctx, userID, action)
		return err
	})
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}
	if rec == nil {
		return false, 0, nil
	}

	now := s.now()
	if !rec.Active(now) {
		// Best effort; an expired record that survives the prune is still
		// logically absent on the next read.
		if err := s.repo.DeleteCooldown(ctx, userID, action); err != nil {
			logger.FromContext(ctx).Warn(LogMsgExpiredCooldownPruned, "error", err)
		}
		return false, 0, nil
	}
	return true, rec.ExpiresAt.Sub(now), nil
}

func (s *service) EnforceCooldown(ctx context.Context, userID, action string, reductions []float64, fn func() error) error {
	if s.cfg.DevMode {
		logger.FromContext(ctx).Debug(LogMsgDevModeBypass, "action", action)
		return fn()
	}

	gated, remaining, err := s.CheckCooldown(ctx, userID, action)
	if err != nil {
		return err
	}
	if gated {
		return fmt.Errorf("%w: %s available in %s", domain.ErrOnCooldown, action, remaining.Round(time.Second))
	}

	if err := fn(); err != nil {
		return err
	}
	return s.StartCooldown(ctx, userID, action, reductions)
}

func (s *service) StartCooldown(ctx context.Context, userID, action string, reductions []float64) error {
	duration := s.EffectiveDuration(action, reductions)
	expiresAt := s.now().Add(duration)

	err := repository.WithRetry(ctx, func() error {
		return s.repo.SetCooldown(ctx, userID, action, expiresAt)
	})
	if err != nil {
		return fmt.Errorf(ErrMsgStartCooldownFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgCooldownStarted,
		"user_id", userID, "action", action, "duration", duration)
	return nil
}

func (s *service) ResetCooldown(ctx context.Context, userID, action string) error {
	if err := s.repo.DeleteCooldown(ctx, userID, action); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

func (s *service) EffectiveDuration(action string, reductions []float64) time.Duration {
	base := s.cfg.GetDuration(action)

	var total float64
	for _, r := range reductions {
		if r > 0 {
			total += r
		}
	}
	if cap := s.cfg.maxReduction(); total > cap {
		total = cap
	}
	return time.Duration(float64(base) * (1 - total/100))
}
