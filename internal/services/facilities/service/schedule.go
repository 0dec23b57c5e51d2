package service

import (
	"context"
	"errors"
	"time"

	"facilities/internal/services/facilities/guardrails"
)

// Every triggers Reload on a fixed interval until ctx is done. A cycle that is still
// running when the next tick fires is skipped, not queued
func (s *Svc) Every(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.Reload(ctx); err != nil {
				if errors.Is(err, guardrails.ErrBusy) {
					s.log.Debug().Msg("scheduled reload skipped, cycle in progress")
					continue
				}
				s.log.Error().Err(err).Msg("scheduled reload failed")
			}
		}
	}
}
