package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"habit-tracker/internal/repository"
)

// CleanupService runs the cron job that purges expired refresh tokens.
// Revoked tokens disappear immediately; this only sweeps rows whose JWT
// expiry has passed without the token ever being rotated.
type CleanupService struct {
	cron      *cron.Cron
	tokenRepo *repository.RefreshTokenRepository
}

func NewCleanupService(tokenRepo *repository.RefreshTokenRepository, loc *time.Location) *CleanupService {
	return &CleanupService{
		cron:      cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		tokenRepo: tokenRepo,
	}
}

// Schedule registers the purge job every given duration.
func (s *CleanupService) Schedule(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	if _, err := s.cron.AddFunc(spec, s.purge); err != nil {
		return fmt.Errorf("schedule token cleanup: %w", err)
	}
	return nil
}

func (s *CleanupService) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.tokenRepo.PurgeExpired(ctx, time.Now())
	if err != nil {
		log.Printf("token cleanup: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("[info] token cleanup removed %d expired tokens", removed)
	}
}

func (s *CleanupService) Start() {
	s.cron.Start()
}

func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
