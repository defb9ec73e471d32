package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// purgeTimeout bounds a single purge run
const purgeTimeout = 30 * time.Second

// RevocationPurger deletes revocations of tokens that have already expired
type RevocationPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// scheduleParser accepts standard 5-field expressions and descriptors such as
// "@hourly" or "@every 30m"
var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// StartRevocationPurge runs purges on the given cron schedule until the
// returned scheduler is stopped.
func StartRevocationPurge(schedule string, purger RevocationPurger, logger zerolog.Logger) (*cron.Cron, error) {
	if _, err := scheduleParser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("invalid purge schedule %q: %w", schedule, err)
	}

	c := cron.New(cron.WithParser(scheduleParser))
	if _, err := c.AddFunc(schedule, func() {
		purgeRevokedTokens(purger, time.Now(), logger)
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule revocation purge: %w", err)
	}

	c.Start()
	logger.Info().Str("schedule", schedule).Msg("Revocation purge scheduled")

	return c, nil
}

func purgeRevokedTokens(purger RevocationPurger, now time.Time, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	purged, err := purger.PurgeExpired(ctx, now)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to purge expired revocations")
		return
	}

	logger.Debug().Int64("purged", purged).Msg("Expired revocations purged")
}
