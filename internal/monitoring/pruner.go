package monitoring

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/finbook/finbook-be/internal/services"
)

// Pruner removes old activity feed entries on a cron schedule.
type Pruner struct {
	eventSvc      services.EventServiceProvider
	schedule      cron.Schedule
	retentionDays int
	nextRun       time.Time
	ticker        *time.Ticker
	done          chan bool
}

// NewPruner creates a pruner from a standard cron expression. retentionDays
// is how long feed entries are kept.
func NewPruner(eventSvc services.EventServiceProvider, spec string, retentionDays int) (*Pruner, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid prune schedule: %w", err)
	}
	return &Pruner{
		eventSvc:      eventSvc,
		schedule:      schedule,
		retentionDays: retentionDays,
		nextRun:       schedule.Next(time.Now()),
		done:          make(chan bool),
	}, nil
}

// Run starts the pruner's ticking loop.
func (p *Pruner) Run() {
	log.Info().Int("retention_days", p.retentionDays).Time("next_run", p.nextRun).Msg("Starting event pruner")
	p.ticker = time.NewTicker(1 * time.Minute)
	defer p.ticker.Stop()

	for {
		select {
		case <-p.done:
			log.Info().Msg("Stopping event pruner")
			return
		case <-p.ticker.C:
			now := time.Now()
			if now.After(p.nextRun) {
				p.prune()
				p.nextRun = p.schedule.Next(now)
			}
		}
	}
}

// Stop halts the pruner.
func (p *Pruner) Stop() {
	p.done <- true
}

func (p *Pruner) prune() {
	removed, err := p.eventSvc.PruneOlderThan(p.retentionDays)
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune old events")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Pruned old activity events")
	}
}
