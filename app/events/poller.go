package events

import (
	"context"
	"time"

	"github.com/polyfeed/polyfeed/internal/logger"
)

// Poller drives the service's refresh cycle on a fixed interval until its
// context is cancelled.
type Poller struct {
	service  Service
	interval time.Duration
	logger   logger.Logger
}

func NewPoller(service Service, interval time.Duration, log logger.Logger) *Poller {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Poller{
		service:  service,
		interval: interval,
		logger:   log,
	}
}

// Run polls immediately, then on every tick. A failed cycle is logged and the
// loop keeps going; the previous catalog stays served until it expires.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("event poller stopped", nil)
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if err := p.service.RefreshOnce(ctx); err != nil {
		p.logger.Error(err, map[string]interface{}{"stage": "poll_refresh"})
	}
}
