// Package poller runs the periodic fetch-filter-diff-publish loop.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/kuchel77/vicemergency-feed/internal/domain"
	"github.com/kuchel77/vicemergency-feed/internal/observability"
	"github.com/kuchel77/vicemergency-feed/internal/registry"
)

// Fetcher retrieves the current incident list from the feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Incident, error)
}

// Publisher delivers entity lifecycle events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, events []domain.EntityEvent) error
}

// Poller drives the scan cycle: fetch the feed, filter incidents, diff the
// entity set, and publish the resulting lifecycle events.
type Poller struct {
	fetcher   Fetcher
	filter    domain.Filter
	registry  *registry.Registry
	publisher Publisher // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
	interval  time.Duration
	ready     atomic.Bool
}

// New creates a Poller. Pass a nil publisher to disable event publishing.
func New(f Fetcher, filter domain.Filter, reg *registry.Registry, pub Publisher,
	logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Poller {
	return &Poller{
		fetcher:   f,
		filter:    filter,
		registry:  reg,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
		interval:  interval,
	}
}

// CheckReadiness returns nil once at least one poll has succeeded.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no successful feed poll yet")
	}
	return nil
}

// Run polls immediately, then on every interval tick until the context is
// cancelled. A failed poll waits for the next tick; the scan interval is the
// only retry mechanism.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "interval", p.interval, "radius_km", p.filter.RadiusKm)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// poll runs one fetch-filter-diff-publish cycle.
func (p *Poller) poll(ctx context.Context) {
	p.metrics.PollsTotal.Inc()
	start := time.Now()

	incidents, err := p.fetcher.Fetch(ctx)
	p.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Error("feed poll failed", "error", err)
		p.metrics.PollErrors.Inc()
		return
	}
	p.metrics.IncidentsInFeed.Observe(float64(len(incidents)))

	matched := p.filter.Apply(incidents)
	entities := make([]domain.GeoLocationEvent, 0, len(matched))
	for _, inc := range matched {
		entities = append(entities, domain.NewGeoLocationEvent(inc, p.filter.DistanceFromHome(inc)))
	}

	delta := p.registry.Apply(entities)
	p.metrics.ActiveEntities.Set(float64(p.registry.Len()))
	p.metrics.EntityEvents.WithLabelValues("add").Add(float64(len(delta.Added)))
	p.metrics.EntityEvents.WithLabelValues("update").Add(float64(len(delta.Updated)))
	p.metrics.EntityEvents.WithLabelValues("remove").Add(float64(len(delta.Removed)))

	p.publishDelta(ctx, delta)

	p.ready.Store(true)
	p.metrics.LastPollSuccess.SetToCurrentTime()
	p.logger.Info("feed polled",
		"incidents", len(incidents),
		"matched", len(matched),
		"added", len(delta.Added),
		"updated", len(delta.Updated),
		"removed", len(delta.Removed),
	)
}

// publishDelta sends lifecycle events for the delta. Publish failures are
// logged and counted but do not fail the poll; the entity set is already
// current and the next delta will reflect any further changes.
func (p *Poller) publishDelta(ctx context.Context, delta registry.Delta) {
	if p.publisher == nil || delta.Empty() {
		return
	}

	events := make([]domain.EntityEvent, 0, len(delta.Added)+len(delta.Updated)+len(delta.Removed))
	for _, e := range delta.Added {
		events = append(events, domain.NewEntityEvent(domain.EntityAdded, e))
	}
	for _, e := range delta.Updated {
		events = append(events, domain.NewEntityEvent(domain.EntityUpdated, e))
	}
	for _, e := range delta.Removed {
		events = append(events, domain.NewEntityEvent(domain.EntityRemoved, e))
	}

	if err := p.publisher.Publish(ctx, events); err != nil {
		p.logger.Error("publish entity events failed", "error", err, "events", len(events))
		p.metrics.PublishErrors.Inc()
	}
}
