package application

import (
	"context"
	"fmt"
	"time"

	"github.com/example/gym-class-booking/internal/schedule"
)

const defaultRefreshInterval = 10 * time.Second

// RefreshController decides whether a catalog result warrants fast polling.
// A page containing a session that is currently in progress is re-fetched on
// a short fixed interval; otherwise periodic refresh is disabled and
// staleness is bounded only by the cache TTL.
type RefreshController struct {
	interval time.Duration
	loc      *time.Location
	now      func() time.Time
}

// NewRefreshController builds a controller. A non-positive interval falls
// back to the 10 second default; nil loc and now fall back to time.Local and
// time.Now.
func NewRefreshController(interval time.Duration, loc *time.Location, now func() time.Time) *RefreshController {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &RefreshController{interval: interval, loc: loc, now: now}
}

// NextRefresh reports the interval until the next re-fetch. ok is false when
// no visible session is in progress. Availability is evaluated against the
// live clock, not the fetch time, so a session that ended since the fetch no
// longer keeps the fast poll alive.
func (c *RefreshController) NextRefresh(sessions []schedule.ClassSession) (time.Duration, bool) {
	if c == nil {
		return 0, false
	}
	now := c.now()
	for _, session := range sessions {
		if schedule.Derive(session, now, c.loc) == schedule.AvailabilityInProgress {
			return c.interval, true
		}
	}
	return 0, false
}

// CatalogRefresher re-fetches a catalog page bypassing the cache read.
type CatalogRefresher interface {
	RefreshClasses(ctx context.Context, params ListClassesParams) (ClassPage, error)
}

// Watch re-fetches the given query while its current page holds an
// in-progress session, invoking onUpdate after each successful re-fetch. The
// decision is recomputed on every arrival of new data, so the loop ends
// naturally (returning nil) the first time no session is in progress. Fetch
// errors and context cancellation are returned to the caller; no retry
// happens here.
func (c *RefreshController) Watch(ctx context.Context, catalog CatalogRefresher, params ListClassesParams, page ClassPage, onUpdate func(ClassPage)) error {
	if c == nil || catalog == nil {
		return fmt.Errorf("refresh controller not configured")
	}

	for {
		interval, ok := c.NextRefresh(page.Sessions)
		if !ok {
			return nil
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		refreshed, err := catalog.RefreshClasses(ctx, params)
		if err != nil {
			return err
		}
		page = refreshed
		if onUpdate != nil {
			onUpdate(page)
		}
	}
}
