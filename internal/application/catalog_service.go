// Package application orchestrates the class catalog, the reservation
// lifecycle, and the adaptive refresh policy on top of the upstream client.
// Services share one ResultCache; reads populate it and mutations invalidate
// it, which is the only way state propagates between them.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/gym-class-booking/internal/schedule"
	"github.com/example/gym-class-booking/internal/upstream"
)

// ClassLister captures the single upstream interaction the catalog needs.
type ClassLister interface {
	ListClasses(ctx context.Context, page, size int, search string) (upstream.ClassPage, error)
}

const (
	defaultPageSize        = 10
	defaultFilterBatchSize = 1000
)

// CatalogSettings tunes the catalog service. Zero values fall back to the
// defaults used in production.
type CatalogSettings struct {
	// Location is the time zone sessions are scheduled in.
	Location *time.Location
	// Now is the clock used for availability derivation and date filtering.
	Now func() time.Time
	// BatchSize caps the single unfiltered fetch backing the filtered path.
	BatchSize int
	// Prefetch enables best-effort warming of adjacent pages.
	Prefetch bool
}

// CatalogService is the paginated, filterable view over bookable sessions.
// It reconciles the backend's paging with client-side search and date
// filtering, since the backend cannot combine filters.
type CatalogService struct {
	classes   ClassLister
	cache     *ResultCache
	logger    *slog.Logger
	loc       *time.Location
	now       func() time.Time
	batchSize int
	prefetch  bool
}

// NewCatalogService wires the catalog against the upstream lister and the
// shared result cache.
func NewCatalogService(classes ClassLister, cache *ResultCache, settings CatalogSettings) *CatalogService {
	return NewCatalogServiceWithLogger(classes, cache, settings, nil)
}

// NewCatalogServiceWithLogger constructs a CatalogService with a specified logger.
func NewCatalogServiceWithLogger(classes ClassLister, cache *ResultCache, settings CatalogSettings, logger *slog.Logger) *CatalogService {
	loc := settings.Location
	if loc == nil {
		loc = time.Local
	}
	now := settings.Now
	if now == nil {
		now = time.Now
	}
	batchSize := settings.BatchSize
	if batchSize <= 0 {
		batchSize = defaultFilterBatchSize
	}
	return &CatalogService{
		classes:   classes,
		cache:     cache,
		logger:    defaultLogger(logger),
		loc:       loc,
		now:       now,
		batchSize: batchSize,
		prefetch:  settings.Prefetch,
	}
}

// ListClasses returns one page of bookable sessions under the given filters,
// serving from cache while the entry is fresh. A successful fetch kicks off a
// best-effort prefetch of the adjacent pages under the same filter key so
// typical next/previous navigation hits a warm entry.
func (s *CatalogService) ListClasses(ctx context.Context, params ListClassesParams) (ClassPage, error) {
	if s == nil || s.classes == nil {
		return ClassPage{}, fmt.Errorf("catalog service not configured")
	}
	params = normalizeListParams(params)

	key := classesCacheKey(params)
	if cached, ok := s.cache.Get(key); ok {
		if page, ok := cached.(ClassPage); ok {
			return clonePage(page), nil
		}
	}

	page, err := s.fetchPage(ctx, params)
	if err != nil {
		return ClassPage{}, err
	}
	s.cache.Store(key, clonePage(page))

	if s.prefetch {
		go s.prefetchAdjacent(context.WithoutCancel(ctx), params, page)
	}
	return page, nil
}

// RefreshClasses bypasses the cache read and re-fetches the page, storing the
// fresh result. The adaptive refresh loop uses it so a fast poll is never
// satisfied by the very entry it is trying to refresh.
func (s *CatalogService) RefreshClasses(ctx context.Context, params ListClassesParams) (ClassPage, error) {
	if s == nil || s.classes == nil {
		return ClassPage{}, fmt.Errorf("catalog service not configured")
	}
	params = normalizeListParams(params)

	page, err := s.fetchPage(ctx, params)
	if err != nil {
		return ClassPage{}, err
	}
	s.cache.Store(classesCacheKey(params), clonePage(page))
	return page, nil
}

// Availability derives the current bookable state of a session from the live
// clock. Derived state is never written back onto the session or the cache.
func (s *CatalogService) Availability(session schedule.ClassSession) schedule.Availability {
	return schedule.Derive(session, s.now(), s.loc)
}

// CalendarEvents projects sessions into display events for the calendar view.
func (s *CatalogService) CalendarEvents(sessions []schedule.ClassSession) []schedule.CalendarEvent {
	now := s.now()
	events := make([]schedule.CalendarEvent, 0, len(sessions))
	for _, session := range sessions {
		events = append(events, schedule.Project(session, s.loc, now))
	}
	return events
}

func (s *CatalogService) fetchPage(ctx context.Context, params ListClassesParams) (ClassPage, error) {
	if params.Search == "" && params.Date == "" {
		return s.fetchUnfiltered(ctx, params)
	}
	return s.fetchFiltered(ctx, params)
}

// fetchUnfiltered delegates paging authority entirely to the backend.
// Inactive and finished records are dropped from the page but the backend's
// pagination metadata is returned unchanged: page fullness is sacrificed for
// paging-cost simplicity when no filter is active.
func (s *CatalogService) fetchUnfiltered(ctx context.Context, params ListClassesParams) (ClassPage, error) {
	raw, err := s.classes.ListClasses(ctx, params.Page, params.PageSize, "")
	if err != nil {
		return ClassPage{}, err
	}
	return ClassPage{
		Sessions:      bookableSessions(raw.Content),
		Page:          raw.Number,
		PageSize:      raw.Size,
		TotalElements: raw.TotalElements,
		TotalPages:    raw.TotalPages,
		First:         raw.First,
		Last:          raw.Last,
	}, nil
}

// fetchFiltered pulls one large unfiltered batch and filters and paginates it
// locally. Pagination metadata is recomputed from the filtered count, not the
// backend's.
func (s *CatalogService) fetchFiltered(ctx context.Context, params ListClassesParams) (ClassPage, error) {
	raw, err := s.classes.ListClasses(ctx, 0, s.batchSize, "")
	if err != nil {
		return ClassPage{}, err
	}

	sessions := s.applyFilters(bookableSessions(raw.Content), params)

	total := len(sessions)
	totalPages := (total + params.PageSize - 1) / params.PageSize
	lo := params.Page * params.PageSize
	hi := lo + params.PageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	return ClassPage{
		Sessions:      sessions[lo:hi],
		Page:          params.Page,
		PageSize:      params.PageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         params.Page == 0,
		Last:          params.Page >= totalPages-1,
	}, nil
}

// applyFilters applies the search term or, only when no term is present, the
// date filter. A supplied date is ignored entirely whenever a search term
// exists; callers depend on this asymmetry, so it must not be "fixed" here.
func (s *CatalogService) applyFilters(sessions []schedule.ClassSession, params ListClassesParams) []schedule.ClassSession {
	if params.Search != "" {
		return searchSessions(sessions, params.Search)
	}
	if params.Date != "" {
		return s.filterByDate(sessions, params.Date)
	}
	return sessions
}

// searchSessions keeps sessions whose name, trainer, location, or description
// contains the term, case-insensitively. Any single matching field suffices.
func searchSessions(sessions []schedule.ClassSession, term string) []schedule.ClassSession {
	term = strings.ToLower(term)
	matched := make([]schedule.ClassSession, 0, len(sessions))
	for _, session := range sessions {
		if sessionMatches(session, term) {
			matched = append(matched, session)
		}
	}
	return matched
}

func sessionMatches(session schedule.ClassSession, term string) bool {
	for _, field := range []string{session.Name, session.TrainerName, session.LocationName, session.Description} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// filterByDate keeps sessions whose normalized calendar day equals the filter
// date. Both sides go through the same normalizer, so the filter accepts the
// same three date shapes the backend emits.
func (s *CatalogService) filterByDate(sessions []schedule.ClassSession, date string) []schedule.ClassSession {
	now := s.now()
	target := schedule.ParseClassDate(date, s.loc, now)

	kept := make([]schedule.ClassSession, 0, len(sessions))
	for _, session := range sessions {
		day := schedule.ParseClassDate(session.CalendarDate, s.loc, now)
		if schedule.SameCalendarDay(day, target) {
			kept = append(kept, session)
		}
	}
	return kept
}

// prefetchAdjacent warms the cache for the previous and next pages. It is
// fire and forget: failures are logged and discarded, never surfaced, and the
// caller never waits for it.
func (s *CatalogService) prefetchAdjacent(ctx context.Context, params ListClassesParams, page ClassPage) {
	for _, target := range []int{params.Page - 1, params.Page + 1} {
		if target < 0 || target >= page.TotalPages {
			continue
		}
		neighbor := params
		neighbor.Page = target

		key := classesCacheKey(neighbor)
		if _, ok := s.cache.Get(key); ok {
			continue
		}

		fetched, err := s.fetchPage(ctx, neighbor)
		if err != nil {
			serviceLogger(ctx, s.logger, "catalog", "prefetch").DebugContext(ctx,
				"adjacent page prefetch failed", "page", target, "error", err, "kind", ErrorKind(err))
			continue
		}
		s.cache.Store(key, clonePage(fetched))
	}
}

// bookableSessions maps raw records to domain sessions, excluding inactive
// and finished classes. Finished records never reach the availability
// deriver on this path.
func bookableSessions(records []upstream.ClassRecord) []schedule.ClassSession {
	sessions := make([]schedule.ClassSession, 0, len(records))
	for _, record := range records {
		if !record.Active || schedule.IsFinished(record.Status) {
			continue
		}
		sessions = append(sessions, toSession(record))
	}
	return sessions
}

func toSession(record upstream.ClassRecord) schedule.ClassSession {
	return schedule.ClassSession{
		ID:              record.ID,
		Name:            record.ClassName,
		TrainerName:     record.TrainerName,
		LocationName:    record.LocationName,
		Description:     record.Description,
		CalendarDate:    record.ClassDate,
		ScheduleWindow:  record.Schedule,
		DurationMinutes: record.Duration,
		MaxCapacity:     record.MaxCapacity,
		Active:          record.Active,
		RawStatus:       record.Status,
		EnrolledCount:   record.EnrolledCount,
	}
}

func normalizeListParams(params ListClassesParams) ListClassesParams {
	if params.Page < 0 {
		params.Page = 0
	}
	if params.PageSize <= 0 {
		params.PageSize = defaultPageSize
	}
	params.Search = strings.TrimSpace(params.Search)
	params.Date = strings.TrimSpace(params.Date)
	return params
}

func clonePage(page ClassPage) ClassPage {
	if len(page.Sessions) == 0 {
		page.Sessions = nil
		return page
	}
	sessions := make([]schedule.ClassSession, len(page.Sessions))
	copy(sessions, page.Sessions)
	page.Sessions = sessions
	return page
}
