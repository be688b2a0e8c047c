package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/milad/loadprofile/internal/domain"
	"github.com/milad/loadprofile/internal/profile"
	"github.com/milad/loadprofile/internal/report"
	"github.com/milad/loadprofile/internal/repo"
	"github.com/milad/loadprofile/internal/timeparse"
)

var (
	ErrInvalidWindow    = errors.New("invalid window")
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// IsInvalidArgument reports whether err was caused by caller input.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidWindow) || errors.Is(err, ErrInvalidTimeRange)
}

// Query selects the readings to aggregate and, optionally, the daily range
// to split the result by. A nil Range asks for the series only.
type Query struct {
	Window domain.Window
	Range  *domain.TimeRange
}

// ParseQuery validates the textual window bounds and time range. Empty
// strings leave the corresponding part unset.
func ParseQuery(from, to, timeRange string) (Query, error) {
	var q Query

	f, err := timeparse.ParseOptionalInstant(from)
	if err != nil {
		return Query{}, fmt.Errorf("%w: from: %w", ErrInvalidWindow, err)
	}
	t, err := timeparse.ParseOptionalInstant(to)
	if err != nil {
		return Query{}, fmt.Errorf("%w: to: %w", ErrInvalidWindow, err)
	}
	if f != nil && t != nil && !f.Before(*t) {
		return Query{}, fmt.Errorf("%w: from must be before to", ErrInvalidWindow)
	}
	q.Window = domain.Window{From: f, To: t}

	if timeRange != "" {
		r, err := timeparse.ParseTimeRange(timeRange)
		if err != nil {
			return Query{}, fmt.Errorf("%w: %w", ErrInvalidTimeRange, err)
		}
		q.Range = &r
	}
	return q, nil
}

// Result is the outcome of a profile query.
type Result struct {
	Profile domain.Profile
	// Split is set when the query carried a time range.
	Split *report.Split
	// Accepted and Skipped count readings inside and outside the window.
	Accepted int
	Skipped  int
}

type ProfileService struct {
	repo     repo.ReadingRepository
	reporter *report.Reporter
}

func NewProfileService(r repo.ReadingRepository, rep *report.Reporter) *ProfileService {
	return &ProfileService{repo: r, reporter: rep}
}

// Reporter returns the reporter used for range splits.
func (s *ProfileService) Reporter() *report.Reporter { return s.reporter }

// Profile aggregates every reading of the repository that lies strictly
// inside q.Window and splits the result when q.Range is set.
func (s *ProfileService) Profile(ctx context.Context, q Query) (Result, error) {
	if q.Window.From != nil && q.Window.To != nil && !q.Window.From.Before(*q.Window.To) {
		return Result{}, fmt.Errorf("%w: from must be before to", ErrInvalidWindow)
	}
	if q.Range != nil && q.Range.Start > q.Range.End {
		return Result{}, fmt.Errorf("%w: start after end", ErrInvalidTimeRange)
	}

	readings, err := s.repo.List(ctx, q.Window)
	if err != nil {
		return Result{}, err
	}

	// List has already applied the window; the aggregator only folds.
	agg := profile.NewAggregator(domain.Window{})
	agg.AddAll(readings)
	skipped := s.repo.Len() - len(readings)
	observeRows(rowsAccepted, agg.Accepted())
	observeRows(rowsSkipped, skipped)

	res := Result{
		Profile:  agg.Profile(),
		Accepted: agg.Accepted(),
		Skipped:  skipped,
	}
	if q.Range != nil {
		split := s.reporter.Split(res.Profile, *q.Range)
		res.Split = &split
	}
	return res, nil
}
