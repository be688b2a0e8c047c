package csvrepo

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/milad/loadprofile/internal/domain"
	"github.com/milad/loadprofile/internal/repo"
)

var _ repo.ReadingRepository = (*Repo)(nil)

// Repo is an in-memory repository backed by a load-profile CSV file.
type Repo struct {
	readings []domain.Reading // sorted ascending by Time
}

// NewFromFile loads every valid row of the file at path.
//
// A nil Repo means the file could not be read. A non-nil Repo may come with a
// non-nil error listing the rows that were skipped; use RowErrors to inspect it.
func NewFromFile(path string) (*Repo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %q: %w", path, err)
	}
	defer f.Close()

	var readings []domain.Reading
	scanErr := ScanLoadProfileCSV(f, func(r domain.Reading) {
		readings = append(readings, r)
	})
	if scanErr != nil && len(RowErrors(scanErr)) == 0 {
		return nil, fmt.Errorf("read csv %q: %w", path, scanErr)
	}

	r := New(readings)
	if scanErr != nil {
		return r, fmt.Errorf("parse csv %q: %w", path, scanErr)
	}
	return r, nil
}

func New(readings []domain.Reading) *Repo {
	cp := append([]domain.Reading(nil), readings...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Time.Before(cp[j].Time) })
	return &Repo{readings: cp}
}

// Len returns the number of loaded readings.
func (r *Repo) Len() int { return len(r.readings) }

func (r *Repo) List(ctx context.Context, window domain.Window) ([]domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !window.Bounded() {
		return append([]domain.Reading(nil), r.readings...), nil
	}
	out := make([]domain.Reading, 0, len(r.readings))
	for _, rd := range r.readings {
		if window.ContainsExclusive(rd.Time) {
			out = append(out, rd)
		}
	}
	return out, nil
}
