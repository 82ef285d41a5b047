package archive

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrSensorGap is returned for days in, or searches that run into, the
	// AMSR-E/AMSR2 gap.
	ErrSensorGap = errors.New("date is within AMSR-E and AMSR2 data gap")
	// ErrNoData is returned when no AMSR2 file exists within the search window.
	ErrNoData = errors.New("no AMSR data file found within search window")
)

// DefaultMaxSearchDays bounds how far past the requested day the AMSR2
// search advances.
const DefaultMaxSearchDays = 31

// Location is a resolved archive file.
type Location struct {
	Era       Era       `json:"era"`
	Path      string    `json:"path"`
	Requested time.Time `json:"requested"`
	Date      time.Time `json:"date"` // Day of the file found; after Requested when days were skipped.
}

// Locator finds the archive file covering a day.
type Locator struct {
	root          string
	maxSearchDays int
	logger        zerolog.Logger
}

// NewLocator creates a locator over the archive directory root.
// maxSearchDays bounds the forward search in the AMSR2 era; the AMSR-E
// search is bounded by the end of that era.
func NewLocator(root string, maxSearchDays int, logger zerolog.Logger) *Locator {
	if maxSearchDays < 0 {
		maxSearchDays = 0
	}
	return &Locator{
		root:          root,
		maxSearchDays: maxSearchDays,
		logger:        logger,
	}
}

// Locate returns the file for day. When the day has no file the date is
// advanced one day at a time until a file is found, the AMSR-E era ends
// (ErrSensorGap) or the AMSR2 search window is exhausted (ErrNoData).
func (l *Locator) Locate(day time.Time) (*Location, error) {
	requested := Day(day)
	era := EraForDate(requested)
	if era == EraGap {
		return nil, ErrSensorGap
	}
	n := namings[era]

	current := requested
	path, err := l.find(n, current)
	if err != nil {
		return nil, err
	}
	for advanced := 0; path == ""; advanced++ {
		if era == EraAMSR2 && advanced >= l.maxSearchDays {
			return nil, fmt.Errorf("%w: %d days after %s", ErrNoData, l.maxSearchDays, requested.Format(time.DateOnly))
		}
		current = current.AddDate(0, 0, 1)
		if era == EraAMSRE && !current.Before(AMSRECutoff) {
			return nil, ErrSensorGap
		}
		l.logger.Debug().
			Str("era", era.String()).
			Str("date", current.Format(time.DateOnly)).
			Msg("AMSR data doesn't exist for this day, adding day")

		path, err = l.find(n, current)
		if err != nil {
			return nil, err
		}
	}

	return &Location{
		Era:       era,
		Path:      path,
		Requested: requested,
		Date:      current,
	}, nil
}

// find returns the first file matching the naming pattern for day, or "".
func (l *Locator) find(n naming, day time.Time) (string, error) {
	matches, err := filepath.Glob(filepath.Join(l.root, n.pattern(day)))
	if err != nil {
		return "", fmt.Errorf("failed to search archive: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}
