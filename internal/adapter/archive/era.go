// Package archive locates AMSR-E and AMSR2 L3 sea ice files by date and reads
// their gridded fields.
package archive

import "time"

// Era identifies which sensor generation, and so which archive naming and
// file format, covers a day.
type Era int

const (
	// EraGap covers the days between the end of AMSR-E and the start of AMSR2.
	EraGap Era = iota
	// EraAMSRE covers AMSR-E L3 HDF4 files.
	EraAMSRE
	// EraAMSR2 covers AMSR2 L3 HDF-EOS5 files.
	EraAMSR2
)

var (
	// AMSRECutoff is the first day no longer served from the AMSR-E archive.
	AMSRECutoff = time.Date(2011, 10, 5, 0, 0, 0, 0, time.UTC)
	// AMSR2Cutoff is the last day before the AMSR2 archive is used.
	AMSR2Cutoff = time.Date(2012, 7, 1, 0, 0, 0, 0, time.UTC)
)

func (e Era) String() string {
	switch e {
	case EraAMSRE:
		return "AMSR-E"
	case EraAMSR2:
		return "AMSR2"
	default:
		return "gap"
	}
}

// EraForDate picks the era for a calendar day. Days strictly before
// AMSRECutoff are AMSR-E, days strictly after AMSR2Cutoff are AMSR2 and
// everything in between is the gap.
func EraForDate(day time.Time) Era {
	d := Day(day)
	switch {
	case d.Before(AMSRECutoff):
		return EraAMSRE
	case d.After(AMSR2Cutoff):
		return EraAMSR2
	default:
		return EraGap
	}
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// naming is the per-era file naming convention.
type naming struct {
	prefix string
	ext    string
}

var namings = map[Era]naming{
	EraAMSRE: {prefix: "AMSR_E_L3_SeaIce25km", ext: ".hdf"},
	EraAMSR2: {prefix: "AMSR_U2_L3_SeaIce25km", ext: ".he5"},
}

// pattern returns the glob pattern matching the file for day, e.g.
// AMSR_U2_L3_SeaIce25km*20150301.he5.
func (n naming) pattern(day time.Time) string {
	return n.prefix + "*" + day.Format("20060102") + n.ext
}

// MarshalText encodes the era by name.
func (e Era) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
