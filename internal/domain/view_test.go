package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
)

func TestGridView_MaskedCellsAreNull(t *testing.T) {
	g := &Grid{
		Name:   "tsi",
		Date:   time.Date(2015, 3, 3, 0, 0, 0, 0, time.UTC),
		Values: [][]float64{{250, math.NaN()}},
		Lat:    [][]float64{{80, 80}},
		Lon:    [][]float64{{350, 10}},
	}
	requested := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)

	out, err := json.Marshal(g.View(requested, true))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{
		`"requested_date":"2015-03-01"`,
		`"data_date":"2015-03-03"`,
		`"values":[[250,null]]`,
		`"std_dev":null`,
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}

	summaryOnly, err := json.Marshal(g.View(requested, false))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(summaryOnly), `"values"`) || strings.Contains(string(summaryOnly), `"lat"`) {
		t.Errorf("cells should be omitted: %s", summaryOnly)
	}
}

func TestFieldView(t *testing.T) {
	f := field("18V", [][]float64{{2400, 2410}, {2420, 2430}})
	v := f.View(f.Date, false)
	if v.Name != "18V" || v.Rows != 2 || v.Cols != 2 {
		t.Errorf("unexpected view: %+v", v)
	}
	if v.Summary.Valid != 4 || v.Summary.Min == nil || *v.Summary.Min != 2400 || *v.Summary.Max != 2430 {
		t.Errorf("unexpected summary: %+v", v.Summary)
	}
	empty := (&Field{Values: [][]float64{{math.NaN()}}}).Summary().View()
	if empty.Mean != nil || empty.Valid != 0 {
		t.Errorf("empty summary should have null statistics: %+v", empty)
	}
}
