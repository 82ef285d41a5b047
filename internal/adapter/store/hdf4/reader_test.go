package hdf4

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"
)

// createSDFile writes a NetCDF stand-in for an AMSR-E HDF4 file with one
// 16-bit dataset per name.
func createSDFile(t *testing.T, path string, rows, cols int, datasets map[string][]int16) {
	t.Helper()
	//nolint:gosec // G301: Standard test directory permissions.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("create nc: %v", err)
	}
	defer func() { _ = f.Close() }()

	yDim, _ := f.AddDim("YDim", uint64(rows))
	xDim, _ := f.AddDim("XDim", uint64(cols))
	vars := make(map[string]netcdf.Var, len(datasets))
	for name := range datasets {
		v, err := f.AddVar(name, netcdf.SHORT, []netcdf.Dim{yDim, xDim})
		if err != nil {
			t.Fatalf("add var %s: %v", name, err)
		}
		vars[name] = v
	}
	if err := f.EndDef(); err != nil {
		t.Fatalf("enddef: %v", err)
	}
	for name, data := range datasets {
		if err := vars[name].WriteInt16s(data); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestReaderReadField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AMSR_E_L3_SeaIce25km_V15_20050301.hdf")
	createSDFile(t, path, 2, 3, map[string][]int16{
		"SI_25km_NH_06V_DAY":    {2500, 2510, 2520, 2530, 2540, 2550},
		"SI_25km_NH_ICECON_DAY": {100, 120, 0, 96, 95, 99},
	})

	r := NewReader()
	values, err := r.ReadField(path, "SI_25km_NH_06V_DAY")
	if err != nil {
		t.Fatalf("ReadField: %v", err)
	}
	if len(values) != 2 || len(values[0]) != 3 {
		t.Fatalf("expected 2x3 grid, got %dx%d", len(values), len(values[0]))
	}
	if values[1][2] != 2550 {
		t.Errorf("values[1][2]: expected 2550, got %v", values[1][2])
	}

	sic, err := r.ReadField(path, "SI_25km_NH_ICECON_DAY")
	if err != nil {
		t.Fatalf("ReadField ICECON: %v", err)
	}
	if sic[0][1] != 120 {
		t.Errorf("sic[0][1]: expected 120, got %v", sic[0][1])
	}
}

func TestReaderMissingDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AMSR_E_L3_SeaIce25km_V15_20050301.hdf")
	createSDFile(t, path, 1, 1, map[string][]int16{"SI_25km_NH_06V_DAY": {1}})

	if _, err := NewReader().ReadField(path, "SI_25km_NH_36V_DAY"); err == nil {
		t.Fatal("expected error for missing dataset")
	}
	if _, err := NewReader().ReadField(filepath.Join(t.TempDir(), "missing.hdf"), "x"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
