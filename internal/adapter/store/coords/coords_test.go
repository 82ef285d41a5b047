package coords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

func writeNpy(t *testing.T, path string, rows, cols int, data []float64) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create npy: %v", err)
	}
	defer func() { _ = f.Close() }()
	if err := npyio.Write(f, mat.NewDense(rows, cols, data)); err != nil {
		t.Fatalf("write npy: %v", err)
	}
}

func writeNetCDF(t *testing.T, path, varName string, rows, cols int, data []float64) {
	t.Helper()
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("create nc: %v", err)
	}
	defer func() { _ = f.Close() }()

	yDim, _ := f.AddDim("y", uint64(rows))
	xDim, _ := f.AddDim("x", uint64(cols))
	v, _ := f.AddVar(varName, netcdf.DOUBLE, []netcdf.Dim{yDim, xDim})
	if err := f.EndDef(); err != nil {
		t.Fatalf("enddef: %v", err)
	}
	if err := v.WriteFloat64s(data); err != nil {
		t.Fatalf("write %s: %v", varName, err)
	}
}

func TestLoadNpy(t *testing.T) {
	dir := t.TempDir()
	latPath := filepath.Join(dir, "amsr_25km_lat.npy")
	lonPath := filepath.Join(dir, "amsr_25km_lon.npy")
	writeNpy(t, latPath, 2, 3, []float64{80, 80, 80, 81, 81, 81})
	writeNpy(t, lonPath, 2, 3, []float64{-10, 0, 10, -10, 0, 10})

	g, err := Load(latPath, lonPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rows, cols := g.Shape()
	if rows != 2 || cols != 3 {
		t.Fatalf("expected 2x3 grid, got %dx%d", rows, cols)
	}
	if g.Lat[1][0] != 81 || g.Lon[0][2] != 10 {
		t.Errorf("unexpected values: lat[1][0]=%v lon[0][2]=%v", g.Lat[1][0], g.Lon[0][2])
	}
}

func TestLoadNetCDF(t *testing.T) {
	dir := t.TempDir()
	latPath := filepath.Join(dir, "lat.nc")
	lonPath := filepath.Join(dir, "lon.nc")
	writeNetCDF(t, latPath, "latitude", 2, 2, []float64{70, 70, 71, 71})
	writeNetCDF(t, lonPath, "lon", 2, 2, []float64{100, 101, 100, 101})

	g, err := Load(latPath, lonPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Lat[1][1] != 71 || g.Lon[1][1] != 101 {
		t.Errorf("unexpected values: %v %v", g.Lat, g.Lon)
	}
}

func TestLoadShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	latPath := filepath.Join(dir, "lat.npy")
	lonPath := filepath.Join(dir, "lon.npy")
	writeNpy(t, latPath, 2, 2, []float64{1, 2, 3, 4})
	writeNpy(t, lonPath, 1, 4, []float64{1, 2, 3, 4})

	if _, err := Load(latPath, lonPath); err == nil {
		t.Fatal("expected error for mismatched coordinate shapes")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "lat.npy"), filepath.Join(dir, "lon.npy")); err == nil {
		t.Fatal("expected error for missing coordinate files")
	}
}
