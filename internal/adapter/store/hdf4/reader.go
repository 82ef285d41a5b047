// Package hdf4 reads AMSR-E L3 sea ice datasets from HDF4 files through
// libnetcdf, which exposes HDF4 scientific datasets as variables.
package hdf4

import (
	"fmt"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/seaice-tsi/internal/adapter/store/ncvar"
)

// Reader reads named scientific datasets from AMSR-E HDF4 files.
type Reader struct{}

// NewReader creates a new HDF4 dataset reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadField reads the 2D dataset called name from the file at path.
func (r *Reader) ReadField(path, name string) ([][]float64, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open HDF file %s: %w", path, err)
	}
	defer func() { _ = nc.Close() }()

	v, err := nc.Var(name)
	if err != nil {
		return nil, fmt.Errorf("dataset %s not found in %s: %w", name, path, err)
	}

	nRows, nCols, err := ncvar.Shape2D(v)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, err)
	}

	values, err := ncvar.Read2D(v, nRows, nCols)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", name, err)
	}
	return values, nil
}
