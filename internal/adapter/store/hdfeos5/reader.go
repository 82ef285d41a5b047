// Package hdfeos5 reads AMSR2 L3 sea ice grids from HDF-EOS5 (HDF5) files.
package hdfeos5

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// GridGroup is the HDF-EOS5 group holding the 25 km north polar data fields.
const GridGroup = "/HDFEOS/GRIDS/NpPolarGrid25km/Data Fields"

// Reader reads data fields from AMSR2 HDF-EOS5 files.
type Reader struct {
	group string
}

// NewReader creates a reader for datasets under the north polar grid group.
func NewReader() *Reader {
	return &Reader{group: GridGroup}
}

// ReadField reads the 2D data field called name from the file at path.
// HDF5 converts the stored integer type to float64 on read.
func (r *Reader) ReadField(path, name string) ([][]float64, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("failed to open HDF5 file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	dsPath := r.group + "/" + name
	dset, err := f.OpenDataset(dsPath)
	if err != nil {
		return nil, fmt.Errorf("dataset %s not found in %s: %w", dsPath, path, err)
	}
	defer func() { _ = dset.Close() }()

	space := dset.Space()
	defer func() { _ = space.Close() }()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions of %s: %w", dsPath, err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("expected 2D data in %s, got %dD", dsPath, len(dims))
	}

	nRows, nCols := int(dims[0]), int(dims[1])
	flat := make([]float64, nRows*nCols)
	if err := dset.Read(&flat); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dsPath, err)
	}

	values := make([][]float64, nRows)
	for i := 0; i < nRows; i++ {
		values[i] = flat[i*nCols : (i+1)*nCols]
	}
	return values, nil
}
