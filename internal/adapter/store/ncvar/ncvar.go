// Package ncvar reads numeric variables through libnetcdf regardless of their
// storage type.
package ncvar

import (
	"fmt"

	"github.com/fhs/go-netcdf/netcdf"
)

// Shape2D returns the dimensions of a 2D variable.
func Shape2D(v netcdf.Var) (nRows, nCols int, err error) {
	dims, err := v.Dims()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 2 {
		return 0, 0, fmt.Errorf("expected 2D data, got %dD", len(dims))
	}
	dim0Len, err := dims[0].Len()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get dim0 length: %w", err)
	}
	dim1Len, err := dims[1].Len()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get dim1 length: %w", err)
	}
	return int(dim0Len), int(dim1Len), nil
}

// Read2D reads a 2D variable of any numeric type as float64 rows.
//
//nolint:gocyclo // One branch per storage type.
func Read2D(v netcdf.Var, nRows, nCols int) ([][]float64, error) {
	total := nRows * nCols
	flat := make([]float64, total)

	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	}

	switch t {
	case netcdf.DOUBLE:
		if err := v.ReadFloat64s(flat); err != nil {
			return nil, err
		}
	case netcdf.FLOAT:
		tmp := make([]float32, total)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.INT:
		tmp := make([]int32, total)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, err
		}
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.UINT:
		tmp := make([]uint32, total)
		if err := v.ReadUint32s(tmp); err != nil {
			return nil, err
		}
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.SHORT:
		tmp := make([]int16, total)
		if err := v.ReadInt16s(tmp); err != nil {
			return nil, err
		}
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.USHORT:
		tmp := make([]uint16, total)
		if err := v.ReadUint16s(tmp); err != nil {
			return nil, err
		}
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.BYTE:
		tmp := make([]int8, total)
		if err := v.ReadInt8s(tmp); err != nil {
			return nil, err
		}
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	case netcdf.UBYTE:
		tmp := make([]uint8, total)
		if err := v.ReadUint8s(tmp); err != nil {
			return nil, err
		}
		for i, val := range tmp {
			flat[i] = float64(val)
		}
	default:
		return nil, fmt.Errorf("unsupported data type: %v", t)
	}

	values := make([][]float64, nRows)
	for i := 0; i < nRows; i++ {
		values[i] = flat[i*nCols : (i+1)*nCols]
	}
	return values, nil
}
