package store

// FieldReader extracts one named 2D dataset from an archive file.
type FieldReader interface {
	// ReadField opens path, reads the dataset called name and closes the file.
	// Values are returned row-major as [y][x].
	ReadField(path, name string) ([][]float64, error)
}
