package spatial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Index is a nearest-neighbour index over the projected cells of a 2D grid.
type Index struct {
	tree *kdtree.Tree
	lat  [][]float64
	lon  [][]float64
	cols int
}

// Match is the grid cell nearest to a query point.
type Match struct {
	Index     int     // Flat row-major cell index.
	Row       int     // Grid row (y).
	Col       int     // Grid column (x).
	Lat       float64 // Cell latitude.
	Lon       float64 // Cell longitude.
	DistanceM float64 // Distance in projected metres.
}

// NewIndex projects every cell of the lat/lon grid and builds a k-d tree over
// them. Cells with NaN coordinates are left out.
func NewIndex(lat, lon [][]float64) (*Index, error) {
	if len(lat) == 0 || len(lat) != len(lon) {
		return nil, fmt.Errorf("latitude rows (%d) must match longitude rows (%d)", len(lat), len(lon))
	}
	cols := len(lat[0])

	pts := make(points, 0, len(lat)*cols)
	for i := range lat {
		if len(lat[i]) != cols || len(lon[i]) != cols {
			return nil, fmt.Errorf("row %d does not have %d columns", i, cols)
		}
		for j := range lat[i] {
			if math.IsNaN(lat[i][j]) || math.IsNaN(lon[i][j]) {
				continue
			}
			x, y := Project(lat[i][j], lon[i][j])
			pts = append(pts, point{x: x, y: y, index: i*cols + j})
		}
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("grid has no valid coordinates")
	}

	return &Index{
		tree: kdtree.New(pts, false),
		lat:  lat,
		lon:  lon,
		cols: cols,
	}, nil
}

// Nearest returns the cell closest to (lat, lon) by Euclidean distance in the
// projected plane. There is no distance limit.
func (ix *Index) Nearest(lat, lon float64) (Match, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return Match{}, fmt.Errorf("invalid query point (%.4f, %.4f)", lat, lon)
	}
	x, y := Project(lat, lon)
	c, dist2 := ix.tree.Nearest(point{x: x, y: y})
	p, ok := c.(point)
	if !ok {
		return Match{}, fmt.Errorf("no grid cell found near (%.4f, %.4f)", lat, lon)
	}
	row, col := p.index/ix.cols, p.index%ix.cols
	return Match{
		Index:     p.index,
		Row:       row,
		Col:       col,
		Lat:       ix.lat[row][col],
		Lon:       ix.lon[row][col],
		DistanceM: math.Sqrt(dist2),
	}, nil
}

// point is a projected grid cell satisfying kdtree.Comparable.
type point struct {
	x, y  float64
	index int
}

func (p point) coord(d kdtree.Dim) float64 {
	if d == 0 {
		return p.x
	}
	return p.y
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.coord(d) - c.(point).coord(d)
}

func (p point) Dims() int { return 2 }

// Distance returns the squared Euclidean distance.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	dx, dy := p.x-q.x, p.y-q.y
	return dx*dx + dy*dy
}

// points satisfies kdtree.Interface.
type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{Dim: d, points: p}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts points along one dimension for pivoting.
type plane struct {
	kdtree.Dim
	points
}

const pivotSamples = 100

func (p plane) Less(i, j int) bool { return p.points[i].coord(p.Dim) < p.points[j].coord(p.Dim) }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfRandoms(p, pivotSamples)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
