package rack

// Layout is the placement policy for the rack canvas. Module faces occupy
// axis-aligned cell rectangles; the horizontal axis is discretized into
// grid units of CellsPerUnit cells and requested positions snap to it.
// Vertical placement is free by default; setting Rows > 0 snaps modules
// onto fixed rows instead.
type Layout struct {
	CellsPerUnit int // width of one grid unit, in cells
	ModuleHeight int // face height, in cells
	Rows         int // 0 = free vertical placement
}

// Default geometry: 2-cell grid units, 4-cell tall faces.
func NewLayout() *Layout {
	return &Layout{CellsPerUnit: 2, ModuleHeight: 4}
}

// Rect is an axis-aligned cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Overlaps reports strict interior overlap. Exact edge contact is not a
// conflict, so modules can sit flush against each other.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Snap aligns a requested position to the grid: X rounds to the nearest
// grid unit, Y rounds to the nearest row when rows are fixed. Positions
// never go negative.
func (l *Layout) Snap(p Pos) Pos {
	unit := l.CellsPerUnit
	if unit < 1 {
		unit = 1
	}
	p.X = ((p.X + unit/2) / unit) * unit
	if p.X < 0 {
		p.X = 0
	}
	if l.Rows > 0 {
		h := l.ModuleHeight
		row := (p.Y + h/2) / h
		if row < 0 {
			row = 0
		}
		if row > l.Rows-1 {
			row = l.Rows - 1
		}
		p.Y = row * h
	} else if p.Y < 0 {
		p.Y = 0
	}
	return p
}

// FaceRect returns the cell rectangle a module of the given unit width
// occupies at p.
func (l *Layout) FaceRect(p Pos, widthUnits int) Rect {
	return Rect{X: p.X, Y: p.Y, W: widthUnits * l.CellsPerUnit, H: l.ModuleHeight}
}

// Resolve snaps the requested position and checks it against the already
// placed rectangles. On conflict the request is rejected outright; there
// is no push-aside, the caller keeps its previous position.
func (l *Layout) Resolve(req Pos, widthUnits int, placed []Rect) (Pos, error) {
	snapped := l.Snap(req)
	face := l.FaceRect(snapped, widthUnits)
	for _, other := range placed {
		if face.Overlaps(other) {
			return Pos{}, ErrPlacementConflict
		}
	}
	return snapped, nil
}
