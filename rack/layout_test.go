package rack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutSnap(t *testing.T) {
	l := NewLayout()

	t.Run("x rounds to the nearest grid unit", func(t *testing.T) {
		assert.Equal(t, Pos{X: 0, Y: 0}, l.Snap(Pos{X: 0, Y: 0}))
		assert.Equal(t, Pos{X: 4, Y: 0}, l.Snap(Pos{X: 3, Y: 0}))
		assert.Equal(t, Pos{X: 4, Y: 0}, l.Snap(Pos{X: 4, Y: 0}))
		assert.Equal(t, Pos{X: 6, Y: 0}, l.Snap(Pos{X: 5, Y: 0}))
	})

	t.Run("never goes negative", func(t *testing.T) {
		assert.Equal(t, Pos{X: 0, Y: 0}, l.Snap(Pos{X: -3, Y: -9}))
	})

	t.Run("y is free by default", func(t *testing.T) {
		assert.Equal(t, Pos{X: 0, Y: 7}, l.Snap(Pos{X: 0, Y: 7}))
	})

	t.Run("fixed rows snap y to row boundaries", func(t *testing.T) {
		fixed := &Layout{CellsPerUnit: 2, ModuleHeight: 4, Rows: 3}
		assert.Equal(t, Pos{X: 0, Y: 0}, fixed.Snap(Pos{X: 0, Y: 1}))
		assert.Equal(t, Pos{X: 0, Y: 4}, fixed.Snap(Pos{X: 0, Y: 5}))
		assert.Equal(t, Pos{X: 0, Y: 8}, fixed.Snap(Pos{X: 0, Y: 99}), "clamped to the last row")
	})
}

func TestLayoutResolve(t *testing.T) {
	l := NewLayout()

	t.Run("accepts a free spot", func(t *testing.T) {
		pos, err := l.Resolve(Pos{X: 9, Y: 0}, 2, nil)
		assert.NoError(t, err)
		assert.Equal(t, Pos{X: 10, Y: 0}, pos)
	})

	t.Run("rejects interior overlap", func(t *testing.T) {
		placed := []Rect{l.FaceRect(Pos{X: 0, Y: 0}, 2)} // x 0..3
		_, err := l.Resolve(Pos{X: 2, Y: 0}, 2, placed)
		assert.ErrorIs(t, err, ErrPlacementConflict)
	})

	t.Run("edge contact is not a conflict", func(t *testing.T) {
		placed := []Rect{l.FaceRect(Pos{X: 0, Y: 0}, 2)}
		pos, err := l.Resolve(Pos{X: 4, Y: 0}, 2, placed)
		assert.NoError(t, err)
		assert.Equal(t, Pos{X: 4, Y: 0}, pos)

		below, err := l.Resolve(Pos{X: 0, Y: 4}, 2, placed)
		assert.NoError(t, err)
		assert.Equal(t, Pos{X: 0, Y: 4}, below)
	})

	t.Run("conflict check runs after snapping", func(t *testing.T) {
		placed := []Rect{l.FaceRect(Pos{X: 4, Y: 0}, 2)}
		// 3 snaps to 4, straight into the neighbor
		_, err := l.Resolve(Pos{X: 3, Y: 0}, 2, placed)
		assert.ErrorIs(t, err, ErrPlacementConflict)
	})
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 4}
	assert.True(t, a.Overlaps(Rect{X: 3, Y: 3, W: 4, H: 4}))
	assert.False(t, a.Overlaps(Rect{X: 4, Y: 0, W: 4, H: 4}), "flush right")
	assert.False(t, a.Overlaps(Rect{X: 0, Y: 4, W: 4, H: 4}), "flush below")
	assert.False(t, a.Overlaps(Rect{X: 8, Y: 8, W: 2, H: 2}))
}
