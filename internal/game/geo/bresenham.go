package geo

// LineIterator walks grid tiles along a 2D Bresenham line from start to end,
// both inclusive.
type LineIterator struct {
	currentX, currentY int
	targetX, targetY   int
	deltaX, deltaY     int
	stepX, stepY       int
	err                int
	started            bool
}

// NewLineIterator creates a 2D Bresenham line iterator.
func NewLineIterator(sx, sy, ex, ey int) *LineIterator {
	it := &LineIterator{
		currentX: sx, currentY: sy,
		targetX: ex, targetY: ey,
		deltaX: abs(ex - sx),
		deltaY: -abs(ey - sy),
		stepX:  1,
		stepY:  1,
	}
	if sx > ex {
		it.stepX = -1
	}
	if sy > ey {
		it.stepY = -1
	}
	it.err = it.deltaX + it.deltaY
	return it
}

// Next advances to the next tile. Returns false once the target was visited.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true // start tile
	}
	if it.currentX == it.targetX && it.currentY == it.targetY {
		return false
	}

	e2 := 2 * it.err
	if e2 >= it.deltaY {
		it.err += it.deltaY
		it.currentX += it.stepX
	}
	if e2 <= it.deltaX {
		it.err += it.deltaX
		it.currentY += it.stepY
	}
	return true
}

// X returns the current tile column.
func (it *LineIterator) X() int { return it.currentX }

// Y returns the current tile row.
func (it *LineIterator) Y() int { return it.currentY }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
