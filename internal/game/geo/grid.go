// Package geo is the arena's wall map: a tile grid answering blocked-position,
// blocked-area and line-of-sight queries in world units.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/arenafx/internal/game/collision"
	"github.com/udisondev/arenafx/internal/game/effect"
)

const (
	TileOpen    = '.'
	TileBlocked = '#'
)

// touchEpsilon keeps a circle that merely touches a wall edge from counting
// as blocked.
const touchEpsilon = 1e-9

var ErrInvalidMap = errors.New("invalid map")

// Grid is an immutable tile map. Tile (0,0) covers world
// [0, tileSize) x [0, tileSize). Everything outside the grid is blocked.
// Safe for concurrent reads.
type Grid struct {
	width, height int
	tileSize      float64
	blocked       []bool
}

// NewGrid parses ASCII rows ('#' wall, '.' floor). Row 0 is y=0.
func NewGrid(rows []string, tileSize float64) (*Grid, error) {
	if !(tileSize > 0) || math.IsInf(tileSize, 0) {
		return nil, fmt.Errorf("tile size %v: %w", tileSize, ErrInvalidMap)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty grid: %w", ErrInvalidMap)
	}

	g := &Grid{
		width:    len(rows[0]),
		height:   len(rows),
		tileSize: tileSize,
		blocked:  make([]bool, len(rows[0])*len(rows)),
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("row %d has %d tiles, want %d: %w", y, len(row), g.width, ErrInvalidMap)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case TileBlocked:
				g.blocked[y*g.width+x] = true
			case TileOpen:
			default:
				return nil, fmt.Errorf("row %d col %d: unknown tile %q: %w", y, x, row[x], ErrInvalidMap)
			}
		}
	}
	return g, nil
}

// NewOpenGrid creates a wall-less grid of the given size in tiles.
func NewOpenGrid(width, height int, tileSize float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", width, height, ErrInvalidMap)
	}
	if !(tileSize > 0) {
		return nil, fmt.Errorf("tile size %v: %w", tileSize, ErrInvalidMap)
	}
	return &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		blocked:  make([]bool, width*height),
	}, nil
}

func (g *Grid) Width() int        { return g.width }
func (g *Grid) Height() int       { return g.height }
func (g *Grid) TileSize() float64 { return g.tileSize }

// Bounds returns the grid's extent in world units.
func (g *Grid) Bounds() collision.Rect {
	return collision.Rect{
		Max: effect.V(float64(g.width)*g.tileSize, float64(g.height)*g.tileSize),
	}
}

// TileOf converts a world position to tile coordinates.
func (g *Grid) TileOf(x, y float64) (tx, ty int) {
	return int(math.Floor(x / g.tileSize)), int(math.Floor(y / g.tileSize))
}

// TileBlocked reports whether tile (tx, ty) is a wall or off the grid.
func (g *Grid) TileBlocked(tx, ty int) bool {
	if tx < 0 || ty < 0 || tx >= g.width || ty >= g.height {
		return true
	}
	return g.blocked[ty*g.width+tx]
}

// IsPositionBlocked reports whether the world point lies in a wall tile.
func (g *Grid) IsPositionBlocked(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return true
	}
	return g.TileBlocked(g.TileOf(x, y))
}

// IsAreaBlocked reports whether a circle overlaps any wall tile. Touching a
// wall edge does not count.
func (g *Grid) IsAreaBlocked(cx, cy, radius float64) bool {
	if radius <= touchEpsilon {
		return g.IsPositionBlocked(cx, cy)
	}

	c := effect.V(cx, cy)
	r := radius - touchEpsilon
	minX, minY := g.TileOf(cx-r, cy-r)
	maxX, maxY := g.TileOf(cx+r, cy+r)

	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			if !g.TileBlocked(tx, ty) {
				continue
			}
			if collision.CircleRectOverlap(c, r, g.tileRect(tx, ty)) {
				return true
			}
		}
	}
	return false
}

func (g *Grid) tileRect(tx, ty int) collision.Rect {
	x0 := float64(tx) * g.tileSize
	y0 := float64(ty) * g.tileSize
	return collision.Rect{
		Min: effect.V(x0, y0),
		Max: effect.V(x0+g.tileSize, y0+g.tileSize),
	}
}
