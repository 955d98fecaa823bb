package geo

import "github.com/udisondev/arenafx/internal/game/effect"

// CanSee reports whether the straight segment between two world points
// crosses no wall tile. Both end tiles count.
func (g *Grid) CanSee(from, to effect.Vec2) bool {
	sx, sy := g.TileOf(from.X, from.Y)
	ex, ey := g.TileOf(to.X, to.Y)

	it := NewLineIterator(sx, sy, ex, ey)
	for it.Next() {
		if g.TileBlocked(it.X(), it.Y()) {
			return false
		}
	}
	return true
}
