package raycast

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-raycast/internal/core"
	engine "github.com/vovakirdan/tui-raycast/internal/raycast"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

const hudHeight = 3

var facingGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// viewport maps world pixels onto screen cells.
type viewport struct {
	offX, offY int
	sx, sy     float64 // world pixels per column and per row
	w, h       int     // cells covered by the map
}

// fitViewport scales the grid into the area below the HUD, keeping tiles
// roughly square on screen. ok is false when a tile would be smaller than a cell.
func fitViewport(g *engine.Grid, screenW, screenH, top int) (viewport, bool) {
	areaW, areaH := screenW, screenH-top
	if areaW < g.Cols() || areaH < g.Rows() {
		return viewport{}, false
	}

	sx := math.Max(g.Width()/float64(areaW), g.Height()/(cellAspect*float64(areaH)))
	vp := viewport{
		sx: sx,
		sy: sx * cellAspect,
	}
	vp.w = min(areaW, int(math.Ceil(g.Width()/vp.sx)))
	vp.h = min(areaH, int(math.Ceil(g.Height()/vp.sy)))
	vp.offX = (areaW - vp.w) / 2
	vp.offY = top + (areaH-vp.h)/2
	return vp, true
}

// toCell converts a world point to a screen cell.
func (vp viewport) toCell(x, y float64) (int, int) {
	cx := core.Clamp(core.FloorInt(x/vp.sx), 0, vp.w-1)
	cy := core.Clamp(core.FloorInt(y/vp.sy), 0, vp.h-1)
	return vp.offX + cx, vp.offY + cy
}

// toWorld returns the world point at the center of a map cell.
func (vp viewport) toWorld(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * vp.sx, (float64(cy) + 0.5) * vp.sy
}

// Render draws the minimap, the ray fan and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	top := 0
	if g.cfg.Render.ShowHUD {
		top = hudHeight
		g.renderHUD(dst)
	}

	vp, ok := fitViewport(g.grid, dst.Width(), dst.Height(), top)
	if !ok {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", g.grid.Cols(), g.grid.Rows()+top))
		return
	}

	g.renderWalls(dst, vp)
	g.renderRays(dst, vp)
	g.renderViewer(dst, vp)

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderWalls fills every cell whose center lies in a solid tile.
// Explored walls are drawn brighter.
func (g *Game) renderWalls(dst *core.Screen, vp viewport) {
	for cy := 0; cy < vp.h; cy++ {
		for cx := 0; cx < vp.w; cx++ {
			x, y := vp.toWorld(cx, cy)
			tile, inside := g.grid.TileAt(x, y)
			if !inside || g.grid.CellAt(tile.Row, tile.Col) != engine.CellSolid {
				continue
			}
			color := core.ColorGray
			if g.Explored(tile) {
				color = core.ColorWhite
			}
			dst.SetColored(vp.offX+cx, vp.offY+cy, '█', color)
		}
	}
}

// renderRays draws hit marks first so ray lines pass beneath them.
func (g *Game) renderRays(dst *core.Screen, vp viewport) {
	bundle := g.frame.Rays()
	vx, vy := vp.toCell(bundle.Origin.X, bundle.Origin.Y)

	sampled := g.sampledRays(bundle)
	for _, r := range sampled {
		if !r.Hit {
			continue
		}
		hx, hy := vp.toCell(r.HitX, r.HitY)
		mark := '-'
		if r.HitVertical {
			mark = '|'
		}
		dst.SetColored(hx, hy, mark, core.ColorBrightYellow)
	}

	if center, ok := bundle.Center(); ok && center.Hit {
		hx, hy := vp.toCell(center.HitX, center.HitY)
		dst.DrawLine(vx, vy, hx, hy, '·', core.ColorBrightCyan, true)
	}
	for _, r := range sampled {
		if !r.Hit {
			continue
		}
		hx, hy := vp.toCell(r.HitX, r.HitY)
		dst.DrawLine(vx, vy, hx, hy, '·', core.ColorCyan, true)
	}
}

// sampledRays returns every Nth ray plus the last one, so both fan edges show.
func (g *Game) sampledRays(b engine.RayBundle) []engine.Ray {
	every := max(1, g.cfg.Render.RayEvery)
	out := make([]engine.Ray, 0, b.Len()/every+2)
	for i := 0; i < b.Len(); i += every {
		out = append(out, b.Rays[i])
	}
	if n := b.Len(); n > 0 && (n-1)%every != 0 {
		out = append(out, b.Rays[n-1])
	}
	return out
}

// renderViewer draws the viewer as an arrow pointing along its angle.
func (g *Game) renderViewer(dst *core.Screen, vp viewport) {
	p := g.frame.Viewer().Pose()
	x, y := vp.toCell(p.X, p.Y)
	dst.SetColored(x, y, facingGlyph(p.Angle), core.ColorBrightGreen)
}

// facingGlyph picks the arrow for the nearest of eight directions.
// Angles grow clockwise on screen because y points down.
func facingGlyph(angle float64) rune {
	octant := int(math.Round(engine.NormalizeAngle(angle)/(math.Pi/4))) % 8
	return facingGlyphs[octant]
}

// renderHUD draws the two status lines and a separator.
func (g *Game) renderHUD(dst *core.Screen) {
	p := g.frame.Viewer().Pose()
	bundle := g.frame.Rays()

	line1 := fmt.Sprintf(" %s | Explored: %d/%d | Tick: %d", g.Title(), len(g.seen), g.grid.SolidCount(), g.frame.Ticks())
	dst.DrawText(0, 0, line1)

	line2 := fmt.Sprintf(" Pos: %.0f,%.0f  Angle: %.0f°  Rays: %d", p.X, p.Y, engine.Degrees(p.Angle), bundle.Len())
	if center, ok := bundle.Center(); ok && center.Hit {
		line2 += fmt.Sprintf("  Wall: %.1f %s", center.Distance, hitSide(center))
	}
	dst.DrawTextColored(0, 1, line2, core.ColorGray)

	dst.DrawHLine(0, 2, dst.Width(), '─')
}

func hitSide(r engine.Ray) string {
	if r.HitVertical {
		return "vertical"
	}
	return "horizontal"
}

// renderOverlay draws a centered box with two lines of text.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()

	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
