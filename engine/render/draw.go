package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"basewar/engine/core"
	"basewar/engine/geom"
	"basewar/engine/systems"
)

// Renderer draws the world through a camera. All entity art is flat
// vector shapes; player identity comes from the roster colors.
type Renderer struct {
	Camera *Camera
	face   font.Face
}

func NewRenderer(screenW, screenH int) *Renderer {
	return &Renderer{
		Camera: NewCamera(screenW, screenH),
		face:   basicfont.Face7x13,
	}
}

func rgba(c uint32) color.RGBA {
	return color.RGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}

// DrawWorld renders terrain, entities, transient effects and the fog
// overlay for the viewing player's team.
func (r *Renderer) DrawWorld(screen *ebiten.Image, w *core.World, fog *systems.FogSystem, viewerID int, showGrid bool) {
	r.drawGround(screen, showGrid)
	r.drawMarkers(screen, w)
	for _, e := range w.Entities {
		if e.Kind.IsBuilding() {
			r.drawBuilding(screen, w, e)
		}
	}
	for _, e := range w.Entities {
		if e.Kind.IsUnit() {
			r.drawUnit(screen, w, e)
		}
	}
	r.drawEffects(screen, w)
	r.drawFog(screen, fog, viewerID, w.Players)
	r.drawTexts(screen, w)
}

func (r *Renderer) drawGround(screen *ebiten.Image, showGrid bool) {
	x0, y0 := r.Camera.WorldToScreen(0, 0)
	x1, y1 := r.Camera.WorldToScreen(geom.MapWidth, geom.MapHeight)
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0),
		color.RGBA{34, 40, 34, 255}, false)
	if !showGrid {
		return
	}
	gridCol := color.RGBA{60, 70, 60, 255}
	for tx := 0; tx <= geom.TilesX; tx++ {
		sx, sy0 := r.Camera.WorldToScreen(float64(tx)*geom.TileSize, 0)
		_, sy1 := r.Camera.WorldToScreen(0, geom.MapHeight)
		vector.StrokeLine(screen, float32(sx), float32(sy0), float32(sx), float32(sy1), 1, gridCol, false)
	}
	for ty := 0; ty <= geom.TilesY; ty++ {
		sx0, sy := r.Camera.WorldToScreen(0, float64(ty)*geom.TileSize)
		sx1, _ := r.Camera.WorldToScreen(geom.MapWidth, 0)
		vector.StrokeLine(screen, float32(sx0), float32(sy), float32(sx1), float32(sy), 1, gridCol, false)
	}
}

func (r *Renderer) drawUnit(screen *ebiten.Image, w *core.World, e *core.Entity) {
	sx, sy := r.Camera.WorldToScreen(e.X, e.Y)
	radius := float32(e.Half() * r.Camera.Zoom)
	if selected(w, e.ID) {
		vector.StrokeCircle(screen, float32(sx), float32(sy), radius+3, 2, color.RGBA{0, 255, 0, 200}, false)
	}
	body := rgba(playerColor(w, e.PlayerID))
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, body, false)
	vector.StrokeCircle(screen, float32(sx), float32(sy), radius, 1, color.RGBA{255, 255, 255, 160}, false)
	// Facing tick
	fx := sx + math.Cos(e.Facing)*float64(radius)
	fy := sy + math.Sin(e.Facing)*float64(radius)
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(fx), float32(fy), 1, color.RGBA{255, 255, 255, 220}, false)
	r.drawHealthBar(screen, e, sx, sy)
}

func (r *Renderer) drawBuilding(screen *ebiten.Image, w *core.World, e *core.Entity) {
	h := e.Half() * r.Camera.Zoom
	sx, sy := r.Camera.WorldToScreen(e.X, e.Y)
	body := rgba(playerColor(w, e.PlayerID))
	if e.UnderConstruction {
		body.A = 120
	}
	vector.DrawFilledRect(screen, float32(sx-h), float32(sy-h), float32(2*h), float32(2*h), body, false)
	border := color.RGBA{255, 255, 255, 160}
	if selected(w, e.ID) {
		border = color.RGBA{0, 255, 0, 220}
	}
	vector.StrokeRect(screen, float32(sx-h), float32(sy-h), float32(2*h), float32(2*h), 2, border, false)
	if e.UnderConstruction {
		// Progress fill along the bottom edge
		pw := 2 * h * e.Progress
		vector.DrawFilledRect(screen, float32(sx-h), float32(sy+h-4), float32(pw), 4,
			color.RGBA{255, 220, 60, 255}, false)
	}
	r.drawHealthBar(screen, e, sx, sy-h-4)
}

func (r *Renderer) drawHealthBar(screen *ebiten.Image, e *core.Entity, sx, sy float64) {
	if e.Health >= e.MaxHealth {
		return
	}
	barW := float32(2 * e.Half() * r.Camera.Zoom)
	barX := float32(sx) - barW/2
	barY := float32(sy) - float32(e.Half()*r.Camera.Zoom) - 7
	ratio := float32(e.Health / e.MaxHealth)
	vector.DrawFilledRect(screen, barX, barY, barW, 3, color.RGBA{40, 40, 40, 200}, false)
	fill := color.RGBA{0, 200, 0, 255}
	if ratio < 0.35 {
		fill = color.RGBA{220, 60, 40, 255}
	}
	vector.DrawFilledRect(screen, barX, barY, barW*ratio, 3, fill, false)
}

func (r *Renderer) drawEffects(screen *ebiten.Image, w *core.World) {
	for _, fx := range w.Effects {
		x0, y0 := r.Camera.WorldToScreen(fx.FromX, fx.FromY)
		x1, y1 := r.Camera.WorldToScreen(fx.ToX, fx.ToY)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, rgba(fx.Color), false)
		// Impact spark
		vector.DrawFilledCircle(screen, float32(x1), float32(y1), 3, color.RGBA{255, 255, 200, 230}, false)
	}
}

func (r *Renderer) drawMarkers(screen *ebiten.Image, w *core.World) {
	for _, m := range w.Markers {
		sx, sy := r.Camera.WorldToScreen(m.X, m.Y)
		col := color.RGBA{90, 220, 90, 200}
		if m.Attack {
			col = color.RGBA{230, 90, 70, 200}
		}
		age := (w.NowMS - m.StartMS) / m.DurationMS
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(12*(1-age))+3, 2, col, false)
	}
}

func (r *Renderer) drawTexts(screen *ebiten.Image, w *core.World) {
	for _, ft := range w.Texts {
		age := (w.NowMS - ft.StartMS) / ft.DurationMS
		sx, sy := r.Camera.WorldToScreen(ft.X, ft.Y-20*age)
		text.Draw(screen, ft.Text, r.face, int(sx), int(sy), rgba(ft.Color))
	}
}

// drawFog shades everything the viewer's team cannot currently see
func (r *Renderer) drawFog(screen *ebiten.Image, fog *systems.FogSystem, viewerID int, pm *core.PlayerManager) {
	if fog == nil {
		return
	}
	p := pm.GetPlayer(viewerID)
	if p == nil {
		return
	}
	grid := fog.Teams[p.TeamID]
	shade := color.RGBA{0, 0, 0, 110}
	cell := float32(geom.FogCellSize * r.Camera.Zoom)
	for cy := 0; cy < grid.H; cy++ {
		for cx := 0; cx < grid.W; cx++ {
			if grid.At(cx, cy) == systems.FogVisible {
				continue
			}
			sx, sy := r.Camera.WorldToScreen(float64(cx)*geom.FogCellSize, float64(cy)*geom.FogCellSize)
			vector.DrawFilledRect(screen, float32(sx), float32(sy), cell, cell, shade, false)
		}
	}
}

// DrawPlacementPreview shows the building footprint under the cursor,
// tinted by placement validity.
func (r *Renderer) DrawPlacementPreview(screen *ebiten.Image, kind core.Kind, gx, gy int, valid bool) {
	d := core.DefOf(kind)
	x, y := geom.CellOrigin(gx, gy)
	sx, sy := r.Camera.WorldToScreen(x, y)
	wpx := float32(float64(d.CellsW) * geom.CellSize * r.Camera.Zoom)
	hpx := float32(float64(d.CellsH) * geom.CellSize * r.Camera.Zoom)
	tint := color.RGBA{80, 220, 80, 90}
	if !valid {
		tint = color.RGBA{220, 60, 40, 90}
	}
	vector.DrawFilledRect(screen, float32(sx), float32(sy), wpx, hpx, tint, false)
	vector.StrokeRect(screen, float32(sx), float32(sy), wpx, hpx, 1, color.RGBA{255, 255, 255, 160}, false)
}

// DrawSelectionBox draws the drag-select rectangle
func (r *Renderer) DrawSelectionBox(screen *ebiten.Image, x1, y1, x2, y2 int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	w := float32(x2 - x1)
	h := float32(y2 - y1)
	vector.DrawFilledRect(screen, float32(x1), float32(y1), w, h, color.RGBA{0, 255, 0, 30}, false)
	vector.StrokeRect(screen, float32(x1), float32(y1), w, h, 1, color.RGBA{0, 255, 0, 180}, false)
}

// DrawMinimap renders a scaled-down map with entity dots and team fog
func (r *Renderer) DrawMinimap(screen *ebiten.Image, w *core.World, fog *systems.FogSystem, viewerID, px, py, size int) {
	scale := float64(size) / geom.MapWidth
	mh := float32(geom.MapHeight * scale)
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(size), mh, color.RGBA{20, 24, 20, 230}, false)
	for _, e := range w.Entities {
		dot := rgba(playerColor(w, e.PlayerID))
		dx := float32(px) + float32(e.X*scale)
		dy := float32(py) + float32(e.Y*scale)
		s := float32(2)
		if e.Kind.IsBuilding() {
			s = 3
		}
		vector.DrawFilledRect(screen, dx-s/2, dy-s/2, s, s, dot, false)
	}
	if fog != nil {
		if p := w.Players.GetPlayer(viewerID); p != nil {
			grid := fog.Teams[p.TeamID]
			cs := float32(geom.FogCellSize * scale)
			for cy := 0; cy < grid.H; cy++ {
				for cx := 0; cx < grid.W; cx++ {
					if grid.At(cx, cy) == systems.FogVisible {
						continue
					}
					fx := float32(px) + float32(float64(cx)*geom.FogCellSize*scale)
					fy := float32(py) + float32(float64(cy)*geom.FogCellSize*scale)
					vector.DrawFilledRect(screen, fx, fy, cs, cs, color.RGBA{0, 0, 0, 90}, false)
				}
			}
		}
	}
	vector.StrokeRect(screen, float32(px), float32(py), float32(size), mh, 1, color.RGBA{200, 200, 200, 200}, false)
}

func playerColor(w *core.World, playerID int) uint32 {
	if p := w.Players.GetPlayer(playerID); p != nil {
		return p.Color
	}
	return 0xAAAAAAFF
}

func selected(w *core.World, id core.EntityID) bool {
	for _, s := range w.Selection {
		if s == id {
			return true
		}
	}
	return false
}
