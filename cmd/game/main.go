package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"basewar/engine/command"
	"basewar/engine/core"
	"basewar/engine/geom"
	"basewar/engine/input"
	"basewar/engine/render"
	"basewar/engine/systems"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TickRate     = 20.0
)

// Game implements ebiten.Game: eight players on one screen, switched
// with the number keys.
type Game struct {
	loop     *core.GameLoop
	fog      *systems.FogSystem
	renderer *render.Renderer
	input    *input.State

	activePlayer int
	// Pending build placement; KindCount means none armed
	buildKind core.Kind
	// A-key attack-move arming for the next click
	attackMoveArmed bool

	showGrid    bool
	showMinimap bool
}

func NewGame() *Game {
	g := &Game{
		renderer:     render.NewRenderer(ScreenWidth, ScreenHeight),
		input:        input.NewState(),
		activePlayer: 1,
		buildKind:    core.KindCount,
		showMinimap:  true,
	}
	g.setupGame()
	return g
}

// setupGame resets the whole simulation: fresh world, systems, and a
// bunker plus three workers per player.
func (g *Game) setupGame() {
	g.loop = core.NewGameLoop(TickRate, 1)
	w := g.loop.World
	g.fog = systems.NewFogSystem(w.Players)
	systems.RegisterAll(w, g.fog)

	// Start anchors: one tile per player, bunker centered with workers
	// below it. Teams sit on the same map edge.
	starts := [core.NumPlayers][2]int{
		{0, 0}, {1, 0}, // team 1, top left
		{geom.TilesX - 1, 0}, {geom.TilesX - 2, 0}, // team 2, top right
		{0, geom.TilesY - 1}, {1, geom.TilesY - 1}, // team 3, bottom left
		{geom.TilesX - 1, geom.TilesY - 1}, {geom.TilesX - 2, geom.TilesY - 1}, // team 4
	}
	for i, p := range w.Players.Players {
		tx, ty := starts[i][0], starts[i][1]
		gx := tx*geom.CellsPerTile + 2
		gy := ty*geom.CellsPerTile + 2
		d := core.DefOf(core.KindBunker)
		bx, by := geom.FootprintCenter(gx, gy, d.CellsW, d.CellsH)
		b := core.NewEntity(core.KindBunker, p.ID, bx, by)
		b.GridX = gx
		b.GridY = gy
		w.AddEntity(b)
		p.SupplyCap += d.SupplyBonus

		for k := 0; k < 3; k++ {
			wx := bx + float64(k-1)*30
			wy := by + b.Half() + 30
			w.AddEntity(core.NewEntity(core.KindWorker, p.ID, wx, wy))
		}
	}

	g.renderer.Camera.CenterOn(geom.MapWidth/2, geom.MapHeight/2)
	g.loop.Play()
}

func (g *Game) Update() error {
	g.input.Update()
	g.handleCamera()
	g.handleHotkeys()
	g.handleMouse()
	g.loop.Update()
	g.loop.World.Bus.Dispatch()
	return nil
}

func (g *Game) handleHotkeys() {
	// Switch the active seat
	for i := 0; i < core.NumPlayers; i++ {
		if g.input.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			g.switchPlayer(i + 1)
		}
	}
	if g.input.IsKeyJustPressed(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if g.input.IsKeyJustPressed(ebiten.KeyM) {
		g.showMinimap = !g.showMinimap
	}
	if g.input.IsKeyJustPressed(ebiten.KeyP) {
		if g.loop.State == core.StatePlaying {
			g.loop.Pause()
		} else {
			g.loop.Play()
		}
	}
	if g.input.IsKeyJustPressed(ebiten.KeyEscape) {
		g.buildKind = core.KindCount
		g.attackMoveArmed = false
	}
	if g.input.IsKeyJustPressed(ebiten.KeyA) {
		g.attackMoveArmed = true
	}
	if g.input.IsKeyJustPressed(ebiten.KeyS) && !ebiten.IsKeyPressed(ebiten.KeyShift) {
		command.Apply(g.loop.World, command.Command{
			Type: command.CmdStop, PlayerID: g.activePlayer, Units: g.loop.World.Selection,
		})
	}

	builds := map[ebiten.Key]core.Kind{
		ebiten.KeyQ: core.KindSupplyDepot,
		ebiten.KeyE: core.KindBunker,
		ebiten.KeyR: core.KindShieldTower,
		ebiten.KeyT: core.KindSensorTower,
	}
	for key, kind := range builds {
		if g.input.IsKeyJustPressed(key) && g.selectedWorker() != nil {
			if p := g.loop.World.Players.GetPlayer(g.activePlayer); p != nil && p.CanAfford(core.DefOf(kind).Cost) {
				g.buildKind = kind
			}
		}
	}

	upgrades := map[ebiten.Key]core.UpgradeKind{
		ebiten.KeyF1: core.UpgradeArmor,
		ebiten.KeyF2: core.UpgradeDamage,
		ebiten.KeyF3: core.UpgradeRange,
		ebiten.KeyF4: core.UpgradeRegen,
		ebiten.KeyF5: core.UpgradeSpeed,
	}
	for key, kind := range upgrades {
		if g.input.IsKeyJustPressed(key) {
			command.Apply(g.loop.World, command.Command{
				Type: command.CmdPurchaseUpgrade, PlayerID: g.activePlayer, Upgrade: kind,
			})
		}
	}
}

func (g *Game) switchPlayer(id int) {
	if id == g.activePlayer {
		return
	}
	g.activePlayer = id
	g.buildKind = core.KindCount
	g.attackMoveArmed = false
	g.loop.World.Select(nil)
}

func (g *Game) handleMouse() {
	w := g.loop.World
	wx, wy := g.renderer.Camera.ScreenToWorld(g.input.MouseX, g.input.MouseY)

	if g.input.LeftJustReleased {
		switch {
		case g.buildKind != core.KindCount:
			gx, gy := geom.WorldToCell(wx, wy)
			worker := g.selectedWorker()
			if worker != nil {
				ok := command.Apply(w, command.Command{
					Type: command.CmdPlaceBuilding, PlayerID: g.activePlayer,
					Units: w.Selection, Build: buildName(g.buildKind),
					GridX: gx, GridY: gy,
				})
				if ok {
					g.buildKind = core.KindCount
				}
			}
		case g.attackMoveArmed:
			command.Apply(w, command.Command{
				Type: command.CmdAttackMove, PlayerID: g.activePlayer,
				Units: w.Selection, X: wx, Y: wy,
			})
			g.attackMoveArmed = false
		case dragReleased(g.input):
			g.dragSelect()
		default:
			g.clickSelect(wx, wy)
		}
	}

	if g.input.RightJustPressed {
		g.rightClick(wx, wy)
	}
}

// dragReleased reports whether this release ends a drag box. Dragging
// resets on release, so remember via the travel distance instead.
func dragReleased(s *input.State) bool {
	dx := s.MouseX - s.DragStartX
	dy := s.MouseY - s.DragStartY
	return dx*dx+dy*dy > s.DragThreshold*s.DragThreshold
}

func (g *Game) dragSelect() {
	w := g.loop.World
	x1, y1 := g.renderer.Camera.ScreenToWorld(g.input.DragStartX, g.input.DragStartY)
	x2, y2 := g.renderer.Camera.ScreenToWorld(g.input.MouseX, g.input.MouseY)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	var ids []core.EntityID
	for _, e := range w.Entities {
		if e.PlayerID != g.activePlayer || !e.Alive() {
			continue
		}
		if e.X >= x1 && e.X <= x2 && e.Y >= y1 && e.Y <= y2 {
			ids = append(ids, e.ID)
		}
	}
	w.Select(ids)
}

func (g *Game) clickSelect(wx, wy float64) {
	w := g.loop.World
	for _, e := range w.Entities {
		if e.PlayerID == g.activePlayer && e.Alive() && e.IsUnderPoint(wx, wy) {
			w.Select([]core.EntityID{e.ID})
			return
		}
	}
	w.Select(nil)
}

// rightClick is the context order: attack a hostile under the cursor,
// resume building an own unfinished structure, set a rally for selected
// buildings, or just move.
func (g *Game) rightClick(wx, wy float64) {
	w := g.loop.World
	var under *core.Entity
	for _, e := range w.Entities {
		if e.Alive() && e.IsUnderPoint(wx, wy) {
			under = e
			break
		}
	}

	if under != nil && !w.Players.SameTeam(under.PlayerID, g.activePlayer) {
		command.Apply(w, command.Command{
			Type: command.CmdAttack, PlayerID: g.activePlayer,
			Units: w.Selection, TargetID: under.ID,
		})
		return
	}
	if under != nil && under.PlayerID == g.activePlayer && under.UnderConstruction {
		command.Apply(w, command.Command{
			Type: command.CmdResumeBuild, PlayerID: g.activePlayer,
			Units: w.Selection, TargetID: under.ID,
		})
		return
	}
	if g.selectionAllBuildings() {
		command.Apply(w, command.Command{
			Type: command.CmdSetRally, PlayerID: g.activePlayer,
			Units: w.Selection, X: wx, Y: wy,
		})
		return
	}
	command.Apply(w, command.Command{
		Type: command.CmdMove, PlayerID: g.activePlayer,
		Units: w.Selection, X: wx, Y: wy,
	})
}

func (g *Game) selectionAllBuildings() bool {
	w := g.loop.World
	if len(w.Selection) == 0 {
		return false
	}
	for _, id := range w.Selection {
		e := w.Find(id)
		if e == nil || !e.Kind.IsBuilding() {
			return false
		}
	}
	return true
}

func (g *Game) selectedWorker() *core.Entity {
	w := g.loop.World
	for _, id := range w.Selection {
		if e := w.Find(id); e != nil && e.Kind == core.KindWorker {
			return e
		}
	}
	return nil
}

func (g *Game) handleCamera() {
	cam := g.renderer.Camera
	speed := cam.Speed / 60.0

	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		cam.Pan(0, -speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		cam.Pan(0, speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		cam.Pan(-speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		cam.Pan(speed, 0)
	}

	if cam.EdgeScroll {
		edge := cam.EdgeSize
		if g.input.MouseX < edge {
			cam.Pan(-speed, 0)
		}
		if g.input.MouseX > ScreenWidth-edge {
			cam.Pan(speed, 0)
		}
		if g.input.MouseY < edge {
			cam.Pan(0, -speed)
		}
		if g.input.MouseY > ScreenHeight-edge {
			cam.Pan(0, speed)
		}
	}

	if g.input.ScrollY != 0 {
		cam.ZoomAt(g.input.ScrollY*0.1, g.input.MouseX, g.input.MouseY)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cam.Pan(float64(-g.input.MouseDX), float64(-g.input.MouseDY))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 16, 24, 255})
	w := g.loop.World

	g.renderer.DrawWorld(screen, w, g.fog, g.activePlayer, g.showGrid)

	if g.buildKind != core.KindCount {
		wx, wy := g.renderer.Camera.ScreenToWorld(g.input.MouseX, g.input.MouseY)
		gx, gy := geom.WorldToCell(wx, wy)
		valid := systems.IsValidPlacement(w, g.buildKind, gx, gy)
		g.renderer.DrawPlacementPreview(screen, g.buildKind, gx, gy, valid)
	}

	if x1, y1, x2, y2, active := g.input.DragRect(); active {
		g.renderer.DrawSelectionBox(screen, x1, y1, x2, y2)
	}

	if g.showMinimap {
		g.renderer.DrawMinimap(screen, w, g.fog, g.activePlayer, ScreenWidth-210, ScreenHeight-140, 200)
	}

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.loop.World
	p := w.Players.GetPlayer(g.activePlayer)
	mode := ""
	if g.attackMoveArmed {
		mode = " | ATTACK-MOVE: click target"
	}
	if g.buildKind != core.KindCount {
		mode = fmt.Sprintf(" | PLACING %s", core.DefOf(g.buildKind).Name)
	}
	info := fmt.Sprintf(
		"%s (team %d) | Res: %d | Supply: %d/%d | Score: %d | %02d:%02d%s\n"+
			"Upgrades A/D/R/H/M: %d %d %d %d %d  [F1-F5 buy]\n"+
			"[1-8] player [Q/E/R/T] build [A] attack-move [S] stop [G] grid [M] map [P] pause\n"+
			"FPS: %.0f | Tick: %d | Entities: %d",
		p.Name, p.TeamID, p.Resources, p.Supply, p.SupplyCap, p.KillScore,
		w.ClockSec/60, w.ClockSec%60, mode,
		p.Upgrades[core.UpgradeArmor], p.Upgrades[core.UpgradeDamage],
		p.Upgrades[core.UpgradeRange], p.Upgrades[core.UpgradeRegen],
		p.Upgrades[core.UpgradeSpeed],
		ebiten.ActualFPS(), g.loop.CurrentTick(), w.EntityCount(),
	)
	ebitenutil.DebugPrint(screen, info)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func buildName(k core.Kind) string {
	switch k {
	case core.KindBunker:
		return "bunker"
	case core.KindSupplyDepot:
		return "supplyDepot"
	case core.KindShieldTower:
		return "shieldTower"
	case core.KindSensorTower:
		return "sensorTower"
	}
	return ""
}

func main() {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("basewar")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
