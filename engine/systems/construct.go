package systems

import (
	"log"

	"basewar/engine/core"
	"basewar/engine/geom"
)

// OccupiedCells collects every placement grid cell claimed by a live
// building, including ones still under construction.
func OccupiedCells(w *core.World) map[[2]int]bool {
	occ := make(map[[2]int]bool)
	for _, e := range w.Entities {
		if !e.Alive() || !e.Kind.IsBuilding() {
			continue
		}
		d := e.Def()
		for cy := 0; cy < d.CellsH; cy++ {
			for cx := 0; cx < d.CellsW; cx++ {
				occ[[2]int{e.GridX + cx, e.GridY + cy}] = true
			}
		}
	}
	return occ
}

// IsValidPlacement checks a requested footprint: it must sit entirely
// inside one tile's inner grid, inside the map, and off every cell a
// live building already claims.
func IsValidPlacement(w *core.World, kind core.Kind, gx, gy int) bool {
	if !kind.IsBuilding() || kind >= core.KindCount {
		return false
	}
	d := core.DefOf(kind)
	if !geom.FootprintFitsTile(gx, gy, d.CellsW, d.CellsH) {
		return false
	}
	for cy := 0; cy < d.CellsH; cy++ {
		for cx := 0; cx < d.CellsW; cx++ {
			x, y := geom.CellCenter(gx+cx, gy+cy)
			if !geom.InMap(x, y) {
				return false
			}
		}
	}
	occ := OccupiedCells(w)
	for cy := 0; cy < d.CellsH; cy++ {
		for cx := 0; cx < d.CellsW; cx++ {
			if occ[[2]int{gx + cx, gy + cy}] {
				return false
			}
		}
	}
	return true
}

// StartBuild begins construction: resources are deducted up front and
// the building joins the live set immediately, so collision and vision
// account for it while it is still a shell. Returns false without any
// state change when the command is invalid.
func StartBuild(w *core.World, worker *core.Entity, kind core.Kind, gx, gy int) bool {
	if worker == nil || worker.Kind != core.KindWorker || !worker.Alive() {
		return false
	}
	if !kind.IsBuilding() || kind >= core.KindCount {
		log.Printf("construct: unknown building kind %d", kind)
		return false
	}
	d := core.DefOf(kind)
	p := w.Players.GetPlayer(worker.PlayerID)
	if p == nil || !p.CanAfford(d.Cost) {
		return false
	}
	if !IsValidPlacement(w, kind, gx, gy) {
		return false
	}

	p.Resources -= d.Cost
	x, y := geom.FootprintCenter(gx, gy, d.CellsW, d.CellsH)
	b := core.NewEntity(kind, worker.PlayerID, x, y)
	b.UnderConstruction = true
	b.GridX = gx
	b.GridY = gy
	w.AddEntity(b)

	bindBuilder(worker, b)
	w.Bus.Emit(core.Event{Type: core.EvtBuildingPlaced, Tick: w.TickCount, EntityID: b.ID, PlayerID: b.PlayerID})
	return true
}

// ResumeBuild rebinds a worker to an existing unfinished building of the
// same player (right-click resume).
func ResumeBuild(w *core.World, worker *core.Entity, building *core.Entity) bool {
	if worker == nil || worker.Kind != core.KindWorker || !worker.Alive() {
		return false
	}
	if building == nil || !building.Alive() || !building.UnderConstruction {
		return false
	}
	if building.PlayerID != worker.PlayerID {
		return false
	}
	bindBuilder(worker, building)
	return true
}

func bindBuilder(worker, building *core.Entity) {
	worker.TargetID = 0
	worker.State = core.StateBuilding
	worker.BuildTargetID = building.ID
}

// ConstructionSystem advances build progress for every worker standing
// at its site. Progress is stored on the building, so each co-located
// builder's contribution stacks and workers can drop out and rejoin.
type ConstructionSystem struct{}

func (s *ConstructionSystem) Priority() int { return 14 }

func (s *ConstructionSystem) Update(w *core.World, dt float64) {
	for _, e := range w.Entities {
		if !e.Alive() || e.State != core.StateBuilding {
			continue
		}
		b := w.Find(e.BuildTargetID)
		if b == nil || !b.UnderConstruction {
			e.BuildTargetID = 0
			e.State = core.StateIdle
			continue
		}
		if e.DistanceTo(b) > b.Half()+e.Half()+core.BuilderRange {
			e.StepToward(b.X, b.Y, dt)
			continue
		}
		b.Progress += dt * 1000 / b.Def().BuildTimeMS
		if b.Progress >= 1 {
			// The worker whose contribution crosses the threshold
			// finalizes; everyone else is released below.
			finishBuilding(w, b)
		}
	}
}

func finishBuilding(w *core.World, b *core.Entity) {
	b.UnderConstruction = false
	b.Progress = 1
	b.LastSpawnMS = w.NowMS
	d := b.Def()
	if d.SupplyBonus > 0 {
		if p := w.Players.GetPlayer(b.PlayerID); p != nil {
			p.SupplyCap += d.SupplyBonus
		}
	}
	for _, e := range w.Entities {
		if e.BuildTargetID == b.ID {
			e.BuildTargetID = 0
			if e.State == core.StateBuilding {
				e.State = core.StateIdle
			}
		}
	}
	w.Bus.Emit(core.Event{Type: core.EvtBuildingComplete, Tick: w.TickCount, EntityID: b.ID, PlayerID: b.PlayerID})
}
