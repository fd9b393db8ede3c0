package systems

import "basewar/engine/core"

// SpawnSystem runs the bunker spawn cadence: every finished bunker
// produces a marine once per interval, skipped outright when the owner
// is at the supply cap (there is no queue). New units attack-move to the
// bunker's rally point when one is set.
type SpawnSystem struct{}

func (s *SpawnSystem) Priority() int { return 12 }

func (s *SpawnSystem) Update(w *core.World, _ float64) {
	// Snapshot the length so units spawned this pass are not revisited
	n := len(w.Entities)
	for i := 0; i < n; i++ {
		b := w.Entities[i]
		if b.Kind != core.KindBunker || !b.Alive() || b.UnderConstruction {
			continue
		}
		if w.NowMS-b.LastSpawnMS < core.SpawnIntervalMS {
			continue
		}
		// The attempt is consumed whether or not a unit comes out
		b.LastSpawnMS = w.NowMS

		p := w.Players.GetPlayer(b.PlayerID)
		d := core.DefOf(core.KindMarine)
		if p == nil || p.Supply+d.SupplyCost > p.SupplyCap {
			continue
		}

		u := core.NewEntity(core.KindMarine, b.PlayerID, b.X, b.Y+b.Half()+d.HalfSize+2)
		w.AddEntity(u)
		if b.RallySet {
			u.OrderAttackMove(b.RallyX, b.RallyY)
		}
		w.Bus.Emit(core.Event{Type: core.EvtUnitSpawned, Tick: w.TickCount, EntityID: u.ID, PlayerID: u.PlayerID})
	}
}
