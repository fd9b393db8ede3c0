package systems

import (
	"math"

	"basewar/engine/core"
)

// Target acquisition reaches beyond weapon range while attack-moving
const acquireFactor = 1.5

// CommandSystem drives the per-unit command state machine: movement,
// attack and attack-move resolution, plus per-tick stat upkeep (shield
// aura, regen, upgrade baselines). Runs first each tick; entities read
// siblings as mutated so far this pass.
type CommandSystem struct{}

func (s *CommandSystem) Priority() int { return 10 }

func (s *CommandSystem) Update(w *core.World, dt float64) {
	recomputeShields(w)

	for _, e := range w.Entities {
		if !e.Alive() {
			continue
		}
		if !e.UpgradesApplied() {
			if p := w.Players.GetPlayer(e.PlayerID); p != nil {
				e.ApplyUpgrades(p)
			}
		}
		e.Regenerate(dt)
		if e.Kind.IsBuilding() {
			continue
		}

		// Stale targets are detected lazily, at the top of every update
		if e.TargetID != 0 && w.Find(e.TargetID) == nil {
			e.TargetID = 0
			if e.State == core.StateAttacking {
				e.State = core.StateIdle
			}
		}

		switch e.State {
		case core.StateMoving:
			if e.StepToward(e.MoveX, e.MoveY, dt) {
				e.State = core.StateIdle
			}
		case core.StateAttacking:
			t := w.Find(e.TargetID)
			if t == nil {
				e.TargetID = 0
				e.State = core.StateIdle
				continue
			}
			engage(w, e, t, dt)
		case core.StateAttackMoving:
			if e.TargetID == 0 {
				e.TargetID = acquireTarget(w, e)
			}
			if t := w.Find(e.TargetID); t != nil {
				engage(w, e, t, dt)
			} else if e.StepToward(e.MoveX, e.MoveY, dt) {
				e.State = core.StateIdle
			}
		}
	}
}

// recomputeShields zeroes every entity's shield bonus and lets each
// finished shield tower grant its armor aura to nearby allies.
func recomputeShields(w *core.World) {
	for _, e := range w.Entities {
		e.ShieldBonus = 0
	}
	for _, t := range w.Entities {
		if t.Kind != core.KindShieldTower || !t.Alive() || t.UnderConstruction {
			continue
		}
		for _, e := range w.Entities {
			if e == t || !e.Alive() {
				continue
			}
			if !w.Players.SameTeam(t.PlayerID, e.PlayerID) {
				continue
			}
			if t.DistanceTo(e) <= core.ShieldTowerRadius {
				e.ShieldBonus += core.ShieldTowerArmor
			}
		}
	}
}

// engage holds and fires when the target is in range, otherwise closes
// the distance.
func engage(w *core.World, e, t *core.Entity, dt float64) {
	if !e.InAttackRange(t) {
		e.StepToward(t.X, t.Y, dt)
		return
	}
	e.Facing = math.Atan2(t.Y-e.Y, t.X-e.X)
	if w.NowMS-e.LastAttackMS < 1000.0/e.AttackSpeed {
		return
	}
	e.LastAttackMS = w.NowMS
	if e.Kind == core.KindReaper {
		// Twin simultaneous half-damage shots; the damage floor applies
		// to each shot separately.
		w.DealDamage(e, t, e.Damage/2)
		w.DealDamage(e, t, e.Damage-e.Damage/2)
		return
	}
	w.DealDamage(e, t, e.Damage)
}

// acquireTarget finds the nearest live enemy within the acquisition
// radius. Exact ties go to the first entity encountered in iteration
// order.
func acquireTarget(w *core.World, e *core.Entity) core.EntityID {
	radius := e.AttackRange * acquireFactor
	var best core.EntityID
	bestDist := math.MaxFloat64
	for _, t := range w.Entities {
		if t == e || !t.Alive() {
			continue
		}
		if w.Players.SameTeam(e.PlayerID, t.PlayerID) {
			continue
		}
		d := e.DistanceTo(t)
		if d <= radius && d < bestDist {
			bestDist = d
			best = t.ID
		}
	}
	return best
}
