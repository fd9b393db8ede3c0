package core

import (
	"math/rand"
	"strconv"
)

// System processes entities each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// World holds the full simulation state: the live entity set, players,
// events and transient visuals. Everything is single-threaded; systems
// run strictly in priority order within one tick.
type World struct {
	// Entities is the shared live set. Iteration order is stable
	// (append order), which the simulation deliberately depends on:
	// updates are in-place, not double-buffered.
	Entities []*Entity
	byID     map[EntityID]*Entity

	Players *PlayerManager
	Bus     *EventBus

	systems []System

	TickCount uint64
	TickRate  float64 // ticks per second
	NowMS     float64 // simulation clock in milliseconds
	ClockSec  int     // game clock, advanced on its own interval timer

	// Selection is the active player's current selection, pruned when
	// members die.
	Selection []EntityID

	Effects []CombatEffect
	Texts   []FloatingText
	Markers []MoveMarker

	Rand *rand.Rand

	incomeAccMS float64
	clockAccMS  float64
}

// NewWorld creates an empty world with the default player roster
func NewWorld(tickRate float64, seed int64) *World {
	return &World{
		byID:     make(map[EntityID]*Entity),
		Players:  NewPlayerManager(),
		Bus:      NewEventBus(),
		TickRate: tickRate,
		Rand:     rand.New(rand.NewSource(seed)),
	}
}

// AddEntity inserts an entity into the live set and charges its supply
// cost to the owning player.
func (w *World) AddEntity(e *Entity) {
	w.Entities = append(w.Entities, e)
	w.byID[e.ID] = e
	if d := e.Def(); d.SupplyCost > 0 {
		if p := w.Players.GetPlayer(e.PlayerID); p != nil {
			p.Supply += d.SupplyCost
		}
	}
}

// Find resolves an entity ID against the live set. Dead or removed
// entities resolve to nil, so holders of stale IDs fall back cleanly.
func (w *World) Find(id EntityID) *Entity {
	e := w.byID[id]
	if e == nil || !e.Alive() {
		return nil
	}
	return e
}

// lookup returns the entity even if it died this tick; used only by
// death-credit resolution.
func (w *World) lookup(id EntityID) *Entity {
	return w.byID[id]
}

// AddSystem registers a system, kept sorted by priority
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick runs one simulation step: systems in priority order (state
// machines, collision, fog, death cleanup, economy), then transient
// visual expiry and the clock advance.
func (w *World) Tick(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.tickTimers(dt)
	w.pruneVisuals()
	w.NowMS += dt * 1000
	w.TickCount++
}

// tickTimers advances the passive income and game clock interval timers.
// They run on accumulated simulation time, decoupled from frame rate.
func (w *World) tickTimers(dt float64) {
	w.incomeAccMS += dt * 1000
	for w.incomeAccMS >= IncomeMS {
		w.incomeAccMS -= IncomeMS
		for _, p := range w.Players.Players {
			p.Resources += IncomeAmount
		}
	}
	w.clockAccMS += dt * 1000
	for w.clockAccMS >= 1000 {
		w.clockAccMS -= 1000
		w.ClockSec++
	}
}

// DealDamage routes an attack from source to target: damage floor,
// kill-credit bookkeeping and the transient laser effect.
func (w *World) DealDamage(src, dst *Entity, amount int) {
	dst.TakeDamage(amount, src.ID)
	color := uint32(0xFFFFFFFF)
	if p := w.Players.GetPlayer(src.PlayerID); p != nil {
		color = p.Color
	}
	w.Effects = append(w.Effects, CombatEffect{
		FromX: src.X, FromY: src.Y,
		ToX: dst.X, ToY: dst.Y,
		Color:      color,
		StartMS:    w.NowMS,
		DurationMS: 120,
	})
	w.Bus.Emit(Event{Type: EvtUnitAttack, Tick: w.TickCount, EntityID: src.ID, PlayerID: src.PlayerID})
}

// AddFloatingText records a drifting text indicator
func (w *World) AddFloatingText(text string, x, y float64, color uint32) {
	w.Texts = append(w.Texts, FloatingText{
		Text: text, X: x, Y: y, Color: color,
		StartMS: w.NowMS, DurationMS: 1200,
	})
}

// AddMoveMarker records a move/attack-move order indicator
func (w *World) AddMoveMarker(x, y float64, attack bool) {
	w.Markers = append(w.Markers, MoveMarker{
		X: x, Y: y, Attack: attack,
		StartMS: w.NowMS, DurationMS: 600,
	})
}

func (w *World) pruneVisuals() {
	w.Effects = pruneExpired(w.Effects, w.NowMS, func(e CombatEffect) (float64, float64) { return e.StartMS, e.DurationMS })
	w.Texts = pruneExpired(w.Texts, w.NowMS, func(t FloatingText) (float64, float64) { return t.StartMS, t.DurationMS })
	w.Markers = pruneExpired(w.Markers, w.NowMS, func(m MoveMarker) (float64, float64) { return m.StartMS, m.DurationMS })
}

func pruneExpired[T any](items []T, now float64, span func(T) (float64, float64)) []T {
	kept := items[:0]
	for _, it := range items {
		start, dur := span(it)
		if now < start+dur {
			kept = append(kept, it)
		}
	}
	return kept
}

// RemoveDead partitions the live set, applies death side effects and
// clears dangling target references. Called by the death system after
// fog recomputation, before the economy tick.
func (w *World) RemoveDead() {
	var removed []EntityID
	kept := w.Entities[:0]
	for _, e := range w.Entities {
		if e.Alive() {
			kept = append(kept, e)
			continue
		}
		w.applyDeath(e)
		removed = append(removed, e.ID)
	}
	w.Entities = kept
	if len(removed) == 0 {
		return
	}
	for _, id := range removed {
		delete(w.byID, id)
	}
	// Clear references to entities that no longer exist
	for _, e := range w.Entities {
		if e.TargetID != 0 && w.byID[e.TargetID] == nil {
			e.TargetID = 0
			if e.State == StateAttacking {
				e.State = StateIdle
			}
		}
		if e.BuildTargetID != 0 && w.byID[e.BuildTargetID] == nil {
			e.BuildTargetID = 0
			if e.State == StateBuilding {
				e.State = StateIdle
			}
		}
	}
	w.pruneSelection()
}

func (w *World) applyDeath(e *Entity) {
	d := e.Def()
	// Supply is only charged for finished units under a player's cap
	if d.SupplyCost > 0 {
		if p := w.Players.GetPlayer(e.PlayerID); p != nil {
			p.Supply -= d.SupplyCost
		}
	}
	// Completed depots and bunkers took the cap up; losing them takes
	// it back down.
	if d.SupplyBonus > 0 && !e.UnderConstruction {
		if p := w.Players.GetPlayer(e.PlayerID); p != nil {
			p.SupplyCap -= d.SupplyBonus
		}
	}
	// Kill credit goes to whoever damaged the victim last, if hostile
	if killer := w.lookup(e.LastHitBy); killer != nil {
		if !w.Players.SameTeam(killer.PlayerID, e.PlayerID) {
			if p := w.Players.GetPlayer(killer.PlayerID); p != nil {
				p.Resources += d.KillAward
				p.KillScore += d.KillAward
				w.AddFloatingText("+"+strconv.Itoa(d.KillAward), e.X, e.Y, p.Color)
				w.Bus.Emit(Event{Type: EvtKillAward, Tick: w.TickCount, EntityID: killer.ID, PlayerID: p.ID, Amount: d.KillAward})
			}
		}
	}
	w.Bus.Emit(Event{Type: EvtUnitDied, Tick: w.TickCount, EntityID: e.ID, PlayerID: e.PlayerID})
}

func (w *World) pruneSelection() {
	kept := w.Selection[:0]
	for _, id := range w.Selection {
		if w.byID[id] != nil {
			kept = append(kept, id)
		}
	}
	w.Selection = kept
}

// Select replaces the current selection with live entities only
func (w *World) Select(ids []EntityID) {
	w.Selection = w.Selection[:0]
	for _, id := range ids {
		if w.Find(id) != nil {
			w.Selection = append(w.Selection, id)
		}
	}
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	return len(w.Entities)
}
