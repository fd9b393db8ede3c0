// Package command is the inbound surface the input layer drives: typed
// commands applied to the world. Invalid commands are rejected with a
// boolean result and never mutate state.
package command

import (
	"log"

	"basewar/engine/core"
	"basewar/engine/systems"
)

// CmdType identifies a player command
type CmdType uint8

const (
	CmdMove CmdType = iota
	CmdAttackMove
	CmdAttack
	CmdStop
	CmdSetRally
	CmdPlaceBuilding
	CmdResumeBuild
	CmdPurchaseUpgrade
)

// Command is one player order against the simulation
type Command struct {
	Type     CmdType
	PlayerID int
	Units    []core.EntityID // commanded entities
	TargetID core.EntityID   // attack target / building to resume
	X, Y     float64         // world destination
	GridX    int             // placement grid anchor
	GridY    int
	Build    string // building kind name for CmdPlaceBuilding
	Upgrade  core.UpgradeKind
}

// Apply executes a command. It returns false when the command changed
// nothing: wrong owner, dead entities, failed placement, or not enough
// resources. A partially applicable order (some units dead) applies to
// the live remainder and still counts as success.
func Apply(w *core.World, c Command) bool {
	switch c.Type {
	case CmdMove:
		units := ownedUnits(w, c)
		for _, e := range units {
			e.OrderMove(c.X, c.Y)
		}
		if len(units) > 0 {
			w.AddMoveMarker(c.X, c.Y, false)
		}
		return len(units) > 0

	case CmdAttackMove:
		units := ownedUnits(w, c)
		for _, e := range units {
			e.OrderAttackMove(c.X, c.Y)
		}
		if len(units) > 0 {
			w.AddMoveMarker(c.X, c.Y, true)
		}
		return len(units) > 0

	case CmdAttack:
		target := w.Find(c.TargetID)
		if target == nil {
			return false
		}
		units := ownedUnits(w, c)
		for _, e := range units {
			e.OrderAttack(target.ID)
		}
		return len(units) > 0

	case CmdStop:
		units := ownedUnits(w, c)
		for _, e := range units {
			e.TargetID = 0
			e.State = core.StateIdle
		}
		return len(units) > 0

	case CmdSetRally:
		applied := false
		for _, id := range c.Units {
			b := w.Find(id)
			if b == nil || b.PlayerID != c.PlayerID || !b.Kind.IsBuilding() {
				continue
			}
			b.RallyX = c.X
			b.RallyY = c.Y
			b.RallySet = true
			applied = true
		}
		if applied {
			w.AddMoveMarker(c.X, c.Y, true)
		}
		return applied

	case CmdPlaceBuilding:
		kind, ok := core.BuildKindByName(c.Build)
		if !ok {
			log.Printf("command: unknown building type %q", c.Build)
			return false
		}
		worker := firstOwnedWorker(w, c)
		if worker == nil {
			return false
		}
		if !systems.StartBuild(w, worker, kind, c.GridX, c.GridY) {
			return false
		}
		// Any other selected workers pitch in on the same site
		site := w.Find(worker.BuildTargetID)
		for _, id := range c.Units {
			e := w.Find(id)
			if e != nil && e != worker && e.PlayerID == c.PlayerID && e.Kind == core.KindWorker {
				systems.ResumeBuild(w, e, site)
			}
		}
		return true

	case CmdResumeBuild:
		worker := firstOwnedWorker(w, c)
		return systems.ResumeBuild(w, worker, w.Find(c.TargetID))

	case CmdPurchaseUpgrade:
		return systems.PurchaseUpgrade(w, c.PlayerID, c.Upgrade)
	}
	log.Printf("command: unknown command type %d", c.Type)
	return false
}

// ownedUnits resolves the commanded IDs to live mobile units the issuing
// player owns. Buildings and foreign entities are silently dropped.
func ownedUnits(w *core.World, c Command) []*core.Entity {
	var out []*core.Entity
	for _, id := range c.Units {
		e := w.Find(id)
		if e == nil || e.PlayerID != c.PlayerID || !e.Kind.IsUnit() {
			continue
		}
		out = append(out, e)
	}
	return out
}

// firstOwnedWorker picks the first live worker among the commanded IDs
func firstOwnedWorker(w *core.World, c Command) *core.Entity {
	for _, id := range c.Units {
		e := w.Find(id)
		if e != nil && e.PlayerID == c.PlayerID && e.Kind == core.KindWorker {
			return e
		}
	}
	return nil
}
