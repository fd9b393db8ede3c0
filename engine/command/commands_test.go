package command

import (
	"testing"

	"basewar/engine/core"
)

func testWorld() *core.World {
	return core.NewWorld(20, 1)
}

func add(w *core.World, k core.Kind, player int, x, y float64) *core.Entity {
	e := core.NewEntity(k, player, x, y)
	w.AddEntity(e)
	return e
}

func TestApply_MoveOrdersOwnedUnits(t *testing.T) {
	w := testWorld()
	a := add(w, core.KindMarine, 1, 100, 100)
	b := add(w, core.KindMarine, 1, 150, 100)
	ok := Apply(w, Command{
		Type: CmdMove, PlayerID: 1,
		Units: []core.EntityID{a.ID, b.ID},
		X:     800, Y: 600,
	})
	if !ok {
		t.Fatal("move over owned units must apply")
	}
	for _, e := range []*core.Entity{a, b} {
		if e.State != core.StateMoving || e.MoveX != 800 || e.MoveY != 600 {
			t.Fatalf("unit %d not ordered to the destination", e.ID)
		}
	}
	if len(w.Markers) != 1 {
		t.Fatal("a successful move drops one marker")
	}
}

func TestApply_MoveSkipsForeignUnits(t *testing.T) {
	w := testWorld()
	theirs := add(w, core.KindMarine, 3, 100, 100)
	ok := Apply(w, Command{
		Type: CmdMove, PlayerID: 1,
		Units: []core.EntityID{theirs.ID},
		X:     800, Y: 600,
	})
	if ok {
		t.Fatal("commanding another player's units must fail")
	}
	if theirs.State != core.StateIdle {
		t.Fatal("foreign units must stay untouched")
	}
}

func TestApply_MoveSkipsBuildings(t *testing.T) {
	w := testWorld()
	bunker := add(w, core.KindBunker, 1, 500, 500)
	ok := Apply(w, Command{
		Type: CmdMove, PlayerID: 1,
		Units: []core.EntityID{bunker.ID},
		X:     800, Y: 600,
	})
	if ok || bunker.State != core.StateIdle {
		t.Fatal("buildings never take move orders")
	}
}

func TestApply_PartialSelectionStillApplies(t *testing.T) {
	w := testWorld()
	live := add(w, core.KindMarine, 1, 100, 100)
	dead := add(w, core.KindMarine, 1, 150, 100)
	dead.TakeDamage(100000, 0)
	ok := Apply(w, Command{
		Type: CmdMove, PlayerID: 1,
		Units: []core.EntityID{dead.ID, live.ID},
		X:     800, Y: 600,
	})
	if !ok {
		t.Fatal("the live remainder must still be ordered")
	}
	if live.State != core.StateMoving {
		t.Fatal("live unit missed the order")
	}
}

func TestApply_AttackRequiresLiveTarget(t *testing.T) {
	w := testWorld()
	a := add(w, core.KindMarine, 1, 100, 100)
	victim := add(w, core.KindMarine, 3, 500, 100)
	if !Apply(w, Command{Type: CmdAttack, PlayerID: 1, Units: []core.EntityID{a.ID}, TargetID: victim.ID}) {
		t.Fatal("attack on a live target must apply")
	}
	if a.State != core.StateAttacking || a.TargetID != victim.ID {
		t.Fatal("attacker not locked on")
	}
	victim.TakeDamage(100000, 0)
	if Apply(w, Command{Type: CmdAttack, PlayerID: 1, Units: []core.EntityID{a.ID}, TargetID: victim.ID}) {
		t.Fatal("attack on a dead target must fail")
	}
}

func TestApply_StopClearsOrders(t *testing.T) {
	w := testWorld()
	a := add(w, core.KindMarine, 1, 100, 100)
	a.OrderAttackMove(900, 900)
	if !Apply(w, Command{Type: CmdStop, PlayerID: 1, Units: []core.EntityID{a.ID}}) {
		t.Fatal("stop must apply")
	}
	if a.State != core.StateIdle || a.TargetID != 0 {
		t.Fatal("stop must drop state and target")
	}
}

func TestApply_SetRallyOnOwnBuildingsOnly(t *testing.T) {
	w := testWorld()
	mine := add(w, core.KindBunker, 1, 500, 500)
	theirs := add(w, core.KindBunker, 3, 900, 500)
	ok := Apply(w, Command{
		Type: CmdSetRally, PlayerID: 1,
		Units: []core.EntityID{mine.ID, theirs.ID},
		X:     1200, Y: 700,
	})
	if !ok {
		t.Fatal("rally on an owned bunker must apply")
	}
	if !mine.RallySet || mine.RallyX != 1200 || mine.RallyY != 700 {
		t.Fatal("rally point not recorded")
	}
	if theirs.RallySet {
		t.Fatal("rally must not touch another player's building")
	}
}

func TestApply_PlaceBuildingBindsAllSelectedWorkers(t *testing.T) {
	w := testWorld()
	p := w.Players.GetPlayer(1)
	p.Resources = 300
	a := add(w, core.KindWorker, 1, 100, 100)
	b := add(w, core.KindWorker, 1, 130, 100)
	m := add(w, core.KindMarine, 1, 160, 100)
	ok := Apply(w, Command{
		Type: CmdPlaceBuilding, PlayerID: 1,
		Units: []core.EntityID{a.ID, b.ID, m.ID},
		Build: "bunker", GridX: 2, GridY: 2,
	})
	if !ok {
		t.Fatal("placement must apply")
	}
	if a.BuildTargetID == 0 || b.BuildTargetID != a.BuildTargetID {
		t.Fatal("every selected worker joins the same site")
	}
	if m.State == core.StateBuilding {
		t.Fatal("marines cannot build")
	}
	if p.Resources != 100 {
		t.Fatalf("resources = %d, want 100 after the bunker", p.Resources)
	}
}

func TestApply_PlaceBuildingUnknownName(t *testing.T) {
	w := testWorld()
	w.Players.GetPlayer(1).Resources = 300
	a := add(w, core.KindWorker, 1, 100, 100)
	if Apply(w, Command{
		Type: CmdPlaceBuilding, PlayerID: 1,
		Units: []core.EntityID{a.ID},
		Build: "fortress", GridX: 2, GridY: 2,
	}) {
		t.Fatal("unknown building names must be rejected")
	}
}

func TestApply_ResumeBuild(t *testing.T) {
	w := testWorld()
	w.Players.GetPlayer(1).Resources = 300
	a := add(w, core.KindWorker, 1, 100, 100)
	Apply(w, Command{
		Type: CmdPlaceBuilding, PlayerID: 1,
		Units: []core.EntityID{a.ID},
		Build: "supplyDepot", GridX: 2, GridY: 2,
	})
	site := w.Find(a.BuildTargetID)

	late := add(w, core.KindWorker, 1, 400, 100)
	if !Apply(w, Command{
		Type: CmdResumeBuild, PlayerID: 1,
		Units: []core.EntityID{late.ID}, TargetID: site.ID,
	}) {
		t.Fatal("resume on an own unfinished site must apply")
	}
	if late.BuildTargetID != site.ID {
		t.Fatal("late worker not bound to the site")
	}
}

func TestApply_PurchaseUpgradeRoutes(t *testing.T) {
	w := testWorld()
	if !Apply(w, Command{Type: CmdPurchaseUpgrade, PlayerID: 1, Upgrade: core.UpgradeRange}) {
		t.Fatal("affordable upgrade must apply")
	}
	if w.Players.GetPlayer(1).Upgrades[core.UpgradeRange] != 1 {
		t.Fatal("upgrade level not recorded")
	}
}
