package systems

import (
	"testing"

	"basewar/engine/core"
)

func newCombatWorld() *core.World {
	w := core.NewWorld(20, 1)
	w.AddSystem(&CommandSystem{})
	return w
}

func spawn(w *core.World, k core.Kind, player int, x, y float64) *core.Entity {
	e := core.NewEntity(k, player, x, y)
	w.AddEntity(e)
	return e
}

// stillTarget spawns a unit with regeneration disabled, so health
// assertions stay exact across ticks. Upgrades are pre-applied to keep
// the first update from resetting the stats the test overrides.
func stillTarget(w *core.World, k core.Kind, player int, x, y float64) *core.Entity {
	e := spawn(w, k, player, x, y)
	e.ApplyUpgrades(w.Players.GetPlayer(player))
	e.Regen = 0
	return e
}

func TestCommand_MoveReachesAndIdles(t *testing.T) {
	w := newCombatWorld()
	m := spawn(w, core.KindMarine, 1, 100, 100)
	m.OrderMove(100, 109) // one 90-speed step at 0.1s covers it
	w.Tick(0.1)
	if m.State != core.StateIdle {
		t.Fatalf("state = %v, want idle on arrival", m.State)
	}
	if m.X != 100 || m.Y != 109 {
		t.Fatalf("position = (%v,%v), want the exact destination", m.X, m.Y)
	}
}

func TestCommand_AttackFiresAtCooldown(t *testing.T) {
	w := newCombatWorld()
	a := spawn(w, core.KindMarine, 1, 100, 100)
	d := stillTarget(w, core.KindMarine, 3, 200, 100) // inside range 140+12+12
	a.OrderAttack(d.ID)
	w.Tick(0.05)
	if d.Health != 171 { // first shot never waits a cooldown
		t.Fatalf("health = %v, want 171 after the opening shot", d.Health)
	}
	// Marine fires 1.2/s: the next shot waits out 833ms and lands on
	// the tick that runs at 850ms.
	for i := 0; i < 17; i++ {
		w.Tick(0.05)
	}
	if d.Health != 142 {
		t.Fatalf("health = %v, want 142 after the second shot", d.Health)
	}
}

func TestCommand_AttackerClosesWhenOutOfRange(t *testing.T) {
	w := newCombatWorld()
	a := spawn(w, core.KindMarine, 1, 100, 100)
	d := spawn(w, core.KindMarine, 3, 800, 100)
	a.OrderAttack(d.ID)
	w.Tick(0.05)
	if a.X <= 100 {
		t.Fatal("attacker should advance toward a target out of range")
	}
	if d.Health != d.MaxHealth {
		t.Fatal("no shot should land while closing")
	}
}

func TestCommand_DeadTargetDropsToIdle(t *testing.T) {
	w := newCombatWorld()
	w.AddSystem(&DeathSystem{})
	a := spawn(w, core.KindMarine, 1, 100, 100)
	d := spawn(w, core.KindMarine, 3, 200, 100)
	a.OrderAttack(d.ID)
	d.TakeDamage(100000, 0)
	w.Tick(0.05)
	if a.State != core.StateIdle || a.TargetID != 0 {
		t.Fatalf("state = %v target = %d, want idle with no target", a.State, a.TargetID)
	}
}

func TestCommand_AttackMoveAcquiresWithinExtendedRadius(t *testing.T) {
	w := newCombatWorld()
	a := spawn(w, core.KindMarine, 1, 100, 100)
	// Acquisition radius is 140*1.5 = 210
	near := spawn(w, core.KindMarine, 3, 300, 100) // 200 away
	a.OrderAttackMove(2000, 100)
	w.Tick(0.05)
	if a.TargetID != near.ID {
		t.Fatalf("target = %d, want the enemy inside the acquisition radius", a.TargetID)
	}
}

func TestCommand_AttackMovePassesDistantEnemies(t *testing.T) {
	w := newCombatWorld()
	a := spawn(w, core.KindMarine, 1, 100, 100)
	spawn(w, core.KindMarine, 3, 400, 100) // 300 away, past 210
	a.OrderAttackMove(120, 100)
	w.Tick(0.05)
	if a.TargetID != 0 {
		t.Fatal("enemies beyond the acquisition radius must be ignored")
	}
	if a.State != core.StateAttackMoving && a.State != core.StateIdle {
		t.Fatalf("state = %v", a.State)
	}
}

func TestCommand_AttackMovePrefersNearestEnemy(t *testing.T) {
	w := newCombatWorld()
	a := spawn(w, core.KindMarine, 1, 100, 100)
	spawn(w, core.KindMarine, 3, 290, 100) // 190 away
	closest := spawn(w, core.KindMarine, 4, 250, 100)
	a.OrderAttackMove(2000, 100)
	w.Tick(0.05)
	if a.TargetID != closest.ID {
		t.Fatalf("target = %d, want the nearest enemy %d", a.TargetID, closest.ID)
	}
}

func TestCommand_AttackMoveIgnoresAllies(t *testing.T) {
	w := newCombatWorld()
	a := spawn(w, core.KindMarine, 1, 100, 100)
	spawn(w, core.KindMarine, 2, 150, 100) // teammate
	a.OrderAttackMove(2000, 100)
	w.Tick(0.05)
	if a.TargetID != 0 {
		t.Fatal("teammates must never be acquired")
	}
}

func TestCommand_ReaperTwinShots(t *testing.T) {
	w := newCombatWorld()
	r := spawn(w, core.KindReaper, 1, 100, 100)
	d := stillTarget(w, core.KindMarine, 3, 180, 100)
	r.OrderAttack(d.ID)
	w.Tick(0.05)
	// 20 damage split 10+10, each reduced by 1 armor: 9+9
	if d.Health != 182 {
		t.Fatalf("health = %v, want 182 from twin shots", d.Health)
	}
}

func TestCommand_ReaperTwinShotsFloorPerShot(t *testing.T) {
	w := newCombatWorld()
	r := spawn(w, core.KindReaper, 1, 100, 100)
	d := stillTarget(w, core.KindMarine, 3, 180, 100)
	d.Armor = 15 // each 10-damage shot floors to 1
	r.OrderAttack(d.ID)
	w.Tick(0.05)
	if d.Health != d.MaxHealth-2 {
		t.Fatalf("health = %v, want two floored points of damage", d.Health)
	}
}

func TestCommand_ShieldTowerAura(t *testing.T) {
	w := newCombatWorld()
	tower := spawn(w, core.KindShieldTower, 1, 500, 500)
	inside := spawn(w, core.KindMarine, 2, 600, 500)  // teammate, 100 away
	outside := spawn(w, core.KindMarine, 2, 900, 500) // past radius 220
	enemy := spawn(w, core.KindMarine, 3, 550, 500)
	w.Tick(0.05)
	if inside.ShieldBonus != core.ShieldTowerArmor {
		t.Fatalf("shield bonus = %d, want %d inside the aura", inside.ShieldBonus, core.ShieldTowerArmor)
	}
	if outside.ShieldBonus != 0 {
		t.Fatal("aura must not reach past its radius")
	}
	if enemy.ShieldBonus != 0 {
		t.Fatal("aura must not shield enemies")
	}
	// A dying tower takes the bonus with it
	tower.TakeDamage(100000, 0)
	w.Tick(0.05)
	if inside.ShieldBonus != 0 {
		t.Fatal("shield bonus must drop when the tower dies")
	}
}

func TestCommand_UnfinishedTowerGrantsNothing(t *testing.T) {
	w := newCombatWorld()
	tower := spawn(w, core.KindShieldTower, 1, 500, 500)
	tower.UnderConstruction = true
	ally := spawn(w, core.KindMarine, 1, 550, 500)
	w.Tick(0.05)
	if ally.ShieldBonus != 0 {
		t.Fatal("construction sites grant no aura")
	}
}

func TestCommand_UpgradesAppliedOnFirstTick(t *testing.T) {
	w := newCombatWorld()
	p := w.Players.GetPlayer(1)
	p.Upgrades[core.UpgradeDamage] = 2
	m := spawn(w, core.KindMarine, 1, 100, 100)
	w.Tick(0.05)
	want := core.DefOf(core.KindMarine).Damage + 2*core.DamagePerLevel
	if m.Damage != want {
		t.Fatalf("damage = %d, want %d with levels folded in", m.Damage, want)
	}
}
