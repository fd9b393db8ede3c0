package systems

import (
	"testing"

	"basewar/engine/core"
)

func TestPurchaseUpgrade_DeductsAndLevels(t *testing.T) {
	w := core.NewWorld(20, 1)
	p := w.Players.GetPlayer(1)
	if !PurchaseUpgrade(w, 1, core.UpgradeDamage) {
		t.Fatal("first level costs 25 and start resources are 50")
	}
	if p.Resources != core.StartResources-25 {
		t.Fatalf("resources = %d, want %d", p.Resources, core.StartResources-25)
	}
	if p.Upgrades[core.UpgradeDamage] != 1 {
		t.Fatalf("level = %d, want 1", p.Upgrades[core.UpgradeDamage])
	}
}

func TestPurchaseUpgrade_CostScalesPerLevel(t *testing.T) {
	w := core.NewWorld(20, 1)
	p := w.Players.GetPlayer(1)
	p.Resources = 25 + 50 + 75
	for want := 1; want <= 3; want++ {
		if !PurchaseUpgrade(w, 1, core.UpgradeArmor) {
			t.Fatalf("purchase of level %d failed", want)
		}
	}
	if p.Resources != 0 {
		t.Fatalf("resources = %d, three levels cost exactly 25+50+75", p.Resources)
	}
	if PurchaseUpgrade(w, 1, core.UpgradeArmor) {
		t.Fatal("a fourth level at 100 must be refused on empty coffers")
	}
}

func TestPurchaseUpgrade_RefusedWhenBroke(t *testing.T) {
	w := core.NewWorld(20, 1)
	p := w.Players.GetPlayer(1)
	p.Resources = 10
	if PurchaseUpgrade(w, 1, core.UpgradeSpeed) {
		t.Fatal("purchase must fail below the price")
	}
	if p.Resources != 10 || p.Upgrades[core.UpgradeSpeed] != 0 {
		t.Fatal("a refused purchase must not change anything")
	}
}

func TestPurchaseUpgrade_AppliesToLiveUnitsAtOnce(t *testing.T) {
	w := core.NewWorld(20, 1)
	mine := core.NewEntity(core.KindMarine, 1, 100, 100)
	theirs := core.NewEntity(core.KindMarine, 3, 200, 100)
	w.AddEntity(mine)
	w.AddEntity(theirs)
	PurchaseUpgrade(w, 1, core.UpgradeDamage)
	if mine.Damage != core.DefOf(core.KindMarine).Damage+core.DamagePerLevel {
		t.Fatalf("damage = %d, the new level applies immediately", mine.Damage)
	}
	if theirs.Damage != core.DefOf(core.KindMarine).Damage {
		t.Fatal("other players' units are untouched")
	}
}

func TestPurchaseUpgrade_RejectsUnknownKind(t *testing.T) {
	w := core.NewWorld(20, 1)
	if PurchaseUpgrade(w, 1, core.UpgradeCount) {
		t.Fatal("out-of-range upgrade kinds must be refused")
	}
	if PurchaseUpgrade(w, 99, core.UpgradeArmor) {
		t.Fatal("unknown players must be refused")
	}
}
