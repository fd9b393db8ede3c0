package core

import "basewar/engine/geom"

// Def is the static stat table for an entity kind. Entities copy these
// values on spawn; upgrades are applied on top of them.
type Def struct {
	Name        string
	MaxHealth   float64
	Armor       int
	Damage      int
	AttackSpeed float64 // attacks per second
	AttackRange float64
	Vision      float64
	Regen       float64 // hp per second
	Speed       float64 // world units per second
	HalfSize    float64
	SupplyCost  int

	// Buildings
	Cost        int
	BuildTimeMS float64
	CellsW      int // footprint in placement grid cells
	CellsH      int
	SupplyBonus int

	// KillAward is paid to the killer's player when this kind dies
	KillAward int
}

// Bunker spawn cadence and shield tower aura
const (
	SpawnIntervalMS   = 1500.0
	ShieldTowerRadius = 220.0
	ShieldTowerArmor  = 3
	// BuilderRange is how close a worker must stand to its build target
	// (edge to edge) to contribute progress.
	BuilderRange = 10.0
)

var defs = [KindCount]Def{
	KindWorker: {
		Name: "Worker", MaxHealth: 100, Armor: 0, Damage: 5,
		AttackSpeed: 1.0, AttackRange: 30, Vision: 200, Regen: 0.25,
		Speed: 80, HalfSize: 12, SupplyCost: 1, KillAward: 50,
	},
	KindMarine: {
		Name: "Marine", MaxHealth: 200, Armor: 1, Damage: 12,
		AttackSpeed: 1.2, AttackRange: 140, Vision: 260, Regen: 0.25,
		Speed: 90, HalfSize: 12, SupplyCost: 1, KillAward: 5,
	},
	KindReaper: {
		Name: "Reaper", MaxHealth: 150, Armor: 0, Damage: 20,
		AttackSpeed: 1.0, AttackRange: 110, Vision: 260, Regen: 0.5,
		Speed: 110, HalfSize: 12, SupplyCost: 1, KillAward: 5,
	},
	KindMarauder: {
		Name: "Marauder", MaxHealth: 300, Armor: 2, Damage: 30,
		AttackSpeed: 0.8, AttackRange: 150, Vision: 260, Regen: 0.25,
		Speed: 70, HalfSize: 14, SupplyCost: 2, KillAward: 5,
	},
	KindGhost: {
		Name: "Ghost", MaxHealth: 180, Armor: 0, Damage: 40,
		AttackSpeed: 0.6, AttackRange: 210, Vision: 320, Regen: 0.25,
		Speed: 85, HalfSize: 12, SupplyCost: 2, KillAward: 5,
	},
	KindBunker: {
		Name: "Bunker", MaxHealth: 800, Armor: 3, Vision: 300,
		Cost: 200, BuildTimeMS: 5000, CellsW: 3, CellsH: 3,
		HalfSize: 3 * geom.CellSize / 2, SupplyBonus: 5, KillAward: 25,
	},
	KindSupplyDepot: {
		Name: "Supply Depot", MaxHealth: 400, Armor: 1, Vision: 200,
		Cost: 150, BuildTimeMS: 5000, CellsW: 2, CellsH: 2,
		HalfSize: geom.CellSize, SupplyBonus: 5, KillAward: 15,
	},
	KindShieldTower: {
		Name: "Shield Tower", MaxHealth: 350, Armor: 1, Vision: 250,
		Cost: 100, BuildTimeMS: 4000, CellsW: 2, CellsH: 2,
		HalfSize: geom.CellSize, KillAward: 5,
	},
	KindSensorTower: {
		Name: "Sensor Tower", MaxHealth: 250, Armor: 0, Vision: 500,
		Cost: 75, BuildTimeMS: 3000, CellsW: 2, CellsH: 2,
		HalfSize: geom.CellSize, KillAward: 5,
	},
}

// DefOf returns the static definition for a kind
func DefOf(k Kind) *Def {
	return &defs[k]
}

// BuildKindByName maps UI build keys to kinds. Unknown names return
// KindCount and false.
func BuildKindByName(name string) (Kind, bool) {
	switch name {
	case "bunker":
		return KindBunker, true
	case "supplyDepot":
		return KindSupplyDepot, true
	case "shieldTower":
		return KindShieldTower, true
	case "sensorTower":
		return KindSensorTower, true
	}
	return KindCount, false
}

// UpgradeKind selects one of the five per-player upgrade tracks
type UpgradeKind uint8

const (
	UpgradeArmor UpgradeKind = iota
	UpgradeDamage
	UpgradeRange
	UpgradeRegen
	UpgradeSpeed
	UpgradeCount
)

// Per-level upgrade bonuses and pricing
const (
	UpgradeBasePrice = 25
	DamagePerLevel   = 3
	RangePerLevel    = 10.0
	RegenPerLevel    = 0.25
	SpeedPerLevel    = 8.0
)

// UpgradeCost returns the price of buying the next level: the base price
// scaled by (level+1).
func UpgradeCost(level int) int {
	return UpgradeBasePrice * (level + 1)
}

func (u UpgradeKind) String() string {
	switch u {
	case UpgradeArmor:
		return "armor"
	case UpgradeDamage:
		return "attackDamage"
	case UpgradeRange:
		return "weaponRange"
	case UpgradeRegen:
		return "healthRegen"
	case UpgradeSpeed:
		return "movementSpeed"
	}
	return "unknown"
}
