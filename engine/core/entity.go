package core

import (
	"math"
	"sync/atomic"

	"basewar/engine/geom"
)

// EntityID is a unique identifier for game entities
type EntityID uint64

var entityCounter uint64

// NewEntityID generates a unique entity ID
func NewEntityID() EntityID {
	return EntityID(atomic.AddUint64(&entityCounter, 1))
}

// Kind selects the behavior table for an entity
type Kind uint8

const (
	KindWorker Kind = iota
	KindMarine
	KindReaper
	KindMarauder
	KindGhost
	KindBunker
	KindSupplyDepot
	KindShieldTower
	KindSensorTower
	KindCount
)

// IsBuilding reports whether this kind is a structure
func (k Kind) IsBuilding() bool {
	return k >= KindBunker
}

// IsUnit reports whether this kind is a mobile unit
func (k Kind) IsUnit() bool {
	return k < KindBunker
}

// CmdState is the per-unit command state
type CmdState uint8

const (
	StateIdle CmdState = iota
	StateMoving
	StateAttacking
	StateAttackMoving
	StateBuilding
)

// Entity is the common record for every simulated thing: workers, combat
// units and buildings. Kind selects the static Def that drives behavior.
type Entity struct {
	ID       EntityID
	Kind     Kind
	PlayerID int

	X, Y   float64
	Facing float64

	Health    float64
	MaxHealth float64
	Armor     int
	// ShieldBonus is transient armor granted by shield towers. It is
	// zeroed and recomputed every tick, never persisted.
	ShieldBonus int
	Damage      int
	AttackSpeed float64 // attacks per second
	AttackRange float64
	Vision      float64
	Regen       float64 // hp per second
	Speed       float64 // world units per second

	State CmdState
	// MoveX,MoveY is the move destination while moving, or the
	// attack-move anchor while attack-moving.
	MoveX, MoveY float64
	// TargetID is the current combat target. Targets are held by ID and
	// resolved against the live set every tick, never by pointer.
	TargetID     EntityID
	LastAttackMS float64
	// LastHitBy is the most recent attacker, used for kill credit.
	LastHitBy EntityID
	Dead      bool

	// Buildings
	UnderConstruction bool
	Progress          float64 // construction progress in [0, 1]
	GridX, GridY      int     // footprint anchor in placement grid cells
	RallyX, RallyY    float64
	RallySet          bool
	LastSpawnMS       float64

	// Workers
	BuildTargetID EntityID

	upgraded bool // owner upgrade levels folded into stats
}

// NewEntity creates an entity of the given kind at a world position with
// its base stats from the def table.
func NewEntity(kind Kind, playerID int, x, y float64) *Entity {
	d := DefOf(kind)
	return &Entity{
		ID:          NewEntityID(),
		Kind:        kind,
		PlayerID:    playerID,
		X:           x,
		Y:           y,
		Health:      d.MaxHealth,
		MaxHealth:   d.MaxHealth,
		Armor:       d.Armor,
		Damage:      d.Damage,
		AttackSpeed: d.AttackSpeed,
		AttackRange: d.AttackRange,
		Vision:      d.Vision,
		Regen:       d.Regen,
		Speed:       d.Speed,
		// Never fired; the first shot must not wait out a cooldown
		LastAttackMS: -1e9,
	}
}

// Def returns the static definition for this entity's kind
func (e *Entity) Def() *Def {
	return DefOf(e.Kind)
}

// Half returns the bounding half-extent in world units
func (e *Entity) Half() float64 {
	return e.Def().HalfSize
}

// Alive reports whether the entity participates in the simulation
func (e *Entity) Alive() bool {
	return !e.Dead && e.Health > 0
}

// TakeDamage applies damage with the armor floor: at least 1 point of
// damage always lands, no matter how much armor and shield the target
// stacks. Returns the damage actually dealt.
func (e *Entity) TakeDamage(amount int, attacker EntityID) float64 {
	dmg := float64(amount - (e.Armor + e.ShieldBonus))
	if dmg < 1 {
		dmg = 1
	}
	e.Health -= dmg
	e.LastHitBy = attacker
	if e.Health <= 0 {
		e.Health = 0
		e.Dead = true
	}
	return dmg
}

// Regenerate applies health regeneration for one tick. Buildings under
// construction do not regenerate.
func (e *Entity) Regenerate(dt float64) {
	if !e.Alive() || e.UnderConstruction || e.Regen <= 0 {
		return
	}
	e.Health += e.Regen * dt
	if e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
}

// IsUnderPoint is the hit test used for click selection
func (e *Entity) IsUnderPoint(x, y float64) bool {
	h := e.Half()
	return math.Abs(x-e.X) <= h && math.Abs(y-e.Y) <= h
}

// DistanceTo returns center-to-center distance to another entity
func (e *Entity) DistanceTo(o *Entity) float64 {
	return geom.Dist(e.X, e.Y, o.X, o.Y)
}

// InAttackRange reports whether a target is close enough to fire on:
// attack range extended by both bounding half-extents.
func (e *Entity) InAttackRange(t *Entity) bool {
	return e.DistanceTo(t) <= e.AttackRange+e.Half()+t.Half()
}

// OrderMove issues a move command: the current target is dropped and the
// facing recomputed immediately so zero-length moves keep a direction.
func (e *Entity) OrderMove(x, y float64) {
	e.TargetID = 0
	e.State = StateMoving
	e.MoveX = x
	e.MoveY = y
	if dx, dy := x-e.X, y-e.Y; dx != 0 || dy != 0 {
		e.Facing = math.Atan2(dy, dx)
	}
}

// OrderAttackMove issues an attack-move toward an anchor point
func (e *Entity) OrderAttackMove(x, y float64) {
	e.TargetID = 0
	e.State = StateAttackMoving
	e.MoveX = x
	e.MoveY = y
}

// OrderAttack issues a direct attack on a target entity
func (e *Entity) OrderAttack(target EntityID) {
	e.State = StateAttacking
	e.TargetID = target
}

// StepToward advances the entity toward a point at its movement speed,
// clamped to not overshoot. Returns true when the point is reached.
func (e *Entity) StepToward(x, y float64, dt float64) bool {
	dx := x - e.X
	dy := y - e.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	step := e.Speed * dt
	if dist <= step {
		e.X = x
		e.Y = y
		return true
	}
	e.X += dx / dist * step
	e.Y += dy / dist * step
	e.Facing = math.Atan2(dy, dx)
	return false
}

// ApplyUpgrades folds a player's upgrade levels into the entity's base
// stats. Called when an upgrade is purchased and on an entity's first
// update tick, so later spawns pick levels up too.
func (e *Entity) ApplyUpgrades(p *Player) {
	e.upgraded = true
	if e.Kind.IsBuilding() {
		return
	}
	d := e.Def()
	e.Armor = d.Armor + p.Upgrades[UpgradeArmor]
	e.Damage = d.Damage + p.Upgrades[UpgradeDamage]*DamagePerLevel
	e.AttackRange = d.AttackRange + float64(p.Upgrades[UpgradeRange])*RangePerLevel
	e.Regen = d.Regen + float64(p.Upgrades[UpgradeRegen])*RegenPerLevel
	e.Speed = d.Speed + float64(p.Upgrades[UpgradeSpeed])*SpeedPerLevel
}

// UpgradesApplied reports whether upgrade levels have been folded in
func (e *Entity) UpgradesApplied() bool {
	return e.upgraded
}
