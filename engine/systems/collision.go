package systems

import (
	"math"

	"basewar/engine/core"
	"basewar/engine/geom"
)

// Push factors: units shove freely, buildings are near-immovable so
// units flow around them.
const (
	unitPushFactor     = 0.5
	buildingPushFactor = 0.1
)

// CollisionSystem resolves pairwise overlaps once per tick and then
// clamps units to the map. Deep overlaps may take several ticks to
// separate; resolution is not iterated to convergence.
type CollisionSystem struct{}

func (s *CollisionSystem) Priority() int { return 20 }

func (s *CollisionSystem) Update(w *core.World, _ float64) {
	ents := w.Entities
	for i := 0; i < len(ents); i++ {
		a := ents[i]
		if !a.Alive() {
			continue
		}
		for j := i + 1; j < len(ents); j++ {
			b := ents[j]
			if !b.Alive() {
				continue
			}
			if a.Kind == core.KindBunker && b.Kind == core.KindBunker {
				continue
			}
			// A building site never shoves its own builder away
			if buildsOther(a, b) || buildsOther(b, a) {
				continue
			}
			resolvePair(w, a, b)
		}
	}

	for _, e := range ents {
		if !e.Alive() || e.Kind.IsBuilding() {
			continue
		}
		h := e.Half()
		e.X = geom.Clamp(e.X, h, geom.MapWidth-h)
		e.Y = geom.Clamp(e.Y, h, geom.MapHeight-h)
	}
}

func buildsOther(worker, site *core.Entity) bool {
	return site.UnderConstruction && worker.BuildTargetID == site.ID
}

func resolvePair(w *core.World, a, b *core.Entity) {
	ha, hb := a.Half(), b.Half()
	dx := b.X - a.X
	dy := b.Y - a.Y
	overlapX := ha + hb - math.Abs(dx)
	overlapY := ha + hb - math.Abs(dy)
	if overlapX <= 0 || overlapY <= 0 {
		return
	}

	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		// Exactly coincident centers: jitter both so the next pass has
		// a separation vector to work with.
		a.X += w.Rand.Float64() - 0.5
		a.Y += w.Rand.Float64() - 0.5
		b.X += w.Rand.Float64() - 0.5
		b.Y += w.Rand.Float64() - 0.5
		return
	}

	depth := math.Min(overlapX, overlapY)
	nx := dx / dist
	ny := dy / dist
	pa := pushFactor(a)
	pb := pushFactor(b)
	a.X -= nx * depth * pa
	a.Y -= ny * depth * pa
	b.X += nx * depth * pb
	b.Y += ny * depth * pb
}

func pushFactor(e *core.Entity) float64 {
	if e.Kind.IsBuilding() {
		return buildingPushFactor
	}
	return unitPushFactor
}
