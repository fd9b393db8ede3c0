package systems

import "basewar/engine/core"

// DeathSystem purges entities that died this tick, after fog has been
// recomputed: kill credit, supply bookkeeping, selection pruning and
// dangling-reference cleanup all happen here.
type DeathSystem struct{}

func (s *DeathSystem) Priority() int { return 40 }

func (s *DeathSystem) Update(w *core.World, _ float64) {
	w.RemoveDead()
}

// RegisterAll wires the standard system stack in tick order: state
// machines, spawning, construction, collision, fog, death cleanup.
func RegisterAll(w *core.World, fog *FogSystem) {
	w.AddSystem(&CommandSystem{})
	w.AddSystem(&SpawnSystem{})
	w.AddSystem(&ConstructionSystem{})
	w.AddSystem(&CollisionSystem{})
	w.AddSystem(fog)
	w.AddSystem(&DeathSystem{})
}
