package systems

import (
	"log"

	"basewar/engine/core"
)

// PurchaseUpgrade buys the next level of an upgrade track for a player.
// Cost scales with the level already owned. On success every live owned
// unit gets the new level folded into its stats at once; units spawned
// later pick it up on their first update tick.
func PurchaseUpgrade(w *core.World, playerID int, kind core.UpgradeKind) bool {
	if kind >= core.UpgradeCount {
		log.Printf("economy: unknown upgrade kind %d", kind)
		return false
	}
	p := w.Players.GetPlayer(playerID)
	if p == nil {
		return false
	}
	cost := core.UpgradeCost(p.Upgrades[kind])
	if !p.CanAfford(cost) {
		return false
	}
	p.Resources -= cost
	p.Upgrades[kind]++
	for _, e := range w.Entities {
		if e.Alive() && e.PlayerID == playerID {
			e.ApplyUpgrades(p)
		}
	}
	w.Bus.Emit(core.Event{Type: core.EvtUpgradePurchased, Tick: w.TickCount, PlayerID: playerID, Amount: cost})
	return true
}
