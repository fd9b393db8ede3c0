package core

import "fmt"

// Player starting economy
const (
	NumPlayers     = 8
	NumTeams       = 4
	StartResources = 50
	StartSupplyCap = 45
	IncomeAmount   = 5      // resources per income interval
	IncomeMS       = 1000.0 // passive income interval
)

// Player represents one of the eight players. Two consecutive players
// share a team (1&2, 3&4, ...).
type Player struct {
	ID        int // 1-8
	TeamID    int // 1-4
	Name      string
	Color     uint32 // RGBA
	Resources int
	SupplyCap int
	Supply    int // sum of live owned units' supply cost
	Upgrades  [UpgradeCount]int
	KillScore int // cumulative kill-resource award, for the scoreboard
}

// CanAfford reports whether the player can pay a cost
func (p *Player) CanAfford(cost int) bool {
	return p.Resources >= cost
}

// TeamOf derives the team for a player id
func TeamOf(playerID int) int {
	return (playerID + 1) / 2
}

// PlayerManager manages all players in a game
type PlayerManager struct {
	Players []*Player
}

var playerColors = [NumPlayers]uint32{
	0x3C78F0FF, // blue
	0x50C8F0FF, // cyan
	0xF04040FF, // red
	0xF09632FF, // orange
	0x46C850FF, // green
	0xB4E664FF, // lime
	0xB450E6FF, // purple
	0xF064C8FF, // pink
}

// NewPlayerManager creates the fixed eight-player, four-team roster
func NewPlayerManager() *PlayerManager {
	pm := &PlayerManager{}
	for i := 1; i <= NumPlayers; i++ {
		pm.Players = append(pm.Players, &Player{
			ID:        i,
			TeamID:    TeamOf(i),
			Name:      fmt.Sprintf("Player %d", i),
			Color:     playerColors[i-1],
			Resources: StartResources,
			SupplyCap: StartSupplyCap,
		})
	}
	return pm
}

// GetPlayer returns the player with the given id, or nil
func (pm *PlayerManager) GetPlayer(id int) *Player {
	for _, p := range pm.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// SameTeam checks if two players are allied. Players are always allied
// with themselves.
func (pm *PlayerManager) SameTeam(a, b int) bool {
	pa := pm.GetPlayer(a)
	pb := pm.GetPlayer(b)
	if pa == nil || pb == nil {
		return false
	}
	return pa.TeamID == pb.TeamID
}
