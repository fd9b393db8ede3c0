package systems

import (
	"math"

	"basewar/engine/core"
	"basewar/engine/geom"
)

// FogState represents visibility of a fog cell. The whole map starts
// Explored; there is no unseen state in this design.
type FogState uint8

const (
	FogExplored FogState = iota // seen, but no friendly vision right now
	FogVisible                  // covered by a vision circle this tick
)

// FogGrid is one team's visibility grid over the full map
type FogGrid struct {
	W, H  int
	Cells []FogState
}

func NewFogGrid() *FogGrid {
	return &FogGrid{
		W:     geom.FogW,
		H:     geom.FogH,
		Cells: make([]FogState, geom.FogW*geom.FogH),
	}
}

// At returns the fog state at cell (x, y). Out-of-range cells read as
// Explored.
func (f *FogGrid) At(x, y int) FogState {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return FogExplored
	}
	return f.Cells[y*f.W+x]
}

// FogSystem recomputes per-team visibility every tick from the union of
// vision circles of all live entities on the team. Visibility is never
// carried over: a cell stays Visible only while something covers it.
type FogSystem struct {
	Teams   [core.NumTeams + 1]*FogGrid // indexed by team id (1-4)
	Players *core.PlayerManager
}

func NewFogSystem(pm *core.PlayerManager) *FogSystem {
	fs := &FogSystem{Players: pm}
	for t := 1; t <= core.NumTeams; t++ {
		fs.Teams[t] = NewFogGrid()
	}
	return fs
}

func (s *FogSystem) Priority() int { return 30 }

func (s *FogSystem) Update(w *core.World, _ float64) {
	for t := 1; t <= core.NumTeams; t++ {
		grid := s.Teams[t]
		for i := range grid.Cells {
			if grid.Cells[i] == FogVisible {
				grid.Cells[i] = FogExplored
			}
		}
	}

	for _, e := range w.Entities {
		if !e.Alive() || e.Vision <= 0 {
			continue
		}
		p := s.Players.GetPlayer(e.PlayerID)
		if p == nil {
			continue
		}
		s.reveal(s.Teams[p.TeamID], e.X, e.Y, e.Vision)
	}
}

// reveal marks every cell whose center lies inside the vision circle
func (s *FogSystem) reveal(grid *FogGrid, x, y, r float64) {
	if grid == nil {
		return
	}
	minX := int(math.Floor((x - r) / geom.FogCellSize))
	maxX := int(math.Ceil((x + r) / geom.FogCellSize))
	minY := int(math.Floor((y - r) / geom.FogCellSize))
	maxY := int(math.Ceil((y + r) / geom.FogCellSize))
	for cy := minY; cy <= maxY; cy++ {
		if cy < 0 || cy >= grid.H {
			continue
		}
		for cx := minX; cx <= maxX; cx++ {
			if cx < 0 || cx >= grid.W {
				continue
			}
			ccx, ccy := geom.FogCellCenter(cx, cy)
			if geom.Dist(x, y, ccx, ccy) <= r {
				grid.Cells[cy*grid.W+cx] = FogVisible
			}
		}
	}
}

// IsVisible reports whether a world point is visible to a team
func (s *FogSystem) IsVisible(team int, x, y float64) bool {
	if team < 1 || team > core.NumTeams {
		return false
	}
	cx, cy := geom.WorldToFogCell(x, y)
	return s.Teams[team].At(cx, cy) == FogVisible
}

// IsVisibleToPlayer delegates through the player's team
func (s *FogSystem) IsVisibleToPlayer(playerID int, x, y float64) bool {
	p := s.Players.GetPlayer(playerID)
	if p == nil {
		return false
	}
	return s.IsVisible(p.TeamID, x, y)
}
