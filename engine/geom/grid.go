package geom

import "math"

// Map dimensions in world units. The battlefield is divided into large
// tiles; each tile carries a centered inner placement grid for buildings,
// and the whole map is covered by a coarser fog grid.
const (
	MapWidth  = 3000.0
	MapHeight = 1800.0

	TileSize = 300.0
	TilesX   = int(MapWidth / TileSize)
	TilesY   = int(MapHeight / TileSize)

	// Placement grid: an 8x8 cell area centered inside each tile.
	// A building footprint may never span two tiles.
	CellSize     = 30.0
	CellsPerTile = 8
	TileMargin   = (TileSize - CellSize*CellsPerTile) / 2

	GridW = TilesX * CellsPerTile
	GridH = TilesY * CellsPerTile

	FogCellSize = 60.0
	FogW        = int(MapWidth / FogCellSize)
	FogH        = int(MapHeight / FogCellSize)
)

// Dist returns the euclidean distance between two world points.
func Dist(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InMap reports whether a world point lies inside the map.
func InMap(x, y float64) bool {
	return x >= 0 && y >= 0 && x < MapWidth && y < MapHeight
}

// WorldToTile converts a world position to tile coordinates.
func WorldToTile(x, y float64) (int, int) {
	return int(math.Floor(x / TileSize)), int(math.Floor(y / TileSize))
}

// CellOrigin returns the world position of a placement cell's top-left
// corner. Cells use global grid coordinates: cell (gx, gy) lives in tile
// (gx/CellsPerTile, gy/CellsPerTile), offset by the tile margin.
func CellOrigin(gx, gy int) (float64, float64) {
	tx := gx / CellsPerTile
	ty := gy / CellsPerTile
	cx := gx % CellsPerTile
	cy := gy % CellsPerTile
	wx := float64(tx)*TileSize + TileMargin + float64(cx)*CellSize
	wy := float64(ty)*TileSize + TileMargin + float64(cy)*CellSize
	return wx, wy
}

// CellCenter returns the world position of a placement cell's center.
func CellCenter(gx, gy int) (float64, float64) {
	x, y := CellOrigin(gx, gy)
	return x + CellSize/2, y + CellSize/2
}

// WorldToCell converts a world position to global placement grid
// coordinates. Points in a tile's margin snap to the nearest inner cell.
func WorldToCell(x, y float64) (int, int) {
	tx, ty := WorldToTile(x, y)
	cx := int(math.Floor((x - float64(tx)*TileSize - TileMargin) / CellSize))
	cy := int(math.Floor((y - float64(ty)*TileSize - TileMargin) / CellSize))
	if cx < 0 {
		cx = 0
	}
	if cx >= CellsPerTile {
		cx = CellsPerTile - 1
	}
	if cy < 0 {
		cy = 0
	}
	if cy >= CellsPerTile {
		cy = CellsPerTile - 1
	}
	return tx*CellsPerTile + cx, ty*CellsPerTile + cy
}

// FootprintFitsTile reports whether a w x h cell footprint anchored at
// (gx, gy) stays inside a single tile's inner grid and inside the map.
func FootprintFitsTile(gx, gy, w, h int) bool {
	if gx < 0 || gy < 0 || gx+w > GridW || gy+h > GridH {
		return false
	}
	if gx%CellsPerTile+w > CellsPerTile {
		return false
	}
	if gy%CellsPerTile+h > CellsPerTile {
		return false
	}
	return true
}

// FootprintCenter returns the world-space center of a w x h cell
// footprint anchored at (gx, gy).
func FootprintCenter(gx, gy, w, h int) (float64, float64) {
	x, y := CellOrigin(gx, gy)
	return x + float64(w)*CellSize/2, y + float64(h)*CellSize/2
}

// FogCellCenter returns the world-space center of a fog grid cell.
func FogCellCenter(fx, fy int) (float64, float64) {
	return float64(fx)*FogCellSize + FogCellSize/2, float64(fy)*FogCellSize + FogCellSize/2
}

// WorldToFogCell converts a world position to fog grid coordinates.
func WorldToFogCell(x, y float64) (int, int) {
	return int(math.Floor(x / FogCellSize)), int(math.Floor(y / FogCellSize))
}
