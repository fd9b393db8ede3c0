package geom

import (
	"math"
	"testing"
)

func TestCellOrigin_FirstTile(t *testing.T) {
	x, y := CellOrigin(0, 0)
	if x != TileMargin || y != TileMargin {
		t.Fatalf("cell (0,0) origin = (%v,%v), want (%v,%v)", x, y, TileMargin, TileMargin)
	}
}

func TestCellOrigin_SecondTile(t *testing.T) {
	// First cell of the second tile column starts past one full tile
	x, _ := CellOrigin(CellsPerTile, 0)
	want := TileSize + TileMargin
	if x != want {
		t.Fatalf("cell (%d,0) origin x = %v, want %v", CellsPerTile, x, want)
	}
}

func TestWorldToCell_RoundTrips(t *testing.T) {
	for _, gx := range []int{0, 3, 7, 8, 15, GridW - 1} {
		for _, gy := range []int{0, 5, GridH - 1} {
			cx, cy := CellCenter(gx, gy)
			rx, ry := WorldToCell(cx, cy)
			if rx != gx || ry != gy {
				t.Errorf("cell (%d,%d) center (%v,%v) mapped back to (%d,%d)", gx, gy, cx, cy, rx, ry)
			}
		}
	}
}

func TestWorldToCell_MarginSnapsInward(t *testing.T) {
	// A point in the tile margin, left of the inner grid, snaps to the
	// tile's first cell column instead of bleeding into the neighbor.
	gx, _ := WorldToCell(TileSize+1, TileMargin+1)
	if gx != CellsPerTile {
		t.Fatalf("margin point snapped to cell %d, want %d", gx, CellsPerTile)
	}
}

func TestFootprintFitsTile_InsideOneTile(t *testing.T) {
	if !FootprintFitsTile(2, 2, 3, 3) {
		t.Fatal("3x3 footprint at (2,2) should fit inside the first tile")
	}
	if !FootprintFitsTile(5, 5, 3, 3) {
		t.Fatal("3x3 footprint at (5,5) touches the tile edge but still fits")
	}
}

func TestFootprintFitsTile_StraddlingTwoTiles(t *testing.T) {
	// Anchored at column 6 of an 8-cell tile, a 3-wide footprint would
	// cross into the next tile. Always rejected.
	if FootprintFitsTile(6, 2, 3, 3) {
		t.Fatal("3x3 footprint straddling two tiles must be rejected")
	}
	if FootprintFitsTile(2, 6, 3, 3) {
		t.Fatal("3x3 footprint straddling two tile rows must be rejected")
	}
}

func TestFootprintFitsTile_OffMap(t *testing.T) {
	if FootprintFitsTile(-1, 0, 2, 2) {
		t.Fatal("negative anchor must be rejected")
	}
	if FootprintFitsTile(GridW-1, 0, 2, 2) {
		t.Fatal("footprint past the right map edge must be rejected")
	}
}

func TestFogCellCenter(t *testing.T) {
	x, y := FogCellCenter(0, 0)
	if x != FogCellSize/2 || y != FogCellSize/2 {
		t.Fatalf("fog cell (0,0) center = (%v,%v)", x, y)
	}
	fx, fy := WorldToFogCell(x, y)
	if fx != 0 || fy != 0 {
		t.Fatalf("fog cell center mapped back to (%d,%d)", fx, fy)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 {
		t.Fatal("clamp below")
	}
	if Clamp(15, 0, 10) != 10 {
		t.Fatal("clamp above")
	}
	if Clamp(5, 0, 10) != 5 {
		t.Fatal("clamp inside")
	}
}

func TestDist(t *testing.T) {
	if d := Dist(0, 0, 3, 4); math.Abs(d-5) > 1e-9 {
		t.Fatalf("dist = %v, want 5", d)
	}
}
