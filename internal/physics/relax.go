package physics

import "github.com/san-kum/godsim/internal/world"

var neighbours = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// Apply runs diffusion, cooling and, when enabled, settling.
func Apply(g *world.Grid, r Rules) {
	buf := getBuf()
	*buf = Diffuse(g, r.HeatDiffusion, *buf)
	putBuf(buf)
	Cool(g, r.Cooling)
	if r.Gravity {
		Settle(g)
	}
}

// Diffuse moves each voxel's temperature toward the mean of its in-bounds
// neighbours by rate. buf is scratch space and may be nil; the snapshot
// buffer actually used is returned for reuse.
func Diffuse(g *world.Grid, rate float64, buf []float64) []float64 {
	snap := g.Temperatures(buf)
	voxels := g.Voxels()

	for z := 0; z < g.D; z++ {
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				idx := g.Index(x, y, z)
				current := snap[idx]

				sum, count := 0.0, 0
				for _, n := range neighbours {
					nx, ny, nz := x+n[0], y+n[1], z+n[2]
					if !g.Valid(nx, ny, nz) {
						continue
					}
					sum += snap[g.Index(nx, ny, nz)]
					count++
				}
				if count == 0 {
					continue
				}

				avg := sum / float64(count)
				voxels[idx].Temperature = current + (avg-current)*rate
			}
		}
	}
	return snap
}

func Cool(g *world.Grid, rate float64) {
	voxels := g.Voxels()
	for i := range voxels {
		voxels[i].Temperature += (Ambient - voxels[i].Temperature) * rate
	}
}

// Settle swaps loose voxels with air directly below, scanning top-down.
func Settle(g *world.Grid) {
	for z := g.D - 1; z >= 1; z-- {
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				cur := g.Index(x, y, z)
				below := g.Index(x, y, z-1)
				voxels := g.Voxels()
				if voxels[cur].Material.Loose() && voxels[below].Material.Kind == world.Air {
					g.Swap(cur, below)
				}
			}
		}
	}
}
