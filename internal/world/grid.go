package world

// Grid stores voxels in row-major order: index z*W*H + y*W + x.
type Grid struct {
	W, H, D int
	voxels  []Voxel
}

// NewGrid allocates a grid filled with air. Non-positive dimensions are
// raised to 1.
func NewGrid(w, h, d int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if d <= 0 {
		d = 1
	}
	voxels := make([]Voxel, w*h*d)
	for i := range voxels {
		voxels[i] = NewAir()
	}
	return &Grid{W: w, H: h, D: d, voxels: voxels}
}

// Index returns the linear slice index for (x, y, z). The caller must check
// Valid first.
func (g *Grid) Index(x, y, z int) int { return z*g.W*g.H + y*g.W + x }

// Valid accepts signed coordinates so neighbour offsets can be tested
// directly.
func (g *Grid) Valid(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.W && y < g.H && z < g.D
}

// At returns a pointer into the backing storage. Out of bounds panics.
func (g *Grid) At(x, y, z int) *Voxel { return &g.voxels[g.Index(x, y, z)] }

func (g *Grid) Get(x, y, z int) Voxel { return g.voxels[g.Index(x, y, z)] }

// Voxels exposes the backing slice so passes can walk every cell directly.
func (g *Grid) Voxels() []Voxel { return g.voxels }

func (g *Grid) Len() int { return len(g.voxels) }

// Coord is the inverse of Index.
func (g *Grid) Coord(i int) (x, y, z int) {
	plane := g.W * g.H
	z = i / plane
	rem := i % plane
	return rem % g.W, rem / g.W, z
}

// Swap exchanges the full contents of two cells.
func (g *Grid) Swap(a, b int) { g.voxels[a], g.voxels[b] = g.voxels[b], g.voxels[a] }

func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, D: g.D, voxels: make([]Voxel, len(g.voxels))}
	copy(c.voxels, g.voxels)
	return c
}

// Temperatures copies every voxel temperature into dst (allocating when dst
// is too short) and returns it.
func (g *Grid) Temperatures(dst []float64) []float64 {
	if cap(dst) < len(g.voxels) {
		dst = make([]float64, len(g.voxels))
	}
	dst = dst[:len(g.voxels)]
	for i := range g.voxels {
		dst[i] = g.voxels[i].Temperature
	}
	return dst
}

// MeanTemperature and its population variance over all voxels.
func (g *Grid) MeanTemperature() (mean, variance float64) {
	n := float64(len(g.voxels))
	for i := range g.voxels {
		mean += g.voxels[i].Temperature
	}
	mean /= n
	for i := range g.voxels {
		d := g.voxels[i].Temperature - mean
		variance += d * d
	}
	return mean, variance / n
}

// Census counts voxels per material kind.
func (g *Grid) Census() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for i := range g.voxels {
		counts[g.voxels[i].Material.Kind]++
	}
	return counts
}

// Highest returns the largest z in column (x,y) holding material kind k.
func (g *Grid) Highest(x, y int, k Kind) (int, bool) {
	if !g.Valid(x, y, 0) {
		return 0, false
	}
	for z := g.D - 1; z >= 0; z-- {
		if g.voxels[g.Index(x, y, z)].Material.Kind == k {
			return z, true
		}
	}
	return 0, false
}
