package world

import (
	"math"
	"math/rand/v2"

	"github.com/ojrac/opensimplex-go"
)

const noiseScale = 0.08

// Generate builds the layered world: the bottom 30% of depth is rock, the
// next 40% soil and the top 30% air, except for water in the ocean bands.
func Generate(w, h, d int, rng *rand.Rand) *Grid {
	soilTop := d * 7 / 10
	return generate(w, h, d, rng, func(x, y int) int { return soilTop })
}

// GenerateRolling is Generate with a per-column soil surface offset by
// opensimplex noise. roughness scales the offset in tenths of depth.
func GenerateRolling(w, h, d int, seed int64, roughness float64, rng *rand.Rand) *Grid {
	noise := opensimplex.New(seed)
	rockTop := d * 3 / 10
	soilTop := d * 7 / 10
	amp := roughness * float64(d) / 10
	return generate(w, h, d, rng, func(x, y int) int {
		n := noise.Eval2(float64(x)*noiseScale, float64(y)*noiseScale)
		top := soilTop + int(math.Round(n*amp))
		if top <= rockTop {
			top = rockTop + 1
		}
		if top > d {
			top = d
		}
		return top
	})
}

func generate(w, h, d int, rng *rand.Rand, surface func(x, y int) int) *Grid {
	g := NewGrid(w, h, d)
	w, h, d = g.W, g.H, g.D
	rockTop := d * 3 / 10
	oceanTop := d * 75 / 100

	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := g.At(x, y, z)
				switch {
				case z < rockTop:
					*v = NewRock()
				case z < surface(x, y):
					*v = NewSoil()
					v.Temperature = 15.0 + rng.Float64()*10.0
				case isOcean(x, z, w, oceanTop):
					*v = NewWater()
				default:
					*v = NewAir()
					v.Temperature = 18.0 + rng.Float64()*8.0
				}
			}
		}
	}
	return g
}

func isOcean(x, z, w, oceanTop int) bool {
	return (x < w/4 || x > w*3/4) && z < oceanTop
}
