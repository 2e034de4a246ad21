package world

import "fmt"

// Kind enumerates the material kinds a voxel can hold.
type Kind uint8

const (
	Air Kind = iota
	Rock
	Soil
	Water
	Lava
	Ice
	Organic
)

// Kinds lists every material kind in declaration order.
var Kinds = []Kind{Air, Rock, Soil, Water, Lava, Ice, Organic}

func (k Kind) String() string {
	switch k {
	case Air:
		return "Air"
	case Rock:
		return "Rock"
	case Soil:
		return "Soil"
	case Water:
		return "Water"
	case Lava:
		return "Lava"
	case Ice:
		return "Ice"
	case Organic:
		return "Organic"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Material is a tagged variant: Density is only meaningful for Organic and
// is zero for every other kind.
type Material struct {
	Kind    Kind
	Density uint8
}

func Of(k Kind) Material { return Material{Kind: k} }

func OrganicMaterial(density uint8) Material {
	return Material{Kind: Organic, Density: density}
}

// Habitable reports whether populations can grow on the material.
func (m Material) Habitable() bool {
	switch m.Kind {
	case Soil, Water, Organic:
		return true
	case Air, Rock, Lava, Ice:
		return false
	default:
		return false
	}
}

// Loose reports whether the material falls under gravity.
func (m Material) Loose() bool {
	switch m.Kind {
	case Soil, Organic:
		return true
	case Air, Rock, Water, Lava, Ice:
		return false
	default:
		return false
	}
}

func (m Material) String() string {
	if m.Kind == Organic {
		return fmt.Sprintf("Organic(%d)", m.Density)
	}
	return m.Kind.String()
}

type Voxel struct {
	Material    Material
	Temperature float64 // °C
	Density     float64
}

func NewAir() Voxel   { return Voxel{Material: Of(Air), Temperature: 20.0, Density: 0.0} }
func NewRock() Voxel  { return Voxel{Material: Of(Rock), Temperature: 15.0, Density: 2.5} }
func NewSoil() Voxel  { return Voxel{Material: Of(Soil), Temperature: 18.0, Density: 1.2} }
func NewWater() Voxel { return Voxel{Material: Of(Water), Temperature: 10.0, Density: 1.0} }
