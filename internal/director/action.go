package director

import "fmt"

// Action is one of ChangePhysics, SpawnCatastrophe, BlessCivilization or
// NoAction.
type Action interface {
	Kind() string
	isAction()
}

type ChangePhysics struct {
	HeatDiffusionDelta float64
	CoolingDelta       float64
}

type SpawnCatastrophe struct {
	X, Y, Z   int
	Intensity float64
}

type BlessCivilization struct {
	CivID     uint32
	TechBoost float64
}

type NoAction struct{}

func (ChangePhysics) Kind() string     { return "change_physics" }
func (SpawnCatastrophe) Kind() string  { return "spawn_catastrophe" }
func (BlessCivilization) Kind() string { return "bless_civilization" }
func (NoAction) Kind() string          { return "none" }

func (ChangePhysics) isAction()     {}
func (SpawnCatastrophe) isAction()  {}
func (BlessCivilization) isAction() {}
func (NoAction) isAction()          {}

func (a ChangePhysics) String() string {
	return fmt.Sprintf("ChangePhysics(heat%+.3f, cooling%+.4f)", a.HeatDiffusionDelta, a.CoolingDelta)
}

func (a SpawnCatastrophe) String() string {
	return fmt.Sprintf("SpawnCatastrophe(%d,%d,%d intensity %.1f)", a.X, a.Y, a.Z, a.Intensity)
}

func (a BlessCivilization) String() string {
	return fmt.Sprintf("BlessCivilization(#%d tech%+.2f)", a.CivID, a.TechBoost)
}

func (NoAction) String() string { return "None" }

// Describe renders any action, treating nil as NoAction.
func Describe(a Action) string {
	if a == nil {
		return NoAction{}.String()
	}
	if s, ok := a.(fmt.Stringer); ok {
		return s.String()
	}
	return a.Kind()
}
