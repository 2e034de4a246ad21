// Package dynamo holds the simulation snapshot and the fixed per-tick
// ordering that advances it.
//
// A [State] owns one grid, the physics rules, the species list, the
// population and civilization lists and the director's mood. [Tick] never
// mutates its input: it clones the snapshot and runs, in order,
//
//	physics.Apply -> biology.Step -> civ.Spawn -> civ.Step -> director.Step
//
// on the copy. Snapshots handed out by [Tick] are therefore safe to keep in
// a history.
//
// # Example
//
//	st, err := dynamo.NewState(dynamo.Setup{Grid: g, Species: sp, Populations: pops})
//	next := dynamo.Tick(st, rng)
package dynamo
