// Package director implements the autonomous agent that watches the world
// and perturbs it once per tick.
//
// Each invocation of [Step]:
//
//  1. builds a [Summary] of aggregate statistics,
//  2. updates the emotional [State] from it ([State.Feel]),
//  3. picks one [Action] from a first-match decision list ([Choose]),
//  4. applies it to the world ([Apply]).
//
// The state has no discrete modes; all four emotions accumulate and are
// clamped to [0,1]. Actions that name a civilization by id are no-ops when
// the id is gone.
package director
