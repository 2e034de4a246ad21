// Package biology grows, shrinks and migrates species populations bound to
// grid cells.
//
// Populations reference their [Species] by id. A record whose species is
// missing or whose cell lies outside the grid is dropped silently.
package biology
