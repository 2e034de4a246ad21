// Package world provides the voxel grid the simulation runs on.
//
// A [Grid] owns width*height*depth [Voxel] values stored in row-major order
// with index z*width*height + y*width + x. Every subsystem addresses cells
// through [Grid.Index], [Grid.At] and [Grid.Valid] so the storage layout and
// the bounds check never disagree.
//
//   - [Material]: closed set of material kinds, Organic carries a density byte
//   - [Generate]: layered world (rock, soil, air with banded oceans)
//   - [GenerateRolling]: layered world with a noise-perturbed soil surface
package world
