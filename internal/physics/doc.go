// Package physics relaxes the voxel grid once per tick.
//
// [Apply] runs three passes in a fixed order:
//
//   - [Diffuse]: Jacobi heat diffusion over the axis-aligned 6-neighbourhood
//   - [Cool]: relaxation of every voxel toward [Ambient]
//   - [Settle]: loose material (soil, organic) falls through air
//
// Diffusion reads every temperature from a snapshot buffer taken before the
// pass, so the result does not depend on the order cells are visited in.
//
// # Settling
//
// Settle scans z from the top of the grid downward. A voxel swapped to z-1
// is examined again on the next iteration against z-2, so a loose voxel can
// fall several levels within one tick:
//
//	z=3  :      .
//	z=2  .  ->  .
//	z=1  .      :
//	z=0  #      #   (after one Settle)
package physics
