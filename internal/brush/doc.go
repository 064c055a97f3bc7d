// Package brush implements the heightfield brush engine.
//
// A brush is a rectangle of grid samples centred on a world-space point. Every
// tick the engine converts the point to grid space, clamps the rectangle to the
// grid and applies one action to the samples it covers:
//
//	raise          height += strength * elapsed
//	lower          height -= strength * elapsed
//	flatten        height  = stored sample
//	sample         returns the interpolated height under the point
//	sample_average returns the mean height of the rectangle
//	smooth         averages each sample with its 4-connected neighbours
//
// The engine borrows the heightfield through terrain.Terrain for the duration of
// a call and never keeps a reference to it. Calls against one heightfield must be
// serialised by the host; the read-modify-write cycle is not atomic.
package brush
