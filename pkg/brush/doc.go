// Package brush defines the canonical convex-brush data model for adze.
// A brush is an ordered list of bounding half-space planes (faces); the
// volume is the intersection of the half-spaces. Everything else, from
// vertices and polygons to edges and meshes, is derived from the plane
// set and never stored.
package brush
