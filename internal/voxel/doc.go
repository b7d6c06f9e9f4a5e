// Package voxel implements N-dimensional point binning for atom-probe
// point clouds.
//
// Given a set of points, one feature vector per point, and an explicit
// set of bin edges per feature dimension, the package assigns every
// point to a grid cell and returns a dense grid holding, per cell, the
// member point identifiers and their full position vectors.
//
// The bucketing convention is the histogram one: interior bins are
// left-closed, right-open, except the last bin which also includes the
// final edge. Values outside all edges map to the sentinel index 0 and
// are kept, never dropped; the grid grows to accommodate whatever
// indices the input produces.
//
// No state survives a call. Each invocation builds a fresh Grid owned
// by the caller.
package voxel
