// Package mjcf reads and writes MuJoCo XML scene descriptions (MJCF).
//
// The document is modeled as a typed element tree: one struct per MJCF
// element, numeric vector attributes as space-separated floats, and
// cross-references (tendon sites, actuator targets, sensor sites) kept
// as plain strings. Resolution and invariant checking live in the scene
// package; mjcf is a lossless codec over the subset of the format the
// models in this repository use.
package mjcf
