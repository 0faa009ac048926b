// Package scene compiles MJCF documents into an immutable model: a
// rooted body tree with per-class name tables and every cross-reference
// (tendon sites, fixed-tendon joints, actuator targets, sensor sites,
// geom materials) resolved to a pointer or rejected.
package scene
