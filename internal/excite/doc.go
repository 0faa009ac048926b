// Package excite provides excitation sources that drive a muscle over
// time: constant, step, ramp, and sine profiles.
package excite
