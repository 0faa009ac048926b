// Package sim provides the stepping engine that drives stateful models
// through time: dynamics, integrators, excitation sources, metrics, and
// observers, plus the simulator loop that ties them together.
package sim
