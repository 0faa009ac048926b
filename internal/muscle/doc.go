// Package muscle implements the Potvin & Fuglevand (2017) motor-unit
// model: a recruitment pool that maps excitation to per-unit firing
// rates, and a fiber model that turns firing rates into twitch forces
// and fatigue.
//
// Fatigue is expressed as an ODE over the remaining twitch force of
// each unit, so the model plugs into the sim package as ordinary
// dynamics and can be integrated with Euler or RK4.
package muscle
