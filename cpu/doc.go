// Package cpu implements the scheduling units of the simulated machine.
//
// A scheduling unit owns a program counter into the shared instruction
// memory. Every cycle it fetches one line, classifies it, and dispatches
// it to the commit, control, arithmetic, execute or memory handler, then
// advances the program counter by one. Branch handlers therefore store
// their target minus one.
//
// Units share the register file, the single executor slot, the single
// memory slot and the liveness flag. A COMMIT or any fatal error clears
// the liveness flag, which stops every unit at the top of its next cycle.
package cpu
