// Package memory is the memory-interface resource of the simulated
// machine: a byte addressed store reached only through the memory
// instructions LDADR, LDOFF, STADR and STOFF.
package memory
