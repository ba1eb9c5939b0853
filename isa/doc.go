// Package isa recognizes the textual instruction set of the simulated
// machine.
//
// A single line of program text is classified into one of five
// mutually exclusive instruction kinds, tried in a fixed priority:
// commit, control, arithmetic, execute, memory. Control, arithmetic and
// memory instructions are described by static tables; execute
// instructions name a codelet and use a call-like syntax:
//
//	COMMIT
//	BGT R1.W, R2.W, 4
//	ADD R3.W, R1.W, 10
//	MYKERNEL(R1.W, R2.D)
//	LDADR R1.W, 0x100
//
// Label lines (NAME:) and comment lines (// ...) are not instructions;
// IsLabel, GetLabel and IsComment let a program loader recognize them.
package isa
