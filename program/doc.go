// Package program holds the instruction memory of the simulated machine
// and the loader that fills it from program text.
//
// The loader accepts one instruction per line. Besides instructions it
// understands:
//
//	// comment               ; ignored, also allowed after an instruction
//	NAME:                    ; label for the next instruction
//	.equ NAME VALUE          ; operand substitution
//	$(expr)                  ; compile-time Starlark integer expression
package program
