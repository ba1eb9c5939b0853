// Package register implements the variable-width register bank.
//
// Every register belongs to a size class, named by a single letter, that
// fixes its width in bytes. Registers are written in program text as
// R<index>.<class>, for example R3.W is word register 3. Register
// contents are stored big-endian: byte 0 is the most significant.
package register
