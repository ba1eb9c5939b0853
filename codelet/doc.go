// Package codelet defines the contract between execute instructions and
// the compute tasks they invoke.
//
// A codelet never owns register storage. The execute dispatcher builds an
// Invocation that borrows up to three register buffers, the codelet reaches
// them only through Params.Op, and once the invocation is released every
// Op returns nil.
//
// Built-in codelets cover simple data movement and bitwise operations.
// Scripted codelets are Starlark files defining
//
//	def run(op1, op2, op3):
//	    return (op1_new, None, None)
//
// where every argument is bytes or None, and the result is None (nothing
// changes) or a list or tuple holding the new contents for each operand.
package codelet
