package codelet

// builtin is a codelet over same-width operand buffers.
type builtin struct {
	name     string
	operands int
	fn       func(op [3][]byte)
}

var builtins = []*builtin{
	{"COPY", 2, func(op [3][]byte) { copy(op[0], op[1]) }},
	{"ZERO", 1, func(op [3][]byte) { clear(op[0]) }},
	{"SWAP", 2, func(op [3][]byte) {
		for n := range op[0] {
			op[0][n], op[1][n] = op[1][n], op[0][n]
		}
	}},
	{"XOR", 3, func(op [3][]byte) {
		for n := range op[0] {
			op[0][n] = op[1][n] ^ op[2][n]
		}
	}},
	{"AND", 3, func(op [3][]byte) {
		for n := range op[0] {
			op[0][n] = op[1][n] & op[2][n]
		}
	}},
	{"OR", 3, func(op [3][]byte) {
		for n := range op[0] {
			op[0][n] = op[1][n] | op[2][n]
		}
	}},
	{"NOT", 2, func(op [3][]byte) {
		for n := range op[0] {
			op[0][n] = ^op[1][n]
		}
	}},
	{"INC", 1, func(op [3][]byte) {
		// Big-endian increment, wrapping on overflow.
		for n := len(op[0]) - 1; n >= 0; n-- {
			op[0][n]++
			if op[0][n] != 0 {
				break
			}
		}
	}},
	{"REV", 2, func(op [3][]byte) {
		tmp := make([]byte, len(op[1]))
		for n, b := range op[1] {
			tmp[len(tmp)-1-n] = b
		}
		copy(op[0], tmp)
	}},
}

func (b *builtin) factory() Factory {
	return func() Codelet { return b }
}

func (b *builtin) Name() string {
	return b.name
}

// Run checks that exactly the expected operands are present and share
// one width.
func (b *builtin) Run(p *Params) (err error) {
	if p.Released() {
		return ErrCodeletReleased
	}

	var op [3][]byte
	for n := range op {
		op[n] = p.Op(n)
		if (n < b.operands) != (op[n] != nil) {
			return ErrCodeletOperand
		}
		if n > 0 && op[n] != nil && len(op[n]) != len(op[0]) {
			return ErrCodeletOperand
		}
	}

	b.fn(op)
	return
}
