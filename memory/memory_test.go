package memory

import (
	"context"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/scmulate/isa"
	"github.com/ezrec/scmulate/register"
)

func newTestInterface() (mi *Interface) {
	rf := register.NewFile(register.DefaultLayout())
	mi = NewInterface(256, rf)
	return
}

func mustClassify(t *testing.T, text string) *isa.Instruction {
	t.Helper()
	inst, err := isa.Classify(text)
	if err != nil || inst.Kind != isa.KIND_MEMORY {
		t.Fatalf("%v: %v %v", text, inst, err)
	}
	return inst
}

func TestLoadDump(t *testing.T) {
	assert := assert.New(t)

	mi := newTestInterface()
	assert.Equal(uint64(256), mi.Size())

	assert.NoError(mi.Load(0x10, []byte{1, 2, 3}))
	data, err := mi.Dump(0x0f, 5)
	assert.NoError(err)
	assert.Equal([]byte{0, 1, 2, 3, 0}, data)

	data, err = mi.Dump(255, 1)
	assert.NoError(err)
	assert.Equal([]byte{0}, data)

	data, err = mi.Dump(256, 0)
	assert.NoError(err)
	assert.Equal(0, len(data))

	assert.ErrorIs(mi.Load(255, []byte{1, 2}), ErrAddressRange)
	_, err = mi.Dump(256, 1)
	assert.ErrorIs(err, ErrAddressRange)
	_, err = mi.Dump(0, 257)
	assert.ErrorIs(err, ErrAddressRange)
}

func TestExecute(t *testing.T) {
	assert := assert.New(t)

	mi := newTestInterface()
	rf := mi.Registers

	r1w := register.Handle{Class: register.CLASS_W, Index: 1}
	r2w := register.Handle{Class: register.CLASS_W, Index: 2}
	r3b := register.Handle{Class: register.CLASS_B, Index: 3}

	assert.NoError(rf.SetUint64(r1w, 0x11223344))
	assert.NoError(mi.Execute(mustClassify(t, "STADR R1.W, 0x20")))

	data, err := mi.Dump(0x20, 4)
	assert.NoError(err)
	assert.Equal([]byte{0x11, 0x22, 0x33, 0x44}, data)

	assert.NoError(mi.Execute(mustClassify(t, "LDADR R2.W, 0x20")))
	value, _ := rf.Uint64(r2w)
	assert.Equal(uint64(0x11223344), value)

	// Register base plus immediate offset.
	assert.NoError(rf.SetUint64(r3b, 0x1e))
	assert.NoError(mi.Execute(mustClassify(t, "LDOFF R2.W, R3.B, 1")))
	value, _ = rf.Uint64(r2w)
	assert.Equal(uint64(0x00112233), value)

	assert.NoError(mi.Execute(mustClassify(t, "STOFF R1.W, R3.B, R3.B")))
	data, _ = mi.Dump(0x3c, 4)
	assert.Equal([]byte{0x11, 0x22, 0x33, 0x44}, data)
}

func TestExecuteErrors(t *testing.T) {
	assert := assert.New(t)

	mi := newTestInterface()

	table := [](struct {
		inst *isa.Instruction
		err  error
	}){
		{mustClassify(t, "LDADR R1.W, 253"), ErrAddressRange},
		{mustClassify(t, "STADR R1.W, 0x1000"), ErrAddressRange},
		{mustClassify(t, "LDOFF R1.W, 0xffffffffffffffff, 2"), ErrAddressRange},
		{mustClassify(t, "LDADR R99.W, 0"), register.ErrRegisterRange},
		{&isa.Instruction{Kind: isa.KIND_MEMORY, Opcode: "LDADR", Op: [3]string{"7", "0"}}, ErrOperandRegister},
		{&isa.Instruction{Kind: isa.KIND_MEMORY, Opcode: "MOVE", Op: [3]string{"R1.W", "0"}}, ErrOpcodeUnknown},
	}

	for _, entry := range table {
		err := mi.Execute(entry.inst)
		assert.ErrorIs(err, entry.err, entry.inst.String())
	}
}

func TestSlot(t *testing.T) {
	assert := assert.New(t)

	mi := newTestInterface()
	assert.True(mi.IsSlotEmpty())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		mi.Run(context.Background())
	}()

	req := &Request{Inst: mustClassify(t, "STADR R0.B, 0x400")}
	assert.NoError(mi.Submit(req))
	for !mi.IsSlotEmpty() {
		runtime.Gosched()
	}
	assert.ErrorIs(req.Err, ErrAddressRange)

	req = &Request{Inst: mustClassify(t, "STADR R0.B, 0x40")}
	assert.NoError(mi.Submit(req))
	for !mi.IsSlotEmpty() {
		runtime.Gosched()
	}
	assert.NoError(req.Err)
	assert.Equal(uint64(2), mi.Requests())

	mi.Close()
	wg.Wait()
	assert.ErrorIs(mi.Submit(req), ErrMemoryClosed)
}
