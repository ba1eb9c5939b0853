package register

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		token  string
		handle Handle
		ok     bool
	}){
		{"R0.B", Handle{CLASS_B, 0}, true},
		{"R3.W", Handle{CLASS_W, 3}, true},
		{"R15.D", Handle{CLASS_D, 15}, true},
		{"R2.K", Handle{CLASS_K, 2}, true},
		{"R1.Z", Handle{}, false},
		{"W3", Handle{}, false},
		{"R.W", Handle{}, false},
		{"r1.w", Handle{}, false},
		{"10", Handle{}, false},
		{"", Handle{}, false},
	}

	for _, entry := range table {
		h, err := Decode(entry.token)
		if entry.ok {
			assert.NoError(err, entry.token)
			assert.Equal(entry.handle, h, entry.token)
		} else {
			assert.True(errors.Is(err, ErrRegisterInvalid), entry.token)
			assert.Equal(Handle{}, h, entry.token)
		}
	}
}

func TestIsRegister(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsRegister("R1.W"))
	assert.True(IsRegister("R100.B"))
	assert.False(IsRegister("0x100"))
	assert.False(IsRegister("100"))
	assert.False(IsRegister(" R1.W"))
	assert.False(IsRegister("R1.W,"))
}

func TestHandleRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, class := range Classes() {
		for index := range uint(20) {
			h := Handle{Class: class, Index: index}
			token := h.String()
			assert.True(IsRegister(token), token)
			decoded, err := Decode(token)
			assert.NoError(err, token)
			assert.Equal(h, decoded, token)
		}
	}
}

func TestClasses(t *testing.T) {
	assert := assert.New(t)

	classes := Classes()
	assert.Equal([]Class{CLASS_B, CLASS_H, CLASS_W, CLASS_D, CLASS_Q, CLASS_L, CLASS_K}, classes)
	assert.Equal(1, CLASS_B.Width())
	assert.Equal(4, CLASS_W.Width())
	assert.Equal(1024, CLASS_K.Width())
	assert.Equal(0, CLASS_NONE.Width())
	assert.Equal("W", CLASS_W.String())

	_, err := ParseClass("X")
	assert.ErrorIs(err, ErrClassUnknown)
	_, err = ParseClass("WW")
	assert.ErrorIs(err, ErrClassUnknown)
}

func TestFile(t *testing.T) {
	assert := assert.New(t)

	rf := NewFile(Layout{CLASS_B: 2, CLASS_W: 4})

	assert.Equal(2, rf.Count(CLASS_B))
	assert.Equal(4, rf.Count(CLASS_W))
	assert.Equal(0, rf.Count(CLASS_D))

	r1w := Handle{CLASS_W, 1}
	assert.NoError(rf.SetUint64(r1w, 0x11223344))
	data, err := rf.Bytes(r1w)
	assert.NoError(err)
	assert.Equal([]byte{0x11, 0x22, 0x33, 0x44}, data)

	// Neighbours are untouched.
	data, err = rf.Bytes(Handle{CLASS_W, 0})
	assert.NoError(err)
	assert.Equal([]byte{0, 0, 0, 0}, data)

	// Truncation to width.
	r0b := Handle{CLASS_B, 0}
	assert.NoError(rf.SetUint64(r0b, 0x1ff))
	value, err := rf.Uint64(r0b)
	assert.NoError(err)
	assert.Equal(uint64(0xff), value)

	// Live storage.
	data, _ = rf.Bytes(r1w)
	data[3] = 0x55
	value, _ = rf.Uint64(r1w)
	assert.Equal(uint64(0x11223355), value)

	_, err = rf.Bytes(Handle{CLASS_W, 4})
	assert.ErrorIs(err, ErrRegisterRange)
	_, err = rf.Bytes(Handle{CLASS_D, 0})
	assert.ErrorIs(err, ErrRegisterRange)
	_, err = rf.Bytes(Handle{})
	assert.ErrorIs(err, ErrClassUnknown)

	rf.Reset()
	value, _ = rf.Uint64(r1w)
	assert.Equal(uint64(0), value)
}

func TestFileAll(t *testing.T) {
	assert := assert.New(t)

	rf := NewFile(Layout{CLASS_W: 2, CLASS_B: 1})

	var tokens []string
	for h, data := range rf.All() {
		tokens = append(tokens, h.String())
		assert.Equal(h.Width(), len(data))
	}
	assert.Equal([]string{"R0.B", "R0.W", "R1.W"}, tokens)
}

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(DefaultLayout().Validate())
	assert.ErrorIs(Layout{Class('Z'): 1}.Validate(), ErrClassUnknown)
	assert.ErrorIs(Layout{CLASS_B: -1}.Validate(), ErrRegisterRange)
}

func TestToUint64(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint64(0), ToUint64(nil))
	assert.Equal(uint64(0x0102), ToUint64([]byte{1, 2}))
	assert.Equal(uint64(0x0203040506070809), ToUint64([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9}))
}

func TestLayoutJSON(t *testing.T) {
	assert := assert.New(t)

	data, err := json.Marshal(Layout{CLASS_W: 4, CLASS_B: 2})
	assert.NoError(err)
	assert.Equal(`{"B":2,"W":4}`, string(data))

	var layout Layout
	assert.NoError(json.Unmarshal([]byte(`{"D":3,"K":1}`), &layout))
	assert.Equal(Layout{CLASS_D: 3, CLASS_K: 1}, layout)

	assert.Error(json.Unmarshal([]byte(`{"X":3}`), &layout))
}
