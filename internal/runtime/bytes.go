package runtime

// ByteArray is the mutable byte buffer. It shares the list growth
// contract; elements are bytes so writes are range-checked by type.
type ByteArray struct {
	inner *List[byte]
}

// NewByteArray constructs an empty mutable byte buffer.
func NewByteArray() *ByteArray {
	return &ByteArray{inner: NewList[byte]()}
}

// ByteArrayOf constructs a buffer holding a copy of b.
func ByteArrayOf(b []byte) *ByteArray {
	return &ByteArray{inner: ListOf(b...)}
}

func (a *ByteArray) Len() int { return a.inner.Len() }
func (a *ByteArray) Cap() int { return a.inner.Cap() }

func (a *ByteArray) Get(index int) (byte, error) { return a.inner.Get(index) }
func (a *ByteArray) Set(index int, v byte) error { return a.inner.Set(index, v) }
func (a *ByteArray) Append(v byte)               { a.inner.Append(v) }

// Bytes returns a copy of the live contents.
func (a *ByteArray) Bytes() []byte {
	out := make([]byte, a.inner.Len())
	copy(out, a.inner.Slice())
	return out
}

// Bytes is the immutable byte string. Reads and length follow the
// buffer contract; every write faults.
type Bytes struct {
	data []byte
}

// BytesOf constructs an immutable byte string holding a copy of b.
func BytesOf(b []byte) Bytes {
	data := make([]byte, len(b))
	copy(data, b)
	return Bytes{data: data}
}

func (b Bytes) Len() int { return len(b.data) }

func (b Bytes) Get(index int) (byte, error) {
	if index < 0 || index >= len(b.data) {
		return 0, indexFault(index, len(b.data))
	}
	return b.data[index], nil
}

// Set always faults: bytes values never change after construction.
func (b Bytes) Set(int, byte) error {
	return &FaultError{Kind: FaultImmutable, Message: "bytes object does not support item assignment"}
}

// Concat produces a new immutable byte string.
func (b Bytes) Concat(other Bytes) Bytes {
	data := make([]byte, 0, len(b.data)+len(other.data))
	data = append(data, b.data...)
	data = append(data, other.data...)
	return Bytes{data: data}
}
