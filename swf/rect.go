package swf

type bitReader struct {
	data []byte
	pos  int // in bits
}

func (r *bitReader) unsigned(n int) (uint32, bool) {
	if r.pos+n > len(r.data)*8 {
		return 0, false
	}
	var v uint32
	for i := 0; i < n; i++ {
		bit := r.data[(r.pos)/8] >> (7 - uint(r.pos%8)) & 1
		v = v<<1 | uint32(bit)
		r.pos++
	}
	return v, true
}

func (r *bitReader) signed(n int) (int32, bool) {
	v, ok := r.unsigned(n)
	if !ok || n == 0 {
		return 0, ok
	}
	if v&(1<<(n-1)) != 0 {
		v |= ^uint32(0) << n
	}
	return int32(v), true
}

// readRect decodes a RECT record and returns it with the number of bytes
// it occupies.
func readRect(data []byte) (Rect, int, error) {
	r := &bitReader{data: data}
	nbits, ok := r.unsigned(5)
	if !ok {
		return Rect{}, 0, &FormatError{Reason: "truncated frame rectangle"}
	}

	var fields [4]int32
	for i := range fields {
		if fields[i], ok = r.signed(int(nbits)); !ok {
			return Rect{}, 0, &FormatError{Reason: "truncated frame rectangle"}
		}
	}
	return Rect{XMin: fields[0], XMax: fields[1], YMin: fields[2], YMax: fields[3]}, (r.pos + 7) / 8, nil
}
