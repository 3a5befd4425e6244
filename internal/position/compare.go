package position

import "bytes"

// Compare orders records by piece count, then by their encoded bytes. The
// order exists for index structures and carries no chess meaning.
func Compare(a, b *Position) int {
	switch {
	case a.count < b.count:
		return -1
	case a.count > b.count:
		return 1
	}
	return bytes.Compare(a.Bytes(), b.Bytes())
}

// CompareBytes orders encoded records the same way Compare orders decoded
// ones, without decoding them.
func CompareBytes(a, b []byte) int {
	if len(a) > 0 && len(b) > 0 {
		switch {
		case a[offCount] < b[offCount]:
			return -1
		case a[offCount] > b[offCount]:
			return 1
		}
	}
	return bytes.Compare(a, b)
}

// Equal reports whether a and b describe the same position. The source
// text is ignored.
func Equal(a, b *Position) bool {
	return Compare(a, b) == 0
}

// Hash returns the hash of the canonical FEN of p, so records that encode
// to the same text hash alike.
func (p *Position) Hash() (uint32, error) {
	fen, err := p.FEN()
	if err != nil {
		return 0, err
	}
	return HashString(fen), nil
}

// HashString folds s with the multiplicative string hash
// h = c + (h << 6) + (h << 16) - h.
func HashString(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = uint32(s[i]) + (h << 6) + (h << 16) - h
	}
	return h
}
