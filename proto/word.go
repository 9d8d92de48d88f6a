package proto

// MaxWordLen bounds the payload length this package will decode for a
// single word: 256 MiB, the first length that needs the 5-byte prefix
// form. The routers this client talks to never come close; the bound
// keeps a corrupt length prefix from forcing a giant allocation while
// every prefix form stays decodable at its boundaries.
const MaxWordLen = 0x10000000

// Length-prefix boundaries. A word of byte length n is prefixed with the
// shortest form whose range contains n.
const (
	prefix2Min = 0x80
	prefix3Min = 0x4000
	prefix4Min = 0x200000
	prefix5Min = 0x10000000
)

// EncodeWord returns the wire form of one word: a big-endian length
// prefix followed by the word's raw UTF-8 bytes.
func EncodeWord(word string) []byte {
	return AppendWord(nil, word)
}

// AppendWord appends the wire form of word to dst and returns dst.
// Wire lengths are uint32; a word of 4 GiB or more has no wire form and
// its length would truncate here.
func AppendWord(dst []byte, word string) []byte {
	dst = appendLength(dst, uint32(len(word)))
	return append(dst, word...)
}

func appendLength(dst []byte, n uint32) []byte {
	switch {
	case n < prefix2Min:
		return append(dst, byte(n))
	case n < prefix3Min:
		return append(dst, byte(n>>8)|0x80, byte(n))
	case n < prefix4Min:
		return append(dst, byte(n>>16)|0xC0, byte(n>>8), byte(n))
	case n < prefix5Min:
		return append(dst, byte(n>>24)|0xE0, byte(n>>16), byte(n>>8), byte(n))
	default:
		return append(dst, 0xF0, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
}

// decodeLength reads one length prefix from the start of buf. It returns
// the decoded payload length and the number of prefix bytes consumed.
// consumed == 0 with a nil error means buf does not yet hold a complete
// prefix. Prefix bytes 0xF1..0xFF select no valid form.
func decodeLength(buf []byte) (n uint32, consumed int, err error) {
	if len(buf) == 0 {
		return 0, 0, nil
	}
	b0 := buf[0]
	switch {
	case b0&0x80 == 0:
		return uint32(b0), 1, nil
	case b0&0x40 == 0:
		if len(buf) < 2 {
			return 0, 0, nil
		}
		return uint32(b0&0x7F)<<8 | uint32(buf[1]), 2, nil
	case b0&0x20 == 0:
		if len(buf) < 3 {
			return 0, 0, nil
		}
		return uint32(b0&0x3F)<<16 | uint32(buf[1])<<8 | uint32(buf[2]), 3, nil
	case b0&0x10 == 0:
		if len(buf) < 4 {
			return 0, 0, nil
		}
		return uint32(b0&0x1F)<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), 4, nil
	case b0 == 0xF0:
		if len(buf) < 5 {
			return 0, 0, nil
		}
		return uint32(buf[1])<<24 | uint32(buf[2])<<16 | uint32(buf[3])<<8 | uint32(buf[4]), 5, nil
	default:
		return 0, 0, ErrInvalidPrefix
	}
}

// DecodeWord decodes one length-prefixed word from the start of buf. It
// returns the word and the total bytes consumed (prefix plus payload).
// consumed == 0 with a nil error means buf does not yet hold a complete
// word and the caller should retry once more bytes arrive.
//
// A lone 0x00 prefix decodes to the empty word; on the wire that byte is
// the sentence terminator, so sentence-level callers must treat it as a
// boundary rather than a data word.
func DecodeWord(buf []byte) (word string, consumed int, err error) {
	n, prefixLen, err := decodeLength(buf)
	if err != nil {
		return "", 0, err
	}
	if prefixLen == 0 {
		return "", 0, nil
	}
	if n > MaxWordLen {
		return "", 0, ErrWordTooLong
	}
	total := prefixLen + int(n)
	if len(buf) < total {
		return "", 0, nil
	}
	return string(buf[prefixLen:total]), total, nil
}
