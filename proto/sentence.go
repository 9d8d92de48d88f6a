package proto

// Sentence is one ordered word sequence. On the wire it is the encoded
// words followed by a single zero-length terminator word.
type Sentence []string

// EncodeSentence returns the wire form of words plus the terminator.
func EncodeSentence(words []string) []byte {
	return AppendSentence(nil, words)
}

// AppendSentence appends the wire form of words plus the terminator to
// dst and returns dst.
func AppendSentence(dst []byte, words []string) []byte {
	for _, w := range words {
		dst = AppendWord(dst, w)
	}
	return append(dst, 0x00)
}

// DecodeStream decodes every complete sentence from the start of buf.
// It returns the sentences in order and the number of bytes consumed.
// Bytes past consumed belong to a sentence whose terminator has not
// arrived yet; the caller keeps them and calls DecodeStream again when
// more data is available. Sentences containing only the terminator
// (zero words) are consumed but not returned.
func DecodeStream(buf []byte) (sentences []Sentence, consumed int, err error) {
	var current Sentence
	offset := 0
	for offset < len(buf) {
		if buf[offset] == 0x00 {
			if len(current) > 0 {
				sentences = append(sentences, current)
				current = nil
			}
			offset++
			consumed = offset
			continue
		}
		word, n, err := DecodeWord(buf[offset:])
		if err != nil {
			return sentences, consumed, err
		}
		if n == 0 {
			break
		}
		current = append(current, word)
		offset += n
	}
	return sentences, consumed, nil
}
