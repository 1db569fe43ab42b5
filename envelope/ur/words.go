package ur

import "strings"

// Each byte value 0-255 maps to a four-letter word whose first and last
// letters alone are already enough to identify it: the first letter is
// drawn from a 16-letter alphabet keyed on the byte's high nibble, the last
// letter from a second 16-letter alphabet keyed on its low nibble, so the
// (first, last) pair is a bijection with the byte value. The two middle
// letters carry no information; they only make the full word pronounceable.
const (
	headAlphabet = "bcdfghjklmnprsty"
	tailAlphabet = "aeiouyblmnprstdg"
)

var (
	fullWords    [256]string
	minimalWords [256]string
	fullIndex    = make(map[string]int, 256)
	minimalIndex = make(map[string]int, 256)
)

func init() {
	for i := 0; i < 256; i++ {
		head := headAlphabet[i/16]
		tail := tailAlphabet[i%16]
		mid1 := tailAlphabet[(i/16*5+3)%16]
		mid2 := headAlphabet[(i%16*7+1)%16]

		full := string([]byte{head, mid1, mid2, tail})
		minimal := string([]byte{head, tail})

		fullWords[i] = full
		minimalWords[i] = minimal
		fullIndex[full] = i
		minimalIndex[minimal] = i
	}
}

// EncodeFull renders data as space-separated four-letter words.
func EncodeFull(data []byte) string {
	words := make([]string, len(data))
	for i, b := range data {
		words[i] = fullWords[b]
	}
	return strings.Join(words, " ")
}

// EncodeMinimal renders data as a single unseparated run of two-letter
// words, the compact form used in a `ur:` URI body.
func EncodeMinimal(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) * 2)
	for _, v := range data {
		b.WriteString(minimalWords[v])
	}
	return b.String()
}

// DecodeFull parses a space-separated run of four-letter words.
func DecodeFull(s string) ([]byte, error) {
	fields := strings.Fields(s)
	out := make([]byte, 0, len(fields))
	for _, w := range fields {
		v, ok := fullIndex[strings.ToLower(w)]
		if !ok {
			return nil, ErrUnknownWord
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// DecodeMinimal parses an unseparated run of two-letter words.
func DecodeMinimal(s string) ([]byte, error) {
	s = strings.ToLower(s)
	if len(s)%2 != 0 {
		return nil, ErrOddLength
	}
	out := make([]byte, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		v, ok := minimalIndex[s[i:i+2]]
		if !ok {
			return nil, ErrUnknownWord
		}
		out = append(out, byte(v))
	}
	return out, nil
}
