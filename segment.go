package qrgen

import (
	"fmt"
	"strings"

	"github.com/ericlevine/qrgen/bitutil"
	"github.com/ericlevine/qrgen/charset"
)

// alphanumericCharset lists the characters of alphanumeric mode in code
// order: code i is the i-th character of the string.
const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// Segment is an immutable run of payload characters packed into the bit
// stream of one QR encoding mode.
type Segment struct {
	mode     Mode
	numChars int
	bits     *bitutil.BitArray
}

// NewSegment creates a segment from already-packed bit data, for callers
// driving the low-level API (for example with a hand-built kanji segment).
// The bit array is copied.
func NewSegment(mode Mode, numChars int, bits *bitutil.BitArray) (Segment, error) {
	if numChars < 0 {
		return Segment{}, fmt.Errorf("%w: negative character count", ErrInvalidArgument)
	}
	return Segment{mode: mode, numChars: numChars, bits: bits.Clone()}, nil
}

// Mode returns the segment's encoding mode.
func (s Segment) Mode() Mode { return s.mode }

// NumChars returns the semantic character count of the segment: digits for
// numeric mode, characters for alphanumeric mode, bytes for byte mode and
// zero for an ECI designator.
func (s Segment) NumChars() int { return s.numChars }

// Bits returns a copy of the segment's packed bit data.
func (s Segment) Bits() *bitutil.BitArray { return s.bits.Clone() }

// MakeBytes returns a segment representing the given binary data in byte
// mode.
func MakeBytes(data []byte) Segment {
	bits := bitutil.NewBitArray(0)
	for _, b := range data {
		bits.AppendBits(uint32(b), 8)
	}
	return Segment{mode: ModeByte, numChars: len(data), bits: bits}
}

// MakeNumeric returns a segment representing the given string of decimal
// digits in numeric mode.
func MakeNumeric(digits string) (Segment, error) {
	if !IsNumeric(digits) {
		return Segment{}, fmt.Errorf("%w: string contains non-numeric characters", ErrUnencodable)
	}
	bits := bitutil.NewBitArray(0)
	for i := 0; i < len(digits); {
		n := len(digits) - i
		if n > 3 {
			n = 3
		}
		value := 0
		for j := 0; j < n; j++ {
			value = value*10 + int(digits[i+j]-'0')
		}
		bits.AppendBits(uint32(value), n*3+1)
		i += n
	}
	return Segment{mode: ModeNumeric, numChars: len(digits), bits: bits}, nil
}

// MakeAlphanumeric returns a segment representing the given text in
// alphanumeric mode. The permitted characters are 0-9, A-Z (uppercase only),
// space, and $ % * + - . / :.
func MakeAlphanumeric(text string) (Segment, error) {
	if !IsAlphanumeric(text) {
		return Segment{}, fmt.Errorf("%w: string contains non-alphanumeric-mode characters", ErrUnencodable)
	}
	bits := bitutil.NewBitArray(0)
	i := 0
	for ; i+2 <= len(text); i += 2 {
		value := strings.IndexByte(alphanumericCharset, text[i]) * 45
		value += strings.IndexByte(alphanumericCharset, text[i+1])
		bits.AppendBits(uint32(value), 11)
	}
	if i < len(text) {
		bits.AppendBits(uint32(strings.IndexByte(alphanumericCharset, text[i])), 6)
	}
	return Segment{mode: ModeAlphanumeric, numChars: len(text), bits: bits}, nil
}

// MakeECI returns a segment designating the Extended Channel Interpretation
// with the given assignment value. The segment carries no characters.
func MakeECI(value int) (Segment, error) {
	bits := bitutil.NewBitArray(0)
	switch {
	case value < 0:
		return Segment{}, fmt.Errorf("%w: ECI assignment value %d out of range", ErrInvalidArgument, value)
	case value < 1<<7:
		bits.AppendBits(uint32(value), 8)
	case value < 1<<14:
		bits.AppendBits(0x2, 2)
		bits.AppendBits(uint32(value), 14)
	case value < 1000000:
		bits.AppendBits(0x6, 3)
		bits.AppendBits(uint32(value), 21)
	default:
		return Segment{}, fmt.Errorf("%w: ECI assignment value %d out of range", ErrInvalidArgument, value)
	}
	return Segment{mode: ModeECI, numChars: 0, bits: bits}, nil
}

// MakeSegments returns segments representing the given text, using the most
// compact mode the whole string fits in: numeric, then alphanumeric, then
// UTF-8 bytes. The empty string yields no segments.
func MakeSegments(text string) []Segment {
	switch {
	case text == "":
		return []Segment{}
	case IsNumeric(text):
		seg, _ := MakeNumeric(text)
		return []Segment{seg}
	case IsAlphanumeric(text):
		seg, _ := MakeAlphanumeric(text)
		return []Segment{seg}
	default:
		return []Segment{MakeBytes([]byte(text))}
	}
}

// MakeTextSegmentsECI returns an ECI designator segment followed by the text
// transcoded to the designated character set in byte mode.
func MakeTextSegmentsECI(text string, cs *charset.ECI) ([]Segment, error) {
	eciSeg, err := MakeECI(cs.Value)
	if err != nil {
		return nil, err
	}
	data, err := cs.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnencodable, err)
	}
	return []Segment{eciSeg, MakeBytes(data)}, nil
}

// IsNumeric reports whether the string consists only of decimal digits.
func IsNumeric(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

// IsAlphanumeric reports whether every character of the string is encodable
// in alphanumeric mode.
func IsAlphanumeric(text string) bool {
	for i := 0; i < len(text); i++ {
		if strings.IndexByte(alphanumericCharset, text[i]) == -1 {
			return false
		}
	}
	return true
}

// totalBits returns the number of bits needed to encode the segments at the
// given version, including each segment's mode indicator and character count
// field, or -1 if a segment's character count overflows its field.
func totalBits(segs []Segment, version int) int {
	result := 0
	for _, seg := range segs {
		ccBits := seg.mode.CharacterCountBits(version)
		if seg.numChars >= 1<<uint(ccBits) {
			return -1
		}
		result += 4 + ccBits + seg.bits.Size()
	}
	return result
}
