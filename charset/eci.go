// Package charset maps QR Extended Channel Interpretation (ECI) assignment
// numbers to character encodings and transcodes text into them.
package charset

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownECI indicates an ECI assignment value with no registered
// character set.
var ErrUnknownECI = errors.New("charset: unknown ECI assignment")

// ECI represents one Character Set Extended Channel Interpretation
// assignment.
type ECI struct {
	Value int
	Name  string
	enc   encoding.Encoding // nil when no conversion is needed
}

// pre-defined ECIs
var (
	Cp437      = &ECI{2, "Cp437", charmap.CodePage437}
	ISO8859_1  = &ECI{3, "ISO-8859-1", charmap.ISO8859_1}
	ISO8859_2  = &ECI{4, "ISO-8859-2", charmap.ISO8859_2}
	ISO8859_3  = &ECI{5, "ISO-8859-3", charmap.ISO8859_3}
	ISO8859_4  = &ECI{6, "ISO-8859-4", charmap.ISO8859_4}
	ISO8859_5  = &ECI{7, "ISO-8859-5", charmap.ISO8859_5}
	ISO8859_6  = &ECI{8, "ISO-8859-6", charmap.ISO8859_6}
	ISO8859_7  = &ECI{9, "ISO-8859-7", charmap.ISO8859_7}
	ISO8859_8  = &ECI{10, "ISO-8859-8", charmap.ISO8859_8}
	ISO8859_9  = &ECI{11, "ISO-8859-9", charmap.ISO8859_9}
	ISO8859_10 = &ECI{12, "ISO-8859-10", charmap.ISO8859_10}
	ISO8859_13 = &ECI{15, "ISO-8859-13", charmap.ISO8859_13}
	ISO8859_14 = &ECI{16, "ISO-8859-14", charmap.ISO8859_14}
	ISO8859_15 = &ECI{17, "ISO-8859-15", charmap.ISO8859_15}
	ISO8859_16 = &ECI{18, "ISO-8859-16", charmap.ISO8859_16}
	ShiftJIS   = &ECI{20, "Shift_JIS", japanese.ShiftJIS}
	Cp1250     = &ECI{21, "windows-1250", charmap.Windows1250}
	Cp1251     = &ECI{22, "windows-1251", charmap.Windows1251}
	Cp1252     = &ECI{23, "windows-1252", charmap.Windows1252}
	Cp1256     = &ECI{24, "windows-1256", charmap.Windows1256}
	UTF16BE    = &ECI{25, "UTF-16BE", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
	UTF8       = &ECI{26, "UTF-8", nil}
	ASCII      = &ECI{27, "US-ASCII", nil}
	Big5       = &ECI{28, "Big5", traditionalchinese.Big5}
	GB18030    = &ECI{29, "GB18030", simplifiedchinese.GB18030}
	EUCKR      = &ECI{30, "EUC-KR", korean.EUCKR}
)

var (
	valueToECI map[int]*ECI
	nameToECI  map[string]*ECI
)

func init() {
	valueToECI = make(map[int]*ECI)
	nameToECI = make(map[string]*ECI)

	all := []*ECI{
		Cp437, ISO8859_1, ISO8859_2, ISO8859_3, ISO8859_4, ISO8859_5,
		ISO8859_6, ISO8859_7, ISO8859_8, ISO8859_9, ISO8859_10,
		ISO8859_13, ISO8859_14, ISO8859_15, ISO8859_16, ShiftJIS,
		Cp1250, Cp1251, Cp1252, Cp1256, UTF16BE, UTF8, ASCII, Big5,
		GB18030, EUCKR,
	}

	// Legacy assignment values designating the same character sets.
	extraValues := map[*ECI][]int{
		Cp437:     {0, 2},
		ISO8859_1: {1, 3},
		ASCII:     {27, 170},
	}

	for _, eci := range all {
		if vals, ok := extraValues[eci]; ok {
			for _, v := range vals {
				valueToECI[v] = eci
			}
		} else {
			valueToECI[eci.Value] = eci
		}
		nameToECI[eci.Name] = eci
	}
}

// Lookup returns the ECI registered under the given assignment value.
func Lookup(value int) (*ECI, error) {
	eci, ok := valueToECI[value]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownECI, value)
	}
	return eci, nil
}

// ByName returns the ECI registered under the given character set name.
func ByName(name string) (*ECI, bool) {
	eci, ok := nameToECI[name]
	return eci, ok
}

// Encode converts UTF-8 text into this character set's byte repertoire. An
// error is returned when the text contains characters the repertoire cannot
// represent.
func (e *ECI) Encode(text string) ([]byte, error) {
	if e.enc == nil {
		if e == ASCII {
			for i := 0; i < len(text); i++ {
				if text[i] >= 0x80 {
					return nil, fmt.Errorf("charset: cannot represent text in %s", e.Name)
				}
			}
		}
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(e.enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("charset: cannot represent text in %s: %w", e.Name, err)
	}
	return out, nil
}

// String returns the character set name.
func (e *ECI) String() string {
	return e.Name
}
