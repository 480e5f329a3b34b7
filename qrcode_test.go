package qrgen

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeTextHelloWorld(t *testing.T) {
	code, err := EncodeText("HELLO WORLD", ECLevelQ)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	if code.Version() != 1 || code.Size() != 21 {
		t.Errorf("version = %d, size = %d, want 1, 21", code.Version(), code.Size())
	}
	// 74 data bits fit the 104 available at (1, Q) but not the 72 at
	// (1, H), so boosting stops at Q.
	if code.ErrorCorrectionLevel() != ECLevelQ {
		t.Errorf("level = %v, want Q", code.ErrorCorrectionLevel())
	}
	if code.Mask() < 0 || code.Mask() > 7 {
		t.Errorf("mask = %d, out of range", code.Mask())
	}
}

func TestEncodeTextNumeric(t *testing.T) {
	code, err := EncodeText("01234567", ECLevelM)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	if code.Version() != 1 {
		t.Errorf("version = %d, want 1", code.Version())
	}
	segs := MakeSegments("01234567")
	if segs[0].Mode() != ModeNumeric {
		t.Errorf("mode = %v, want NUMERIC", segs[0].Mode())
	}
}

func TestEncodeTextEmpty(t *testing.T) {
	code, err := EncodeText("", ECLevelL)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	if code.Version() != 1 || code.Size() != 21 {
		t.Errorf("version = %d, size = %d, want 1, 21", code.Version(), code.Size())
	}
	// Zero data bits fit every level, so boosting reaches H.
	if code.ErrorCorrectionLevel() != ECLevelH {
		t.Errorf("level = %v, want H", code.ErrorCorrectionLevel())
	}
}

func TestEncodeBinaryMaxCapacity(t *testing.T) {
	code, err := EncodeBinary(make([]byte, 2953), ECLevelL)
	if err != nil {
		t.Fatalf("EncodeBinary failed: %v", err)
	}
	if code.Version() != 40 {
		t.Errorf("version = %d, want 40", code.Version())
	}
	if code.ErrorCorrectionLevel() != ECLevelL {
		t.Errorf("level = %v, want L", code.ErrorCorrectionLevel())
	}
}

func TestEncodeBinaryTooLong(t *testing.T) {
	if _, err := EncodeBinary(make([]byte, 2954), ECLevelL); !errors.Is(err, ErrDataTooLong) {
		t.Errorf("error = %v, want ErrDataTooLong", err)
	}
}

func TestEncodeTextSizeInvariant(t *testing.T) {
	for _, text := range []string{"", "42", "HTTPS://EXAMPLE.COM/", "hello, world", "héllo"} {
		for _, ecl := range []ErrorCorrectionLevel{ECLevelL, ECLevelM, ECLevelQ, ECLevelH} {
			code, err := EncodeText(text, ecl)
			if err != nil {
				t.Fatalf("EncodeText(%q, %v) failed: %v", text, ecl, err)
			}
			if code.Size() != code.Version()*4+17 {
				t.Errorf("size = %d, want %d", code.Size(), code.Version()*4+17)
			}
			if code.Version() < MinVersion || code.Version() > MaxVersion {
				t.Errorf("version = %d, out of range", code.Version())
			}
			if code.Mask() < 0 || code.Mask() > 7 {
				t.Errorf("mask = %d, out of range", code.Mask())
			}
		}
	}
}

func TestFunctionPatternStructure(t *testing.T) {
	code, err := EncodeText("STRUCTURE CHECK 123", ECLevelM)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	size := code.Size()

	// Dark module.
	if !code.Module(8, size-8) {
		t.Error("dark module at (8, size-8) is light")
	}

	// Timing patterns alternate starting dark, between the finders.
	for i := 8; i < size-8; i++ {
		if code.Module(i, 6) != (i%2 == 0) {
			t.Errorf("horizontal timing module %d wrong", i)
		}
		if code.Module(6, i) != (i%2 == 0) {
			t.Errorf("vertical timing module %d wrong", i)
		}
	}

	// Finder pattern spot checks: dark iff Chebyshev distance from the
	// center is neither 2 nor 4.
	for _, center := range [][2]int{{3, 3}, {size - 4, 3}, {3, size - 4}} {
		for dy := -4; dy <= 4; dy++ {
			for dx := -4; dx <= 4; dx++ {
				x, y := center[0]+dx, center[1]+dy
				if x < 0 || x >= size || y < 0 || y >= size {
					continue
				}
				dist := abs(dx)
				if abs(dy) > dist {
					dist = abs(dy)
				}
				// Outer-ring modules on rows and columns 6 and 8 are
				// not checked.
				if dist == 4 && (x == 8 || y == 8 || x == 6 || y == 6) {
					continue
				}
				if want := dist != 2 && dist != 4; code.Module(x, y) != want {
					t.Errorf("finder at %v: module (%d,%d) = %v, want %v",
						center, x, y, code.Module(x, y), want)
				}
			}
		}
	}
}

func TestFormatBitsReadBack(t *testing.T) {
	for mask := 0; mask <= 7; mask++ {
		code, err := EncodeSegments(MakeSegments("FORMAT"), ECLevelQ,
			MinVersion, MaxVersion, mask, false)
		if err != nil {
			t.Fatalf("EncodeSegments failed: %v", err)
		}
		size := code.Size()

		data := code.ErrorCorrectionLevel().Bits()<<3 | mask
		rem := data
		for i := 0; i < 10; i++ {
			rem = (rem << 1) ^ ((rem >> 9) * 0x537)
		}
		want := (data<<10 | rem) ^ 0x5412

		// Second copy: bits 0-7 right-to-left along row 8, bits 8-14
		// top-to-bottom along column 8.
		got := 0
		for i := 0; i < 8; i++ {
			if code.Module(size-1-i, 8) {
				got |= 1 << i
			}
		}
		for i := 8; i < 15; i++ {
			if code.Module(8, size-15+i) {
				got |= 1 << i
			}
		}
		if got != want {
			t.Errorf("mask %d: format word %#x, want %#x", mask, got, want)
		}
	}
}

func TestModuleOutOfRangeIsLight(t *testing.T) {
	code, err := EncodeText("EDGE", ECLevelL)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {code.Size(), 0}, {0, code.Size()}, {-5, 99}} {
		if code.Module(p[0], p[1]) {
			t.Errorf("Module(%d, %d) = true, want false", p[0], p[1])
		}
	}
}

func TestModulesDefensiveCopy(t *testing.T) {
	code, err := EncodeText("COPY", ECLevelL)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	grid := code.Modules()
	grid[0][0] = !grid[0][0]
	if code.Module(0, 0) == grid[0][0] {
		t.Error("mutating the returned grid changed the symbol")
	}
	if diff := cmp.Diff(code.Modules(), grid); diff == "" {
		t.Error("second copy should differ from the mutated one")
	}
}

func TestNewQRCodeValidation(t *testing.T) {
	valid := make([]byte, NumDataCodewords(1, ECLevelL))
	cases := []struct {
		name    string
		version int
		ecl     ErrorCorrectionLevel
		data    []byte
		mask    int
	}{
		{"version too small", 0, ECLevelL, valid, -1},
		{"version too large", 41, ECLevelL, valid, -1},
		{"mask too small", 1, ECLevelL, valid, -2},
		{"mask too large", 1, ECLevelL, valid, 8},
		{"bad level", 1, ErrorCorrectionLevel(4), valid, -1},
		{"short data", 1, ECLevelL, valid[:18], -1},
		{"long data", 1, ECLevelH, valid, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewQRCode(tc.version, tc.ecl, tc.data, tc.mask); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNewQRCodeFromRawCodewords(t *testing.T) {
	code, err := NewQRCode(2, ECLevelM, make([]byte, NumDataCodewords(2, ECLevelM)), 3)
	if err != nil {
		t.Fatalf("NewQRCode failed: %v", err)
	}
	if code.Version() != 2 || code.Size() != 25 || code.Mask() != 3 {
		t.Errorf("got (%d, %d, %d), want (2, 25, 3)", code.Version(), code.Size(), code.Mask())
	}
}

func TestHandBuiltKanjiSegment(t *testing.T) {
	// Kanji segments have no text factory but pass through the low-level
	// API: "点茗" packed as two 13-bit values.
	bits := bitsOf([2]uint32{0xD9F, 13}, [2]uint32{0x1AAA, 13})
	seg, err := NewSegment(ModeKanji, 2, bits)
	if err != nil {
		t.Fatalf("NewSegment failed: %v", err)
	}
	code, err := EncodeSegments([]Segment{seg}, ECLevelM, MinVersion, MaxVersion, -1, true)
	if err != nil {
		t.Fatalf("EncodeSegments failed: %v", err)
	}
	if code.Version() != 1 {
		t.Errorf("version = %d, want 1", code.Version())
	}
}

func TestEncodeSegmentsValidation(t *testing.T) {
	segs := MakeSegments("X")
	cases := []struct {
		name           string
		minVer, maxVer int
		mask           int
		ecl            ErrorCorrectionLevel
	}{
		{"min version zero", 0, 40, -1, ECLevelL},
		{"max version over 40", 1, 41, -1, ECLevelL},
		{"inverted range", 10, 9, -1, ECLevelL},
		{"mask under -1", 1, 40, -2, ECLevelL},
		{"mask over 7", 1, 40, 8, ECLevelL},
		{"bad level", 1, 40, -1, ErrorCorrectionLevel(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := EncodeSegments(segs, tc.ecl, tc.minVer, tc.maxVer, tc.mask, true); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestVersionRangeRespected(t *testing.T) {
	// Forcing minVersion skips smaller symbols even when the data fits.
	code, err := EncodeSegments(MakeSegments("HI"), ECLevelL, 5, 10, -1, true)
	if err != nil {
		t.Fatalf("EncodeSegments failed: %v", err)
	}
	if code.Version() != 5 {
		t.Errorf("version = %d, want 5", code.Version())
	}
	// A capped maxVersion fails rather than growing past it.
	if _, err := EncodeSegments([]Segment{MakeBytes(make([]byte, 100))},
		ECLevelH, 1, 2, -1, false); !errors.Is(err, ErrDataTooLong) {
		t.Errorf("error = %v, want ErrDataTooLong", err)
	}
}

func TestBoostMonotonic(t *testing.T) {
	for _, text := range []string{"BOOST", "0099887766554433221100", "mixed Case bytes"} {
		for _, ecl := range []ErrorCorrectionLevel{ECLevelL, ECLevelM, ECLevelQ, ECLevelH} {
			plain, err := EncodeSegments(MakeSegments(text), ecl, MinVersion, MaxVersion, -1, false)
			if err != nil {
				t.Fatalf("EncodeSegments failed: %v", err)
			}
			boosted, err := EncodeSegments(MakeSegments(text), ecl, MinVersion, MaxVersion, -1, true)
			if err != nil {
				t.Fatalf("EncodeSegments failed: %v", err)
			}
			if boosted.ErrorCorrectionLevel().Ordinal() < ecl.Ordinal() {
				t.Errorf("%q at %v: boosted level %v is lower than requested",
					text, ecl, boosted.ErrorCorrectionLevel())
			}
			if boosted.Version() != plain.Version() {
				t.Errorf("%q at %v: boosting changed version %d -> %d",
					text, ecl, plain.Version(), boosted.Version())
			}
		}
	}
}
