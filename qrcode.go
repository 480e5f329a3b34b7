package qrgen

import (
	"fmt"
	"strings"

	"github.com/ericlevine/qrgen/bitutil"
	"github.com/ericlevine/qrgen/reedsolomon"
)

// QRCode represents a generated QR symbol: a square grid of dark and light
// modules with exactly one mask applied. Instances are immutable once
// constructed.
type QRCode struct {
	version int
	size    int
	ecl     ErrorCorrectionLevel
	mask    int

	// modules is indexed [y][x]; true is dark. isFunction marks modules
	// that must not be masked and is released once construction finishes.
	modules    [][]bool
	isFunction [][]bool
}

// NewQRCode builds a symbol from fully-formed data codewords, appending
// error correction and drawing every pattern. len(dataCodewords) must equal
// NumDataCodewords(version, ecl). mask is -1 for automatic selection or 0..7
// to force a pattern. Most callers want EncodeText or EncodeSegments
// instead.
func NewQRCode(version int, ecl ErrorCorrectionLevel, dataCodewords []byte, mask int) (*QRCode, error) {
	if version < MinVersion || version > MaxVersion {
		return nil, fmt.Errorf("%w: version %d out of range", ErrInvalidArgument, version)
	}
	if mask < -1 || mask > 7 {
		return nil, fmt.Errorf("%w: mask %d out of range", ErrInvalidArgument, mask)
	}
	if ecl < ECLevelL || ecl > ECLevelH {
		return nil, fmt.Errorf("%w: unknown error correction level", ErrInvalidArgument)
	}
	if want := NumDataCodewords(version, ecl); len(dataCodewords) != want {
		return nil, fmt.Errorf("%w: %d data codewords, want %d", ErrInvalidArgument, len(dataCodewords), want)
	}

	size := version*4 + 17
	q := &QRCode{
		version:    version,
		size:       size,
		ecl:        ecl,
		mask:       -1,
		modules:    make([][]bool, size),
		isFunction: make([][]bool, size),
	}
	for i := range q.modules {
		q.modules[i] = make([]bool, size)
		q.isFunction[i] = make([]bool, size)
	}

	q.drawFunctionPatterns()
	q.drawCodewords(q.addECCAndInterleave(dataCodewords))

	if mask == -1 {
		minPenalty := int(^uint(0) >> 1)
		for i := 0; i < 8; i++ {
			q.applyMask(i)
			q.drawFormatBits(i)
			if penalty := q.penaltyScore(); penalty < minPenalty {
				mask = i
				minPenalty = penalty
			}
			q.applyMask(i) // applying twice undoes the mask
		}
	}
	assert(0 <= mask && mask <= 7)
	q.mask = mask
	q.applyMask(mask)
	q.drawFormatBits(mask)

	q.isFunction = nil
	return q, nil
}

// Version returns the symbol version, in [1,40].
func (q *QRCode) Version() int { return q.version }

// Size returns the symbol's width and height in modules: 4*version + 17.
func (q *QRCode) Size() int { return q.size }

// Mask returns the applied mask pattern, in [0,7].
func (q *QRCode) Mask() int { return q.mask }

// ErrorCorrectionLevel returns the symbol's error correction level, which
// may be higher than requested when boosting was enabled.
func (q *QRCode) ErrorCorrectionLevel() ErrorCorrectionLevel { return q.ecl }

// Module returns the color of the module at (x, y): true for dark, false
// for light. Coordinates outside the symbol are light.
func (q *QRCode) Module(x, y int) bool {
	return 0 <= x && x < q.size && 0 <= y && y < q.size && q.modules[y][x]
}

// Modules returns a copy of the module grid, indexed [y][x].
func (q *QRCode) Modules() [][]bool {
	result := make([][]bool, q.size)
	for i, row := range q.modules {
		result[i] = append([]bool(nil), row...)
	}
	return result
}

// String returns a visual representation of the symbol.
func (q *QRCode) String() string {
	var sb strings.Builder
	for y := 0; y < q.size; y++ {
		for x := 0; x < q.size; x++ {
			if q.modules[y][x] {
				sb.WriteString("##")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// addECCAndInterleave splits the data codewords into blocks, appends
// Reed-Solomon parity to each, and interleaves the blocks by column into the
// final codeword sequence.
func (q *QRCode) addECCAndInterleave(data []byte) []byte {
	assert(len(data) == NumDataCodewords(q.version, q.ecl))

	numBlocks := numErrorCorrectionBlocks[q.ecl.Ordinal()][q.version]
	blockECCLen := eccCodewordsPerBlock[q.ecl.Ordinal()][q.version]
	rawCodewords := NumRawDataModules(q.version) / 8
	numShortBlocks := numBlocks - rawCodewords%numBlocks
	shortBlockLen := rawCodewords / numBlocks

	// Pad every block to the long length; short blocks carry one unused
	// byte just before the parity, skipped during interleaving.
	blocks := make([][]byte, numBlocks)
	enc := reedsolomon.NewEncoder()
	for i, k := 0, 0; i < numBlocks; i++ {
		datLen := shortBlockLen - blockECCLen
		if i >= numShortBlocks {
			datLen++
		}
		dat := data[k : k+datLen]
		k += datLen
		block := make([]byte, shortBlockLen+1)
		copy(block, dat)
		copy(block[shortBlockLen+1-blockECCLen:], enc.Encode(dat, blockECCLen))
		blocks[i] = block
	}

	result := make([]byte, 0, rawCodewords)
	for i := range blocks[0] {
		for j, block := range blocks {
			if i != shortBlockLen-blockECCLen || j >= numShortBlocks {
				result = append(result, block[i])
			}
		}
	}
	assert(len(result) == rawCodewords)
	return result
}

// drawFunctionPatterns draws the timing, finder, alignment, format and
// version patterns and marks them in isFunction.
func (q *QRCode) drawFunctionPatterns() {
	for i := 0; i < q.size; i++ {
		q.setFunctionModule(6, i, i%2 == 0)
		q.setFunctionModule(i, 6, i%2 == 0)
	}

	q.drawFinderPattern(3, 3)
	q.drawFinderPattern(q.size-4, 3)
	q.drawFinderPattern(3, q.size-4)

	alignPatPos := alignmentPatternPositions(q.version)
	numAlign := len(alignPatPos)
	for i := 0; i < numAlign; i++ {
		for j := 0; j < numAlign; j++ {
			// Skip the three finder corners.
			if (i == 0 && j == 0) || (i == 0 && j == numAlign-1) || (i == numAlign-1 && j == 0) {
				continue
			}
			q.drawAlignmentPattern(alignPatPos[i], alignPatPos[j])
		}
	}

	// Reserves the format modules; overwritten with the real mask later.
	q.drawFormatBits(0)
	q.drawVersion()
}

// drawFinderPattern draws a 9x9 finder pattern with separator centered at
// (x, y), clipped at the symbol edge.
func (q *QRCode) drawFinderPattern(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			dist := abs(dx)
			if abs(dy) > dist {
				dist = abs(dy)
			}
			xx, yy := x+dx, y+dy
			if 0 <= xx && xx < q.size && 0 <= yy && yy < q.size {
				q.setFunctionModule(xx, yy, dist != 2 && dist != 4)
			}
		}
	}
}

// drawAlignmentPattern draws a 5x5 alignment pattern centered at (x, y).
func (q *QRCode) drawAlignmentPattern(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			dist := abs(dx)
			if abs(dy) > dist {
				dist = abs(dy)
			}
			q.setFunctionModule(x+dx, y+dy, dist != 1)
		}
	}
}

// drawFormatBits draws the two copies of the 15-bit format information for
// the given mask, including the always-dark module.
func (q *QRCode) drawFormatBits(mask int) {
	// BCH(15,5) remainder with generator 0x537, then the fixed XOR mask.
	data := q.ecl.Bits()<<3 | mask
	rem := data
	for i := 0; i < 10; i++ {
		rem = (rem << 1) ^ ((rem >> 9) * 0x537)
	}
	bits := (data<<10|rem) ^ 0x5412
	assert(bits>>15 == 0)

	// First copy, around the top-left finder.
	for i := 0; i <= 5; i++ {
		q.setFunctionModule(8, i, bitutil.Bit(uint32(bits), i))
	}
	q.setFunctionModule(8, 7, bitutil.Bit(uint32(bits), 6))
	q.setFunctionModule(8, 8, bitutil.Bit(uint32(bits), 7))
	q.setFunctionModule(7, 8, bitutil.Bit(uint32(bits), 8))
	for i := 9; i < 15; i++ {
		q.setFunctionModule(14-i, 8, bitutil.Bit(uint32(bits), i))
	}

	// Second copy, split between top-right and bottom-left.
	for i := 0; i < 8; i++ {
		q.setFunctionModule(q.size-1-i, 8, bitutil.Bit(uint32(bits), i))
	}
	for i := 8; i < 15; i++ {
		q.setFunctionModule(8, q.size-15+i, bitutil.Bit(uint32(bits), i))
	}
	q.setFunctionModule(8, q.size-8, true) // dark module
}

// drawVersion draws the two transposed copies of the 18-bit version
// information for versions 7 and up.
func (q *QRCode) drawVersion() {
	if q.version < 7 {
		return
	}

	// BCH(18,6) remainder with generator 0x1F25.
	rem := q.version
	for i := 0; i < 12; i++ {
		rem = (rem << 1) ^ ((rem >> 11) * 0x1F25)
	}
	bits := q.version<<12 | rem
	assert(bits>>18 == 0)

	for i := 0; i < 18; i++ {
		color := bitutil.Bit(uint32(bits), i)
		a := q.size - 11 + i%3
		b := i / 3
		q.setFunctionModule(a, b, color)
		q.setFunctionModule(b, a, color)
	}
}

// drawCodewords places the interleaved codeword bits into the data modules
// in the zig-zag order. Remainder modules past the last bit stay light.
func (q *QRCode) drawCodewords(data []byte) {
	assert(len(data) == NumRawDataModules(q.version)/8)

	i := 0 // bit index into data
	for right := q.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5 // skip the vertical timing column
		}
		for vert := 0; vert < q.size; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				upward := (right+1)&2 == 0
				y := vert
				if upward {
					y = q.size - 1 - vert
				}
				if !q.isFunction[y][x] && i < len(data)*8 {
					q.modules[y][x] = bitutil.Bit(uint32(data[i>>3]), 7-(i&7))
					i++
				}
			}
		}
	}
	assert(i == len(data)*8)
}

// setFunctionModule sets the module at (x, y) and marks it as a function
// module.
func (q *QRCode) setFunctionModule(x, y int, isDark bool) {
	q.modules[y][x] = isDark
	q.isFunction[y][x] = true
}

func assert(cond bool) {
	if !cond {
		panic("qrgen: internal assertion failed")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
