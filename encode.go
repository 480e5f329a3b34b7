// Package qrgen generates QR Code (Model 2) symbols conforming to ISO/IEC
// 18004. Given a text string, a byte sequence, or a list of pre-built
// segments, it selects a symbol version, computes Reed-Solomon error
// correction, and produces the final module matrix with a mask applied.
package qrgen

import (
	"fmt"

	"github.com/ericlevine/qrgen/bitutil"
)

// EncodeText encodes a Unicode text string into a QR symbol at the given
// error correction level. The most compact encoding mode is selected
// automatically, any version up to 40 may be used, the mask is chosen by
// penalty score, and the error correction level is boosted when the chosen
// version has room.
func EncodeText(text string, ecl ErrorCorrectionLevel) (*QRCode, error) {
	return EncodeSegments(MakeSegments(text), ecl, MinVersion, MaxVersion, -1, true)
}

// EncodeBinary encodes arbitrary binary data into a QR symbol in byte mode
// at the given error correction level.
func EncodeBinary(data []byte, ecl ErrorCorrectionLevel) (*QRCode, error) {
	return EncodeSegments([]Segment{MakeBytes(data)}, ecl, MinVersion, MaxVersion, -1, true)
}

// EncodeSegments encodes the given segments into a QR symbol. The smallest
// version in [minVersion, maxVersion] whose data capacity admits the
// segments at the requested level is used. mask is -1 for automatic
// selection or 0..7 to force a pattern. When boostECL is true the error
// correction level is raised as far as the chosen version allows without
// growing the symbol.
func EncodeSegments(segs []Segment, ecl ErrorCorrectionLevel, minVersion, maxVersion, mask int, boostECL bool) (*QRCode, error) {
	if minVersion < MinVersion || minVersion > maxVersion || maxVersion > MaxVersion {
		return nil, fmt.Errorf("%w: version range %d-%d", ErrInvalidArgument, minVersion, maxVersion)
	}
	if mask < -1 || mask > 7 {
		return nil, fmt.Errorf("%w: mask %d out of range", ErrInvalidArgument, mask)
	}
	if ecl < ECLevelL || ecl > ECLevelH {
		return nil, fmt.Errorf("%w: unknown error correction level", ErrInvalidArgument)
	}

	// Find the smallest version that fits the data.
	version := minVersion
	dataUsedBits := -1
	for ; ; version++ {
		dataCapacityBits := NumDataCodewords(version, ecl) * 8
		used := totalBits(segs, version)
		if used != -1 && used <= dataCapacityBits {
			dataUsedBits = used
			break
		}
		if version >= maxVersion {
			if used == -1 {
				return nil, fmt.Errorf("%w: segment character count overflows its field", ErrDataTooLong)
			}
			return nil, fmt.Errorf("%w: %d bits needed, %d available at version %d",
				ErrDataTooLong, used, dataCapacityBits, version)
		}
	}

	// Boost the error correction level while the data still fits.
	for _, newECL := range []ErrorCorrectionLevel{ECLevelM, ECLevelQ, ECLevelH} {
		if boostECL && dataUsedBits <= NumDataCodewords(version, newECL)*8 {
			ecl = newECL
		}
	}

	// Concatenate all segments to create the data bit string.
	bb := bitutil.NewBitArray(0)
	for _, seg := range segs {
		bb.AppendBits(uint32(seg.mode.Bits()), 4)
		bb.AppendBits(uint32(seg.numChars), seg.mode.CharacterCountBits(version))
		bb.AppendBitArray(seg.bits)
	}
	assert(bb.Size() == dataUsedBits)

	// Terminator, then pad to a byte boundary.
	dataCapacityBits := NumDataCodewords(version, ecl) * 8
	assert(bb.Size() <= dataCapacityBits)
	for i := 0; i < 4 && bb.Size() < dataCapacityBits; i++ {
		bb.AppendBit(false)
	}
	for bb.Size()%8 != 0 {
		bb.AppendBit(false)
	}

	// Alternating pad bytes until capacity is reached.
	for padByte := uint32(0xEC); bb.Size() < dataCapacityBits; padByte ^= 0xEC ^ 0x11 {
		bb.AppendBits(padByte, 8)
	}

	dataCodewords := make([]byte, bb.SizeInBytes())
	bb.ToBytes(0, dataCodewords, 0, len(dataCodewords))

	return NewQRCode(version, ecl, dataCodewords, mask)
}
