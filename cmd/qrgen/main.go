// Command qrgen generates a QR code from the command line and prints it to
// standard output as text.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ericlevine/qrgen"
	"github.com/ericlevine/qrgen/charset"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
)

var g = struct {
	level   string // error correction level
	minVer  int    // smallest version to try
	maxVer  int    // largest version to try
	mask    int    // forced mask, -1 for automatic
	noBoost bool   // disable level boosting
	eci     int    // ECI assignment value, -1 for none
	border  int    // quiet zone width
	ascii   bool   // force "##" output
	help    bool
}{
	level:  "L",
	minVer: qrgen.MinVersion,
	maxVer: qrgen.MaxVersion,
	mask:   -1,
	eci:    -1,
	border: 4,
}

func init() {
	getopt.FlagLong(&g.level, "level", 'l', "error correction level: L, M, Q or H")
	getopt.FlagLong(&g.minVer, "min-version", 'v', "smallest symbol version to try")
	getopt.FlagLong(&g.maxVer, "max-version", 'V', "largest symbol version to try")
	getopt.FlagLong(&g.mask, "mask", 'm', "force mask pattern 0-7 (-1 selects automatically)")
	getopt.FlagLong(&g.noBoost, "no-boost", 'b', "do not raise the error correction level to fill the symbol")
	getopt.FlagLong(&g.eci, "eci", 'e', "transcode input to the character set with this ECI assignment value")
	getopt.FlagLong(&g.border, "border", 'q', "quiet zone width in modules")
	getopt.FlagLong(&g.ascii, "ascii", 'a', "print modules as \"##\" instead of half blocks")
	getopt.FlagLong(&g.help, "help", 'h', "print this help")
	getopt.SetParameters("[string ...]")
}

func main() {
	getopt.Parse()
	if g.help {
		getopt.PrintUsage(os.Stdout)
		return
	}

	level, err := parseLevel(g.level)
	if err != nil {
		die(err)
	}
	text, err := payload()
	if err != nil {
		die(err)
	}

	var segs []qrgen.Segment
	if g.eci >= 0 {
		cs, err := charset.Lookup(g.eci)
		if err != nil {
			die(err)
		}
		segs, err = qrgen.MakeTextSegmentsECI(text, cs)
		if err != nil {
			die(err)
		}
	} else {
		segs = qrgen.MakeSegments(text)
	}

	code, err := qrgen.EncodeSegments(segs, level, g.minVer, g.maxVer, g.mask, !g.noBoost)
	if err != nil {
		die(err)
	}

	if g.ascii || !isatty.IsTerminal(os.Stdout.Fd()) {
		printASCII(os.Stdout, code, g.border)
	} else {
		printHalfBlocks(os.Stdout, code, g.border)
	}
}

// payload returns the data to encode: the command line arguments joined by
// spaces, or standard input with the final newline stripped.
func payload() (string, error) {
	if args := getopt.Args(); len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func parseLevel(s string) (qrgen.ErrorCorrectionLevel, error) {
	switch strings.ToUpper(s) {
	case "L":
		return qrgen.ECLevelL, nil
	case "M":
		return qrgen.ECLevelM, nil
	case "Q":
		return qrgen.ECLevelQ, nil
	case "H":
		return qrgen.ECLevelH, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}

// printASCII prints two characters per module, dark as "##".
func printASCII(w io.Writer, code *qrgen.QRCode, border int) {
	for y := -border; y < code.Size()+border; y++ {
		var sb strings.Builder
		for x := -border; x < code.Size()+border; x++ {
			if code.Module(x, y) {
				sb.WriteString("##")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
		io.WriteString(w, sb.String())
	}
}

// printHalfBlocks prints two module rows per text line using Unicode block
// glyphs.
func printHalfBlocks(w io.Writer, code *qrgen.QRCode, border int) {
	for y := -border; y < code.Size()+border; y += 2 {
		var sb strings.Builder
		for x := -border; x < code.Size()+border; x++ {
			top := code.Module(x, y)
			bottom := code.Module(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
		io.WriteString(w, sb.String())
	}
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "qrgen: %v\n", err)
	os.Exit(1)
}
