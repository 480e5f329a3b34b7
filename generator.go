package qrgen

// Options holds the encoding parameters of a Generator.
type Options struct {
	Level      ErrorCorrectionLevel
	MinVersion int
	MaxVersion int
	Mask       int // -1 selects the mask automatically
	BoostLevel bool
}

// DefaultOptions returns the parameters used by a fresh Generator: level L,
// the full version range, automatic mask selection, and level boosting.
func DefaultOptions() Options {
	return Options{
		Level:      ECLevelL,
		MinVersion: MinVersion,
		MaxVersion: MaxVersion,
		Mask:       -1,
		BoostLevel: true,
	}
}

// Generator is a thin wrapper that holds default encoding parameters and
// hands out caller-owned module matrices. Its behavior is a direct
// pass-through to EncodeSegments.
type Generator struct {
	opts Options
}

// NewGenerator creates a Generator with DefaultOptions.
func NewGenerator() *Generator {
	return &Generator{opts: DefaultOptions()}
}

// Apply replaces the generator's parameters. Every field of opts is
// assigned, including zero values.
func (g *Generator) Apply(opts Options) {
	g.opts = opts
}

// Options returns the generator's current parameters.
func (g *Generator) Options() Options {
	return g.opts
}

// EncodeText encodes a text string with the generator's parameters and
// returns the module matrix, indexed [y][x] with true for dark.
func (g *Generator) EncodeText(text string) ([][]bool, error) {
	return g.encode(MakeSegments(text))
}

// EncodeBinary encodes binary data in byte mode with the generator's
// parameters and returns the module matrix.
func (g *Generator) EncodeBinary(data []byte) ([][]bool, error) {
	return g.encode([]Segment{MakeBytes(data)})
}

func (g *Generator) encode(segs []Segment) ([][]bool, error) {
	code, err := EncodeSegments(segs, g.opts.Level, g.opts.MinVersion,
		g.opts.MaxVersion, g.opts.Mask, g.opts.BoostLevel)
	if err != nil {
		return nil, err
	}
	return code.Modules(), nil
}
