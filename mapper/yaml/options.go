package yaml

const defaultIndent = 2

type config struct {
	indent           int
	indentSequence   bool
	literalMultiline bool
	strict           bool
	documentStart    bool
}

func defaultConfig() config {
	return config{
		indent:           defaultIndent,
		indentSequence:   true,
		literalMultiline: false,
		strict:           false,
		documentStart:    false,
	}
}

// Option configures a Mapper.
type Option func(*config)

// WithIndent sets the number of spaces per indentation level.
// Values below 1 are ignored.
func WithIndent(spaces int) Option {
	return func(cfg *config) {
		if spaces > 0 {
			cfg.indent = spaces
		}
	}
}

// WithIndentSequence controls whether sequence items are indented under their parent key.
func WithIndentSequence(indent bool) Option {
	return func(cfg *config) {
		cfg.indentSequence = indent
	}
}

// WithLiteralMultiline writes multi-line strings in literal block style (|).
func WithLiteralMultiline(literal bool) Option {
	return func(cfg *config) {
		cfg.literalMultiline = literal
	}
}

// WithStrict makes decoding fail on fields that do not exist in the target struct.
func WithStrict() Option {
	return func(cfg *config) {
		cfg.strict = true
	}
}

// WithDocumentStart writes a "---" marker before every encoded document.
func WithDocumentStart(enabled bool) Option {
	return func(cfg *config) {
		cfg.documentStart = enabled
	}
}
