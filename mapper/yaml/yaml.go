package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

// ContentType is the media type produced and accepted by the Mapper.
const ContentType = "application/yaml"

const documentStart = "---\n"

// ErrEmptyData is returned when the input holds no YAML document, for example
// when it only has comments or a bare "---".
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Mapper implements loader.Mapper and loader.PathDecoder for YAML data.
// It is immutable after construction and safe for concurrent use.
type Mapper struct {
	decodeOptions []yaml.DecodeOption
	encodeOptions []yaml.EncodeOption
	documentStart bool
}

// New creates a YAML mapper with the given options applied over the defaults.
func New(opts ...Option) *Mapper {
	cfg := defaultConfig()

	for _, apply := range opts {
		apply(&cfg)
	}

	decodeOptions := []yaml.DecodeOption{}
	if cfg.strict {
		decodeOptions = append(decodeOptions, yaml.DisallowUnknownField())
	}

	encodeOptions := []yaml.EncodeOption{
		yaml.Indent(cfg.indent),
		yaml.IndentSequence(cfg.indentSequence),
		yaml.UseLiteralStyleIfMultiline(cfg.literalMultiline),
	}

	return &Mapper{
		decodeOptions: decodeOptions,
		encodeOptions: encodeOptions,
		documentStart: cfg.documentStart,
	}
}

// ContentType returns the media type for YAML.
func (m *Mapper) ContentType() string {
	return ContentType
}

// Format returns the short format name.
func (m *Mapper) Format() string {
	return "yaml"
}

// Decode reads a YAML document from r and unmarshals it into the target.
func (m *Mapper) Decode(r io.Reader, target any) error {
	data, err := readAll(r)
	if err != nil {
		return err
	}

	err = yaml.UnmarshalWithOptions(data, target, m.decodeOptions...)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

// DecodePath reads a YAML document from r and unmarshals the node at path into the target.
// The path parameter uses colon (:) as separator. Empty path decodes the entire document.
func (m *Mapper) DecodePath(r io.Reader, path string, target any) error {
	if path == "" {
		return m.Decode(r, target)
	}

	data, err := readAll(r)
	if err != nil {
		return err
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	node, err := pathObj.ReadNode(bytes.NewReader(data))
	if err != nil {
		if isKeyNotFoundError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = yaml.NodeToValue(node, target, m.decodeOptions...)
	if err != nil {
		return fmt.Errorf("decoding path %q: %w", path, err)
	}

	return nil
}

// Encode marshals value as a YAML document and writes it to w.
// Plain scalars that would read back differently, such as "\ttab" or ".inf",
// are written double-quoted.
func (m *Mapper) Encode(w io.Writer, value any) error {
	node, err := yaml.ValueToNode(value, m.encodeOptions...)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	if node != nil {
		ast.Walk(&quoter{mapper: m, lossy: map[string]bool{}}, node)
	}

	var p printer.Printer

	data := p.PrintNode(node)

	if m.documentStart {
		_, err = io.WriteString(w, documentStart)
		if err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 || noDocument(data) {
		return nil, ErrEmptyData
	}

	return data, nil
}

// noDocument reports whether data parses to no document body at all.
// Syntax errors are left for the decoder to report.
func noDocument(data []byte) bool {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return false
	}

	for _, doc := range file.Docs {
		if doc.Body == nil {
			continue
		}

		if _, isComment := doc.Body.(*ast.CommentGroupNode); !isComment {
			return false
		}
	}

	return true
}

// quoter switches plain string scalars to double quotes when reading them
// back would not return the same string.
type quoter struct {
	mapper *Mapper
	lossy  map[string]bool
}

func (q *quoter) Visit(node ast.Node) ast.Visitor {
	str, ok := node.(*ast.StringNode)
	if !ok || str.Token == nil || str.Value == "" {
		return q
	}

	// Already quoted by the encoder.
	if str.Value[0] == '"' || str.Value[0] == '\'' {
		return q
	}

	if q.isLossy(str.Value) {
		str.Token.Type = token.DoubleQuoteType
	}

	return q
}

func (q *quoter) isLossy(s string) bool {
	lossy, seen := q.lossy[s]
	if seen {
		return lossy
	}

	lossy = !q.mapper.survives(s)
	q.lossy[s] = lossy

	return lossy
}

// survives reports whether s decodes to itself when encoded as a plain value.
func (m *Mapper) survives(s string) bool {
	data, err := yaml.MarshalWithOptions(map[string]string{"v": s}, m.encodeOptions...)
	if err != nil {
		return false
	}

	var back map[string]string

	err = yaml.Unmarshal(data, &back)
	if err != nil {
		return false
	}

	return back["v"] == s
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "api:permissions" -> "$.api.permissions"
func convertToYAMLPath(path string) string {
	parts := strings.Split(path, ":")

	return "$." + strings.Join(parts, ".")
}

// isKeyNotFoundError checks if the error indicates a key was not found.
func isKeyNotFoundError(err error) bool {
	return yaml.IsNotFoundNodeError(err)
}
