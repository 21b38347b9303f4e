package loader_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	loader "github.com/0xalexb/hjarta-loader"
	jsonmapper "github.com/0xalexb/hjarta-loader/mapper/json"
	xmlmapper "github.com/0xalexb/hjarta-loader/mapper/xml"
	yamlmapper "github.com/0xalexb/hjarta-loader/mapper/yaml"
	yamlv3mapper "github.com/0xalexb/hjarta-loader/mapper/yamlv3"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type element struct {
	Kind   string `json:"kind"             xml:"kind,attr"             yaml:"kind"`
	Value  string `json:"value,omitempty"  xml:"value,omitempty"       yaml:"value,omitempty"`
	Align  string `json:"align,omitempty"  xml:"align,attr,omitempty"  yaml:"align,omitempty"`
	Offset int    `json:"offset,omitempty" xml:"offset,attr,omitempty" yaml:"offset,omitempty"`
}

type template struct {
	Name     string    `json:"name"     xml:"name,attr"        yaml:"name"`
	Width    int       `json:"width"    xml:"width"            yaml:"width"`
	Elements []element `json:"elements" xml:"elements>element" yaml:"elements"`
}

func sampleTemplate() template {
	return template{
		Name:  "Test Template",
		Width: 40,
		Elements: []element{
			{Kind: "dynamic", Value: "traderName", Align: "center"},
			{Kind: "fill", Value: "-"},
			{Kind: "text", Value: "Date ", Align: "left"},
			{Kind: "dynamic", Value: "transactionDate", Align: "left", Offset: 5},
			{Kind: "feed"},
		},
	}
}

type stubMapper struct {
	decodeErr error
	encodeErr error
	decoded   template
}

func (m *stubMapper) Decode(_ io.Reader, target any) error {
	if m.decodeErr != nil {
		return m.decodeErr
	}

	tmpl, ok := target.(*template)
	if !ok {
		return errors.New("unexpected target type")
	}

	*tmpl = m.decoded

	return nil
}

func (m *stubMapper) Encode(_ io.Writer, _ any) error {
	return m.encodeErr
}

func TestNew_NilMapper(t *testing.T) {
	t.Parallel()

	l, err := loader.New[template](nil)

	require.ErrorIs(t, err, loader.ErrNilMapper)
	assert.Nil(t, l)
}

func TestLoader_RoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mapper loader.Mapper
	}{
		{name: "goccy yaml", mapper: yamlmapper.New()},
		{name: "goccy yaml strict", mapper: yamlmapper.New(yamlmapper.WithStrict())},
		{name: "yaml v3", mapper: yamlv3mapper.New()},
		{name: "json", mapper: jsonmapper.New()},
		{name: "xml", mapper: xmlmapper.New()},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			l, err := loader.New[template](testCase.mapper)
			require.NoError(t, err)

			original := sampleTemplate()

			var buf bytes.Buffer

			err = l.Write(original, &buf)
			require.NoError(t, err)

			loaded, err := l.Load(&buf)
			require.NoError(t, err)

			if diff := cmp.Diff(original, loaded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_LoadString(t *testing.T) {
	t.Parallel()

	l := loader.NewYAML[template]()

	loaded, err := l.LoadString(`
name: Till Slip
width: 32
elements:
  - kind: text
    value: Items
  - kind: feed
`)

	require.NoError(t, err)
	assert.Equal(t, "Till Slip", loaded.Name)
	assert.Equal(t, 32, loaded.Width)
	require.Len(t, loaded.Elements, 2)
	assert.Equal(t, "feed", loaded.Elements[1].Kind)
}

func TestLoader_LoadBytes(t *testing.T) {
	t.Parallel()

	l := loader.NewYAML[map[string]int]()

	loaded, err := l.LoadBytes([]byte("a: 1\nb: 2\n"))

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, loaded)
}

func TestLoader_PointerPayload(t *testing.T) {
	t.Parallel()

	l := loader.NewYAML[*template]()

	text, err := l.WriteString(&template{Name: "ptr", Width: 10})
	require.NoError(t, err)

	loaded, err := l.LoadString(text)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "ptr", loaded.Name)
	assert.Equal(t, 10, loaded.Width)
}

func TestLoader_PointerRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mapper loader.Mapper
	}{
		{name: "goccy yaml", mapper: yamlmapper.New()},
		{name: "goccy yaml strict", mapper: yamlmapper.New(yamlmapper.WithStrict())},
		{name: "yaml v3", mapper: yamlv3mapper.New()},
		{name: "json", mapper: jsonmapper.New()},
		{name: "xml", mapper: xmlmapper.New()},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			l, err := loader.New[*template](testCase.mapper)
			require.NoError(t, err)

			original := sampleTemplate()

			var buf bytes.Buffer

			err = l.Write(&original, &buf)
			require.NoError(t, err)

			loaded, err := l.Load(&buf)
			require.NoError(t, err)
			require.NotNil(t, loaded)

			if diff := cmp.Diff(original, *loaded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_PointerPayloadIsFresh(t *testing.T) {
	t.Parallel()

	l := loader.NewYAML[*template]()

	first, err := l.LoadString("name: first\n")
	require.NoError(t, err)

	second, err := l.LoadString("name: second\n")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, "first", first.Name)
	assert.Equal(t, "second", second.Name)
}

func TestLoader_PointerPayloadDecodeError(t *testing.T) {
	t.Parallel()

	l := loader.NewYAML[*template]()

	loaded, err := l.LoadString("# nothing\n")

	require.ErrorIs(t, err, yamlmapper.ErrEmptyData)
	assert.Nil(t, loaded)
}

func TestLoader_WriteString(t *testing.T) {
	t.Parallel()

	l := loader.NewYAML[template]()

	text, err := l.WriteString(template{Name: "Till", Width: 32})

	require.NoError(t, err)
	assert.Contains(t, text, "name: Till")
	assert.Contains(t, text, "width: 32")
}

func TestLoader_DecodeErrorIsUnchanged(t *testing.T) {
	t.Parallel()

	decodeErr := errors.New("boom")

	l, err := loader.New[template](&stubMapper{decodeErr: decodeErr})
	require.NoError(t, err)

	loaded, err := l.LoadString("anything")

	require.Error(t, err)
	assert.Same(t, decodeErr, err)
	assert.Equal(t, template{}, loaded)
}

func TestLoader_EncodeErrorIsUnchanged(t *testing.T) {
	t.Parallel()

	encodeErr := errors.New("boom")

	l, err := loader.New[template](&stubMapper{encodeErr: encodeErr})
	require.NoError(t, err)

	err = l.Write(sampleTemplate(), io.Discard)
	assert.Same(t, encodeErr, err)

	text, err := l.WriteString(sampleTemplate())
	assert.Same(t, encodeErr, err)
	assert.Empty(t, text)
}

func TestLoader_MapperErrorsPassThrough(t *testing.T) {
	t.Parallel()

	l := loader.NewYAML[template]()

	_, err := l.LoadString("")
	require.ErrorIs(t, err, yamlmapper.ErrEmptyData)

	_, err = l.LoadString("name: [unterminated")
	require.Error(t, err)
}

func TestLoader_LoadPath(t *testing.T) {
	t.Parallel()

	l := loader.NewYAML[template]()

	data := `
templates:
  till:
    name: Till Slip
    width: 32
  kitchen:
    name: Kitchen Order
    width: 48
`

	loaded, err := l.LoadPath(strings.NewReader(data), "templates:kitchen")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen Order", loaded.Name)
	assert.Equal(t, 48, loaded.Width)

	_, err = l.LoadPath(strings.NewReader(data), "templates:missing")
	require.ErrorIs(t, err, yamlmapper.ErrPathNotFound)
}

func TestLoader_LoadPath_Pointer(t *testing.T) {
	t.Parallel()

	l := loader.NewYAML[*template]()

	loaded, err := l.LoadPath(strings.NewReader("templates:\n  till:\n    name: Till Slip\n    width: 32\n"), "templates:till")

	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, template{Name: "Till Slip", Width: 32}, *loaded)
}

func TestLoader_LoadPath_EmptyPathLoadsDocument(t *testing.T) {
	t.Parallel()

	l, err := loader.New[template](jsonmapper.New())
	require.NoError(t, err)

	loaded, err := l.LoadPath(strings.NewReader(`{"name":"whole","width":1}`), "")

	require.NoError(t, err)
	assert.Equal(t, "whole", loaded.Name)
}

func TestLoader_LoadPath_Unsupported(t *testing.T) {
	t.Parallel()

	l, err := loader.New[template](jsonmapper.New())
	require.NoError(t, err)

	_, err = l.LoadPath(strings.NewReader(`{"a":{}}`), "a")

	require.ErrorIs(t, err, loader.ErrPathUnsupported)
}

func TestLoader_Mapper(t *testing.T) {
	t.Parallel()

	mapper := jsonmapper.New()

	l, err := loader.New[template](mapper)
	require.NoError(t, err)

	assert.Same(t, mapper, l.Mapper())
}

func TestLoader_WithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l, err := loader.New[template](yamlmapper.New(), loader.WithLogger(logger))
	require.NoError(t, err)

	_, err = l.WriteString(sampleTemplate())
	require.NoError(t, err)

	var entry map[string]any

	err = json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "output should be valid JSON")
	assert.Equal(t, "loader: encoded", entry["msg"])
	assert.Equal(t, "loader_test.template", entry["type"])
}

func TestNewYAML_Options(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l := loader.NewYAML[template](
		loader.WithLogger(logger),
		loader.WithYAML(yamlmapper.WithDocumentStart(true), yamlmapper.WithStrict()),
	)

	text, err := l.WriteString(template{Name: "Till", Width: 32})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "---\n"), text)

	_, err = l.LoadString("name: Till\nunknown: 1\n")
	require.Error(t, err, "strict option should reach the mapper")

	var entry map[string]any

	err = json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "output should be valid JSON")
	assert.Equal(t, "loader: encoded", entry["msg"])
}

func TestNew_IgnoresYAMLOption(t *testing.T) {
	t.Parallel()

	l, err := loader.New[template](jsonmapper.New(), loader.WithYAML(yamlmapper.WithDocumentStart(true)))
	require.NoError(t, err)

	text, err := l.WriteString(template{Name: "Till"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "{"), text)
}
