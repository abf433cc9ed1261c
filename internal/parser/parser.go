package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	stderrors "errors" // Standard errors package
	"github.com/mcncl/jsonpeek/internal/errors" // Custom errors package
	"github.com/mcncl/jsonpeek/internal/models"
)

// DefaultMaxDepth bounds how deeply containers may nest.
const DefaultMaxDepth = 10000

// Option configures a parse.
type Option func(*decoder)

// WithMaxDepth limits container nesting. Zero disables the limit.
func WithMaxDepth(depth int) Option {
	return func(d *decoder) {
		d.maxDepth = depth
	}
}

// WithSource records where the document came from.
func WithSource(source string) Option {
	return func(d *decoder) {
		d.source = source
	}
}

// Parse reads exactly one JSON document from reader into a models.Document.
// Object members keep the order in which they appear in the input.
func Parse(reader io.Reader, opts ...Option) (models.Document, error) {
	d := &decoder{
		dec:      json.NewDecoder(reader),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.dec.UseNumber() // keep number literals so they can be classified

	tok, err := d.dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) { // nothing but whitespace before EOF
			return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Document{}, d.wrap(err)
	}

	root, err := d.value(tok, 0)
	if err != nil {
		return models.Document{}, err
	}

	// Anything but EOF after the first value is either a second document or garbage.
	if _, err := d.dec.Token(); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return models.Document{}, errors.NewParsingError("invalid trailing data after first JSON value", d.wrap(err))
		}
		return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return models.Document{
		Root:        root,
		Source:      d.source,
		RootIsArray: root.IsArray(),
	}, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts ...Option) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString), opts...)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts ...Option) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		_ = file.Close()
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file, append([]Option{WithSource(filePath)}, opts...)...)
}

type decoder struct {
	dec      *json.Decoder
	maxDepth int
	source   string
}

// value builds the node that starts with tok. depth counts enclosing containers.
func (d *decoder) value(tok json.Token, depth int) (*models.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		if d.maxDepth > 0 && depth >= d.maxDepth {
			return nil, errors.NewParsingError(
				fmt.Sprintf("nesting deeper than %d at offset %d", d.maxDepth, d.dec.InputOffset()),
				errors.ErrMaxDepth,
			)
		}
		switch t {
		case '{':
			return d.object(depth + 1)
		case '[':
			return d.array(depth + 1)
		}
		// json.Decoder never hands out a closing delimiter here
		return nil, errors.NewParsingError(fmt.Sprintf("unexpected %q", rune(t)), errors.ErrInvalidJSON)
	case string:
		return models.NewString(t), nil
	case json.Number:
		return number(t)
	case bool:
		return models.NewBool(t), nil
	case nil:
		return models.NewNull(), nil
	default:
		return nil, errors.NewParsingError(fmt.Sprintf("unexpected token %T", tok), errors.ErrInvalidJSON)
	}
}

func (d *decoder) object(depth int) (*models.Value, error) {
	var members []models.Member
	for d.dec.More() {
		keyTok, err := d.dec.Token()
		if err != nil {
			return nil, d.wrap(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.NewParsingError(fmt.Sprintf("object key must be a string, got %T", keyTok), errors.ErrInvalidJSON)
		}
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.wrap(err)
		}
		v, err := d.value(tok, depth)
		if err != nil {
			return nil, err
		}
		members = append(members, models.Member{Key: key, Value: v})
	}
	if _, err := d.dec.Token(); err != nil { // closing '}'
		return nil, d.wrap(err)
	}
	return models.NewObject(members...), nil
}

func (d *decoder) array(depth int) (*models.Value, error) {
	var elems []*models.Value
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.wrap(err)
		}
		v, err := d.value(tok, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	if _, err := d.dec.Token(); err != nil { // closing ']'
		return nil, d.wrap(err)
	}
	return models.NewArray(elems...), nil
}

// number picks the numeric variant from the literal's spelling: integers
// become Int64 when they fit, then Uint64, and everything else Double.
func number(n json.Number) (*models.Value, error) {
	lit := n.String()
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return models.NewInt64(i), nil
		}
		if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return models.NewUint64(u), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return nil, errors.NewParsingError(fmt.Sprintf("invalid number %q", lit), errors.ErrInvalidJSON)
	}
	if math.IsInf(f, 0) {
		return nil, errors.NewParsingError(fmt.Sprintf("number %q is out of range", lit), errors.ErrInvalidJSON)
	}
	return models.NewDouble(f), nil
}

// wrap converts decoder errors into parsing errors.
func (d *decoder) wrap(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}
