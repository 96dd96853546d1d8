package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/jsontoggle/jsontoggle/internal/errors"
)

// Parse reads a single JSON value from reader into the document value model.
// Numbers keep their literal text and object members keep their order.
func Parse(reader io.Reader) (Value, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewDocumentError("input is empty or contains only whitespace", errors.ErrFileEmpty)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewDocumentError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		return nil, errors.NewDocumentError("failed to decode JSON", err)
	}

	// Anything but whitespace after the first value means the input is not a
	// single document.
	if dec.More() {
		return nil, errors.NewDocumentError("multiple JSON values found at the root", errors.ErrInvalidJSON)
	}

	return root, nil
}

// decodeValue consumes one complete JSON value from the decoder's token
// stream.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, value)
			}
			// Consume the closing brace
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := NewArray()
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewDocumentError("input string is empty", errors.ErrFileEmpty)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewDocumentError("file path is empty", errors.ErrFileNotFound)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewDocumentError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewDocumentError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewDocumentError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewDocumentError(
			fmt.Sprintf("document file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}

// Encode renders a value as pretty-printed JSON with the given indent.
// HTML escaping is off; the document owns its bytes and must round-trip
// strings like "<toggled>" unchanged.
func Encode(v Value, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return "", errors.NewDocumentError("failed to encode document", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Save rewrites the file at path with the pretty-printed value. The whole
// document is written in one call; there is no partial or streaming write.
func Save(path string, v Value, indent string) error {
	out, err := Encode(v, indent)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out+"\n"), 0644); err != nil {
		return errors.NewStorageError(
			fmt.Sprintf("failed to write document to '%s': %v", path, err),
			errors.ErrStorageUnavailable,
		)
	}
	return nil
}
