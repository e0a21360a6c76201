package records

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrDecode is the sentinel matched by every DecodeError.
var ErrDecode = errors.New("records: malformed batch payload")

// DecodeError reports a batch payload that could not be turned into records.
type DecodeError struct {
	Format string // "json" or "csv"
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("records: decoding %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// batchSchema accepts an array of flat objects with scalar values.
const batchSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": {
      "type": ["string", "number", "boolean", "null"]
    }
  }
}`

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func batchValidator() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("batch.json", strings.NewReader(batchSchema)); err != nil {
			compileErr = fmt.Errorf("failed to load batch schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("batch.json")
	})
	return compiledSchema, compileErr
}

// DecodeJSON parses a JSON array of objects into records after validating
// it against the batch schema. Numbers and booleans are converted to their
// string form; null becomes "".
func DecodeJSON(data []byte) ([]Record, error) {
	schema, err := batchValidator()
	if err != nil {
		return nil, err
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &DecodeError{Format: "json", Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &DecodeError{Format: "json", Err: fmt.Errorf("payload does not match schema: %w", err)}
	}

	items, _ := doc.([]any)
	out := make([]Record, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		rec := make(Record, len(obj))
		for k, v := range obj {
			rec[k] = scalarString(v)
		}
		out = append(out, rec)
	}
	return out, nil
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// DecodeCSV reads header-keyed rows. The first row names the fields;
// header names are trimmed. Short rows leave the missing fields empty and
// extra cells beyond the header are ignored. Blank rows are skipped.
func DecodeCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &DecodeError{Format: "csv", Err: err}
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var out []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DecodeError{Format: "csv", Err: err}
		}
		if blankRow(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(row) {
				rec[key] = row[i]
			} else {
				rec[key] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
