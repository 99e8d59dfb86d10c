package leadfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-leadform/pkg/lead"
)

// ErrEmpty is returned for a file with no document in it.
var ErrEmpty = errors.New("leadfile: empty document")

// Load reads a YAML lead from path. Keys must be lead field names.
func Load(path string) (lead.Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lead.Fields{}, fmt.Errorf("leadfile: read %s: %w", path, err)
	}
	fields, err := Parse(data)
	if err != nil {
		return lead.Fields{}, fmt.Errorf("%s: %w", path, err)
	}
	return fields, nil
}

// Parse decodes one YAML document into lead fields, rejecting unknown keys.
func Parse(data []byte) (lead.Fields, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fields lead.Fields
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return lead.Fields{}, ErrEmpty
		}
		return lead.Fields{}, fmt.Errorf("leadfile: decode: %w", err)
	}
	return fields, nil
}
