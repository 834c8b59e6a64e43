package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Town is a named locality and its emergency services, in authored order.
type Town struct {
	Name     string
	Services []ServiceRecord
}

// ProvinceDataset maps town names to their services.
// Towns keep the key order of the source document, which decides
// which town wins when a search matches more than one.
type ProvinceDataset struct {
	towns []Town
	index map[string]int
}

// NewProvinceDataset builds a dataset from towns in the given order.
// A repeated name keeps its first position and takes the later services.
func NewProvinceDataset(towns ...Town) *ProvinceDataset {
	d := &ProvinceDataset{index: make(map[string]int, len(towns))}
	for _, t := range towns {
		d.put(t.Name, t.Services)
	}
	return d
}

func (d *ProvinceDataset) put(name string, services []ServiceRecord) {
	if i, ok := d.index[name]; ok {
		d.towns[i].Services = services
		return
	}
	d.index[name] = len(d.towns)
	d.towns = append(d.towns, Town{Name: name, Services: services})
}

// Towns returns the towns in key order.
func (d *ProvinceDataset) Towns() []Town {
	if d == nil {
		return nil
	}
	return d.towns
}

// TownNames returns the town names in key order.
func (d *ProvinceDataset) TownNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.towns))
	for i, t := range d.towns {
		names[i] = t.Name
	}
	return names
}

// Services returns the services for an exact town name.
func (d *ProvinceDataset) Services(town string) ([]ServiceRecord, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[town]
	if !ok {
		return nil, false
	}
	return d.towns[i].Services, true
}

// Len returns the number of towns.
func (d *ProvinceDataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.towns)
}

// RecordCount returns the number of service records across all towns.
func (d *ProvinceDataset) RecordCount() int {
	n := 0
	for _, t := range d.Towns() {
		n += len(t.Services)
	}
	return n
}

// MarshalJSON writes the dataset back in its {"towns": {...}} form, keeping key order.
func (d *ProvinceDataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"towns":{`)
	for i, t := range d.Towns() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		services := t.Services
		if services == nil {
			services = []ServiceRecord{}
		}
		records, err := json.Marshal(services)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(records)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

// DecodeProvinceDataset parses a province payload of the form
// {"towns": {"<Town Name>": [{category, name, phone, address}, ...], ...}}.
// Anything else is rejected with ErrMalformedDataset; no partial data is returned.
func DecodeProvinceDataset(data []byte) (*ProvinceDataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var dataset *ProvinceDataset
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "towns" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, malformed("field %q: %v", key, err)
			}
			continue
		}
		dataset, err = decodeTowns(dec)
		if err != nil {
			return nil, err
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("trailing data after document")
	}
	if dataset == nil {
		return nil, malformed("missing \"towns\"")
	}
	return dataset, nil
}

func decodeTowns(dec *json.Decoder) (*ProvinceDataset, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("towns: %w", err)
	}

	dataset := NewProvinceDataset()
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, malformed("empty town name")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, malformed("town %q: %v", name, err)
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '[' {
			return nil, malformed("town %q: services must be an array", name)
		}

		var services []ServiceRecord
		if err := json.Unmarshal(raw, &services); err != nil {
			return nil, malformed("town %q: %v", name, err)
		}
		for i, svc := range services {
			if err := svc.Validate(); err != nil {
				return nil, fmt.Errorf("town %q record %d: %w", name, i, err)
			}
		}
		if services == nil {
			services = []ServiceRecord{}
		}
		dataset.put(name, services)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("towns: %w", err)
	}
	return dataset, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return malformed("%v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return malformed("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", malformed("%v", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", malformed("expected object key, got %v", tok)
	}
	return key, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDataset, fmt.Sprintf(format, args...))
}
