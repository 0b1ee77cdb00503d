package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/utils"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is a serializable capture of host method bodies:
//
//	host: Deepdelve
//	version: 1.4.2
//	methods:
//	  - method: Player::get_MaxOxygen()
//	    body: |
//	      ldc.r 100
//	      ret
//
// Body lines are instructions in the listing format, optionally prefixed by their labels. Blank
// lines and lines starting with ';' are ignored.
type Snapshot struct {
	Host    string         `yaml:"host"`
	Version string         `yaml:"version,omitempty"`
	Methods []SnapshotBody `yaml:"methods"`
}

// SnapshotBody is the body of one method in a snapshot
type SnapshotBody struct {
	Method MethodRef `yaml:"method"`
	Body   Body      `yaml:"body"`
}

// MethodRef is a method identity serialized as Owner::Name(Params)
type MethodRef struct {
	il.MethodID
}

func (m MethodRef) MarshalYAML() (any, error) {
	return m.MethodID.String(), nil
}

func (m *MethodRef) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}

	id, err := il.ParseMethodID(text)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	m.MethodID = id
	return nil
}

// Body is an instruction stream serialized as a block of listing lines
type Body struct {
	il.Stream
}

func (b Body) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.LiteralStyle,
		Tag:   "!!str",
		Value: strings.Join(b.Stream.Lines(), "\n") + "\n",
	}, nil
}

func (b *Body) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}

	// No line length limit: ldstr operands can be arbitrarily long
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		lines = append(lines, line)
	}

	stream, err := il.ParseStream(lines)
	if err != nil {
		return fmt.Errorf("body at line %d: %w", node.Line, err)
	}

	b.Stream = stream
	return nil
}

// NewSnapshot creates an empty snapshot of the given host version
func NewSnapshot(host, version string) *Snapshot {
	return &Snapshot{Host: host, Version: version}
}

// Add appends a method body to the snapshot
func (s *Snapshot) Add(method il.MethodID, body il.Stream) *Snapshot {
	s.Methods = append(s.Methods, SnapshotBody{Method: MethodRef{method}, Body: Body{body}})
	return s
}

// Validate checks the snapshot has no duplicated methods
func (s *Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Methods))

	for _, method := range s.Methods {
		if seen[method.Method.Key()] {
			return utils.MakeError(ErrInvalidSnapshot, "method %v defined twice", method.Method.MethodID)
		}
		seen[method.Method.Key()] = true
	}

	return nil
}

// MemoryHost returns an in-memory host defining the methods of the snapshot
func (s *Snapshot) MemoryHost() (*MemoryHost, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	h := NewMemoryHost()
	for _, method := range s.Methods {
		h.Define(method.Method.MethodID, method.Body.Stream)
	}

	return h, nil
}

// Write serializes the snapshot as YAML
func (s *Snapshot) Write(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(s); err != nil {
		return err
	}

	return encoder.Close()
}

// Save writes the snapshot to a YAML file
func (s *Snapshot) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := s.Write(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// ReadSnapshot parses a YAML snapshot. Unknown fields are rejected
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var s Snapshot
	if err := decoder.Decode(&s); err != nil {
		return nil, utils.MakeError(ErrInvalidSnapshot, "%v", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// LoadSnapshot reads a YAML snapshot file
func LoadSnapshot(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := ReadSnapshot(file)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	return s, nil
}

// SnapshotOf captures the current bodies of all methods of an in-memory host
func SnapshotOf(h *MemoryHost, host, version string) (*Snapshot, error) {
	s := NewSnapshot(host, version)

	for _, method := range h.Methods() {
		body, err := h.Current(method)
		if err != nil {
			return nil, err
		}
		s.Add(method, body)
	}

	return s, nil
}
