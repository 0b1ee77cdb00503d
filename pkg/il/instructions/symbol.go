package instructions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/utils"
)

// SymbolKind indicates the kind of host entity a symbol reference points to
type SymbolKind uint

const (
	SymbolKind_Method SymbolKind = iota
	SymbolKind_Field
	SymbolKind_Type
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolKind_Method:
		return "method"
	case SymbolKind_Field:
		return "field"
	case SymbolKind_Type:
		return "type"
	}

	panic("unreachable")
}

var ErrInvalidSymbol = errors.New("invalid symbol reference")

// SymbolRef identifies a method, field or type of the host structurally, by owner, name and
// signature. Two references are the same symbol if all their fields are equal.
type SymbolRef struct {
	Kind      SymbolKind
	Owner     string // Declaring type. Empty for types
	Name      string
	Signature string // Comma separated parameter types. Methods only
}

// Method returns a method symbol reference
func Method(owner, name string, params ...string) SymbolRef {
	return SymbolRef{Kind: SymbolKind_Method, Owner: owner, Name: name, Signature: strings.Join(params, ",")}
}

// Field returns a field symbol reference
func Field(owner, name string) SymbolRef {
	return SymbolRef{Kind: SymbolKind_Field, Owner: owner, Name: name}
}

// Type returns a type symbol reference
func Type(name string) SymbolRef {
	return SymbolRef{Kind: SymbolKind_Type, Name: name}
}

// Returns the textual representation of the symbol, as accepted by ParseSymbol()
func (s SymbolRef) String() string {
	switch s.Kind {
	case SymbolKind_Method:
		return fmt.Sprintf("%s::%s(%s)", s.Owner, s.Name, s.Signature)
	case SymbolKind_Field:
		return fmt.Sprintf("field %s::%s", s.Owner, s.Name)
	case SymbolKind_Type:
		return fmt.Sprintf("type %s", s.Name)
	}

	panic("unreachable")
}

// Parses a symbol reference from its textual representation:
//
//	Owner::Name(Param1,Param2)  method
//	field Owner::Name           field
//	type Name                   type
func ParseSymbol(text string) (SymbolRef, error) {
	text = strings.TrimSpace(text)

	if name, ok := strings.CutPrefix(text, "type "); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return SymbolRef{}, utils.MakeError(ErrInvalidSymbol, "missing type name in '%v'", text)
		}
		return Type(name), nil
	}

	if qualified, ok := strings.CutPrefix(text, "field "); ok {
		owner, name, found := strings.Cut(strings.TrimSpace(qualified), "::")
		if !found || owner == "" || name == "" {
			return SymbolRef{}, utils.MakeError(ErrInvalidSymbol, "expected 'field Owner::Name', got '%v'", text)
		}
		return Field(owner, name), nil
	}

	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return SymbolRef{}, utils.MakeError(ErrInvalidSymbol, "expected 'Owner::Name(Params)', got '%v'", text)
	}

	owner, name, found := strings.Cut(text[:open], "::")
	if !found || owner == "" || name == "" {
		return SymbolRef{}, utils.MakeError(ErrInvalidSymbol, "expected 'Owner::Name(Params)', got '%v'", text)
	}

	return SymbolRef{
		Kind:      SymbolKind_Method,
		Owner:     owner,
		Name:      name,
		Signature: strings.ReplaceAll(text[open+1:len(text)-1], " ", ""),
	}, nil
}
