package il

import (
	"errors"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/utils"
)

var ErrInvalidMethodID = errors.New("invalid method identifier")

// MethodID identifies a host method by its owning type, name and parameter types
type MethodID struct {
	Owner  string
	Name   string
	Params []string
}

// Method creates a method identifier
func Method(owner, name string, params ...string) MethodID {
	return MethodID{Owner: owner, Name: name, Params: params}
}

// String returns the method identifier as Owner::Name(Param1,Param2)
func (m MethodID) String() string {
	return m.Owner + "::" + m.Name + "(" + strings.Join(m.Params, ",") + ")"
}

// Key returns a comparable key identifying the method
func (m MethodID) Key() string {
	return m.String()
}

// Equal returns true if both identifiers name the same method
func (m MethodID) Equal(other MethodID) bool {
	return m.Key() == other.Key()
}

// ParseMethodID parses a method identifier in the Owner::Name(Param1,Param2) format
func ParseMethodID(text string) (MethodID, error) {
	text = strings.TrimSpace(text)

	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return MethodID{}, utils.MakeError(ErrInvalidMethodID, "expected 'Owner::Name(Params)', got '%v'", text)
	}

	owner, name, found := strings.Cut(text[:open], "::")
	if !found || owner == "" || name == "" {
		return MethodID{}, utils.MakeError(ErrInvalidMethodID, "expected 'Owner::Name(Params)', got '%v'", text)
	}

	var params []string
	if paramsText := strings.TrimSpace(text[open+1 : len(text)-1]); paramsText != "" {
		for _, param := range strings.Split(paramsText, ",") {
			params = append(params, strings.TrimSpace(param))
		}
	}

	return MethodID{Owner: owner, Name: name, Params: params}, nil
}
