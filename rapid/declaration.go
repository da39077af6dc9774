package rapid

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidDeclaration is returned when a RAPID data declaration cannot be parsed.
var ErrInvalidDeclaration = errors.New("invalid RAPID declaration")

// Scope is the visibility of a RAPID data declaration.
type Scope string

// The RAPID scopes. Global declarations have no keyword.
const (
	ScopeGlobal = Scope("GLOBAL")
	ScopeLocal  = Scope("LOCAL")
	ScopeTask   = Scope("TASK")
)

// VariableType is the storage class of a RAPID data declaration.
type VariableType string

// The RAPID storage classes.
const (
	VariableTypeVar   = VariableType("VAR")
	VariableTypeConst = VariableType("CONST")
	VariableTypePers  = VariableType("PERS")
)

// ParseScope parses a scope keyword in any case; an empty string is global.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToUpper(strings.TrimSpace(s))) {
	case ScopeGlobal, "":
		return ScopeGlobal, nil
	case ScopeLocal:
		return ScopeLocal, nil
	case ScopeTask:
		return ScopeTask, nil
	default:
		return ScopeGlobal, errors.Wrapf(ErrInvalidDeclaration, "unknown scope %q", s)
	}
}

// ParseVariableType parses a storage class keyword in any case; an empty string is VAR.
func ParseVariableType(s string) (VariableType, error) {
	switch VariableType(strings.ToUpper(strings.TrimSpace(s))) {
	case VariableTypeVar, "":
		return VariableTypeVar, nil
	case VariableTypeConst:
		return VariableTypeConst, nil
	case VariableTypePers:
		return VariableTypePers, nil
	default:
		return VariableTypeVar, errors.Wrapf(ErrInvalidDeclaration, "unknown variable type %q", s)
	}
}

// UnmarshalJSON accepts any case and defaults to global.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseScope(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalJSON accepts any case and defaults to VAR.
func (v *VariableType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseVariableType(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Declaration is a RAPID data declaration: [LOCAL|TASK] VAR|CONST|PERS <datatype> <name> := <value>;
type Declaration struct {
	Scope        Scope
	VariableType VariableType
	DataType     string
	Name         string
	Value        string
}

// String formats the declaration as a RAPID statement.
func (d Declaration) String() string {
	var sb strings.Builder
	if d.Scope != ScopeGlobal && d.Scope != "" {
		sb.WriteString(string(d.Scope))
		sb.WriteString(" ")
	}
	vt := d.VariableType
	if vt == "" {
		vt = VariableTypeVar
	}
	sb.WriteString(string(vt))
	sb.WriteString(" ")
	sb.WriteString(d.DataType)
	sb.WriteString(" ")
	sb.WriteString(d.Name)
	sb.WriteString(" := ")
	sb.WriteString(d.Value)
	sb.WriteString(";")
	return sb.String()
}

// ParseDeclaration parses a single RAPID data declaration. The trailing semicolon is optional.
func ParseDeclaration(text string) (Declaration, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
	head, value, found := strings.Cut(text, ":=")
	if !found {
		return Declaration{}, errors.Wrapf(ErrInvalidDeclaration, "missing := in %q", text)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Declaration{}, errors.Wrapf(ErrInvalidDeclaration, "missing value in %q", text)
	}

	fields := strings.Fields(head)
	decl := Declaration{Scope: ScopeGlobal, Value: value}
	if len(fields) == 4 {
		scope, err := ParseScope(fields[0])
		if err != nil {
			return Declaration{}, err
		}
		if scope == ScopeGlobal {
			return Declaration{}, errors.Wrapf(ErrInvalidDeclaration, "unknown scope %q", fields[0])
		}
		decl.Scope = scope
		fields = fields[1:]
	}
	if len(fields) != 3 {
		return Declaration{}, errors.Wrapf(ErrInvalidDeclaration, "expected [scope] type datatype name in %q", head)
	}
	vt, err := ParseVariableType(fields[0])
	if err != nil {
		return Declaration{}, err
	}
	decl.VariableType = vt
	decl.DataType = fields[1]
	decl.Name = fields[2]
	return decl, nil
}

func parseTypedDeclaration(text, dataType string) (Declaration, Literal, error) {
	decl, err := ParseDeclaration(text)
	if err != nil {
		return Declaration{}, Literal{}, err
	}
	if !strings.EqualFold(decl.DataType, dataType) {
		return Declaration{}, Literal{}, errors.Wrapf(ErrInvalidDeclaration, "expected %s, got %s", dataType, decl.DataType)
	}
	lit, err := ParseLiteral(decl.Value)
	if err != nil {
		return Declaration{}, Literal{}, errors.Wrapf(err, "declaration of %s", decl.Name)
	}
	return decl, lit, nil
}
