package zosmf

import (
	"context"
	"net/http"
	"net/url"
)

// SystemID addresses a system in the variable services, either the local
// system or a named sysplex member.
type SystemID struct {
	sysplex string
	system  string
	local   bool
}

// LocalSystem addresses the system serving the request.
func LocalSystem() SystemID {
	return SystemID{local: true}
}

// NamedSystem addresses a system by sysplex and system name.
func NamedSystem(sysplex, system string) SystemID {
	return SystemID{sysplex: sysplex, system: system}
}

// String renders the identifier as the path segment z/OSMF expects.
func (s SystemID) String() string {
	if s.local {
		return "local"
	}

	return url.PathEscape(s.sysplex + "." + s.system)
}

// Variable is one system variable.
type Variable struct {
	Name        string `json:"name"                  yaml:"name"`
	Value       string `json:"value"                 yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewVariable holds the fields for defining or updating a variable.
type NewVariable struct {
	Name        string `json:"name"                  yaml:"name"`
	Value       string `json:"value"                 yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// VariableList is the response of a variable list operation.
type VariableList struct {
	Items []Variable `json:"system-variable-list" yaml:"system-variable-list"`
}

// Symbol is one static system symbol of the local system.
type Symbol struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// SymbolList is the response of a symbol list operation.
type SymbolList struct {
	Items []Symbol `json:"system-symbol-list" yaml:"system-symbol-list"`
}

const variablesRoot = "/zosmf/variables/rest/1.0/systems"

// VariableListBuilder configures a variable list operation.
type VariableListBuilder struct {
	req Builder[VariableList]
}

// NewVariableListBuilder creates a list builder for the given system.
func NewVariableListBuilder(exec Executor, system SystemID) VariableListBuilder {
	return VariableListBuilder{
		req: NewBuilder[VariableList](exec, http.MethodGet, variablesRoot+"/"+system.String()),
	}
}

// Name restricts the listing to one variable.
func (b VariableListBuilder) Name(name string) VariableListBuilder {
	b.req = b.req.Query("var-name", name)

	return b
}

// Execute issues the list request.
func (b VariableListBuilder) Execute(ctx context.Context) (*VariableList, error) {
	return b.req.Execute(ctx)
}

// NewVariableCreateRequest builds the request for defining or updating
// variables on a system. Existing variables with matching names are updated
// in place.
func NewVariableCreateRequest(sysplex, system string, variables []NewVariable) *Request {
	return &Request{
		Method: http.MethodPost,
		Path:   variablesRoot + "/" + NamedSystem(sysplex, system).String(),
		Body:   map[string][]NewVariable{"system-variable-list": variables},
	}
}

// NewVariableDeleteRequest builds the request for removing variables by name.
// The wire body is a bare JSON array of name objects.
func NewVariableDeleteRequest(sysplex, system string, names []string) *Request {
	list := make([]map[string]string, 0, len(names))
	for _, name := range names {
		list = append(list, map[string]string{"name": name})
	}

	return &Request{
		Method: http.MethodDelete,
		Path:   variablesRoot + "/" + NamedSystem(sysplex, system).String(),
		Body:   list,
	}
}

// NewSymbolListRequest builds the request for listing the static system
// symbols of the local system.
func NewSymbolListRequest() *Request {
	query := url.Values{}
	query.Set("source", "symbol")

	return &Request{
		Method: http.MethodGet,
		Path:   variablesRoot + "/local",
		Query:  query,
	}
}
