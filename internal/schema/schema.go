// Package schema compiles the externally-defined registry schema documents
// once at startup and applies them per entry. A missing or malformed schema
// file is a fatal startup condition, never a per-entry finding.
package schema

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CompileError is the fatal startup error produced when a schema document
// cannot be loaded or compiled.
type CompileError struct {
	Path string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("schema %s failed to compile: %v", e.Path, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Set holds the compiled validators the orchestrator depends on.
type Set struct {
	token   *jsonschema.Schema
	project *jsonschema.Schema
}

// Compile loads both schema documents. Any failure is returned as a
// *CompileError so callers can distinguish it from validation failures.
func Compile(tokenPath, projectPath string) (*Set, error) {
	c := jsonschema.NewCompiler()
	token, err := c.Compile(tokenPath)
	if err != nil {
		return nil, &CompileError{Path: tokenPath, Err: err}
	}
	project, err := c.Compile(projectPath)
	if err != nil {
		return nil, &CompileError{Path: projectPath, Err: err}
	}
	return &Set{token: token, project: project}, nil
}

// ValidateToken applies the token schema to a parsed document.
func (s *Set) ValidateToken(doc interface{}) error {
	return s.token.Validate(doc)
}

// ValidateProject applies the contract-project schema to a parsed document.
func (s *Set) ValidateProject(doc interface{}) error {
	return s.project.Validate(doc)
}
