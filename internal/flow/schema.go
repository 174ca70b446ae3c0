package flow

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhisek/tutorflow/internal/llm"
)

var printer = message.NewPrinter(language.English)

// check validates raw against schema and converts any failure into a
// SchemaValidationError for the given stage.
func check(flowName string, stage Stage, schema *llm.Schema, raw json.RawMessage) error {
	err := llm.Validate(schema, raw)
	if err == nil {
		return nil
	}

	svErr := &SchemaValidationError{
		Flow:       flowName,
		Stage:      stage,
		Constraint: "json",
		Message:    err.Error(),
		Err:        err,
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return svErr
	}
	svErr.Field, svErr.Constraint, svErr.Message = describe(ve)
	return svErr
}

// describe reduces a validation error tree to its first leaf: the JSON
// pointer of the failing value, the keyword that failed and a message.
func describe(ve *jsonschema.ValidationError) (field, constraint, msg string) {
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	field = "/" + strings.Join(leaf.InstanceLocation, "/")
	if req, ok := leaf.ErrorKind.(*kind.Required); ok && len(req.Missing) > 0 {
		field = strings.TrimSuffix(field, "/") + "/" + req.Missing[0]
	}

	constraint = "schema"
	if path := leaf.ErrorKind.KeywordPath(); len(path) > 0 {
		constraint = path[len(path)-1]
	}
	return field, constraint, leaf.ErrorKind.LocalizedString(printer)
}
