package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// parseRequestSchema mirrors the original endpoint contract: an object with
// a required string field "fdd". Extra fields are ignored.
const parseRequestSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["fdd"],
	"properties": {
		"fdd": {"type": "string"}
	}
}`

var parseSchema = mustSchema(parseRequestSchema)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// ParseRequest is the body of the parse endpoints.
type ParseRequest struct {
	FDD string `json:"fdd"`
}

var errInvalidJSON = errors.New("request body is not valid JSON")

// ValidationError lists schema violations in a request body.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request body failed validation: %d error(s)", len(e.Details))
}

// decodeParseRequest validates body against the request schema and decodes
// it. It returns errInvalidJSON or a *ValidationError on bad input.
func decodeParseRequest(body []byte) (ParseRequest, error) {
	if !json.Valid(body) {
		return ParseRequest{}, errInvalidJSON
	}

	result, err := parseSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return ParseRequest{}, fmt.Errorf("validate request: %w", err)
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, desc := range result.Errors() {
			verr.Details = append(verr.Details, desc.String())
		}
		return ParseRequest{}, verr
	}

	var req ParseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ParseRequest{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}
