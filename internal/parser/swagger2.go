package parser

import (
	"fmt"
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/document"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
)

// SwaggerV2Parser normalizes Swagger 2.0 documents.
type SwaggerV2Parser struct {
	doc     *document.Node
	schemas schemaNormalizer
}

var _ SpecParser = (*SwaggerV2Parser)(nil)

// NewSwaggerV2Parser creates a parser for a Swagger 2.0 document.
func NewSwaggerV2Parser(doc *document.Node) *SwaggerV2Parser {
	return &SwaggerV2Parser{doc: doc}
}

// Version returns the dialect tag.
func (p *SwaggerV2Parser) Version() domain.SpecVersion {
	return domain.VersionSwagger20
}

// IsValidSpec checks the swagger marker and the info and paths objects.
func (p *SwaggerV2Parser) IsValidSpec() bool {
	return p.doc.Get("swagger").Str() == "2.0" &&
		p.doc.Has("info") &&
		p.doc.Has("paths")
}

// Normalize builds the dialect-neutral spec.
func (p *SwaggerV2Parser) Normalize() *domain.APISpec {
	var operations []domain.Operation

	for _, pathEntry := range p.doc.Get("paths").Entries() {
		item := pathEntry.Value
		shared := item.Get("parameters").Items()

		for _, methodEntry := range item.Entries() {
			if !isMethod(methodEntry.Key, swaggerMethods) || !methodEntry.Value.IsMap() {
				continue
			}
			operations = append(operations, p.normalizeOperation(methodEntry.Key, pathEntry.Key, methodEntry.Value, shared))
		}
	}

	return &domain.APISpec{
		Version:    p.Version(),
		Info:       normalizeInfo(p.doc),
		Servers:    p.normalizeServers(),
		Operations: operations,
		Schemas:    p.schemas.normalizeDefinitions(p.doc.Get("definitions")),
		Tags:       normalizeTags(p.doc),
	}
}

func (p *SwaggerV2Parser) normalizeOperation(method, path string, op *document.Node, shared []*document.Node) domain.Operation {
	params := mergeParameters(p.doc, shared, op.Get("parameters").Items())

	operation := domain.Operation{
		Method:      strings.ToUpper(method),
		Path:        path,
		OperationID: op.Get("operationId").Str(),
		Summary:     op.Get("summary").Str(),
		Description: op.Get("description").Str(),
		Tags:        op.Get("tags").Strings(),
		Deprecated:  op.Get("deprecated").Bool(),
	}

	for _, param := range params {
		if param.Get("in").Str() == domain.InBody {
			// The first body parameter becomes the request body.
			if operation.RequestBody == nil {
				operation.RequestBody = p.normalizeRequestBody(op, param)
			}
			continue
		}
		operation.Parameters = append(operation.Parameters, p.normalizeParameter(param))
	}

	operation.Responses = p.normalizeResponses(op)

	return operation
}

func (p *SwaggerV2Parser) normalizeParameter(param *document.Node) domain.Parameter {
	var schema *domain.Schema
	if param.Has("schema") {
		schema = p.schemas.normalize(param.Get("schema"))
	} else {
		// Non-body parameters describe their type inline.
		schema = p.schemas.normalize(param)
		schema.Description = ""
		schema.Required = false
		if schema.Type == "" {
			schema.Type = "string"
		}
	}

	return domain.Parameter{
		Name:        param.Get("name").Str(),
		In:          mapSwaggerLocation(param.Get("in").Str()),
		Description: param.Get("description").Str(),
		Required:    param.Get("required").Bool(),
		Schema:      schema,
	}
}

func (p *SwaggerV2Parser) normalizeRequestBody(op, param *document.Node) *domain.RequestBody {
	return &domain.RequestBody{
		Description: param.Get("description").Str(),
		Required:    param.Get("required").Bool(),
		Schema:      p.schemas.normalize(param.Get("schema")),
		MediaType:   MainMediaType(p.mediaTypes(op, "consumes")),
	}
}

func (p *SwaggerV2Parser) normalizeResponses(op *document.Node) []domain.Response {
	mediaType := MainMediaType(p.mediaTypes(op, "produces"))

	var responses []domain.Response
	for _, e := range op.Get("responses").Entries() {
		resp := resolveLocal(p.doc, e.Value)
		if resp == nil {
			continue
		}
		responses = append(responses, domain.Response{
			StatusCode:  e.Key,
			Description: resp.Get("description").Str(),
			Schema:      p.schemas.normalize(resp.Get("schema")),
			MediaType:   mediaType,
		})
	}
	return responses
}

// mediaTypes returns the operation-level list, falling back to the document-level one.
func (p *SwaggerV2Parser) mediaTypes(op *document.Node, key string) []string {
	if op.Has(key) {
		return op.Get(key).Strings()
	}
	return p.doc.Get(key).Strings()
}

func (p *SwaggerV2Parser) normalizeServers() []domain.Server {
	host := p.doc.Get("host").Str()
	if host == "" {
		return nil
	}

	scheme := "https"
	if schemes := p.doc.Get("schemes").Strings(); len(schemes) > 0 {
		scheme = schemes[0]
	}

	return []domain.Server{{
		URL:         fmt.Sprintf("%s://%s%s", scheme, host, p.doc.Get("basePath").Str()),
		Description: "API Server",
	}}
}

func mapSwaggerLocation(in string) string {
	switch in {
	case domain.InQuery, domain.InHeader, domain.InPath, domain.InFormData, domain.InBody:
		return in
	default:
		return domain.InQuery
	}
}
