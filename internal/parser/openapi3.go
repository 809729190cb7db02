package parser

import (
	"strings"

	"github.com/GabrielNunesIT/openapi-report/internal/document"
	"github.com/GabrielNunesIT/openapi-report/internal/domain"
)

// OpenAPIV3Parser normalizes OpenAPI 3.0 and 3.1 documents.
type OpenAPIV3Parser struct {
	doc     *document.Node
	schemas schemaNormalizer
}

var _ SpecParser = (*OpenAPIV3Parser)(nil)

// NewOpenAPIV3Parser creates a parser for an OpenAPI 3.x document.
func NewOpenAPIV3Parser(doc *document.Node) *OpenAPIV3Parser {
	return &OpenAPIV3Parser{doc: doc, schemas: schemaNormalizer{unions: true}}
}

// Version returns openapi-3.1 for 3.1.x documents and openapi-3.0 otherwise.
func (p *OpenAPIV3Parser) Version() domain.SpecVersion {
	if strings.HasPrefix(p.doc.Get("openapi").Str(), "3.1") {
		return domain.VersionOpenAPI31
	}
	return domain.VersionOpenAPI30
}

// IsValidSpec checks the openapi marker and the info and paths objects.
func (p *OpenAPIV3Parser) IsValidSpec() bool {
	return strings.HasPrefix(p.doc.Get("openapi").Str(), "3.") &&
		p.doc.Has("info") &&
		p.doc.Has("paths")
}

// Normalize builds the dialect-neutral spec.
func (p *OpenAPIV3Parser) Normalize() *domain.APISpec {
	var operations []domain.Operation

	for _, pathEntry := range p.doc.Get("paths").Entries() {
		item := pathEntry.Value
		shared := item.Get("parameters").Items()

		for _, methodEntry := range item.Entries() {
			if !isMethod(methodEntry.Key, openAPIMethods) || !methodEntry.Value.IsMap() {
				continue
			}
			operations = append(operations, p.normalizeOperation(methodEntry.Key, pathEntry.Key, methodEntry.Value, shared))
		}
	}

	var servers []domain.Server
	for _, s := range p.doc.Get("servers").Items() {
		servers = append(servers, domain.Server{
			URL:         s.Get("url").Str(),
			Description: s.Get("description").Str(),
		})
	}

	return &domain.APISpec{
		Version:    p.Version(),
		Info:       normalizeInfo(p.doc),
		Servers:    servers,
		Operations: operations,
		Schemas:    p.schemas.normalizeDefinitions(p.doc.Get("components").Get("schemas")),
		Tags:       normalizeTags(p.doc),
	}
}

func (p *OpenAPIV3Parser) normalizeOperation(method, path string, op *document.Node, shared []*document.Node) domain.Operation {
	operation := domain.Operation{
		Method:      strings.ToUpper(method),
		Path:        path,
		OperationID: op.Get("operationId").Str(),
		Summary:     op.Get("summary").Str(),
		Description: op.Get("description").Str(),
		Tags:        op.Get("tags").Strings(),
		Deprecated:  op.Get("deprecated").Bool(),
	}

	for _, param := range mergeParameters(p.doc, shared, op.Get("parameters").Items()) {
		operation.Parameters = append(operation.Parameters, p.normalizeParameter(param))
	}

	if op.Has("requestBody") {
		operation.RequestBody = p.normalizeRequestBody(op.Get("requestBody"))
	}

	for _, e := range op.Get("responses").Entries() {
		resp := resolveLocal(p.doc, e.Value)
		if resp == nil {
			continue
		}
		mediaType, schema := p.primaryContent(resp.Get("content"))
		operation.Responses = append(operation.Responses, domain.Response{
			StatusCode:  e.Key,
			Description: resp.Get("description").Str(),
			Schema:      schema,
			MediaType:   mediaType,
		})
	}

	return operation
}

func (p *OpenAPIV3Parser) normalizeParameter(param *document.Node) domain.Parameter {
	schema := p.schemas.normalize(param.Get("schema"))
	if schema == nil && param.Has("content") {
		_, schema = p.primaryContent(param.Get("content"))
	}

	return domain.Parameter{
		Name:        param.Get("name").Str(),
		In:          param.Get("in").Str(),
		Description: param.Get("description").Str(),
		Required:    param.Get("required").Bool(),
		Schema:      schema,
	}
}

func (p *OpenAPIV3Parser) normalizeRequestBody(node *document.Node) *domain.RequestBody {
	body := resolveLocal(p.doc, node)
	if body == nil {
		return nil
	}

	mediaType, schema := p.primaryContent(body.Get("content"))
	if mediaType == "" {
		mediaType = defaultMediaType
	}

	return &domain.RequestBody{
		Description: body.Get("description").Str(),
		Required:    body.Get("required").Bool(),
		Schema:      schema,
		MediaType:   mediaType,
	}
}

// primaryContent selects one media type of a content map and normalizes its
// schema. Other media types are dropped.
func (p *OpenAPIV3Parser) primaryContent(content *document.Node) (string, *domain.Schema) {
	if !content.IsMap() {
		return "", nil
	}
	mediaType := MainMediaType(contentTypes(content))
	return mediaType, p.schemas.normalize(content.Get(mediaType).Get("schema"))
}
