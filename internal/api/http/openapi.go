package http

import (
	"net/http"
	"regexp"

	"github.com/go-openapi/spec"
)

// APIInfo is the header of the generated API description.
type APIInfo struct {
	Title       string
	Description string
	Version     string
	Tag         string
	TagDetail   string
}

// RouteDoc describes a documented route. Schema names refer to Definitions().
type RouteDoc struct {
	OperationID string
	Summary     string
	Params      []ParamDoc
	Body        string
	Responses   []ResponseDoc
}

// ParamDoc describes a path or query parameter.
type ParamDoc struct {
	Name        string
	In          string
	Type        string
	Format      string
	Description string
	Multi       bool
}

// ResponseDoc describes one status code of a route.
type ResponseDoc struct {
	Status      int
	Description string
	Schema      string
	Headers     []string
}

var fiberParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// BuildSwagger renders the documented routes as a Swagger 2.0 document.
func BuildSwagger(info APIInfo, routes []Route) *spec.Swagger {
	paths := map[string]spec.PathItem{}
	for _, r := range routes {
		if r.Doc == nil {
			continue
		}
		path := fiberParam.ReplaceAllString(r.Path, "{$1}")
		item := paths[path]
		op := buildOperation(info.Tag, r.Doc)
		switch r.Method {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		case http.MethodPut:
			item.Put = op
		case http.MethodDelete:
			item.Delete = op
		case http.MethodPatch:
			item.Patch = op
		}
		paths[path] = item
	}

	return &spec.Swagger{SwaggerProps: spec.SwaggerProps{
		Swagger:  "2.0",
		BasePath: "/",
		Info: &spec.Info{InfoProps: spec.InfoProps{
			Title:       info.Title,
			Description: info.Description,
			Version:     info.Version,
		}},
		Consumes:    []string{"application/json"},
		Produces:    []string{"application/json"},
		Paths:       &spec.Paths{Paths: paths},
		Definitions: Definitions(),
		Tags:        []spec.Tag{spec.NewTag(info.Tag, info.TagDetail, nil)},
	}}
}

func buildOperation(tag string, doc *RouteDoc) *spec.Operation {
	op := spec.NewOperation(doc.OperationID).
		WithSummary(doc.Summary).
		WithTags(tag).
		WithProduces("application/json")

	for _, p := range doc.Params {
		var param *spec.Parameter
		switch p.In {
		case "path":
			param = spec.PathParam(p.Name)
		default:
			param = spec.QueryParam(p.Name)
		}
		if p.Multi {
			param = param.CollectionOf(spec.NewItems().Typed(p.Type, p.Format), "multi")
		} else {
			param = param.Typed(p.Type, p.Format)
		}
		op.AddParam(param.WithDescription(p.Description))
	}

	if doc.Body != "" {
		op.WithConsumes("application/json")
		op.AddParam(spec.BodyParam("body", spec.RefSchema("#/definitions/"+doc.Body)).AsRequired())
	}

	for _, r := range doc.Responses {
		resp := spec.NewResponse().WithDescription(r.Description)
		if r.Schema != "" {
			resp.WithSchema(spec.RefSchema("#/definitions/" + r.Schema))
		}
		for _, h := range r.Headers {
			resp.AddHeader(h, spec.ResponseHeader().Typed("string", ""))
		}
		op.RespondsWith(r.Status, resp)
	}
	return op
}

// Definitions are the hand-authored schemas referenced by the route table.
func Definitions() spec.Definitions {
	department := spec.Schema{}
	department.Typed("object", "").
		SetProperty("id", *spec.Int64Property().WithDescription("server-assigned identifier")).
		SetProperty("name", *spec.StringProperty().WithMaxLength(255)).
		WithRequired("id", "name")

	request := spec.Schema{}
	request.Typed("object", "").
		SetProperty("name", *spec.StringProperty().WithMinLength(1).WithMaxLength(255)).
		WithRequired("name")

	sortOrder := spec.Schema{}
	sortOrder.Typed("object", "").
		SetProperty("property", *spec.StringProperty()).
		SetProperty("direction", *spec.StringProperty().WithEnum("ASC", "DESC")).
		SetProperty("ascending", *spec.BoolProperty()).
		SetProperty("descending", *spec.BoolProperty())

	page := spec.Schema{}
	page.Typed("object", "").
		SetProperty("content", *spec.ArrayProperty(spec.RefSchema("#/definitions/Department"))).
		SetProperty("totalElements", *spec.Int64Property()).
		SetProperty("totalPages", *spec.Int32Property()).
		SetProperty("size", *spec.Int32Property()).
		SetProperty("number", *spec.Int32Property()).
		SetProperty("numberOfElements", *spec.Int32Property()).
		SetProperty("first", *spec.BoolProperty()).
		SetProperty("last", *spec.BoolProperty()).
		SetProperty("sort", *spec.ArrayProperty(spec.RefSchema("#/definitions/SortOrder")))

	errorBody := spec.Schema{}
	errorBody.Typed("object", "").
		SetProperty("code", *spec.StringProperty()).
		SetProperty("message", *spec.StringProperty()).
		SetProperty("details", *spec.MapProperty(nil))
	errorEnvelope := spec.Schema{}
	errorEnvelope.Typed("object", "").SetProperty("error", errorBody)

	return spec.Definitions{
		"Department":        department,
		"DepartmentRequest": request,
		"SortOrder":         sortOrder,
		"PageOfDepartment":  page,
		"Error":             errorEnvelope,
	}
}
