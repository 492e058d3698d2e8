package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/reference-data-service/internal/api/http/handlers"
	"github.com/spec-kit/reference-data-service/internal/observability"
)

// Route is one entry of the route table. Routes with a Doc appear in the API description.
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
	Doc     *RouteDoc
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Departments *handlers.DepartmentHandler
	Metrics     *observability.Metrics
	Info        APIInfo
}

// AppConfig bundles everything NewApp needs.
type AppConfig struct {
	Name           string
	RequestTimeout time.Duration
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Routes         RouteConfig
}

// NewApp builds the fiber application with middlewares and routes attached.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, cfg.Logger, cfg.Metrics, cfg.RequestTimeout)
	RegisterRoutes(app, cfg.Routes)
	return app
}

var idParam = ParamDoc{Name: "id", In: "path", Type: "integer", Format: "int64", Description: "department id"}

// DepartmentRoutes is the route table of the department resource.
func DepartmentRoutes(h *handlers.DepartmentHandler) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/department", Handler: h.List, Doc: &RouteDoc{
			OperationID: "findAll",
			Summary:     "Find all departments",
			Params: []ParamDoc{
				{Name: "page", In: "query", Type: "integer", Format: "int32", Description: "zero-based page index"},
				{Name: "size", In: "query", Type: "integer", Format: "int32", Description: "page size"},
				{Name: "sort", In: "query", Type: "string", Multi: true, Description: "property[,property][,asc|desc]"},
			},
			Responses: []ResponseDoc{
				{Status: http.StatusOK, Description: "page of departments", Schema: "PageOfDepartment"},
				{Status: http.StatusBadRequest, Description: "unsupported sort property", Schema: "Error"},
			},
		}},
		{Method: http.MethodGet, Path: "/department/:id", Handler: h.Get, Doc: &RouteDoc{
			OperationID: "findById",
			Summary:     "Find a specific department",
			Params:      []ParamDoc{idParam},
			Responses: []ResponseDoc{
				{Status: http.StatusOK, Description: "department", Schema: "Department"},
				{Status: http.StatusNotFound, Description: "no department with this id"},
			},
		}},
		{Method: http.MethodPost, Path: "/department", Handler: h.Create, Doc: &RouteDoc{
			OperationID: "create",
			Summary:     "Create a department",
			Body:        "DepartmentRequest",
			Responses: []ResponseDoc{
				{Status: http.StatusCreated, Description: "created department", Schema: "Department", Headers: []string{"Location"}},
				{Status: http.StatusBadRequest, Description: "invalid payload", Schema: "Error"},
			},
		}},
		{Method: http.MethodPut, Path: "/department/:id", Handler: h.Update, Doc: &RouteDoc{
			OperationID: "update",
			Summary:     "Rename a department",
			Params:      []ParamDoc{idParam},
			Body:        "DepartmentRequest",
			Responses: []ResponseDoc{
				{Status: http.StatusOK, Description: "updated department", Schema: "Department"},
				{Status: http.StatusBadRequest, Description: "invalid payload", Schema: "Error"},
				{Status: http.StatusNotFound, Description: "no department with this id"},
			},
		}},
		{Method: http.MethodDelete, Path: "/department/:id", Handler: h.Delete, Doc: &RouteDoc{
			OperationID: "deleteById",
			Summary:     "Delete a department",
			Params:      []ParamDoc{idParam},
			Responses: []ResponseDoc{
				{Status: http.StatusNoContent, Description: "deleted or never existed"},
			},
		}},
	}
}

// RegisterRoutes wires HTTP routes and serves the API description built from them.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) []Route {
	routes := []Route{
		{Method: http.MethodGet, Path: "/health/live", Handler: cfg.Health.Live},
		{Method: http.MethodGet, Path: "/health/ready", Handler: cfg.Health.Ready},
	}
	if cfg.Metrics != nil {
		routes = append(routes, Route{Method: http.MethodGet, Path: "/metrics", Handler: cfg.Metrics.Handler()})
	}
	routes = append(routes, DepartmentRoutes(cfg.Departments)...)

	doc := BuildSwagger(cfg.Info, routes)
	routes = append(routes, Route{Method: http.MethodGet, Path: "/v2/api-docs", Handler: func(c *fiber.Ctx) error {
		return c.JSON(doc)
	}})

	for _, r := range routes {
		app.Add(r.Method, r.Path, r.Handler)
	}
	return routes
}
