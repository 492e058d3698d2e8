package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/reference-data-service/internal/api/dto"
	"github.com/spec-kit/reference-data-service/internal/config"
	"github.com/spec-kit/reference-data-service/internal/domain"
	"github.com/spec-kit/reference-data-service/internal/service"
	apperrors "github.com/spec-kit/reference-data-service/pkg/util"
)

// DepartmentHandler exposes CRUD endpoints for departments.
type DepartmentHandler struct {
	service    *service.DepartmentService
	pagination config.PaginationConfig
	logger     *zap.Logger
}

// NewDepartmentHandler constructs handler.
func NewDepartmentHandler(departmentService *service.DepartmentService, pagination config.PaginationConfig, logger *zap.Logger) *DepartmentHandler {
	return &DepartmentHandler{service: departmentService, pagination: pagination, logger: logger}
}

// List GET /department.
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	req, err := h.parsePageRequest(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentPageResponse(page))
}

// Get GET /department/:id.
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	dept, err := h.service.Get(c.UserContext(), id)
	if service.IsNotFound(err) {
		h.logger.Debug("no department found", zap.Int64("department_id", id))
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentResponse(dept))
}

// Create POST /department.
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	req, err := parseDepartmentRequest(c)
	if err != nil {
		return err
	}
	dept, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	c.Location(strings.TrimSuffix(c.Path(), "/") + "/" + strconv.FormatInt(dept.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(dto.NewDepartmentResponse(dept))
}

// Update PUT /department/:id.
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := parseDepartmentRequest(c)
	if err != nil {
		return err
	}
	dept, err := h.service.Update(c.UserContext(), id, req.Name)
	if service.IsNotFound(err) {
		h.logger.Debug("update of unknown department", zap.Int64("department_id", id))
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentResponse(dept))
}

// Delete DELETE /department/:id. Unknown ids also answer 204.
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	c.Status(fiber.StatusNoContent)
	return nil
}

// notFound answers 404 with an empty body.
func notFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("id must be an integer", map[string]any{"id": raw})
	}
	return id, nil
}

func parseDepartmentRequest(c *fiber.Ctx) (*dto.DepartmentRequest, error) {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if details := req.Validate(); details != nil {
		return nil, apperrors.NewValidationError("invalid payload", details)
	}
	return &req, nil
}

// parsePageRequest reads page, size and sort. Bad page or size values fall
// back to defaults; an unknown sort property is a client error.
func (h *DepartmentHandler) parsePageRequest(c *fiber.Ctx) (domain.PageRequest, error) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil || size < 1 {
		size = h.pagination.DefaultSize
	}
	if size > h.pagination.MaxSize {
		size = h.pagination.MaxSize
	}

	var sort domain.Sort
	for _, raw := range c.Context().QueryArgs().PeekMulti("sort") {
		orders, err := parseSortParam(string(raw))
		if err != nil {
			return domain.PageRequest{}, err
		}
		sort = append(sort, orders...)
	}
	return domain.PageRequest{Page: page, Size: size, Sort: sort}, nil
}

// parseSortParam accepts "prop[,prop...][,asc|desc]".
func parseSortParam(raw string) (domain.Sort, error) {
	var tokens []string
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	direction := domain.Ascending
	if dir, ok := domain.ParseDirection(tokens[len(tokens)-1]); ok {
		direction = dir
		tokens = tokens[:len(tokens)-1]
	}

	sort := make(domain.Sort, 0, len(tokens))
	for _, prop := range tokens {
		if !domain.IsSortableDepartmentProperty(prop) {
			return nil, apperrors.NewValidationError("unsupported sort property", map[string]any{"sort": prop})
		}
		sort = append(sort, domain.Order{Property: prop, Direction: direction})
	}
	return sort, nil
}
