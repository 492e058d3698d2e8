package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/reference-data-service/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DepartmentRequest is the create/update payload. ID is accepted for
// compatibility with clients that echo records back, but it is never used.
type DepartmentRequest struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name" validate:"required,max=255"`
}

// Normalize trims surrounding whitespace from the name.
func (r *DepartmentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// Validate enforces the struct tags and returns field name -> failed rule.
func (r *DepartmentRequest) Validate() map[string]any {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	details := map[string]any{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details[strings.ToLower(fe.Field())] = fe.Tag()
		}
		return details
	}
	details["payload"] = err.Error()
	return details
}

// DepartmentResponse is the JSON shape of a stored department.
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewDepartmentResponse maps the domain record.
func NewDepartmentResponse(dept *domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: dept.ID, Name: dept.Name}
}

// SortOrderResponse describes one applied sort criterion.
type SortOrderResponse struct {
	Property   string `json:"property"`
	Direction  string `json:"direction"`
	Ascending  bool   `json:"ascending"`
	Descending bool   `json:"descending"`
}

// PageResponse is the list envelope.
type PageResponse[T any] struct {
	Content          []T                 `json:"content"`
	TotalElements    int64               `json:"totalElements"`
	TotalPages       int                 `json:"totalPages"`
	Size             int                 `json:"size"`
	Number           int                 `json:"number"`
	NumberOfElements int                 `json:"numberOfElements"`
	First            bool                `json:"first"`
	Last             bool                `json:"last"`
	Sort             []SortOrderResponse `json:"sort"`
}

// NewDepartmentPageResponse maps a domain page; sort is null when unsorted.
func NewDepartmentPageResponse(page domain.Page[domain.Department]) PageResponse[DepartmentResponse] {
	content := make([]DepartmentResponse, 0, len(page.Items))
	for i := range page.Items {
		content = append(content, NewDepartmentResponse(&page.Items[i]))
	}

	var sort []SortOrderResponse
	for _, o := range page.Request.Sort {
		sort = append(sort, SortOrderResponse{
			Property:   o.Property,
			Direction:  string(o.Direction),
			Ascending:  o.Direction != domain.Descending,
			Descending: o.Direction == domain.Descending,
		})
	}

	return PageResponse[DepartmentResponse]{
		Content:          content,
		TotalElements:    page.Total,
		TotalPages:       page.TotalPages(),
		Size:             page.Request.Size,
		Number:           page.Request.Page,
		NumberOfElements: page.NumberOfElements(),
		First:            page.IsFirst(),
		Last:             page.IsLast(),
		Sort:             sort,
	}
}
