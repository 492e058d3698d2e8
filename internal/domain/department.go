package domain

// Department represents a high-level organizational unit.
type Department struct {
	ID   int64
	Name string
}

// Sortable department properties.
const (
	DepartmentPropertyID   = "id"
	DepartmentPropertyName = "name"
)

// IsSortableDepartmentProperty reports whether lists may be ordered by prop.
func IsSortableDepartmentProperty(prop string) bool {
	switch prop {
	case DepartmentPropertyID, DepartmentPropertyName:
		return true
	}
	return false
}
