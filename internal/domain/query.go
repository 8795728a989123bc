package domain

const (
	// ProjectsTable is the name of the hosted table holding projects.
	ProjectsTable = "projects"

	// FeaturedLimit caps the landing-page preview.
	FeaturedLimit = 3
)

// Filter is a column equality condition.
type Filter struct {
	Column string
	Value  any
}

// TableQuery describes a single read against a hosted table.
// A Limit of zero or less means no limit.
type TableQuery struct {
	Table      string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Where returns a copy of q with an additional equality filter.
func (q TableQuery) Where(column string, value any) TableQuery {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, q.Filters...)
	q.Filters = append(filters, Filter{Column: column, Value: value})
	return q
}

// AllProjectsQuery selects every project, newest first.
func AllProjectsQuery() TableQuery {
	return TableQuery{
		Table:      ProjectsTable,
		OrderBy:    "created_at",
		Descending: true,
	}
}

// FeaturedProjectsQuery selects up to limit featured projects, newest first.
func FeaturedProjectsQuery(limit int) TableQuery {
	q := AllProjectsQuery().Where("featured", true)
	q.Limit = limit
	return q
}
