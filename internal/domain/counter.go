package domain

// ChildTable identifies a high-churn table whose rows are counted on a parent.
type ChildTable string

const (
	ChildTableJobViews         ChildTable = "job_views"
	ChildTableApplications     ChildTable = "applications"
	ChildTableCompanyFollowers ChildTable = "company_followers"
	ChildTableJobs             ChildTable = "jobs"
)

func (t ChildTable) String() string { return string(t) }

func (t ChildTable) IsValid() bool {
	_, ok := counterBindings[t]
	return ok
}

// Counter is one denormalized column on a parent and the aggregate expression
// that recomputes it over the child rows of that parent.
type Counter struct {
	Column string
	Expr   string
}

// CounterBinding ties a child table to the parent row whose counters it feeds.
// Identifiers are static and never come from user input.
// DependsOn lists child columns, besides ParentKey, read by a counter filter;
// an update touching one of them changes the counters.
type CounterBinding struct {
	Child     ChildTable
	Parent    string
	ParentKey string
	Counters  []Counter
	DependsOn []string
}

// Columns returns the counter column names in declaration order.
func (b CounterBinding) Columns() []string {
	cols := make([]string, len(b.Counters))
	for i, c := range b.Counters {
		cols[i] = c.Column
	}
	return cols
}

var counterBindings = map[ChildTable]CounterBinding{
	ChildTableJobViews: {
		Child:     ChildTableJobViews,
		Parent:    "jobs",
		ParentKey: "job_id",
		Counters:  []Counter{{Column: "view_count", Expr: "COUNT(*)"}},
	},
	ChildTableApplications: {
		Child:     ChildTableApplications,
		Parent:    "jobs",
		ParentKey: "job_id",
		Counters:  []Counter{{Column: "applications_count", Expr: "COUNT(*)"}},
	},
	ChildTableCompanyFollowers: {
		Child:     ChildTableCompanyFollowers,
		Parent:    "companies",
		ParentKey: "company_id",
		Counters:  []Counter{{Column: "follower_count", Expr: "COUNT(*)"}},
	},
	ChildTableJobs: {
		Child:     ChildTableJobs,
		Parent:    "companies",
		ParentKey: "company_id",
		Counters: []Counter{
			{Column: "jobs_count", Expr: "COUNT(*)"},
			{Column: "active_jobs_count", Expr: "COUNT(*) FILTER (WHERE status = 'OPEN')"},
		},
		DependsOn: []string{"status"},
	},
}

// CounterBindingFor returns the binding registered for a child table.
func CounterBindingFor(t ChildTable) (CounterBinding, bool) {
	b, ok := counterBindings[t]
	return b, ok
}
