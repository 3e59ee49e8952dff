package dashboard

import (
	"context"
	"fmt"
)

// Researcher is a field researcher row on the Field Management page.
type Researcher struct {
	Name             string
	Email            string
	Role             string
	AssignedProjects int
	Status           string
}

// AssignedProject is a row of the field researcher's own dashboard.
type AssignedProject struct {
	Name      string
	Status    string
	Deadline  string
	Assigned  int
	Completed int
}

// ResearcherRoster lists researchers and their project assignments.
type ResearcherRoster interface {
	Researchers(ctx context.Context, limit int) ([]Researcher, int, error)
	AssignedProjects(ctx context.Context, viewer ViewerContext) ([]AssignedProject, error)
}

// StaticRoster serves fixed sample rows.
type StaticRoster struct {
	Rows     []Researcher
	Total    int
	Projects []AssignedProject
}

// Researchers returns up to limit rows plus the total roster size.
func (r StaticRoster) Researchers(_ context.Context, limit int) ([]Researcher, int, error) {
	total := r.Total
	if total < len(r.Rows) {
		total = len(r.Rows)
	}
	if limit <= 0 || limit >= len(r.Rows) {
		return append([]Researcher{}, r.Rows...), total, nil
	}
	return append([]Researcher{}, r.Rows[:limit]...), total, nil
}

// AssignedProjects returns the sample assignments regardless of viewer.
func (r StaticRoster) AssignedProjects(context.Context, ViewerContext) ([]AssignedProject, error) {
	return append([]AssignedProject{}, r.Projects...), nil
}

// DefaultRoster provides the sample researchers shown on the Field Management page.
func DefaultRoster() ResearcherRoster {
	rows := make([]Researcher, 8)
	for i := range rows {
		rows[i] = Researcher{
			Name:             fmt.Sprintf("Sample Name %d", i+1),
			Email:            fmt.Sprintf("email%d@ebrscorp.com", i+1),
			Role:             "FR",
			AssignedProjects: 2,
			Status:           "Active",
		}
	}
	return StaticRoster{
		Rows:  rows,
		Total: 50,
		Projects: []AssignedProject{
			{Name: "Project A", Status: "Ongoing", Deadline: "Aug 30", Assigned: 120, Completed: 75},
		},
	}
}
