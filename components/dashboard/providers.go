package dashboard

import (
	"context"
	"fmt"
	"strconv"
)

var defaultProviders = map[string]Provider{
	FiltersWidgetCode: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		labels := stringList(meta.Instance.Configuration["labels"])
		chips := make([]map[string]any, 0, len(labels))
		for _, label := range labels {
			chips = append(chips, map[string]any{"label": label})
		}
		data := WidgetData{"chips": chips}
		if action := stringValue(meta.Instance.Configuration["action"]); action != "" {
			data["action"] = action
		}
		return data, nil
	}),
	OverviewKPIsWidgetCode: ProviderFunc(overviewKPIs),
	ChartPlaceholderWidgetCode: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		placeholder := translateOrFallback(ctx, meta.Translator, "insights.widget.chart_placeholder.label", meta.Viewer.Locale, "Chart placeholder", nil)
		return WidgetData{
			"title":       stringValue(meta.Instance.Configuration["title"]),
			"placeholder": placeholder,
		}, nil
	}),
	HighlightsWidgetCode: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{
			"title": stringValue(meta.Instance.Configuration["title"]),
			"items": stringList(meta.Instance.Configuration["items"]),
		}, nil
	}),
	StatGridWidgetCode: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{
			"title": stringValue(meta.Instance.Configuration["title"]),
			"stats": labelValueList(meta.Instance.Configuration["stats"]),
		}, nil
	}),
	SelectionPlaceholderWidgetCode: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{
			"title": stringValue(meta.Instance.Configuration["title"]),
			"hint":  stringValue(meta.Instance.Configuration["hint"]),
		}, nil
	}),
	ResearchersWidgetCode:      ProviderFunc(researchersTable),
	AuditTrailWidgetCode:       ProviderFunc(auditTable),
	AssignedProjectsWidgetCode: ProviderFunc(assignedProjectsTable),
}

func researchersTable(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	roster := meta.Roster
	if roster == nil {
		roster = DefaultRoster()
	}
	limit := intValue(meta.Instance.Configuration["limit"], 8)
	pageSize := intValue(meta.Instance.Configuration["page_size"], 10)
	rows, total, err := roster.Researchers(ctx, limit)
	if err != nil {
		return nil, err
	}
	payload := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, map[string]any{
			"name":              row.Name,
			"email":             row.Email,
			"role":              row.Role,
			"assigned_projects": row.AssignedProjects,
			"status":            row.Status,
		})
	}
	return WidgetData{
		"title":   translateOrFallback(ctx, meta.Translator, "insights.widget.researchers.title", meta.Viewer.Locale, "Researchers", nil),
		"caption": fmt.Sprintf("Showing 1–%d of %d", pageSize, total),
		"columns": []string{"Name", "Email", "Role", "Assigned Projects", "Status", "Action"},
		"actions": []string{"Edit", "Suspend"},
		"rows":    payload,
	}, nil
}

func auditTable(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	feed := meta.Audit
	if feed == nil {
		feed = DefaultAuditFeed()
	}
	limit := intValue(meta.Instance.Configuration["limit"], 7)
	entries, err := feed.Recent(ctx, meta.Viewer, limit)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		details := entry.Details
		if details == "" {
			details = MetricsPlaceholder
		}
		rows = append(rows, map[string]any{
			"timestamp": entry.Timestamp.Format(AuditTimestampLayout),
			"user":      entry.User,
			"action":    entry.Action,
			"extent":    entry.Extent,
			"details":   details,
		})
	}
	return WidgetData{
		"title":   translateOrFallback(ctx, meta.Translator, "insights.widget.audit_trail.title", meta.Viewer.Locale, "Audit Trail", nil),
		"columns": []string{"Timestamp", "User", "Action", "Extent", "Details"},
		"rows":    rows,
	}, nil
}

func assignedProjectsTable(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	roster := meta.Roster
	if roster == nil {
		roster = DefaultRoster()
	}
	projects, err := roster.AssignedProjects(ctx, meta.Viewer)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(projects))
	for _, project := range projects {
		rows = append(rows, map[string]any{
			"name":      project.Name,
			"status":    project.Status,
			"deadline":  project.Deadline,
			"assigned":  project.Assigned,
			"completed": project.Completed,
		})
	}
	greeting := stringValue(meta.Instance.Configuration["greeting"])
	if greeting == "" {
		greeting = "Hello, Field Researcher"
	}
	return WidgetData{
		"greeting": greeting,
		"title":    "Assigned Projects",
		"action":   "View",
		"columns":  []string{"Project Name", "Status", "Deadline", "Assigned", "Completed", "Action"},
		"rows":     rows,
	}, nil
}

// Configuration values arrive either as Go literals (defaults) or decoded
// YAML/JSON (manifests, API), so the helpers accept both shapes.

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func mapList(v any) []map[string]any {
	switch list := v.(type) {
	case []map[string]any:
		return list
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func labelValueList(v any) []map[string]any {
	items := mapList(v)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entry := map[string]any{
			"label": stringValue(item["label"]),
			"value": stringValue(item["value"]),
		}
		if sub := stringValue(item["sub"]); sub != "" {
			entry["sub"] = sub
		}
		out = append(out, entry)
	}
	return out
}

func intValue(v any, fallback int) int {
	switch val := v.(type) {
	case int:
		if val > 0 {
			return val
		}
	case int64:
		if val > 0 {
			return int(val)
		}
	case float64:
		if val > 0 {
			return int(val)
		}
	case string:
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
