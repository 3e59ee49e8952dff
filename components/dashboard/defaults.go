package dashboard

// Widget definition codes.
const (
	FiltersWidgetCode              = "insights.widget.filters"
	OverviewKPIsWidgetCode         = "insights.widget.overview_kpis"
	ChartPlaceholderWidgetCode     = "insights.widget.chart_placeholder"
	HighlightsWidgetCode           = "insights.widget.highlights"
	StatGridWidgetCode             = "insights.widget.stat_grid"
	SelectionPlaceholderWidgetCode = "insights.widget.selection_placeholder"
	ResearchersWidgetCode          = "insights.widget.researchers"
	AuditTrailWidgetCode           = "insights.widget.audit_trail"
	AssignedProjectsWidgetCode     = "insights.widget.assigned_projects"
)

// Page codes.
const (
	PageOverview   = "overview"
	PageCompletion = "completion"
	PagePredictive = "predictive"
	PageField      = "field"
	PageAudit      = "audit"
	PageSettings   = "settings"
	PageResearcher = "researcher"
)

// Sidebar sections.
const (
	SectionMain   = "main"
	SectionSystem = "system"
)

var titleSchema = map[string]any{"type": "string", "minLength": 1}

var labelValueSchema = map[string]any{
	"type":     "object",
	"required": []string{"label", "value"},
	"properties": map[string]any{
		"label": map[string]any{"type": "string"},
		"value": map[string]any{"type": "string"},
		"sub":   map[string]any{"type": "string"},
	},
}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        FiltersWidgetCode,
		Name:        "Filter Chips",
		Description: "Row of filter chips with an optional action button",
		Category:    "filters",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"labels"},
			"properties": map[string]any{
				"labels": map[string]any{"type": "array", "items": titleSchema},
				"action": map[string]any{"type": "string"},
			},
		},
	},
	{
		Code:        OverviewKPIsWidgetCode,
		Name:        "Overview KPIs",
		Description: "Live response and completion KPIs from metrics.json plus static tiles",
		Category:    "stats",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"completion_target": map[string]any{"type": "string"},
				"static_tiles":      map[string]any{"type": "array", "items": labelValueSchema},
			},
		},
	},
	{
		Code:        ChartPlaceholderWidgetCode,
		Name:        "Chart Placeholder",
		Description: "Dashed box marking where a chart will be rendered",
		Category:    "charts",
		Schema: map[string]any{
			"type":       "object",
			"required":   []string{"title"},
			"properties": map[string]any{"title": titleSchema},
		},
	},
	{
		Code:        HighlightsWidgetCode,
		Name:        "Highlights",
		Description: "Bulleted list of highlights",
		Category:    "insights",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title", "items"},
			"properties": map[string]any{
				"title": titleSchema,
				"items": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
		},
	},
	{
		Code:        StatGridWidgetCode,
		Name:        "Stat Grid",
		Description: "Two-column grid of labeled figures",
		Category:    "stats",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title", "stats"},
			"properties": map[string]any{
				"title": titleSchema,
				"stats": map[string]any{"type": "array", "items": labelValueSchema},
			},
		},
	},
	{
		Code:        SelectionPlaceholderWidgetCode,
		Name:        "Selection Placeholder",
		Description: "Dashed box marking where a selector will be rendered",
		Category:    "filters",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title"},
			"properties": map[string]any{
				"title": titleSchema,
				"hint":  map[string]any{"type": "string"},
			},
		},
	},
	{
		Code:        ResearchersWidgetCode,
		Name:        "Researchers",
		Description: "Field researcher roster",
		Category:    "tables",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit":     map[string]any{"type": "integer", "minimum": 1, "maximum": 100, "default": 8},
				"page_size": map[string]any{"type": "integer", "minimum": 1, "maximum": 100, "default": 10},
			},
		},
	},
	{
		Code:        AuditTrailWidgetCode,
		Name:        "Audit Trail",
		Description: "Recent audit entries",
		Category:    "tables",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 100, "default": 7},
			},
		},
	},
	{
		Code:        AssignedProjectsWidgetCode,
		Name:        "Assigned Projects",
		Description: "Projects assigned to the signed-in field researcher",
		Category:    "tables",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"greeting": map[string]any{"type": "string"},
			},
		},
	},
}

func filters(id string, labels ...string) WidgetInstance {
	return WidgetInstance{
		ID:            id,
		DefinitionID:  FiltersWidgetCode,
		Configuration: map[string]any{"labels": labels},
	}
}

func chartPlaceholder(id, title string) WidgetInstance {
	return WidgetInstance{
		ID:            id,
		DefinitionID:  ChartPlaceholderWidgetCode,
		Configuration: map[string]any{"title": title},
	}
}

func stat(label, value string) map[string]any {
	return map[string]any{"label": label, "value": value}
}

func defaultPages() []PageDefinition {
	fieldFilters := filters("field.filters", "Role", "Project")
	fieldFilters.Configuration["action"] = "Add Researcher"
	return []PageDefinition{
		{
			Code:                PageOverview,
			Label:               "Overview",
			LabelLocalized:      map[string]string{"es": "Resumen"},
			Breadcrumb:          "Market Research Overview",
			BreadcrumbLocalized: map[string]string{"es": "Resumen de investigación de mercado"},
			Icon:                "grid-2x2",
			Section:             SectionMain,
			Position:            10,
			Widgets: []WidgetInstance{
				filters("overview.filters", "Client", "Project", "Survey", "Date Range"),
				{
					ID:           "overview.kpis",
					DefinitionID: OverviewKPIsWidgetCode,
					Configuration: map[string]any{
						"completion_target": "Target: 85%",
						"static_tiles": []map[string]any{
							{"label": "Error Rate", "value": "2%", "sub": "↓ from 3%"},
							{"label": "Active Researchers", "value": "25", "sub": "/ 50 total"},
						},
					},
				},
				chartPlaceholder("overview.daily_submissions", "Daily Submissions"),
				chartPlaceholder("overview.completion_forecast", "Completion Forecast"),
				{
					ID:           "overview.highlights",
					DefinitionID: HighlightsWidgetCode,
					Configuration: map[string]any{
						"title": "Key Predictive Highlights",
						"items": []string{
							"Top Expected Segment: Panel 1 (↑ 12%)",
							"Risk: Region C low traction",
							"Next Best Action: Weekend pushes in Region B",
						},
					},
				},
				{
					ID:           "overview.data_health",
					DefinitionID: StatGridWidgetCode,
					Configuration: map[string]any{
						"title": "Data Health Snapshot",
						"stats": []map[string]any{
							stat("Missing fields", "0.8%"),
							stat("Duplicates", "12"),
							stat("Outliers flagged", "7"),
							stat("Last ETL", "02:14"),
						},
					},
				},
				{
					ID:           "overview.survey_selection",
					DefinitionID: SelectionPlaceholderWidgetCode,
					Configuration: map[string]any{
						"title": "Survey Selection",
						"hint":  "Dropdown / multi-select placeholder",
					},
				},
			},
		},
		{
			Code:                PageCompletion,
			Label:               "Completion",
			LabelLocalized:      map[string]string{"es": "Finalización"},
			Breadcrumb:          "Completion Details",
			BreadcrumbLocalized: map[string]string{"es": "Detalles de finalización"},
			Icon:                "activity",
			Section:             SectionMain,
			Position:            20,
			Widgets: []WidgetInstance{
				filters("completion.filters", "Project", "Survey", "Date Range"),
				chartPlaceholder("completion.progress", "Completion Progress Over Time"),
				chartPlaceholder("completion.by_location", "By Location"),
				chartPlaceholder("completion.by_researcher", "By Field Researcher"),
			},
		},
		{
			Code:           PagePredictive,
			Label:          "Predictive Insights",
			LabelLocalized: map[string]string{"es": "Perspectivas predictivas"},
			Breadcrumb:     "Predictive Insights",
			Icon:           "line-chart",
			Section:        SectionMain,
			Position:       30,
			Widgets: []WidgetInstance{
				filters("predictive.filters", "Model", "Target", "Date Range"),
				chartPlaceholder("predictive.linear", "Linear Regression"),
				chartPlaceholder("predictive.logistic", "Logistic Regression"),
				chartPlaceholder("predictive.forecast", "Time-Series Forecast"),
				{
					ID:           "predictive.model_kpis",
					DefinitionID: StatGridWidgetCode,
					Configuration: map[string]any{
						"title": "Model KPIs",
						"stats": []map[string]any{
							stat("MSE", "0.132"),
							stat("MAPE", "8.4%"),
							stat("R²", "0.79"),
							stat("Accuracy", "86%"),
						},
					},
				},
			},
		},
		{
			Code:           PageField,
			Label:          "Field Management",
			LabelLocalized: map[string]string{"es": "Gestión de campo"},
			Breadcrumb:     "Field Management",
			Icon:           "users",
			Section:        SectionMain,
			Position:       40,
			Widgets: []WidgetInstance{
				fieldFilters,
				{
					ID:            "field.researchers",
					DefinitionID:  ResearchersWidgetCode,
					Configuration: map[string]any{"limit": 8, "page_size": 10},
				},
			},
		},
		{
			Code:           PageAudit,
			Label:          "Audit Trail",
			LabelLocalized: map[string]string{"es": "Auditoría"},
			Breadcrumb:     "Audit Trail",
			Icon:           "history",
			Section:        SectionMain,
			Position:       50,
			Widgets: []WidgetInstance{
				filters("audit.filters", "Date Range", "User", "Action", "Dataset"),
				{
					ID:            "audit.entries",
					DefinitionID:  AuditTrailWidgetCode,
					Configuration: map[string]any{"limit": 7},
				},
			},
		},
		{
			Code:           PageSettings,
			Label:          "Settings",
			LabelLocalized: map[string]string{"es": "Configuración"},
			Icon:           "settings",
			Section:        SectionSystem,
			Position:       100,
			Inert:          true,
		},
		{
			Code:       PageResearcher,
			Label:      "Field Researcher",
			Breadcrumb: "Field Researcher",
			Icon:       "user",
			Position:   200,
			Hidden:     true,
			Widgets: []WidgetInstance{
				{
					ID:            "researcher.assigned_projects",
					DefinitionID:  AssignedProjectsWidgetCode,
					Configuration: map[string]any{"greeting": "Hello, Field Researcher 👋"},
				},
			},
		},
	}
}

// DefaultWidgetDefinitions returns copies of built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	defs := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(defs, defaultWidgetDefinitions)
	return defs
}

// DefaultPages returns the built-in page catalog content.
func DefaultPages() []PageDefinition {
	return defaultPages()
}
