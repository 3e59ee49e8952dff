package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights/components/dashboard"
)

// SavePreferencesInput updates the viewer's UI toggles. Unset fields keep
// their stored value; ToggleDarkMode wins over DarkMode.
type SavePreferencesInput struct {
	Viewer         dashboard.ViewerContext `json:"viewer"`
	DarkMode       *bool                   `json:"dark_mode,omitempty"`
	ToggleDarkMode bool                    `json:"toggle_dark_mode,omitempty"`
	ActivePage     string                  `json:"active_page,omitempty"`
}

type preferenceService interface {
	UpdatePreferences(ctx context.Context, viewer dashboard.ViewerContext, fn func(*dashboard.ViewerPreferences)) (dashboard.ViewerPreferences, error)
}

// SavePreferencesCommand persists per-viewer dark mode and active page.
type SavePreferencesCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewSavePreferencesCommand creates the command.
func NewSavePreferencesCommand(service preferenceService, telemetry Telemetry) *SavePreferencesCommand {
	return &SavePreferencesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SavePreferencesInput] = (*SavePreferencesCommand)(nil)

// Execute merges the input into the stored preferences.
func (c *SavePreferencesCommand) Execute(ctx context.Context, msg SavePreferencesInput) error {
	if c.service == nil {
		return errors.New("preferences command requires service")
	}
	if msg.Viewer.UserID == "" {
		return fmt.Errorf("preferences command: %w", dashboard.ErrMissingViewer)
	}
	prefs, err := c.service.UpdatePreferences(ctx, msg.Viewer, func(prefs *dashboard.ViewerPreferences) {
		switch {
		case msg.ToggleDarkMode:
			prefs.DarkMode = !prefs.DarkMode
		case msg.DarkMode != nil:
			prefs.DarkMode = *msg.DarkMode
		}
		if msg.ActivePage != "" {
			prefs.ActivePage = msg.ActivePage
		}
	})
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.preferences.command", map[string]any{
		"user_id":     msg.Viewer.UserID,
		"dark_mode":   prefs.DarkMode,
		"active_page": prefs.ActivePage,
	})
	return nil
}
