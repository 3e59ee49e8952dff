package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates widget configuration payloads against their schema.
type ConfigValidator interface {
	Validate(def WidgetDefinition, config map[string]any) error
}

// JSONSchemaValidator compiles widget schemas once and validates configuration maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the provided configuration satisfies the widget schema.
func (v *JSONSchemaValidator) Validate(def WidgetDefinition, config map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	payload := map[string]any{}
	if config != nil {
		// round-trip so typed slices/maps from Go literals validate like decoded JSON
		data, err := json.Marshal(config)
		if err != nil {
			return fmt.Errorf("dashboard: marshal config for %s: %w", def.Code, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("dashboard: normalize config for %s: %w", def.Code, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: %s failed validation: %w", def.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(def WidgetDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[def.Code]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", def.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := def.Code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", def.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", def.Code, err)
	}
	v.mu.Lock()
	v.compiled[def.Code] = compiled
	v.mu.Unlock()
	return compiled, nil
}

// ValidatePage checks every widget on the page references a known definition
// and carries a configuration accepted by its schema.
func ValidatePage(page PageDefinition, registry ProviderRegistry, validator ConfigValidator) error {
	if registry == nil {
		return nil
	}
	if validator == nil {
		validator = NewJSONSchemaValidator()
	}
	var errs error
	seen := make(map[string]struct{}, len(page.Widgets))
	for idx, widget := range page.Widgets {
		if widget.ID == "" {
			errs = errors.Join(errs, fmt.Errorf("dashboard: page %s widget at index %d is missing an id", page.Code, idx))
			continue
		}
		if _, dup := seen[widget.ID]; dup {
			errs = errors.Join(errs, fmt.Errorf("dashboard: page %s duplicates widget id %s", page.Code, widget.ID))
			continue
		}
		seen[widget.ID] = struct{}{}
		def, ok := registry.Definition(widget.DefinitionID)
		if !ok {
			errs = errors.Join(errs, fmt.Errorf("dashboard: page %s widget %s uses unknown definition %q", page.Code, widget.ID, widget.DefinitionID))
			continue
		}
		if err := validator.Validate(def, widget.Configuration); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
