package cli

import (
	"testing"

	"github.com/vvka-141/schemabook/internal/config"
	"github.com/vvka-141/schemabook/internal/schema"
)

func TestSheetOverrides_Empty(t *testing.T) {
	cfg := &config.ProjectConfig{}
	if got := sheetOverrides(cfg); got != nil {
		t.Errorf("expected nil overrides for empty config, got %v", got)
	}
}

func TestSheetOverrides_NormalizedKeys(t *testing.T) {
	cfg := &config.ProjectConfig{}
	cfg.Sheets.Objects = "  Schema  Objects "
	cfg.Sheets.Relationships = "Links"

	overrides := sheetOverrides(cfg)
	if overrides["schema objects"] != schema.KindObject {
		t.Errorf("expected normalized objects override, got %v", overrides)
	}
	if overrides["links"] != schema.KindRelationship {
		t.Errorf("expected relationships override, got %v", overrides)
	}
	if len(overrides) != 2 {
		t.Errorf("expected 2 overrides, got %v", overrides)
	}
}

func TestApplyLoadFlags(t *testing.T) {
	defer func() {
		loadOut, loadPrune, loadTypeFallback, loadNoStandard = "", false, "", false
	}()

	cfg := &config.ProjectConfig{}
	cfg.ApplyDefaults()

	loadOut = "custom/out"
	loadPrune = true
	loadTypeFallback = "number"
	loadNoStandard = true
	applyLoadFlags(cfg)

	if cfg.OutputDir != "custom/out" {
		t.Errorf("expected flag to override output dir, got %q", cfg.OutputDir)
	}
	if !cfg.Prune {
		t.Error("expected prune enabled")
	}
	if cfg.TypeFallback != "number" {
		t.Errorf("expected type fallback number, got %q", cfg.TypeFallback)
	}
	if cfg.InjectStandardFields == nil || *cfg.InjectStandardFields {
		t.Error("expected standard field injection disabled")
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"load", "validate", "objects", "version"} {
		if !names[want] {
			t.Errorf("expected %s command registered", want)
		}
	}
}
