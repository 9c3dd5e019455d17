// SPDX-License-Identifier: MPL-2.0

package extension

import (
	"reflect"
	"testing"
)

func TestModeIncludes(t *testing.T) {
	// Exhaustive two-flag table: declared × active over a 2-bit mode set.
	tests := []struct {
		name     string
		declared Mode
		active   Mode
		want     bool
	}{
		{"production only, production active", ModeProduction, ModeProduction, true},
		{"production only, development active", ModeProduction, ModeDevelopment, false},
		{"development only, production active", ModeDevelopment, ModeProduction, false},
		{"development only, development active", ModeDevelopment, ModeDevelopment, true},
		{"both declared, production active", ModeProduction | ModeDevelopment, ModeProduction, true},
		{"both declared, development active", ModeProduction | ModeDevelopment, ModeDevelopment, true},
		{"none declared, production active", 0, ModeProduction, false},
		{"production only, nothing active", ModeProduction, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.declared.Includes(tt.active); got != tt.want {
				t.Errorf("Mode(%b).Includes(%b) = %v, want %v", tt.declared, tt.active, got, tt.want)
			}
		})
	}
}

func TestModeNames(t *testing.T) {
	tests := []struct {
		mode Mode
		want []string
	}{
		{ModeProduction, []string{"PRODUCTION"}},
		{ModeDevelopment, []string{"DEVELOPMENT"}},
		{ModePluginDev, []string{"PLUGIN_DEV"}},
		{ModeProduction | ModePluginDev, []string{"PRODUCTION", "PLUGIN_DEV"}},
		{ModeProduction | ModeDevelopment | ModePluginDev, []string{"PRODUCTION", "DEVELOPMENT", "PLUGIN_DEV"}},
		{0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := tt.mode.Names(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Names() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if got := (ModeProduction | ModeDevelopment).String(); got != "PRODUCTION|DEVELOPMENT" {
		t.Errorf("String() = %q, want %q", got, "PRODUCTION|DEVELOPMENT")
	}
	if got := Mode(0).String(); got != "NONE" {
		t.Errorf("zero String() = %q, want %q", got, "NONE")
	}
	// Bits beyond the defined set must not invent names.
	if got := (Mode(1 << 6)).String(); got != "NONE" {
		t.Errorf("undefined-bit String() = %q, want %q", got, "NONE")
	}
}

func TestDefaultMetadata(t *testing.T) {
	meta := DefaultMetadata()
	if meta.LoadIfMode != ModeProduction {
		t.Errorf("DefaultMetadata().LoadIfMode = %v, want ModeProduction", meta.LoadIfMode)
	}
	// Default-metadata extensions load exactly when production is active.
	if !meta.LoadIfMode.Includes(ModeProduction | ModeDevelopment) {
		t.Error("default metadata should be eligible when active mode includes production")
	}
	if meta.LoadIfMode.Includes(ModeDevelopment | ModePluginDev) {
		t.Error("default metadata should not be eligible without the production bit")
	}
}
