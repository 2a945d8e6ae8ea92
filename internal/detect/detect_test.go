package detect

import (
	"testing"

	"github.com/dshills/featurecheck/internal/registry"
	"github.com/dshills/featurecheck/internal/schema"
)

func mustRegistry(t *testing.T, opts registry.Options, defs ...registry.Definition) *registry.Registry {
	t.Helper()
	reg, _, errs := registry.New(defs, opts)
	if len(errs) != 0 {
		t.Fatalf("registry errors: %v", errs)
	}
	return reg
}

func feature(name, importance, pattern string) registry.FeatureDef {
	return registry.FeatureDef{
		Name:        name,
		Description: name,
		Importance:  importance,
		Pattern:     pattern,
		Template:    registry.TemplateDef{Generic: "# matches nothing relevant\nplaceholder\n"},
	}
}

func TestEvaluate_PresentAndMissing(t *testing.T) {
	def := registry.Definition{
		Archetype: "gui_app",
		Features: []registry.FeatureDef{
			feature("close_button", "high", `def\s+(close|exit|quit)`),
			feature("window_title", "medium", `\.title\(`),
		},
	}
	def.Features[0].Template.Generic = "def close_window():\n    pass\n"
	def.Features[1].Template.Generic = "root.title(\"app\")\n"
	reg := mustRegistry(t, registry.Options{}, def)

	src := "import tkinter as tk\nroot = tk.Tk()\nroot.title(\"demo\")\nbtn = tk.Button(root)\nroot.mainloop()\n"
	findings := Evaluate(reg, "gui_app", src)

	if len(findings) != 2 {
		t.Fatalf("findings = %+v, want 2", findings)
	}
	if findings[0].Feature.Name != "close_button" || findings[0].Status != schema.DetectMissing {
		t.Errorf("findings[0] = %+v, want close_button MISSING", findings[0])
	}
	if findings[1].Feature.Name != "window_title" || findings[1].Status != schema.DetectPresent {
		t.Errorf("findings[1] = %+v, want window_title PRESENT", findings[1])
	}
}

func TestMissing_TkinterCloseButton(t *testing.T) {
	// A tkinter snippet with a Button but no quit/close logic must report
	// exactly the close_button feature.
	def := registry.Definition{
		Archetype: "gui_app",
		Features: []registry.FeatureDef{
			feature("close_button", "high", `def\s+(close|exit|quit)`),
		},
	}
	def.Features[0].Template.Generic = "def close_window():\n    pass\n"
	reg := mustRegistry(t, registry.Options{}, def)

	src := "import tkinter as tk\nroot = tk.Tk()\nbtn = tk.Button(root, text=\"Go\")\nroot.mainloop()\n"
	missing := Missing(reg, "gui_app", src)

	if len(missing) != 1 || missing[0].Name != "close_button" {
		t.Fatalf("Missing = %+v, want [close_button]", missing)
	}
}

func TestEvaluate_MultilineMatching(t *testing.T) {
	def := registry.Definition{
		Archetype: "cli_tool",
		Features: []registry.FeatureDef{
			feature("help_command", "high", `^parser = argparse`),
		},
	}
	def.Features[0].Template.Generic = "parser = argparse.ArgumentParser()\n"
	reg := mustRegistry(t, registry.Options{}, def)

	// The anchored pattern must match mid-document, not only at the start.
	src := "import argparse\n\nparser = argparse.ArgumentParser()\n"
	findings := Evaluate(reg, "cli_tool", src)
	if findings[0].Status != schema.DetectPresent {
		t.Errorf("status = %s, want PRESENT via multi-line match", findings[0].Status)
	}
}

func TestEvaluate_ImportanceOrdering(t *testing.T) {
	// Declared shuffled: low, high, medium, then a second high. The result
	// must be high, high, medium, low with declaration order preserved
	// inside the high tier.
	def := registry.Definition{
		Archetype: "web_app",
		Features: []registry.FeatureDef{
			feature("f_low", "low", `zzz_low`),
			feature("f_high_1", "high", `zzz_high1`),
			feature("f_medium", "medium", `zzz_med`),
			feature("f_high_2", "high", `zzz_high2`),
		},
	}
	for i := range def.Features {
		def.Features[i].Template.Generic = def.Features[i].Pattern + "\n"
	}
	reg := mustRegistry(t, registry.Options{}, def)

	missing := Missing(reg, "web_app", "nothing present")
	want := []string{"f_high_1", "f_high_2", "f_medium", "f_low"}
	if len(missing) != len(want) {
		t.Fatalf("Missing = %+v, want %d entries", missing, len(want))
	}
	for i, name := range want {
		if missing[i].Name != name {
			t.Errorf("missing[%d] = %q, want %q", i, missing[i].Name, name)
		}
	}
}

func TestEvaluate_UndeterminedIsolation(t *testing.T) {
	def := registry.Definition{
		Archetype: "web_app",
		Features: []registry.FeatureDef{
			feature("broken", "high", `(`),
			feature("healthy", "high", `zzz_absent`),
		},
	}
	def.Features[0].Template.Generic = "anything\n"
	def.Features[1].Template.Generic = "zzz_absent\n"
	reg := mustRegistry(t, registry.Options{Lenient: true}, def)

	findings := Evaluate(reg, "web_app", "some source")
	if len(findings) != 2 {
		t.Fatalf("findings = %+v, want 2", findings)
	}
	var broken, healthy schema.Finding
	for _, f := range findings {
		switch f.Feature.Name {
		case "broken":
			broken = f
		case "healthy":
			healthy = f
		}
	}
	if broken.Status != schema.DetectUndetermined || broken.Reason == "" {
		t.Errorf("broken = %+v, want UNDETERMINED with reason", broken)
	}
	if healthy.Status != schema.DetectMissing {
		t.Errorf("healthy = %+v, want MISSING despite the broken sibling", healthy)
	}

	// Undetermined features never reach the missing set.
	for _, m := range Missing(reg, "web_app", "some source") {
		if m.Name == "broken" {
			t.Error("undetermined feature listed as missing")
		}
	}
}

func TestEvaluate_UnknownArchetype(t *testing.T) {
	reg := mustRegistry(t, registry.Options{})
	if got := Evaluate(reg, schema.ArchetypeUnknown, "anything"); got != nil {
		t.Errorf("Evaluate(unknown) = %+v, want nil", got)
	}
	if got := Missing(reg, "never_registered", "anything"); got != nil {
		t.Errorf("Missing(never_registered) = %+v, want nil", got)
	}
}

func TestEvaluate_EmptySource(t *testing.T) {
	def := registry.Definition{
		Archetype: "gui_app",
		Features: []registry.FeatureDef{
			feature("close_button", "high", `def\s+close`),
		},
	}
	def.Features[0].Template.Generic = "def close_window():\n    pass\n"
	reg := mustRegistry(t, registry.Options{}, def)

	findings := Evaluate(reg, "gui_app", "")
	if len(findings) != 1 || findings[0].Status != schema.DetectMissing {
		t.Errorf("findings = %+v, want one MISSING", findings)
	}
}
