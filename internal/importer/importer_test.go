package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/narendrapsgim/rasa/pkg/advisory"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileImporter_LoadsProject(t *testing.T) {
	// BDD: Given a project directory with a domain, two NLU files and a
	// story file, When the importer loads it, Then the merged views
	// contain all of it and none of it leaks between views.
	restore := advisory.SetSink(&advisory.Collector{})
	t.Cleanup(restore)

	dir := t.TempDir()
	domain := writeFile(t, dir, "domain.yml", "intents:\n  - greet\nforms:\n  restaurant_form:\n")
	writeFile(t, dir, "data/nlu.yml", "nlu:\n  - intent: greet\n    examples: |\n      - hello\n")
	writeFile(t, dir, "data/sub/more_nlu.yml", "nlu:\n  - intent: bye\n    examples: |\n      - bye now\n")
	writeFile(t, dir, "data/stories.yml", "stories:\n  - story: greet path\n    steps:\n      - intent: greet\n      - action: utter_greet\n")
	writeFile(t, dir, "data/notes.txt", "not yaml")

	fi := NewFileImporter(domain, []string{filepath.Join(dir, "data")})
	ctx := context.Background()

	d, err := fi.Domain(ctx)
	if err != nil {
		t.Fatalf("Domain: %v", err)
	}
	if diff := cmp.Diff([]string{"restaurant_form"}, d.FormNames()); diff != "" {
		t.Errorf("FormNames() mismatch (-want +got):\n%s", diff)
	}

	td, err := fi.NLUData(ctx)
	if err != nil {
		t.Fatalf("NLUData: %v", err)
	}
	if diff := cmp.Diff([]string{"bye", "greet"}, td.Intents()); diff != "" {
		t.Errorf("Intents() mismatch (-want +got):\n%s", diff)
	}

	g, err := fi.Stories(ctx)
	if err != nil {
		t.Fatalf("Stories: %v", err)
	}
	if !g.HasSteps() || g.HasRules() {
		t.Errorf("story graph = %+v, want one story and no rules", g.OrderedSteps())
	}
}

func TestFileImporter_DeterministicMergeOrder(t *testing.T) {
	restore := advisory.SetSink(&advisory.Collector{})
	t.Cleanup(restore)

	dir := t.TempDir()
	// More files than the parallelism limit, loaded concurrently.
	for i := 0; i < 8; i++ {
		writeFile(t, dir, fmt.Sprintf("nlu_%d.yml", i),
			fmt.Sprintf("nlu:\n  - intent: intent_%d\n    examples: |\n      - example %d\n", i, i))
	}

	fi := NewFileImporter("", []string{dir}, WithParallelism(3))
	first, err := fi.NLUData(context.Background())
	if err != nil {
		t.Fatalf("NLUData: %v", err)
	}
	for i, m := range first.Examples() {
		if want := fmt.Sprintf("intent_%d", i); m.Intent != want {
			t.Fatalf("examples out of path order: got %q at %d, want %q", m.Intent, i, want)
		}
	}
}

func TestFileImporter_SingleFileDataPath(t *testing.T) {
	restore := advisory.SetSink(&advisory.Collector{})
	t.Cleanup(restore)

	dir := t.TempDir()
	file := writeFile(t, dir, "nlu.yml", "nlu:\n  - intent: greet\n    examples: |\n      - hi\n")

	fi := NewFileImporter("", []string{file})
	td, err := fi.NLUData(context.Background())
	if err != nil {
		t.Fatalf("NLUData: %v", err)
	}
	if len(td.Examples()) != 1 {
		t.Errorf("got %d examples, want 1", len(td.Examples()))
	}
}

func TestFileImporter_MissingDataPath(t *testing.T) {
	fi := NewFileImporter("", []string{filepath.Join(t.TempDir(), "nope")})
	if _, err := fi.NLUData(context.Background()); err == nil {
		t.Fatal("expected an error for a missing data path")
	}
}

func TestFileImporter_EmptyDomainPath(t *testing.T) {
	fi := NewFileImporter("", nil)
	d, err := fi.Domain(context.Background())
	if err != nil {
		t.Fatalf("Domain: %v", err)
	}
	if len(d.FormNames()) != 0 {
		t.Errorf("empty domain has forms: %v", d.FormNames())
	}
}
