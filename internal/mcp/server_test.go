package mcp

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
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

const serverTestConfig = `
pipeline:
  - name: WhitespaceTokenizer
  - name: CountVectorsFeaturizer
  - name: DIETClassifier
policies:
  - name: RulePolicy
`

func TestHandleValidateProject(t *testing.T) {
	// BDD: Given a project with synonyms but no synonym mapper, When the
	// validate_project tool runs, Then it reports valid with one warning.
	dir := t.TempDir()
	config := writeFile(t, dir, "config.yml", serverTestConfig)
	domain := writeFile(t, dir, "domain.yml", "intents:\n  - greet\n")
	writeFile(t, dir, "data/nlu.yml", `
nlu:
  - intent: greet
    examples: |
      - hello
  - synonym: credit card
    examples: |
      - cc
`)
	writeFile(t, dir, "data/rules.yml", "rules:\n  - rule: r\n    steps:\n      - intent: greet\n      - action: utter_greet\n")

	srv := NewServer("test")
	_, out, err := srv.handleValidateProject(context.Background(), nil, validateProjectInput{
		Config: config,
		Domain: domain,
		Data:   []string{filepath.Join(dir, "data")},
	})
	if err != nil {
		t.Fatalf("handleValidateProject: %v", err)
	}
	if !out.Valid {
		t.Errorf("Valid = false, findings: %+v", out.Findings)
	}
	if len(out.Findings) != 1 || out.Findings[0].Severity != "warning" {
		t.Errorf("Findings = %+v, want one synonym warning", out.Findings)
	}
}

func TestHandleValidateProject_HardError(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "config.yml", `
pipeline:
  - name: WhitespaceTokenizer
  - name: SpacyTokenizer
`)

	srv := NewServer("test")
	_, out, err := srv.handleValidateProject(context.Background(), nil, validateProjectInput{
		Config: config,
		Data:   []string{dir},
	})
	if err != nil {
		t.Fatalf("handleValidateProject: %v", err)
	}
	if out.Valid {
		t.Error("Valid = true for a two-tokenizer configuration")
	}
	last := out.Findings[len(out.Findings)-1]
	if last.Severity != "error" {
		t.Errorf("last finding = %+v, want severity error", last)
	}
}

func TestHandleValidateProject_RequiresConfig(t *testing.T) {
	srv := NewServer("test")
	if _, _, err := srv.handleValidateProject(context.Background(), nil, validateProjectInput{}); err == nil {
		t.Fatal("expected an error without a config path")
	}
}

func TestHandleInspectTrainingData(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nlu.yml", `
nlu:
  - intent: greet
    examples: |
      - hello
  - intent: inform
    examples: |
      - to [Berlin](city)
  - lookup: city
    examples: |
      - Berlin
`)

	srv := NewServer("test")
	_, out, err := srv.handleInspectTrainingData(context.Background(), nil, inspectTrainingDataInput{
		Data: []string{dir},
	})
	if err != nil {
		t.Fatalf("handleInspectTrainingData: %v", err)
	}
	if out.Examples != 2 || out.LookupTables != 1 {
		t.Errorf("summary = %+v", out)
	}
	if len(out.Intents) != 2 || len(out.Entities) != 1 || out.Entities[0] != "city" {
		t.Errorf("summary = %+v", out)
	}
}

func TestWatchParent_StopsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	WatchParent(ctx, cancel)
	cancel()

	// Verify the goroutine doesn't panic or block after context cancel.
	time.Sleep(50 * time.Millisecond)
}

func TestWatchParent_DoesNotConsumeStdin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pr, pw := io.Pipe()
	defer pr.Close()

	WatchParent(ctx, cancel)
	time.Sleep(50 * time.Millisecond)

	msg := `{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n"
	go func() {
		pw.Write([]byte(msg))
		pw.Close()
	}()

	// A reader standing in for the SDK transport must see the full message.
	line, err := bufio.NewReader(pr).ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if line != msg {
		t.Errorf("message corrupted: %q", line)
	}
}
