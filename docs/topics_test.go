package docs

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/etnz/moneywise"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics checks that the topics listed in readme.md and the markdown
// files are the same.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	if strings.Join(listed, ",") != strings.Join(all, ",") {
		t.Errorf("readme.md lists %v, want %v", listed, all)
	}
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	if _, err := GetTopic("budget"); err == nil {
		t.Error("Expected an error for an unknown topic")
	}
	got, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) failed: %v", err)
	}
	if !strings.Contains(got, "# Rates") || strings.Contains(got, "Topics:") {
		t.Errorf("GetTopics(*) = %q, want every topic but the readme", got)
	}
}

// TestExamples loads every jsonl block of the topics as a dataset.
func TestExamples(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			for _, block := range jsonlBlocks([]byte(content)) {
				ds, err := moneywise.DecodeDataSet(strings.NewReader(block), nil)
				if err != nil {
					t.Errorf("failed to load example:\n%s\nerror: %v", block, err)
					continue
				}
				if errs := ds.Validate(); len(errs) > 0 {
					t.Errorf("invalid example:\n%s\nerrors: %v", block, errs)
				}
			}
		})
	}
}

// jsonlBlocks returns the content of the fenced code blocks tagged jsonl.
func jsonlBlocks(source []byte) []string {
	var blocks []string
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || string(fcb.Language(source)) != "jsonl" {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(source))
		}
		blocks = append(blocks, b.String())
		return ast.WalkContinue, nil
	})
	return blocks
}
