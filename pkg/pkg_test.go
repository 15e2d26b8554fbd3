package pkg

import (
	"os"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "iso8601" {
		t.Errorf("expected Name to be %q, got %q", "iso8601", Name)
	}
}

func TestDescription(t *testing.T) {
	if Description == "" {
		t.Error("expected non-empty Description")
	}
}

func TestVersion(t *testing.T) {
	// tests run with the package directory as working directory
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("expected Version to be %q, got %q", content, Version)
	}

	if strings.ContainsAny(Version, " \t\r\n") {
		t.Errorf("expected Version without whitespace, got %q", Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("expected Author to contain ardnew, got %v", Author)
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}
