package email

import (
	"strings"
	"testing"
)

func TestRenderBody(t *testing.T) {
	body := renderBody(ContactMessage{
		Name:        "Ada",
		Email:       "ada@example.com",
		Phone:       "555-0100",
		ProjectType: "Marine",
		Message:     "Need a pier quote.",
	})
	for _, want := range []string{"Ada", "ada@example.com", "555-0100", "Marine", "Need a pier quote."} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestRenderBodyOptionalFields(t *testing.T) {
	body := renderBody(ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	if !strings.Contains(body, "Not provided") {
		t.Error("missing phone placeholder")
	}
	if !strings.Contains(body, "Not specified") {
		t.Error("missing project type placeholder")
	}
}
