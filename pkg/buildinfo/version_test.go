package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q, want name and version prefix", got)
	}
	if !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("Template() = %q, want commit line", got)
	}
}

func TestString(t *testing.T) {
	want := "version: " + Version + "\ncommit: " + Commit + "\nbuilt: " + Date
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
