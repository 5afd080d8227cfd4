package versionedfile

import (
	"strings"
	"testing"

	"github.com/knope-dev/knope-go/semver"
)

const samplePackageLock = `{
  "name": "widget",
  "version": "1.0.0",
  "lockfileVersion": 3,
  "packages": {
    "": {
      "name": "widget",
      "version": "1.0.0"
    },
    "node_modules/left-pad": {
      "name": "left-pad",
      "version": "1.2.3"
    }
  }
}`

func TestNewPackageLockJSONOwnVersion(t *testing.T) {
	p, err := NewPackageLockJSON("package-lock.json", samplePackageLock, "", nil)
	if err != nil {
		t.Fatalf("NewPackageLockJSON: %v", err)
	}
	if got, want := p.Version().String(), "1.0.0"; got != want {
		t.Errorf("Version() = %q, want %q", got, want)
	}
}

func TestPackageLockJSONSetVersionUpdatesTopAndRoot(t *testing.T) {
	p, err := NewPackageLockJSON("package-lock.json", samplePackageLock, "", nil)
	if err != nil {
		t.Fatalf("NewPackageLockJSON: %v", err)
	}
	actions, err := p.SetVersion(semver.MustParse("1.1.0"), GoVersioningStandard)
	if err != nil {
		t.Fatalf("SetVersion: %v", err)
	}
	content := actions[0].Content
	if got, want := strings.Count(content, `"1.1.0"`), 2; got != want {
		t.Errorf("occurrences of the new version = %d, want %d (top-level + root package entry)", got, want)
	}
	if !strings.Contains(content, `"left-pad"`) || !strings.Contains(content, `1.2.3`) {
		t.Errorf("content = %q, want left-pad's entry untouched", content)
	}
}

func TestNewPackageLockJSONDependency(t *testing.T) {
	p, err := NewPackageLockJSON("package-lock.json", samplePackageLock, "left-pad", nil)
	if err != nil {
		t.Fatalf("NewPackageLockJSON: %v", err)
	}
	if got, want := p.Version().String(), "1.2.3"; got != want {
		t.Errorf("Version() = %q, want %q", got, want)
	}
}

func TestNewPackageLockJSONWarnsOnUnsupportedLockfileVersion(t *testing.T) {
	content := `{"version": "1.0.0", "lockfileVersion": 1, "packages": {}}`
	var warned string
	_, err := NewPackageLockJSON("package-lock.json", content, "", func(msg string) { warned = msg })
	if err != nil {
		t.Fatalf("NewPackageLockJSON: %v", err)
	}
	if !strings.Contains(warned, "lockfileVersion") {
		t.Errorf("warn message = %q, want it to mention lockfileVersion", warned)
	}
}

func TestNewPackageLockJSONDependencyNotFound(t *testing.T) {
	_, err := NewPackageLockJSON("package-lock.json", samplePackageLock, "missing", nil)
	if _, ok := err.(*ErrDependencyNotFound); !ok {
		t.Fatalf("err = %v, want *ErrDependencyNotFound", err)
	}
}
