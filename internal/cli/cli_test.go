package cli

import (
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/amidalab/amidakuji/pkg/pipeline"
)

func TestSplitEntries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "alice", []string{"alice"}},
		{"multiple", "alice,bob,carol", []string{"alice", "bob", "carol"}},
		{"whitespace trimmed", " alice , bob ", []string{"alice", "bob"}},
		{"empty entries preserved", "a,,b", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitEntries(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitEntries(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{pipeline.FormatSVG}) {
		t.Errorf("empty should default to svg, got %v", got)
	}
	if got := parseFormats("svg,png"); !reflect.DeepEqual(got, []string{"svg", "png"}) {
		t.Errorf("parseFormats = %v", got)
	}
	if got := parseFormats("svg, png "); !reflect.DeepEqual(got, []string{"svg", "png"}) {
		t.Errorf("whitespace should be trimmed, got %v", got)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("3f2a9c1d-aaaa-bbbb-cccc-121212121212"); got != "3f2a9c1d" {
		t.Errorf("shortID = %q, want %q", got, "3f2a9c1d")
	}
	if got := shortID("plain"); got != "plain" {
		t.Errorf("shortID without dash = %q, want %q", got, "plain")
	}
}

func TestHasFormat(t *testing.T) {
	formats := []string{"svg", "text"}
	if !hasFormat(formats, "text") {
		t.Error("expected text to be present")
	}
	if hasFormat(formats, "png") {
		t.Error("png should be absent")
	}
}

func TestCacheDirHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	got, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, appName); got != want {
		t.Errorf("cacheDir = %q, want %q", got, want)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"draw", "render", "reveal", "share", "history", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
