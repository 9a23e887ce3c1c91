package shader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	vs := writeFile(t, dir, "quad.vs", "#version 330 core\nvoid main() {}\n")
	fs := writeFile(t, dir, "quad.fs", "#version 330 core\nuniform float z;\nvoid main() {}\n")

	src, err := ReadSources(vs, fs)
	if err != nil {
		t.Fatalf("ReadSources failed: %v", err)
	}
	if !strings.Contains(src.Fragment, "uniform float z") {
		t.Errorf("fragment source not read: %q", src.Fragment)
	}
	if src.VertexPath != vs || src.FragmentPath != fs {
		t.Errorf("paths not recorded: %q %q", src.VertexPath, src.FragmentPath)
	}
}

func TestReadSourcesMissingFile(t *testing.T) {
	dir := t.TempDir()
	vs := writeFile(t, dir, "quad.vs", "void main() {}\n")
	missing := filepath.Join(dir, "missing.fs")

	tests := []struct {
		name     string
		vertex   string
		fragment string
		want     string
	}{
		{"missing vertex", missing, vs, "vertex"},
		{"missing fragment", vs, missing, "fragment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSources(tt.vertex, tt.fragment)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("expected ErrNotExist in chain, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should name the %s stage", err, tt.want)
			}
		})
	}
}

// Load must fail on the file read, before it reaches any GL call; this test
// runs without a GL context.
func TestLoadMissingFileFailsBeforeGL(t *testing.T) {
	dir := t.TempDir()
	p, err := Load(filepath.Join(dir, "nope.vs"), filepath.Join(dir, "nope.fs"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if p != nil {
		t.Errorf("expected no program, got %+v", p)
	}
}

func TestMappedName(t *testing.T) {
	p := &Program{names: map[string]string{"z": "_uz"}}
	if got := p.mappedName("z"); got != "_uz" {
		t.Errorf("mappedName(z) = %q", got)
	}
	if got := p.mappedName("w"); got != "w" {
		t.Errorf("unmapped names should pass through, got %q", got)
	}
}

func TestTrimLog(t *testing.T) {
	if got := trimLog("0:3(1): error: syntax error\n\x00\x00"); got != "0:3(1): error: syntax error" {
		t.Errorf("trimLog = %q", got)
	}
}

func TestPrepareMergesTranslatedNames(t *testing.T) {
	vertex := "#version 300 es\nlayout (location = 0) in vec3 aPos;\nvoid main() { gl_Position = vec4(aPos, 1.0); }\n"
	fragment := "#version 300 es\nprecision highp float;\nout vec4 FragColor;\nuniform float z;\nvoid main() { FragColor = vec4(z, 0.5, 1.0 - z, 1.0); }\n"

	names := make(map[string]string)
	vs, err := prepare(vertex, "vertex", names)
	if err != nil {
		t.Fatalf("vertex prepare failed: %v", err)
	}
	fs, err := prepare(fragment, "fragment", names)
	if err != nil {
		t.Fatalf("fragment prepare failed: %v", err)
	}

	for _, code := range []string{vs, fs} {
		if !strings.HasPrefix(code, "#version 330") {
			t.Errorf("expected GLSL 330 output, got:\n%s", code)
		}
	}
	if names["aPos"] == "" {
		t.Errorf("vertex names missing from %v", names)
	}
	if names["z"] == "" {
		t.Errorf("fragment names missing from %v", names)
	}

	p := &Program{names: names}
	if got := p.mappedName("z"); got != names["z"] || !strings.Contains(fs, got) {
		t.Errorf("mappedName(z) = %q, not found in translated fragment", got)
	}
}

func TestPrepareLeavesDesktopSource(t *testing.T) {
	source := "#version 330 core\nuniform float z;\nvoid main() {}\n"
	names := make(map[string]string)
	got, err := prepare(source, "fragment", names)
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if got != source {
		t.Errorf("desktop source was changed:\n%s", got)
	}
	if len(names) != 0 {
		t.Errorf("expected no name mappings, got %v", names)
	}
}
