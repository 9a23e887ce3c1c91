package translator

import (
	"strings"
	"testing"
)

const webglVertex = `#version 300 es
layout (location = 0) in vec3 aPos;

void main()
{
    gl_Position = vec4(aPos, 1.0);
}
`

const webglFragment = `#version 300 es
precision highp float;
out vec4 FragColor;

uniform float z;

void main()
{
    FragColor = vec4(z, 0.5, 1.0 - z, 1.0);
}
`

func TestNeedsTranslation(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"desktop core", "#version 330 core\nvoid main() {}\n", false},
		{"webgl2", "#version 300 es\nprecision highp float;\n", true},
		{"leading comment", "// quad shader\n\n#version 300 es\n", true},
		{"no version", "void main() {}\n", false},
		{"empty", "", false},
		{"indented", "   #version 300 es\n", true},
		{"version only", "#version 330\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsTranslation(tt.source); got != tt.want {
				t.Errorf("NeedsTranslation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		stage    string
		variable string
		wantCode string
	}{
		{"vertex", webglVertex, "vertex", "aPos", "layout(location = 0)"},
		{"fragment", webglFragment, "fragment", "z", "uniform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Translate(tt.source, tt.stage)
			if err != nil {
				t.Fatalf("Translate failed: %v", err)
			}
			if !strings.HasPrefix(res.Code, "#version 330") {
				t.Errorf("expected GLSL 330 output, got:\n%s", res.Code)
			}
			if !strings.Contains(res.Code, tt.wantCode) {
				t.Errorf("expected %q in output:\n%s", tt.wantCode, res.Code)
			}
			mapped := res.Names[tt.variable]
			if mapped == "" {
				t.Fatalf("no mapped name for %q in %v", tt.variable, res.Names)
			}
			if !strings.Contains(res.Code, mapped) {
				t.Errorf("mapped name %q does not appear in output:\n%s", mapped, res.Code)
			}
		})
	}
}

func TestTranslateRejectsInvalidSource(t *testing.T) {
	if _, err := Translate("#version 300 es\nvoid main() { undeclared = 1.0; }\n", "fragment"); err == nil {
		t.Fatal("expected an error for an undeclared variable")
	}
}
