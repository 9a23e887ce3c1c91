package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// Result is a translated shader stage.
type Result struct {
	Code string
	// Names maps each uniform name in the untranslated source to the name it
	// carries in Code.
	Names map[string]string
}

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// NeedsTranslation reports whether source is WebGL2 GLSL (#version 300 es)
// rather than desktop GLSL.
func NeedsTranslation(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)
		return len(fields) >= 3 && fields[0] == "#version" && fields[2] == "es"
	}
	return false
}

// Translate converts a WebGL2 stage ("vertex" or "fragment") to GLSL 330.
func Translate(source, stage string) (*Result, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	sh, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}

	res := &Result{
		Code:  sh.Code,
		Names: make(map[string]string, len(sh.Variables)),
	}
	for name, v := range sh.Variables {
		res.Names[name] = v.MappedName
	}
	return res, nil
}
