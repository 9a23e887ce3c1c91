package shader

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/richinsley/goquad/translator"
)

// Sources holds the text of both stages of a program.
type Sources struct {
	VertexPath   string
	FragmentPath string
	Vertex       string
	Fragment     string
}

// Program is a linked vertex+fragment program.
type Program struct {
	id        uint32
	names     map[string]string // source uniform name -> name in compiled code
	locations map[string]int32
}

// ReadSources reads both stage files. It touches no GL state.
func ReadSources(vertexPath, fragmentPath string) (*Sources, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment shader: %w", err)
	}
	return &Sources{
		VertexPath:   vertexPath,
		FragmentPath: fragmentPath,
		Vertex:       string(vs),
		Fragment:     string(fs),
	}, nil
}

// Load reads, compiles and links the two stage files into a program.
// A GL context must be current.
func Load(vertexPath, fragmentPath string) (*Program, error) {
	src, err := ReadSources(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	return New(src)
}

// New compiles and links src. Stages written as WebGL2 GLSL are translated
// to GLSL 330 first.
func New(src *Sources) (*Program, error) {
	names := make(map[string]string)

	vs, err := prepare(src.Vertex, "vertex", names)
	if err != nil {
		return nil, err
	}
	fs, err := prepare(src.Fragment, "fragment", names)
	if err != nil {
		return nil, err
	}

	id, err := newProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program from %s and %s: %w", src.VertexPath, src.FragmentPath, err)
	}

	return &Program{
		id:        id,
		names:     names,
		locations: make(map[string]int32),
	}, nil
}

func prepare(source, stage string, names map[string]string) (string, error) {
	if !translator.NeedsTranslation(source) {
		return source, nil
	}
	res, err := translator.Translate(source, stage)
	if err != nil {
		return "", err
	}
	for name, mapped := range res.Names {
		names[name] = mapped
	}
	return res.Code, nil
}

func (p *Program) ID() uint32 {
	return p.id
}

// Use makes p the active program for subsequent draw calls.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// SetFloat assigns a float uniform. p must be active. Names the program
// does not declare are ignored.
func (p *Program) SetFloat(name string, value float32) {
	gl.Uniform1f(p.location(name), value)
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(p.mappedName(name)+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *Program) mappedName(name string) string {
	if mapped, ok := p.names[name]; ok {
		return mapped
	}
	return name
}

func (p *Program) Delete() {
	gl.DeleteProgram(p.id)
}
