package geometry

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertices are the corners of a 1x1 quad centred on the origin.
var Vertices = [4]mgl32.Vec3{
	{0.5, 0.5, 0.0},   // top-right
	{0.5, -0.5, 0.0},  // bottom-right
	{-0.5, -0.5, 0.0}, // bottom-left
	{-0.5, 0.5, 0.0},  // top-left
}

// Indices split the quad into two triangles.
var Indices = [6]uint32{
	0, 1, 3,
	1, 2, 3,
}

const (
	floatSize  = 4
	vertexSize = 3 * floatSize
)

// VertexData flattens Vertices into the layout uploaded to the vertex buffer.
func VertexData() []float32 {
	data := make([]float32, 0, len(Vertices)*3)
	for _, v := range Vertices {
		data = append(data, v[0], v[1], v[2])
	}
	return data
}

// Triangles resolves Indices against Vertices.
func Triangles() [][3]mgl32.Vec3 {
	tris := make([][3]mgl32.Vec3, 0, len(Indices)/3)
	for i := 0; i+2 < len(Indices); i += 3 {
		tris = append(tris, [3]mgl32.Vec3{
			Vertices[Indices[i]],
			Vertices[Indices[i+1]],
			Vertices[Indices[i+2]],
		})
	}
	return tris
}

// TriangleArea is the area of the triangle abc.
func TriangleArea(a, b, c mgl32.Vec3) float32 {
	return b.Sub(a).Cross(c.Sub(a)).Len() / 2
}

// Area is the total area covered by the quad's triangles.
func Area() float32 {
	var area float32
	for _, t := range Triangles() {
		area += TriangleArea(t[0], t[1], t[2])
	}
	return area
}

// Quad is the uploaded vertex array, vertex buffer and index buffer.
type Quad struct {
	vao   uint32
	vbo   uint32
	ebo   uint32
	count int32
}

// NewQuad uploads the quad once. A GL context must be current.
func NewQuad() *Quad {
	q := &Quad{count: int32(len(Indices))}
	vertices := VertexData()
	indices := Indices[:]

	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)

	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexSize, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &q.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// Unbind the VAO first so it keeps its element buffer binding.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return q
}

func (q *Quad) Bind() {
	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ebo)
}

// Draw issues the indexed draw. The quad must be bound.
func (q *Quad) Draw() {
	gl.DrawElements(gl.TRIANGLES, q.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (q *Quad) Count() int32 {
	return q.count
}

func (q *Quad) Delete() {
	gl.DeleteBuffers(1, &q.ebo)
	gl.DeleteBuffers(1, &q.vbo)
	gl.DeleteVertexArrays(1, &q.vao)
}
