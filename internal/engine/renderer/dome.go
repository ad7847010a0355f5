package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-sky/internal/engine/dome"
	"github.com/Faultbox/midgard-sky/internal/engine/shader"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

const domeVertexShader = `#version 410 core
layout (location = 0) in vec3 aNormal;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 aColor;

uniform mat4 uViewProj;
uniform vec3 uOffset;
uniform float uRadius;

out vec4 vColor;
out vec2 vUV;

void main() {
    vColor = aColor;
    vUV = aUV;
    gl_Position = uViewProj * vec4(aNormal * uRadius + uOffset, 1.0);
}
`

const domeFragmentShader = `#version 410 core
in vec4 vColor;
in vec2 vUV;

uniform vec3 uStarOffset;
uniform float uStarAlpha;
uniform vec3 uCloudOffset;
uniform float uCloudAlpha;

out vec4 FragColor;

float hash(vec2 p) {
    return fract(sin(dot(p, vec2(127.1, 311.7))) * 43758.5453);
}

float noise(vec2 p) {
    vec2 i = floor(p);
    vec2 f = fract(p);
    vec2 u = f * f * (3.0 - 2.0 * f);
    return mix(mix(hash(i), hash(i + vec2(1, 0)), u.x),
               mix(hash(i + vec2(0, 1)), hash(i + vec2(1, 1)), u.x), u.y);
}

void main() {
    vec3 color = vColor.rgb;

    vec2 su = (vUV + uStarOffset.xy) * 400.0;
    float star = step(0.997, hash(floor(su)));
    color += vec3(star) * clamp(uStarAlpha, 0.0, 1.0);

    vec2 cu = (vUV + uCloudOffset.xz) * 6.0;
    float cloud = noise(cu) * 0.6 + noise(cu * 2.0) * 0.3 + noise(cu * 4.0) * 0.1;
    cloud = smoothstep(0.45, 0.8, cloud) * uCloudAlpha;
    color = mix(color, vec3(max(max(vColor.r, vColor.g), vColor.b) + 0.2), cloud);

    FragColor = vec4(color, 1.0);
}
`

// domeVertex is the interleaved layout uploaded to the GPU.
type domeVertex struct {
	normal [3]float32
	uv     [2]float32
	color  [4]float32
}

// SkyLayers are the per-frame values for the star and cloud layers.
type SkyLayers struct {
	StarOffset  math.Vec3
	StarAlpha   float32
	CloudOffset math.Vec3
	CloudAlpha  float32
}

// DomeRenderer draws a dome.Mesh with per-vertex colors. It must be used
// from the goroutine that owns the GL context.
type DomeRenderer struct {
	mesh     *dome.Mesh
	program  *shader.Program
	vao      uint32
	vbo      uint32
	ebo      uint32
	vertices []domeVertex
}

// NewDomeRenderer uploads mesh and compiles the dome program.
func NewDomeRenderer(mesh *dome.Mesh) (*DomeRenderer, error) {
	prog, err := shader.NewProgram(domeVertexShader, domeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("dome shader: %w", err)
	}

	r := &DomeRenderer{
		mesh:     mesh,
		program:  prog,
		vertices: make([]domeVertex, len(mesh.Normals)),
	}
	for i, n := range mesh.Normals {
		r.vertices[i] = domeVertex{normal: n.Array(), uv: mesh.UVs[i], color: math.ColorBlack.Array()}
	}

	stride := int32(unsafe.Sizeof(domeVertex{}))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertices)*int(stride), gl.Ptr(r.vertices), gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 20)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return r, nil
}

// SetColors uploads one color per mesh sample.
func (r *DomeRenderer) SetColors(colors []math.Color) {
	for i := range r.vertices {
		if i < len(colors) {
			r.vertices[i].color = colors[i].Clamped().Array()
		}
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.vertices)*int(unsafe.Sizeof(domeVertex{})), gl.Ptr(r.vertices))
}

// Draw renders the dome of the given radius translated by offset. Depth
// writes are off so the dome never hides scene geometry.
func (r *DomeRenderer) Draw(viewProj math.Mat4, offset math.Vec3, radius float32, layers SkyLayers) {
	r.program.Use()
	r.program.SetMat4("uViewProj", &viewProj)
	r.program.SetVec3("uOffset", offset)
	r.program.SetFloat("uRadius", radius)
	r.program.SetVec3("uStarOffset", layers.StarOffset)
	r.program.SetFloat("uStarAlpha", layers.StarAlpha)
	r.program.SetVec3("uCloudOffset", layers.CloudOffset)
	r.program.SetFloat("uCloudAlpha", layers.CloudAlpha)

	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(r.mesh.Indices)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.DepthMask(true)
}

// Close releases the GPU resources.
func (r *DomeRenderer) Close() {
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	r.program.Delete()
}
