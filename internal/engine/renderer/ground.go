package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-sky/internal/engine/lighting"
	"github.com/Faultbox/midgard-sky/internal/engine/picking"
	"github.com/Faultbox/midgard-sky/internal/engine/shader"
	"github.com/Faultbox/midgard-sky/internal/sky"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

const groundVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uViewProj;

out vec3 vWorld;
out vec3 vNormal;

void main() {
    vWorld = aPos;
    vNormal = aNormal;
    gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const groundFragmentShader = `#version 410 core
#define MAX_LIGHTS 8

in vec3 vWorld;
in vec3 vNormal;

uniform vec3 uEye;
uniform int uLightCount;
uniform vec3 uLightDir[MAX_LIGHTS];
uniform vec4 uLightColor[MAX_LIGHTS];
uniform vec4 uAmbient;
uniform vec4 uShadow;

uniform int uFogMode;
uniform float uFogDensity;
uniform float uFogStart;
uniform float uFogEnd;
uniform vec4 uFogColor;

out vec4 FragColor;

void main() {
    vec3 n = normalize(vNormal);
    vec3 albedo = vec3(0.45, 0.42, 0.38);
    if (n.y > 0.99 && vWorld.y < 0.01) {
        // Checker so motion is visible.
        vec2 cell = floor(vWorld.xz / 200.0);
        albedo = vec3(0.32, 0.42, 0.22) * (0.9 + 0.1 * mod(cell.x + cell.y, 2.0));
    }

    vec3 light = uAmbient.rgb;
    for (int i = 0; i < uLightCount; i++) {
        light += uLightColor[i].rgb * max(dot(n, uLightDir[i]), 0.0);
    }
    vec3 color = albedo * light * mix(vec3(1.0), uShadow.rgb, 0.15);

    float d = length(vWorld - uEye);
    float f;
    if (uFogMode == 0) {
        f = clamp((uFogEnd - d) / (uFogEnd - uFogStart), 0.0, 1.0);
    } else if (uFogMode == 1) {
        f = exp(-uFogDensity * d);
    } else {
        f = exp(-pow(uFogDensity * d, 2.0));
    }
    FragColor = vec4(mix(uFogColor.rgb, color, f), 1.0);
}
`

type groundRenderer struct {
	program  *shader.Program
	vao      uint32
	vbo      uint32
	vertices int32
}

// groundVertices builds position/normal triangles for the ground quad and
// the sides and top of every box.
func groundVertices(size float32, boxes []picking.AABB) []float32 {
	up := [3]float32{0, 1, 0}
	var v []float32
	quad := func(n [3]float32, a, b, c, d [3]float32) {
		for _, p := range [][3]float32{a, b, c, a, c, d} {
			v = append(v, p[0], p[1], p[2], n[0], n[1], n[2])
		}
	}

	quad(up, [3]float32{-size, 0, -size}, [3]float32{size, 0, -size},
		[3]float32{size, 0, size}, [3]float32{-size, 0, size})

	for _, b := range boxes {
		x0, y0, z0 := b.Min.X, b.Min.Y, b.Min.Z
		x1, y1, z1 := b.Max.X, b.Max.Y, b.Max.Z
		quad(up, [3]float32{x0, y1, z0}, [3]float32{x1, y1, z0}, [3]float32{x1, y1, z1}, [3]float32{x0, y1, z1})
		quad([3]float32{-1, 0, 0}, [3]float32{x0, y0, z0}, [3]float32{x0, y1, z0}, [3]float32{x0, y1, z1}, [3]float32{x0, y0, z1})
		quad([3]float32{1, 0, 0}, [3]float32{x1, y0, z0}, [3]float32{x1, y0, z1}, [3]float32{x1, y1, z1}, [3]float32{x1, y1, z0})
		quad([3]float32{0, 0, -1}, [3]float32{x0, y0, z0}, [3]float32{x1, y0, z0}, [3]float32{x1, y1, z0}, [3]float32{x0, y1, z0})
		quad([3]float32{0, 0, 1}, [3]float32{x0, y0, z1}, [3]float32{x0, y1, z1}, [3]float32{x1, y1, z1}, [3]float32{x1, y0, z1})
	}
	return v
}

func newGroundRenderer(size float32, boxes []picking.AABB) (*groundRenderer, error) {
	if size <= 0 {
		size = 20000
	}
	prog, err := shader.NewProgram(groundVertexShader, groundFragmentShader)
	if err != nil {
		return nil, err
	}
	g := &groundRenderer{program: prog}

	verts := groundVertices(size, boxes)
	g.vertices = int32(len(verts) / 6)

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return g, nil
}

func (g *groundRenderer) Draw(viewProj math.Mat4, eye math.Vec3, lights *lighting.Buffer, fog sky.Fog, shadow math.Color) {
	p := g.program
	p.Use()
	p.SetMat4("uViewProj", &viewProj)
	p.SetVec3("uEye", eye)
	p.SetInt("uLightCount", int32(lights.Count()))
	p.SetVec3Array("uLightDir", lights.Directions())
	p.SetVec4Array("uLightColor", lights.Colors())
	p.SetColor("uAmbient", lights.Ambient)
	p.SetColor("uShadow", shadow.Clamped())
	p.SetInt("uFogMode", int32(fog.Mode))
	p.SetFloat("uFogDensity", fog.Density)
	p.SetFloat("uFogStart", fog.Start)
	p.SetFloat("uFogEnd", fog.End)
	p.SetColor("uFogColor", fog.Color)

	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, g.vertices)
	gl.BindVertexArray(0)
}

func (g *groundRenderer) Close() {
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteVertexArrays(1, &g.vao)
	g.program.Delete()
}
