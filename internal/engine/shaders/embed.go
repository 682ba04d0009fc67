// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DistanceLUTSize is the length of the uDistanceLUT array in PlanetVertexShader.
const DistanceLUTSize = 32

// PlanetVertexShader rebuilds the sphere position of every template vertex
// from the instance frame and applies the geomorph.
//
//go:embed planet.vert
var PlanetVertexShader string

// PlanetFragmentShader is the fragment shader for planet patches.
//
//go:embed planet.frag
var PlanetFragmentShader string
