// Package canvas is a CPU 2D vector rasterizer with an HTML5-canvas
// drawing model.
//
// # Overview
//
// canvas renders immediate-mode paths, strokes, fills, gradients,
// patterns, clips, shadows and text into a caller-supplied pixel
// surface. It is a companion to github.com/gogpu/gg for workloads that
// want deterministic software rendering with gamma-correct,
// premultiplied-alpha blending and no GPU in the loop.
//
// # Quick Start
//
//	import "github.com/gogpu/canvas"
//
//	pm := canvas.NewPixmap(512, 512)
//	ctx := canvas.New(pm)
//
//	ctx.SetFillStyle(canvas.SolidHex("#1E90FF"))
//	ctx.BeginPath()
//	ctx.Arc(256, 256, 120, 0, 2*math.Pi, false)
//	ctx.Fill()
//
//	pm.SavePNG("output.png")
//
// # Architecture
//
// The public API lives in this package: Canvas, Surface, Pixmap, Point,
// Matrix, RGBA, brushes and the style enumerations. The rendering
// pipeline lives under internal/:
//   - curve: adaptive Bezier tessellation
//   - dash: dash pattern splitting
//   - stroke: half-stroke expansion with joins and caps
//   - raster: polyline to signed-coverage pixel runs
//   - blend: composite operations and the run-merge compositor
//   - clipmask: clip mask intersection
//   - filter: shadow blur
//   - colorspace: gamma curves and premultiplication
//
// Text shaping and glyph outlines live in the text subpackage.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right
//
// # Concurrency
//
// A Canvas is single-threaded: all calls complete synchronously and a
// single instance must not be shared between goroutines without
// external synchronization. Independent instances never share mutable
// state and may run concurrently.
package canvas
