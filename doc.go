// Package ambient is a reactive ambient particle field for [Ebitengine].
//
// A [Field] owns a fixed population of small shapes that drift slowly across
// a drawing surface, wrap at its edges and react to the pointer: particles
// within [InfluenceRadius] are pushed away and magnified, then ease back to
// rest once the pointer moves on. Colors come from a fixed dark or light
// [Palette] chosen by the host's dark-mode signal.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window, acts as
// the field's [Host] and drives the frame loop:
//
//	err := ambient.Run(ambient.RunConfig{
//		Title: "Ambient", Width: 1280, Height: 720, DarkMode: true,
//	})
//
// Press T to toggle the theme, S to save a screenshot and Esc to quit.
//
// # Embedding
//
// To draw a field inside your own game, implement [Host] and drive a
// [FrameQueue] from your Update:
//
//	surface := ambient.NewImageSurface(w, h)
//	field, err := ambient.NewField(host, ambient.FieldConfig{
//		SurfaceID: "particleCanvas",
//		Device:    ambient.DetectDevice(),
//	})
//	// each tick:
//	queue.Flush()
//	// each draw:
//	screen.DrawImage(surface.Image(), nil)
//
// Deliver input through the host's [Events]. Call [Field.Teardown] when the
// field is no longer needed; it cancels the pending frame and removes every
// handler the field registered.
//
// Configuration files and per-frame statistics live in the config and
// telemetry subpackages.
//
// [Ebitengine]: https://ebitengine.org
package ambient
