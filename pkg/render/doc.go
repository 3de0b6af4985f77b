// Package render compiles a parsed presentation into an ordered stream of
// external-tool commands.
//
// The compiler computes all geometry itself (canvas fills, aspect-preserving
// image footprints, scaled label boxes, meme caption placement) and emits
// the exact argument lists the ImageMagick and syntax-highlighter
// collaborators need to reproduce each slide as one PNG. Executing the
// stream is the executor package's job; compilation only reads the source
// image dimensions through a Prober.
//
// The command stream is strictly ordered: the output directory is deleted
// and recreated before any slide work, slides follow in ascending index
// order so output names are deterministic, and the scratch directory for
// intermediate code rasters is removed last.
package render
