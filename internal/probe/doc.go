// Package probe reads the duration of audio clips with ffprobe.
//
// A single JSON call per file asks ffprobe for format.duration only:
//
//	ffprobe -v error -show_entries format=duration -of json <path>
//
// The process itself is run through an [ffmpeg.Runner], so a missing binary
// or non-zero exit surfaces as an *ffmpeg.ToolError and output that cannot
// be turned into a usable duration surfaces as a *ParseError.
//
// Embedded tags (title, artist) can be read with [ReadTags] for display
// while probing; they never affect the encode.
package probe
