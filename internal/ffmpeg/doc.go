// Package ffmpeg runs the external ffmpeg/ffprobe tools and builds the
// slideshow encode command.
//
// Files:
//   - executor.go: Runner interface and the os/exec implementation; captures
//     stdout/stderr and optionally tees stderr live.
//   - errors.go: ToolError (missing binary or non-zero exit) and stderr
//     classification into short hints.
//   - escape.go: the two independent escaping passes (shell quoting and
//     filter-graph escaping) plus text escaping for drawtext.
//   - filter.go: the four-clause filter graph (video concat, audio concat,
//     drawtext overlay, merge).
//   - builder.go: EncodeRequest, the full argument list for one encode.
//
// Input index contract: images occupy inputs 0..N-1, audio clips N..2N-1.
// The filter graph references streams by those indices.
package ffmpeg
