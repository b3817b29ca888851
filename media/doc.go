// Package media wraps the external ffmpeg and ffprobe binaries.
//
// Every invocation goes through the narrow [Runner] interface so that any
// backend able to probe, cut and join files can stand in, and so tests can
// script tool behavior without the binaries installed. The [Toolkit]
// builds the argument lists and interprets the results:
//
//   - Probe / Duration: ffprobe JSON for stream types and duration
//   - Extract: cut a normalized segment from a source recording
//   - Validate: confirm a segment has video, audio and a sane duration
//   - Concat: join validated segments through a concat-demuxer manifest
package media
