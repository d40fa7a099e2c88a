// Package sox wraps the SoX command line tool for the three processing
// steps applied to every segment: cutting, speech filtering, and MP3
// transcoding.
//
// Each step is one subprocess invocation built from an explicit argument
// list; the tool's exit code and captured output are the only feedback
// channel. Command execution goes through an injectable Executor so tests
// exercise argument construction and failure handling without SoX
// installed.
package sox
