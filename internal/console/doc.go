// Package console provides an interactive operator console for polyglot.
//
// It drives the same session controller as the HTTP API, in-process, so the
// whole signup, login and translate flow can be exercised from a terminal
// without a browser. Speech input is read from audio files and synthesized
// speech can be written to an mp3 file.
//
// Besides the visitor commands the console offers a few operator commands:
// listing registered usernames and adding or removing catalog languages.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package console
