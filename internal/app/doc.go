// Package app contains the headless runner. It wires every node module into
// a registry, opens a session, drives its animations for a number of frames,
// prints previews and saves the result, decoupled from any specific
// entrypoint like a CLI.
package app
