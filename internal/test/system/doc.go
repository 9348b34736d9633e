// Package system runs whole session files through the app the way the
// vecgraph binary does and checks the printed previews and saved sessions.
package system
