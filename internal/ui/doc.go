// ABOUTME: Terminal UI package
// ABOUTME: Bubbletea key listener and throttle gauge for the engine
// Package ui turns a terminal into the engine's throttle pedal.
//
// KeyListener implements control.KeySource. Terminals only report key
// presses, so a key counts as held while autorepeat keeps delivering it and
// as released once no repeat arrives within the hold timeout.
package ui
