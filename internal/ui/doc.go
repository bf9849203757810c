// Package ui is the interactive viewer behind --interactive.
//
// The viewer is a Bubble Tea program. Rendered lines arrive on a channel fed
// by the follow loop and are appended to a bounded scrollback shown in a
// viewport. While following, the viewport sticks to the bottom; scrolling up
// pauses following until G or f resumes it.
//
// A status bar polls state.Store once a second and shows the read offset,
// line counters, rotation resets and the last read error. When the stream
// ends (file removed, follow disabled) the viewer stays open so the final
// lines can still be read.
//
// Keys:
//
//	f        toggle follow
//	g / G    jump to top / bottom
//	j k      scroll (also arrows, pgup/pgdown)
//	T        cycle theme (saved to prefs)
//	?        toggle help
//	q        quit
package ui
