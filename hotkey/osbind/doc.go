// Package osbind registers hotkey chords with the operating system.
//
// On Linux chords are grabbed on the X11 root window through xgbutil. The
// display connection is opened on the first Bind, so importing this package
// never touches the display. A grab the server refuses (another client owns
// the chord) comes back as an error from Bind, and releasing a grab never
// waits for input. Darwin and Windows use golang.design/x/hotkey.
//
// Only the GUI imports this package; everything else works against
// hotkey.Binder.
package osbind
