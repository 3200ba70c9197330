// Package typewriter provides a Bubble Tea component that reveals a string
// character by character, or erases it in backwards mode, with a blinking
// cursor.
//
// A Model owns three cooperating parts: the reveal controller that advances
// one grapheme cluster per tick, the delay gate that holds the reveal idle
// for a start delay after activation, and the cursor animator that blinks
// the cursor while typing and fades it out after the reveal finishes.
// All timing runs through tea.Tick; every timer carries the model id and a
// tag, so timers cancelled by deactivation, pause, reset or Unmount are
// dropped when they arrive.
package typewriter
