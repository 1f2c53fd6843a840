// Package editor holds the state of an editing session: the opened folder,
// its sorted entries, the selected file and the lyrics being edited.
//
// Presentation shells (GUI, TUI) own one Session and call its operations
// in response to user actions. Each operation runs to completion before
// the next one starts; a Session is not safe for concurrent use.
//
// State machine for the selected file:
//
//	Unselected --Select--> Loaded --Edit/Clear--> Edited --Save--> Saved
//	                                                 ^               |
//	                                                 +----Edit/Clear-+
//
// A failed Save stays in Edited with the pending text intact.
package editor
