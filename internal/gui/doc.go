// Package gui provides the Fyne desktop interface for lyrics-editor.
//
// The window shows the sorted files of one folder on the left and the
// lyrics of the selected file on the right. All actions go through an
// editor.Session:
//
//	Browse    Ctrl+O (Cmd+O on macOS)
//	Save      Ctrl+S
//	Clear     Ctrl+L
//	Next      Ctrl+N
//	Previous  Ctrl+P
//
// Errors are shown as blocking dialogs built from editor.NoticeFor.
package gui
