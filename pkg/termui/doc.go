// Package termui renders toasts in a terminal.
//
// Board implements toast.Renderer and keeps the cards of every position.
// Model is a Bubble Tea model that redraws the board on a fixed frame rate:
//
//	board := termui.NewBoard()
//	reg := toast.NewRegistry(board)
//	p := tea.NewProgram(termui.NewModel(board))
//
// Cards are hidden until their entrance commits and are drawn faint while
// leaving. Title and message are printed as plain text with control
// characters removed.
package termui
