package board

import "errors"

// Sentinel errors for the taxonomy a caller can match with errors.Is.
// InvalidFEN and InvalidMoveToken are fatal for the call that produced
// them; the prior Board, if any, is left untouched. ErrEmptyUndo names
// the programmer error of unmaking with nothing left to undo; nothing
// in this package returns it, since UnmakeMove takes its UndoEntry from
// the caller and the Board keeps no undo stack.
var (
	ErrInvalidFEN       = errors.New("board: invalid FEN")
	ErrInvalidMoveToken = errors.New("board: invalid move token")
	ErrEmptyUndo        = errors.New("board: unmake called with empty undo stack")
)
