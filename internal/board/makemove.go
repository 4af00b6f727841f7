package board

// MakeMove applies m to the board and returns the UndoEntry needed to
// reverse it. The nine steps below run in a fixed order; each leaves
// every redundant structure (piece bitboards, side masks, occupancy,
// mailbox, Zobrist hash) mutually consistent before the next begins.
func (p *Board) MakeMove(m Move) UndoEntry {
	undo := UndoEntry{
		Move:           m,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfmoveClock:  p.HalfmoveClock,
		Hash:           p.Hash,
		PawnKey:        p.PawnKey,
		Checkers:       p.Checkers,
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := m.Piece()
	pt := piece.Type()

	// 2. Castling-right updates.
	p.Hash ^= zobristCastling[p.CastlingRights]
	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if pt == Rook || m.IsCapture() {
		switch from {
		case A1:
			p.CastlingRights &^= WhiteQueenSideCastle
		case H1:
			p.CastlingRights &^= WhiteKingSideCastle
		case A8:
			p.CastlingRights &^= BlackQueenSideCastle
		case H8:
			p.CastlingRights &^= BlackKingSideCastle
		}
	}
	if m.IsCapture() {
		switch to {
		case A1:
			p.CastlingRights &^= WhiteQueenSideCastle
		case H1:
			p.CastlingRights &^= WhiteKingSideCastle
		case A8:
			p.CastlingRights &^= BlackQueenSideCastle
		case H8:
			p.CastlingRights &^= BlackKingSideCastle
		}
	}
	p.Hash ^= zobristCastling[p.CastlingRights]

	// 3. En-passant target update.
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	if m.IsDoublePawnPush() {
		p.EnPassant = to.shiftedBy(us, -1)
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	} else {
		p.EnPassant = NoSquare
	}

	// 5. Capture: clear the captured piece from the opponent's state
	// first. For a normal capture the captured square equals to, which
	// the mover is about to occupy; clearing it before step 4 moves the
	// mover there keeps AllOccupied/mailbox single-writer at each square
	// instead of having step 4 set to and step 5 immediately re-clear it.
	if m.IsCapture() {
		capturedSq := to
		captured := m.CapturedPiece()
		if m.IsEnPassant() {
			capturedSq = to.shiftedBy(us, -1)
		}
		p.clearPieceTyped(them, captured.Type(), capturedSq)
		p.Hash ^= zobristPiece[them][captured.Type()][capturedSq]
		if captured.Type() == Pawn {
			p.PawnKey ^= zobristPiece[them][Pawn][capturedSq]
		}
	}

	// 4. Move the piece on its own bitboard/mask/occupancy/mailbox.
	p.movePieceTyped(us, pt, from, to)
	p.Hash ^= zobristPiece[us][pt][from]
	p.Hash ^= zobristPiece[us][pt][to]
	if pt == Pawn {
		p.PawnKey ^= zobristPiece[us][Pawn][from]
		p.PawnKey ^= zobristPiece[us][Pawn][to]
	}

	// 6. Castle: move the corresponding rook.
	if m.IsCastle() {
		rank := from.Rank()
		var rookFrom, rookTo Square
		if to > from {
			rookFrom, rookTo = NewSquare(7, rank), NewSquare(5, rank)
		} else {
			rookFrom, rookTo = NewSquare(0, rank), NewSquare(3, rank)
		}
		p.movePieceTyped(us, Rook, rookFrom, rookTo)
		p.Hash ^= zobristPiece[us][Rook][rookFrom]
		p.Hash ^= zobristPiece[us][Rook][rookTo]
	}

	// 7. Promotion: swap the pawn for the promoted piece on to-square.
	if m.IsPromotion() {
		promo := m.PromotionPiece()
		p.clearPieceTyped(us, Pawn, to)
		p.setPieceTyped(us, promo.Type(), to)
		p.Hash ^= zobristPiece[us][Pawn][to]
		p.Hash ^= zobristPiece[us][promo.Type()][to]
		p.PawnKey ^= zobristPiece[us][Pawn][to]
	}

	// 8. Halfmove counter.
	p.Hash ^= ZobristHalfmove(p.HalfmoveClock)
	if pt == Pawn || m.IsCapture() {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}
	p.Hash ^= ZobristHalfmove(p.HalfmoveClock)

	if us == Black {
		p.FullMoveNumber++
	}

	// 9. Flip side to move.
	p.SideToMove = them
	p.Hash ^= zobristSideToMove

	if pt == King {
		p.KingSquare[us] = to
	}
	p.UpdateCheckers()

	return undo
}

// UnmakeMove reverses a MakeMove call using the saved UndoEntry,
// restoring the Zobrist hash verbatim rather than recomputing it from
// individual keys, and rebuilding the piece/mask/occupancy/mailbox
// state step by step in the strict reverse of make_move's order.
func (p *Board) UnmakeMove(undo UndoEntry) {
	m := undo.Move
	them := p.SideToMove
	us := them.Other()
	from, to := m.From(), m.To()
	piece := m.Piece()
	pt := piece.Type()

	p.SideToMove = us
	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsPromotion() {
		promo := m.PromotionPiece()
		p.clearPieceTyped(us, promo.Type(), to)
		p.setPieceTyped(us, Pawn, to)
	}

	if m.IsCastle() {
		rank := from.Rank()
		var rookFrom, rookTo Square
		if to > from {
			rookFrom, rookTo = NewSquare(7, rank), NewSquare(5, rank)
		} else {
			rookFrom, rookTo = NewSquare(0, rank), NewSquare(3, rank)
		}
		p.movePieceTyped(us, Rook, rookTo, rookFrom)
	}

	// Move the mover back to from first, vacating to; only afterward
	// restore the captured piece at capturedSq, mirroring make_move's
	// clear-before-move order in reverse so to is never briefly claimed
	// by both the mover and the piece it captured.
	p.movePieceTyped(us, pt, to, from)
	if pt == King {
		p.KingSquare[us] = from
	}

	if m.IsCapture() {
		capturedSq := to
		if m.IsEnPassant() {
			capturedSq = to.shiftedBy(us, -1)
		}
		p.setPieceTyped(them, m.CapturedPiece().Type(), capturedSq)
	}

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfmoveClock = undo.HalfmoveClock
	p.Hash = undo.Hash
	p.PawnKey = undo.PawnKey
	p.Checkers = undo.Checkers
}

// movePieceTyped, setPieceTyped, and clearPieceTyped mutate the piece
// bitboard, the side occupancy mask, the all-occupied mask, and the
// mailbox together; they never touch the Zobrist hash, which callers
// update explicitly alongside each structural change.
func (p *Board) movePieceTyped(c Color, pt PieceType, from, to Square) {
	moveBB := SquareBB(from) | SquareBB(to)
	p.Pieces[c][pt] ^= moveBB
	p.Occupied[c] ^= moveBB
	p.AllOccupied ^= moveBB
	p.mailbox[from] = NoPiece
	p.mailbox[to] = NewPiece(pt, c)
}

func (p *Board) setPieceTyped(c Color, pt PieceType, sq Square) {
	bb := SquareBB(sq)
	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
	p.mailbox[sq] = NewPiece(pt, c)
}

func (p *Board) clearPieceTyped(c Color, pt PieceType, sq Square) {
	bb := SquareBB(sq)
	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
	p.mailbox[sq] = NoPiece
}
