package board

// This file generates fully-legal moves directly, without a
// generate-then-filter pass. Per call to GenerateLegalMoves three
// pieces of context are computed once and threaded through every
// per-piece-type generator:
//
//   - checkMask: squares a non-king piece may move to in order to
//     answer the current check — the full board when not in check,
//     the checking ray inclusive of the checker itself when in single
//     check, and Empty when in double check (only king moves survive
//     double check, since no square blocks two checkers at once).
//   - pinRay: for each pinned piece, the ray (inclusive of the pinning
//     slider) it may still move along without exposing its own king;
//     computed via the standard x-ray trick of casting a slider
//     attack from the king through the enemy occupancy only (our own
//     pieces are transparent) and checking for exactly one of our own
//     pieces between king and attacker.
//   - seenByEnemy: every square attacked by the side not to move, with
//     our own king removed from the occupancy first, so a king that
//     steps straight back along a check ray is still correctly seen
//     as moving into check.
type legalState struct {
	us, them     Color
	checkMask    Bitboard
	pinnedDiag   Bitboard
	pinnedOrtho  Bitboard
	seenByEnemy  Bitboard
	checkerCount int
}

var pinRay [64]Bitboard

// pinMask returns the destination mask a piece on sq is restricted to:
// Universe if unpinned, otherwise the ray it was pinned along.
func (st *legalState) pinMask(sq Square) Bitboard {
	if st.pinnedDiag&SquareBB(sq) != 0 || st.pinnedOrtho&SquareBB(sq) != 0 {
		return pinRay[sq]
	}
	return Universe
}

// GenerateLegalMoves generates all legal moves for the side to move.
func (p *Board) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	st := p.computeLegalState()

	p.generateKingMoves(ml, st)
	if st.checkerCount >= 2 {
		return ml
	}

	p.generatePawnMoves(ml, st, false)
	p.generatePieceMoves(ml, st, Knight)
	p.generatePieceMoves(ml, st, Bishop)
	p.generatePieceMoves(ml, st, Rook)
	p.generatePieceMoves(ml, st, Queen)
	if st.checkerCount == 0 {
		p.generateCastlingMoves(ml, st.us)
	}
	return ml
}

// GeneratePseudoLegalMoves returns the unmasked move set (no check or
// pin filtering; castling still requires the king's path to be
// unattacked). Search does not use it.
func (p *Board) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	st := legalState{us: p.SideToMove, them: p.SideToMove.Other(), checkMask: Universe}
	p.generateKingMoves(ml, st)
	p.generatePawnMoves(ml, st, false)
	p.generatePieceMoves(ml, st, Knight)
	p.generatePieceMoves(ml, st, Bishop)
	p.generatePieceMoves(ml, st, Rook)
	p.generatePieceMoves(ml, st, Queen)
	p.generateCastlingMoves(ml, st.us)
	return ml
}

// GenerateCaptures generates legal captures and promotions, for quiescence search.
func (p *Board) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	st := p.computeLegalState()

	p.generateKingMoves(ml, st)
	if st.checkerCount < 2 {
		p.generatePawnMoves(ml, st, true)
		p.generatePieceMoves(ml, st, Knight)
		p.generatePieceMoves(ml, st, Bishop)
		p.generatePieceMoves(ml, st, Rook)
		p.generatePieceMoves(ml, st, Queen)
	}
	return filterCaptures(ml)
}

func filterCaptures(ml *MoveList) *MoveList {
	out := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		if m := ml.Get(i); m.IsCapture() || m.IsPromotion() {
			out.Add(m)
		}
	}
	return out
}

// computeLegalState builds the checkmask/pinmask/seen-by-enemy context
// for the side to move.
func (p *Board) computeLegalState() legalState {
	us, them := p.SideToMove, p.SideToMove.Other()
	ksq := p.KingSquare[us]

	st := legalState{us: us, them: them}
	st.seenByEnemy = p.squaresAttackedBy(them, ksq)
	st.checkerCount = p.Checkers.PopCount()

	switch st.checkerCount {
	case 0:
		st.checkMask = Universe
	case 1:
		checkerSq := p.Checkers.LSB()
		st.checkMask = SquareBB(checkerSq) | Between(ksq, checkerSq)
	default:
		st.checkMask = Empty
	}

	st.pinnedDiag, st.pinnedOrtho = p.computePinMasks(ksq)
	return st
}

// squaresAttackedBy returns every square attacked by color c, with the
// square in ignoreKingSq removed from occupancy first so sliding
// attacks extend correctly through where our king currently stands.
func (p *Board) squaresAttackedBy(c Color, ignoreKingSq Square) Bitboard {
	occ := p.AllOccupied &^ SquareBB(ignoreKingSq)
	var seen Bitboard

	if kingBB := p.Pieces[c][King]; kingBB != 0 {
		seen |= KingAttacks(kingBB.LSB())
	}

	knights := p.Pieces[c][Knight]
	for knights != 0 {
		seen |= KnightAttacks(knights.PopLSB())
	}

	diagSliders := p.Pieces[c][Bishop] | p.Pieces[c][Queen]
	for diagSliders != 0 {
		seen |= BishopAttacks(diagSliders.PopLSB(), occ)
	}

	orthoSliders := p.Pieces[c][Rook] | p.Pieces[c][Queen]
	for orthoSliders != 0 {
		seen |= RookAttacks(orthoSliders.PopLSB(), occ)
	}

	pawns := p.Pieces[c][Pawn]
	seen |= pawns.ShiftLeftPawnAttack(c) | pawns.ShiftRightPawnAttack(c)

	return seen
}

// computePinMasks finds, via the x-ray trick, every piece of ours
// pinned to the king along a diagonal or orthogonal ray: cast a
// bishop/rook attack from the king through the enemy occupancy only; if
// exactly one of our own pieces lies between the king and an enemy
// slider of the matching type, that piece is pinned, and pinRay[sq]
// is recorded as the ray (including the pinning slider's square) it
// may still move along.
func (p *Board) computePinMasks(ksq Square) (diag, ortho Bitboard) {
	us, them := p.SideToMove, p.SideToMove.Other()

	diagSnipers := BishopAttacks(ksq, p.Occupied[them]) & (p.Pieces[them][Bishop] | p.Pieces[them][Queen])
	for diagSnipers != 0 {
		sq := diagSnipers.PopLSB()
		between := Between(sq, ksq)
		blockers := between & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			pinnedSq := blockers.LSB()
			pinRay[pinnedSq] = between | SquareBB(sq)
			diag |= SquareBB(pinnedSq)
		}
	}

	orthoSnipers := RookAttacks(ksq, p.Occupied[them]) & (p.Pieces[them][Rook] | p.Pieces[them][Queen])
	for orthoSnipers != 0 {
		sq := orthoSnipers.PopLSB()
		between := Between(sq, ksq)
		blockers := between & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			pinnedSq := blockers.LSB()
			pinRay[pinnedSq] = between | SquareBB(sq)
			ortho |= SquareBB(pinnedSq)
		}
	}

	return diag, ortho
}

func (p *Board) generateKingMoves(ml *MoveList, st legalState) {
	us := st.us
	from := p.KingSquare[us]
	piece := NewPiece(King, us)
	targets := KingAttacks(from) &^ p.Occupied[us] &^ st.seenByEnemy

	for targets != 0 {
		to := targets.PopLSB()
		if captured := p.PieceAt(to); captured != NoPiece {
			ml.Add(NewCapture(from, to, piece, captured))
		} else {
			ml.Add(NewMove(from, to, piece))
		}
	}
}

func (p *Board) generatePieceMoves(ml *MoveList, st legalState, pt PieceType) {
	us, them := st.us, st.them
	occ := p.AllOccupied
	enemies := p.Occupied[them]
	piece := NewPiece(pt, us)

	pieces := p.Pieces[us][pt]
	for pieces != 0 {
		from := pieces.PopLSB()
		var attacks Bitboard
		switch pt {
		case Knight:
			attacks = KnightAttacks(from)
		case Bishop:
			attacks = BishopAttacks(from, occ)
		case Rook:
			attacks = RookAttacks(from, occ)
		case Queen:
			attacks = QueenAttacks(from, occ)
		}
		attacks &^= p.Occupied[us]
		attacks &= st.checkMask
		attacks &= st.pinMask(from)

		for attacks != 0 {
			to := attacks.PopLSB()
			if enemies.IsSet(to) {
				ml.Add(NewCapture(from, to, piece, p.PieceAt(to)))
			} else {
				ml.Add(NewMove(from, to, piece))
			}
		}
	}
}

func (p *Board) generatePawnMoves(ml *MoveList, st legalState, capturesOnly bool) {
	us, them := st.us, st.them
	piece := NewPiece(Pawn, us)
	pawns := p.Pieces[us][Pawn]
	enemies := p.Occupied[them]
	empty := ^p.AllOccupied

	promoRank := Rank8
	if us == Black {
		promoRank = Rank1
	}

	push1 := pawns.ShiftForward(us) & empty

	if !capturesOnly {
		var push2 Bitboard
		if us == White {
			push2 = (push1 & Rank3).ShiftForward(us) & empty
		} else {
			push2 = (push1 & Rank6).ShiftForward(us) & empty
		}

		for bb := push1 &^ promoRank; bb != 0; {
			to := bb.PopLSB()
			from := to.shiftedBy(us, -1)
			if p.legalDestination(st, from, to) {
				ml.Add(NewMove(from, to, piece))
			}
		}
		for bb := push2; bb != 0; {
			to := bb.PopLSB()
			from := to.shiftedBy(us, -2)
			if p.legalDestination(st, from, to) {
				ml.Add(NewDoublePush(from, to, piece))
			}
		}
	}
	for bb := push1 & promoRank; bb != 0; {
		to := bb.PopLSB()
		from := to.shiftedBy(us, -1)
		if p.legalDestination(st, from, to) {
			addPromotions(ml, from, to, piece, NoPiece)
		}
	}

	attackL := pawns.ShiftLeftPawnAttack(us) & enemies
	attackR := pawns.ShiftRightPawnAttack(us) & enemies

	for bb := attackL &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		from := leftAttackOrigin(to, us)
		if p.legalDestination(st, from, to) {
			ml.Add(NewCapture(from, to, piece, p.PieceAt(to)))
		}
	}
	for bb := attackR &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		from := rightAttackOrigin(to, us)
		if p.legalDestination(st, from, to) {
			ml.Add(NewCapture(from, to, piece, p.PieceAt(to)))
		}
	}
	for bb := attackL & promoRank; bb != 0; {
		to := bb.PopLSB()
		from := leftAttackOrigin(to, us)
		if p.legalDestination(st, from, to) {
			addPromotions(ml, from, to, piece, p.PieceAt(to))
		}
	}
	for bb := attackR & promoRank; bb != 0; {
		to := bb.PopLSB()
		from := rightAttackOrigin(to, us)
		if p.legalDestination(st, from, to) {
			addPromotions(ml, from, to, piece, p.PieceAt(to))
		}
	}

	if p.EnPassant != NoSquare {
		p.generateEnPassant(ml, st)
	}
}

// legalDestination applies the checkmask/pinmask test shared by every
// pawn move shape above.
func (p *Board) legalDestination(st legalState, from, to Square) bool {
	if st.checkMask&SquareBB(to) == 0 {
		return false
	}
	return st.pinMask(from)&SquareBB(to) != 0
}

// shiftedBy returns the square n forward-steps behind sq for color c
// (n negative moves backward, i.e. toward the origin of a push).
func (sq Square) shiftedBy(c Color, n int) Square {
	if c == White {
		return Square(int(sq) + 8*n)
	}
	return Square(int(sq) - 8*n)
}

func leftAttackOrigin(to Square, c Color) Square {
	if c == White {
		return Square(int(to) - 7)
	}
	return Square(int(to) + 9)
}

func rightAttackOrigin(to Square, c Color) Square {
	if c == White {
		return Square(int(to) - 9)
	}
	return Square(int(to) + 7)
}

func addPromotions(ml *MoveList, from, to Square, piece, captured Piece) {
	us := piece.Color()
	ml.Add(NewPromotion(from, to, piece, captured, NewPiece(Queen, us)))
	ml.Add(NewPromotion(from, to, piece, captured, NewPiece(Rook, us)))
	ml.Add(NewPromotion(from, to, piece, captured, NewPiece(Bishop, us)))
	ml.Add(NewPromotion(from, to, piece, captured, NewPiece(Knight, us)))
}

// generateEnPassant handles the one case the checkmask/pinmask model
// cannot express directly: capturing en passant removes a pawn that
// is neither the moving piece nor standing on the destination square,
// so it can expose the king along a rank even when neither the
// capturing pawn nor the captured pawn was flagged as pinned. This is
// resolved by simulating the occupancy after the capture and testing
// for a rook/queen "rank discovery" directly, rather than trusting
// the precomputed pin masks.
func (p *Board) generateEnPassant(ml *MoveList, st legalState) {
	us, them := st.us, st.them
	to := p.EnPassant
	piece := NewPiece(Pawn, us)
	capturedPawnSq := to.shiftedBy(us, -1)
	capturedPiece := NewPiece(Pawn, them)

	epBB := SquareBB(to)
	var attackers Bitboard
	if us == White {
		attackers = (epBB.SouthWest() | epBB.SouthEast()) & p.Pieces[us][Pawn]
	} else {
		attackers = (epBB.NorthWest() | epBB.NorthEast()) & p.Pieces[us][Pawn]
	}

	for attackers != 0 {
		from := attackers.PopLSB()

		if st.checkMask&(SquareBB(to)|SquareBB(capturedPawnSq)) == 0 && st.checkMask != Universe {
			continue
		}

		occAfter := p.AllOccupied
		occAfter &^= SquareBB(from)
		occAfter &^= SquareBB(capturedPawnSq)
		occAfter |= SquareBB(to)

		ksq := p.KingSquare[us]
		rankAttackers := RookAttacks(ksq, occAfter) & (p.Pieces[them][Rook] | p.Pieces[them][Queen])
		if rankAttackers != 0 {
			continue
		}
		diagAttackers := BishopAttacks(ksq, occAfter) & (p.Pieces[them][Bishop] | p.Pieces[them][Queen])
		if diagAttackers != 0 {
			continue
		}

		ml.Add(NewEnPassant(from, to, piece, capturedPiece))
	}
}

func (p *Board) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	piece := NewPiece(King, us)

	if us == White {
		if p.CastlingRights&WhiteKingSideCastle != 0 &&
			p.AllOccupied&((SquareBB(F1))|(SquareBB(G1))) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			ml.Add(NewCastling(E1, G1, piece))
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 &&
			p.AllOccupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			ml.Add(NewCastling(E1, C1, piece))
		}
		return
	}

	if p.CastlingRights&BlackKingSideCastle != 0 &&
		p.AllOccupied&(SquareBB(F8)|SquareBB(G8)) == 0 &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
		ml.Add(NewCastling(E8, G8, piece))
	}
	if p.CastlingRights&BlackQueenSideCastle != 0 &&
		p.AllOccupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
		ml.Add(NewCastling(E8, C8, piece))
	}
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Board) HasLegalMoves() bool {
	return p.GenerateLegalMoves().Len() > 0
}

// IsCheckmate returns true if the side to move is checkmated.
func (p *Board) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move has no legal moves and is not in check.
func (p *Board) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
