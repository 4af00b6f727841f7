// Package engine implements the chess search engine: evaluation,
// transposition table, move ordering, and iterative-deepening search.
package engine

import (
	"github.com/kestrelchess/chesscore/internal/board"
)

// Piece-square tables from White's perspective, one per piece type,
// with the baked-in material value folded into every entry (so a
// lone white pawn on its PST-neutral square scores exactly 100, a
// knight 300, and so on). Each table is laid out as the board is
// drawn: its first row is rank 8 and its last row is rank 1. White
// therefore reads it through Square.Mirror() and Black reads it
// directly, so Black's values are the vertical reflection of White's.
var pstWhite = [6][64]int{
	// Pawn: discourages lingering on the back ranks, rewards the
	// classic two-square advance and central files.
	{
		100, 100, 100, 100, 100, 100, 100, 100,
		150, 150, 150, 150, 150, 150, 150, 150,
		110, 110, 120, 130, 130, 120, 110, 110,
		105, 105, 110, 125, 125, 110, 105, 105,
		100, 100, 100, 120, 120, 100, 100, 100,
		105, 95, 90, 100, 100, 90, 95, 105,
		105, 110, 110, 80, 80, 110, 110, 105,
		100, 100, 100, 100, 100, 100, 100, 100,
	},
	// Knight: central squares are worth far more than the rim.
	{
		250, 260, 270, 270, 270, 270, 260, 250,
		260, 280, 300, 300, 300, 300, 280, 260,
		270, 300, 310, 315, 315, 310, 300, 270,
		270, 305, 315, 320, 320, 315, 305, 270,
		270, 300, 315, 320, 320, 315, 300, 270,
		270, 305, 310, 315, 315, 310, 305, 270,
		260, 280, 300, 305, 305, 300, 280, 260,
		250, 260, 270, 270, 270, 270, 260, 250,
	},
	// Bishop: long diagonals through the center.
	{
		300, 310, 310, 310, 310, 310, 310, 300,
		310, 320, 320, 320, 320, 320, 320, 310,
		310, 320, 325, 330, 330, 325, 320, 310,
		310, 325, 325, 330, 330, 325, 325, 310,
		310, 320, 330, 330, 330, 330, 320, 310,
		310, 330, 330, 330, 330, 330, 330, 310,
		310, 325, 320, 320, 320, 320, 325, 310,
		300, 310, 310, 310, 310, 310, 310, 300,
	},
	// Rook: 7th rank and open central files.
	{
		500, 500, 500, 500, 500, 500, 500, 500,
		505, 510, 510, 510, 510, 510, 510, 505,
		495, 500, 500, 500, 500, 500, 500, 495,
		495, 500, 500, 500, 500, 500, 500, 495,
		495, 500, 500, 500, 500, 500, 500, 495,
		495, 500, 500, 500, 500, 500, 500, 495,
		495, 500, 500, 500, 500, 500, 500, 495,
		500, 500, 500, 505, 505, 500, 500, 500,
	},
	// Queen: mild central preference.
	{
		880, 890, 890, 895, 895, 890, 890, 880,
		890, 900, 900, 900, 900, 900, 900, 890,
		890, 900, 905, 905, 905, 905, 900, 890,
		895, 900, 905, 905, 905, 905, 900, 895,
		900, 900, 905, 905, 905, 905, 900, 895,
		890, 905, 905, 905, 905, 905, 900, 890,
		890, 900, 905, 900, 900, 900, 900, 890,
		880, 890, 890, 895, 895, 890, 890, 880,
	},
	// King: static, opening-flavored — rewards castling into a
	// corner and penalizes stepping into the open center.
	{
		19970, 19960, 19960, 19950, 19950, 19960, 19960, 19970,
		19970, 19960, 19960, 19950, 19950, 19960, 19960, 19970,
		19970, 19960, 19960, 19950, 19950, 19960, 19960, 19970,
		19970, 19960, 19960, 19950, 19950, 19960, 19960, 19970,
		19980, 19970, 19970, 19960, 19960, 19970, 19970, 19980,
		19990, 19980, 19980, 19980, 19980, 19980, 19980, 19990,
		20020, 20020, 20000, 20000, 20000, 20000, 20020, 20020,
		20020, 20030, 20010, 20000, 20000, 20010, 20030, 20020,
	},
}

// tempoBonus is a small fixed advantage awarded to the side to move.
const tempoBonus = 10

// Evaluate returns the static score of the position in centipawns
// from the side-to-move's perspective: Σ(white piece-square values) −
// Σ(black piece-square values), plus a tempo bonus for the side on
// move. There is no tapering, mobility, or king-safety term; those
// are the teacher's, and are out of scope here.
func Evaluate(pos *board.Board) int {
	score := materialAndPST(pos)
	if pos.SideToMove == board.Black {
		score = -score
	}
	return score + tempoBonus
}

// EvaluateWithPawnTable is like Evaluate, but routes the pawn
// material-and-PST subtotal through a PawnTable keyed by the
// position's Zobrist pawn key, so repeated calls against boards that
// share a pawn structure (a common case inside a single search tree)
// skip recomputing it.
func EvaluateWithPawnTable(pos *board.Board, pawnTable *PawnTable) int {
	score := nonPawnMaterialAndPST(pos)
	score += pawnMaterialAndPST(pos, pawnTable)
	if pos.SideToMove == board.Black {
		score = -score
	}
	return score + tempoBonus
}

func materialAndPST(pos *board.Board) int {
	score := 0
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := pos.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				score += sign * pstValue(pt, c, sq)
			}
		}
	}
	return score
}

func nonPawnMaterialAndPST(pos *board.Board) int {
	score := 0
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		for pt := board.Knight; pt <= board.King; pt++ {
			bb := pos.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				score += sign * pstValue(pt, c, sq)
			}
		}
	}
	return score
}

func pawnMaterialAndPST(pos *board.Board, pawnTable *PawnTable) int {
	key := pawnHashKey(pos)
	if cached, ok := pawnTable.Probe(key); ok {
		return cached
	}

	score := 0
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		bb := pos.Pieces[c][board.Pawn]
		for bb != 0 {
			sq := bb.PopLSB()
			score += sign * pstValue(board.Pawn, c, sq)
		}
	}
	pawnTable.Store(key, score)
	return score
}

func pstValue(pt board.PieceType, c board.Color, sq board.Square) int {
	if c == board.White {
		sq = sq.Mirror()
	}
	return pstWhite[pt][sq]
}

// EvaluateMaterial returns just the material balance (no PST term),
// positive in White's favor.
func EvaluateMaterial(pos *board.Board) int {
	return pos.Material()
}

// SEE performs static exchange evaluation on a capture: the net
// material gain (in centipawns) from playing m and then both sides
// recapturing optimally on m's destination square. The search and move
// ordering do not call it.
func SEE(pos *board.Board, m board.Move) int {
	to := m.To()
	target := m.CapturedPiece()
	if m.IsEnPassant() {
		target = board.NewPiece(board.Pawn, pos.SideToMove.Other())
	}
	if target == board.NoPiece {
		return 0
	}

	gain := board.PieceValue[target.Type()]
	occupied := pos.AllOccupied &^ board.SquareBB(m.From())
	return gain - seeSwap(pos, to, occupied, m.Piece())
}

// seeSwap recursively resolves the capture exchange on target,
// alternating sides: lastAttacker has just captured there, so find the
// least valuable attacker of the opposite color among the pieces still
// in occupied and return that side's best net gain from recapturing
// (zero if it is better not to). Every piece that has captured is
// removed from occupied, so it is never counted twice.
func seeSwap(pos *board.Board, target board.Square, occupied board.Bitboard, lastAttacker board.Piece) int {
	side := lastAttacker.Color().Other()

	attackerSq, attacker := getLeastValuableAttacker(pos, target, side, occupied)
	if attacker == board.NoPiece {
		return 0
	}

	score := board.PieceValue[lastAttacker.Type()] - seeSwap(pos, target, occupied&^board.SquareBB(attackerSq), attacker)
	if score < 0 {
		return 0
	}
	return score
}

// getLeastValuableAttacker finds the cheapest piece of side that
// attacks target given occupied, consulting the precomputed attack
// tables directly rather than move generation (SEE only needs
// attack geometry, not legality).
func getLeastValuableAttacker(pos *board.Board, target board.Square, side board.Color, occupied board.Bitboard) (board.Square, board.Piece) {
	enemy := side.Other()

	if pawns := board.PawnAttacks(target, enemy) & pos.Pieces[side][board.Pawn] & occupied; pawns != 0 {
		sq := pawns.LSB()
		return sq, board.NewPiece(board.Pawn, side)
	}
	if knights := board.KnightAttacks(target) & pos.Pieces[side][board.Knight] & occupied; knights != 0 {
		sq := knights.LSB()
		return sq, board.NewPiece(board.Knight, side)
	}
	if bishops := board.BishopAttacks(target, occupied) & pos.Pieces[side][board.Bishop] & occupied; bishops != 0 {
		sq := bishops.LSB()
		return sq, board.NewPiece(board.Bishop, side)
	}
	if rooks := board.RookAttacks(target, occupied) & pos.Pieces[side][board.Rook] & occupied; rooks != 0 {
		sq := rooks.LSB()
		return sq, board.NewPiece(board.Rook, side)
	}
	if queens := board.QueenAttacks(target, occupied) & pos.Pieces[side][board.Queen] & occupied; queens != 0 {
		sq := queens.LSB()
		return sq, board.NewPiece(board.Queen, side)
	}
	if kings := board.KingAttacks(target) & pos.Pieces[side][board.King] & occupied; kings != 0 {
		sq := kings.LSB()
		return sq, board.NewPiece(board.King, side)
	}
	return board.NoSquare, board.NoPiece
}
