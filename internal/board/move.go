package board

import "fmt"

// Move encodes a chess move in 32 bits:
//
//	bits 0-5:   from square (0-63)
//	bits 6-11:  to square (0-63)
//	bits 12-15: moving piece (Piece, 0-11)
//	bits 16-19: captured piece (Piece, 0-11, or NoPiece if none)
//	bits 20-23: promotion piece (Piece, 0-11, or NoPiece if none)
//	bit 24:     is pawn double push
//	bit 25:     is en passant capture
//	bit 26:     is castle
//	bit 27:     is capture
//	bit 28:     is promotion
type Move uint32

const (
	moveFromShift    = 0
	moveToShift      = 6
	movePieceShift   = 12
	moveCaptureShift = 16
	movePromoShift   = 20

	moveDoublePushBit = 24
	moveEnPassantBit  = 25
	moveCastleBit     = 26
	moveCaptureBit    = 27
	movePromoBit      = 28

	moveSquareMask = 0x3F
	movePieceMask  = 0xF
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// moveFlags bundles the boolean attributes packed into bits 24-28.
type moveFlags struct {
	doublePush bool
	enPassant  bool
	castle     bool
	capture    bool
	promotion  bool
}

func encodeMove(from, to Square, piece, captured, promo Piece, fl moveFlags) Move {
	m := Move(from&moveSquareMask)<<moveFromShift |
		Move(to&moveSquareMask)<<moveToShift |
		Move(piece&movePieceMask)<<movePieceShift |
		Move(captured&movePieceMask)<<moveCaptureShift |
		Move(promo&movePieceMask)<<movePromoShift
	if fl.doublePush {
		m |= 1 << moveDoublePushBit
	}
	if fl.enPassant {
		m |= 1 << moveEnPassantBit
	}
	if fl.castle {
		m |= 1 << moveCastleBit
	}
	if fl.capture {
		m |= 1 << moveCaptureBit
	}
	if fl.promotion {
		m |= 1 << movePromoBit
	}
	return m
}

// NewMove creates a quiet (non-capture, non-promotion) move.
func NewMove(from, to Square, piece Piece) Move {
	return encodeMove(from, to, piece, NoPiece, NoPiece, moveFlags{})
}

// NewCapture creates a capturing move.
func NewCapture(from, to Square, piece, captured Piece) Move {
	return encodeMove(from, to, piece, captured, NoPiece, moveFlags{capture: true})
}

// NewDoublePush creates a two-square pawn push (sets the en-passant target).
func NewDoublePush(from, to Square, piece Piece) Move {
	return encodeMove(from, to, piece, NoPiece, NoPiece, moveFlags{doublePush: true})
}

// NewPromotion creates a (possibly capturing) promotion move.
func NewPromotion(from, to Square, piece, captured, promo Piece) Move {
	return encodeMove(from, to, piece, captured, promo, moveFlags{
		capture:   captured != NoPiece,
		promotion: true,
	})
}

// NewEnPassant creates an en passant capture move. captured is always
// the enemy pawn, which sits beside `from`'s rank, not on `to`.
func NewEnPassant(from, to Square, piece, captured Piece) Move {
	return encodeMove(from, to, piece, captured, NoPiece, moveFlags{
		capture:   true,
		enPassant: true,
	})
}

// NewCastling creates a castling move (the king's own movement).
func NewCastling(from, to Square, piece Piece) Move {
	return encodeMove(from, to, piece, NoPiece, NoPiece, moveFlags{castle: true})
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & moveSquareMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> moveToShift) & moveSquareMask)
}

// Piece returns the moving piece.
func (m Move) Piece() Piece {
	return Piece((m >> movePieceShift) & movePieceMask)
}

// CapturedPiece returns the captured piece, or NoPiece if none.
func (m Move) CapturedPiece() Piece {
	return Piece((m >> moveCaptureShift) & movePieceMask)
}

// PromotionPiece returns the promotion piece, valid only if IsPromotion.
func (m Move) PromotionPiece() Piece {
	return Piece((m >> movePromoShift) & movePieceMask)
}

// IsDoublePawnPush returns true if this move is a two-square pawn push.
func (m Move) IsDoublePawnPush() bool { return m&(1<<moveDoublePushBit) != 0 }

// IsEnPassant returns true if this move is an en passant capture.
func (m Move) IsEnPassant() bool { return m&(1<<moveEnPassantBit) != 0 }

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool { return m&(1<<moveCastleBit) != 0 }

// IsCapture returns true if this move captures a piece (including en passant).
func (m Move) IsCapture() bool { return m&(1<<moveCaptureBit) != 0 }

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool { return m&(1<<movePromoBit) != 0 }

// IsQuiet returns true if this move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String returns the long algebraic (UCI-style) form of the move, e.g.
// "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(promotionChar(m.PromotionPiece().Type()))
	}
	return s
}

func promotionChar(pt PieceType) byte {
	switch pt {
	case Knight:
		return 'k'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	default:
		return '?'
	}
}

// ParseMove parses a long algebraic move string against the given
// board, filling in piece/captured/flag information by consulting the
// board's current state. It does not check legality.
func ParseMove(s string, pos *Board) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMoveToken, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("%w: no piece at %s", ErrInvalidMoveToken, from)
	}
	captured := pos.PieceAt(to)
	pt := piece.Type()

	if len(s) == 5 {
		var promoType PieceType
		switch s[4] {
		case 'k':
			promoType = Knight
		case 'b':
			promoType = Bishop
		case 'r':
			promoType = Rook
		case 'q':
			promoType = Queen
		default:
			return NoMove, fmt.Errorf("%w: invalid promotion piece %q", ErrInvalidMoveToken, s[4])
		}
		promo := NewPiece(promoType, piece.Color())
		return NewPromotion(from, to, piece, captured, promo), nil
	}

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to, piece), nil
	}

	if pt == Pawn && pos.EnPassant != NoSquare && to == pos.EnPassant {
		epPawn := NewPiece(Pawn, piece.Color().Other())
		return NewEnPassant(from, to, piece, epPawn), nil
	}

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		return NewDoublePush(from, to, piece), nil
	}

	if captured != NoPiece {
		return NewCapture(from, to, piece, captured), nil
	}
	return NewMove(from, to, piece), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoEntry stores the state needed to unmake a move: the move itself
// plus whatever redundant state make_move overwrote and cannot be
// reconstructed from the move alone.
type UndoEntry struct {
	Move           Move
	CastlingRights CastlingRights
	EnPassant      Square
	HalfmoveClock  int
	Hash           uint64
	PawnKey        uint64
	Checkers       Bitboard
}
