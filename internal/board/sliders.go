package board

// Precomputed PEXT-indexed sliding-piece attack tables. For each
// square, diagMask/orthoMask identify the relevant blocker squares
// (the rays through the square, excluding the square itself and the
// board edge on each ray); Pext maps an occupancy restricted to that
// mask into a dense index into the per-square attack table, which
// stores the attack set stopping at (and including) the first blocker
// in every direction. This is the PEXT-indexed analogue of a fancy
// magic-bitboard table: same two-stage precompute-then-index shape,
// different index function (spec requires PEXT/PDEP semantics with a
// software fallback, see Pext/Pdep in bitboard.go).
var (
	diagMask [64]Bitboard
	orthoMask [64]Bitboard

	bishopAttackTable [64][]Bitboard
	rookAttackTable   [64][]Bitboard
)

func initSliderAttacks() {
	for sq := A1; sq <= H8; sq++ {
		diagMask[sq] = slidingRayMask(sq, []int8{9, -9, 7, -7})
		orthoMask[sq] = slidingRayMask(sq, []int8{8, -8, 1, -1})

		bishopAttackTable[sq] = buildSliderTable(sq, diagMask[sq], []int8{9, -9, 7, -7})
		rookAttackTable[sq] = buildSliderTable(sq, orthoMask[sq], []int8{8, -8, 1, -1})
	}
}

// slidingRayMask returns the relevant-blocker mask for a slider on sq
// moving along the given directions: every square a ray reaches,
// excluding the square itself and the final edge square of each ray
// (a blocker there can never be "jumped past" so it need not be part
// of the index).
func slidingRayMask(sq Square, dirs []int8) Bitboard {
	var mask Bitboard
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := stepSquare(cur, d)
			if !ok {
				break
			}
			nextNext, ok2 := stepSquare(next, d)
			if !ok2 {
				break
			}
			mask |= SquareBB(next)
			cur = next
			_ = nextNext
		}
	}
	return mask
}

// buildSliderTable enumerates every occupancy subset of mask (via PEXT
// indices 0..2^popcount-1, scattered back out with Pdep) and computes
// the resulting ray attack set, stopping at and including the first
// blocker in each direction.
func buildSliderTable(sq Square, mask Bitboard, dirs []int8) []Bitboard {
	bits := mask.PopCount()
	size := 1 << uint(bits)
	table := make([]Bitboard, size)

	for idx := 0; idx < size; idx++ {
		occ := Bitboard(Pdep(uint64(idx), uint64(mask)))
		table[idx] = rayAttacks(sq, occ, dirs)
	}
	return table
}

// rayAttacks casts rays from sq in each direction, including the first
// blocking square (if any) from occ and stopping there.
func rayAttacks(sq Square, occ Bitboard, dirs []int8) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := stepSquare(cur, d)
			if !ok {
				break
			}
			attacks |= SquareBB(next)
			if occ.IsSet(next) {
				break
			}
			cur = next
		}
	}
	return attacks
}

// stepSquare moves one square in direction d (±1 file, ±8 rank, ±7/±9
// diagonal), reporting false if the step would wrap around a file
// edge or fall off the board.
func stepSquare(sq Square, d int8) (Square, bool) {
	f, r := sq.File(), sq.Rank()
	var nf, nr int
	switch d {
	case 8:
		nf, nr = f, r+1
	case -8:
		nf, nr = f, r-1
	case 1:
		nf, nr = f+1, r
	case -1:
		nf, nr = f-1, r
	case 9:
		nf, nr = f+1, r+1
	case -9:
		nf, nr = f-1, r-1
	case 7:
		nf, nr = f-1, r+1
	case -7:
		nf, nr = f+1, r-1
	}
	if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
		return 0, false
	}
	return NewSquare(nf, nr), true
}

func bishopAttacksPext(sq Square, occupied Bitboard) Bitboard {
	idx := Pext(uint64(occupied), uint64(diagMask[sq]))
	return bishopAttackTable[sq][idx]
}

func rookAttacksPext(sq Square, occupied Bitboard) Bitboard {
	idx := Pext(uint64(occupied), uint64(orthoMask[sq]))
	return rookAttackTable[sq][idx]
}
