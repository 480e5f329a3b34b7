package qrgen

// Penalty weights from ISO/IEC 18004 section 8.8.2.
const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// applyMask XORs the given mask pattern onto the non-function modules.
// Masking is self-inverse: applying the same mask twice restores the grid.
func (q *QRCode) applyMask(mask int) {
	if mask < 0 || mask > 7 {
		panic("qrgen: mask out of range")
	}
	for y := 0; y < q.size; y++ {
		for x := 0; x < q.size; x++ {
			var invert bool
			switch mask {
			case 0:
				invert = (x+y)%2 == 0
			case 1:
				invert = y%2 == 0
			case 2:
				invert = x%3 == 0
			case 3:
				invert = (x+y)%3 == 0
			case 4:
				invert = (x/3+y/2)%2 == 0
			case 5:
				invert = x*y%2+x*y%3 == 0
			case 6:
				invert = (x*y%2+x*y%3)%2 == 0
			case 7:
				invert = ((x+y)%2+x*y%3)%2 == 0
			}
			q.modules[y][x] = q.modules[y][x] != (invert && !q.isFunction[y][x])
		}
	}
}

// penaltyScore computes the demerit score of the current module grid, used
// to pick the mask with the least undesirable features.
func (q *QRCode) penaltyScore() int {
	result := 0

	// Adjacent modules in row having same color, and finder-like patterns.
	for y := 0; y < q.size; y++ {
		runColor := false
		runX := 0
		runHistory := finderPenaltyHistory{}
		for x := 0; x < q.size; x++ {
			if q.modules[y][x] == runColor {
				runX++
				if runX == 5 {
					result += penaltyN1
				} else if runX > 5 {
					result++
				}
			} else {
				q.finderPenaltyAddHistory(runX, &runHistory)
				if !runColor {
					result += q.finderPenaltyCountPatterns(&runHistory) * penaltyN3
				}
				runColor = q.modules[y][x]
				runX = 1
			}
		}
		result += q.finderPenaltyTerminateAndCount(runColor, runX, &runHistory) * penaltyN3
	}

	// Adjacent modules in column having same color, and finder-like patterns.
	for x := 0; x < q.size; x++ {
		runColor := false
		runY := 0
		runHistory := finderPenaltyHistory{}
		for y := 0; y < q.size; y++ {
			if q.modules[y][x] == runColor {
				runY++
				if runY == 5 {
					result += penaltyN1
				} else if runY > 5 {
					result++
				}
			} else {
				q.finderPenaltyAddHistory(runY, &runHistory)
				if !runColor {
					result += q.finderPenaltyCountPatterns(&runHistory) * penaltyN3
				}
				runColor = q.modules[y][x]
				runY = 1
			}
		}
		result += q.finderPenaltyTerminateAndCount(runColor, runY, &runHistory) * penaltyN3
	}

	// 2x2 blocks of modules having same color.
	for y := 0; y < q.size-1; y++ {
		for x := 0; x < q.size-1; x++ {
			color := q.modules[y][x]
			if color == q.modules[y][x+1] &&
				color == q.modules[y+1][x] &&
				color == q.modules[y+1][x+1] {
				result += penaltyN2
			}
		}
	}

	// Balance of dark and light modules.
	dark := 0
	for _, row := range q.modules {
		for _, color := range row {
			if color {
				dark++
			}
		}
	}
	total := q.size * q.size
	// k is the smallest non-negative integer such that
	// (45-5k)% <= dark/total <= (55+5k)%.
	k := (abs(dark*20-total*10)+total-1)/total - 1
	assert(0 <= k && k <= 9)
	result += k * penaltyN4
	return result
}

// finderPenaltyHistory holds the lengths of the most recent seven
// alternating runs on a line, most recent first.
type finderPenaltyHistory [7]int

// finderPenaltyCountPatterns counts finder-like patterns ending at the run
// history: a dark core of ratio 1:1:3:1:1 bounded by at least four modules
// of light on one side and at least one on the other.
func (q *QRCode) finderPenaltyCountPatterns(runHistory *finderPenaltyHistory) int {
	n := runHistory[1]
	assert(n <= q.size*3)
	core := n > 0 && runHistory[2] == n && runHistory[3] == n*3 &&
		runHistory[4] == n && runHistory[5] == n
	result := 0
	if core && runHistory[0] >= n*4 && runHistory[6] >= n {
		result++
	}
	if core && runHistory[6] >= n*4 && runHistory[0] >= n {
		result++
	}
	return result
}

// finderPenaltyTerminateAndCount finishes the current run at the end of a
// line, padding with a virtual light border, and counts patterns.
func (q *QRCode) finderPenaltyTerminateAndCount(currentRunColor bool, currentRunLength int, runHistory *finderPenaltyHistory) int {
	if currentRunColor { // terminate dark run
		q.finderPenaltyAddHistory(currentRunLength, runHistory)
		currentRunLength = 0
	}
	currentRunLength += q.size // light border to the right/bottom
	q.finderPenaltyAddHistory(currentRunLength, runHistory)
	return q.finderPenaltyCountPatterns(runHistory)
}

// finderPenaltyAddHistory pushes the finished run onto the history.
func (q *QRCode) finderPenaltyAddHistory(currentRunLength int, runHistory *finderPenaltyHistory) {
	if runHistory[0] == 0 {
		currentRunLength += q.size // light border to the left/top
	}
	copy(runHistory[1:], runHistory[:len(runHistory)-1])
	runHistory[0] = currentRunLength
}
