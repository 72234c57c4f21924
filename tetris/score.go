package tetris

// Score returns the points for clearing rows at once, given the rows
// cleared before this clear. Multi-row clears pay quadratically:
//
//	1 row 100, 2 rows 400, 3 rows 900, 4 rows 1600
//
// plus 10 points for every row cleared earlier in the game.
func Score(rows, before int) int {
	return rows*100*rows + before*10
}
