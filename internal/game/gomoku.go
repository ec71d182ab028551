package game

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

const (
	boardSize = 15
)

type cell int

const (
	cellEmpty cell = iota
	cellBlack
	cellWhite
)

type gomokuStatus int

const (
	gomokuNotEnd gomokuStatus = iota
	gomokuBlackWin
	gomokuWhiteWin
	gomokuTied
)

// GomokuGame is the 15x15 five-in-a-row board, with an optional built-in
// opponent when only one human is seated.
type GomokuGame struct {
	board        [boardSize][boardSize]cell
	currentBlack bool
	lastDropX    int
	lastDropY    int
	aiEnabled    bool
	aiThinking   bool
	status       gomokuStatus
	blackID      int64
	whiteID      int64 // aiBotID when the opponent is the built-in AI
	rng          *rand.Rand
}

// aiBotID is the synthetic player id representing the built-in opponent.
const aiBotID int64 = -1

func NewGomokuGame(playerIDs []int64) *GomokuGame {
	g := &GomokuGame{
		lastDropX: -1,
		lastDropY: -1,
		status:    gomokuNotEnd,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.currentBlack = true
	g.blackID = playerIDs[0]
	if len(playerIDs) == 2 {
		g.whiteID = playerIDs[1]
	} else {
		g.whiteID = aiBotID
		g.aiEnabled = true
	}
	return g
}

func (g *GomokuGame) playerIsBlack(userID int64) bool {
	return userID == g.blackID
}

// Drop applies GOMOKU_DROP. x is column, y is row.
func (g *GomokuGame) Drop(userID int64, x, y int) error {
	isBlack := g.playerIsBlack(userID)
	if isBlack && g.aiThinking {
		return errors.New("ai is thinking")
	}
	if isBlack != g.currentBlack {
		return errors.New("not your turn")
	}
	if x < 0 || x >= boardSize || y < 0 || y >= boardSize {
		return errors.New("out of range")
	}
	if g.board[y][x] != cellEmpty {
		return errors.New("occupied")
	}
	if g.status != gomokuNotEnd {
		return errors.New("game over")
	}

	if g.currentBlack {
		g.board[y][x] = cellBlack
	} else {
		g.board[y][x] = cellWhite
	}
	g.currentBlack = !g.currentBlack
	g.lastDropX, g.lastDropY = x, y

	g.update()
	return nil
}

func (g *GomokuGame) update() {
	if g.status != gomokuNotEnd {
		return
	}

	for i := 0; i < boardSize; i++ {
		for j := 0; j <= boardSize-5; j++ {
			if g.five(i, j, 0, 1) {
				return
			}
		}
	}
	for i := 0; i < boardSize; i++ {
		for j := 0; j <= boardSize-5; j++ {
			if g.five(j, i, 1, 0) {
				return
			}
		}
	}
	for i := 0; i <= boardSize-5; i++ {
		for j := 0; j <= boardSize-5; j++ {
			if g.five(i, j, 1, 1) || g.five(i+4, j, -1, 1) {
				return
			}
		}
	}

	if g.status == gomokuNotEnd && !g.currentBlack && g.aiEnabled {
		g.aiDrop()
		// The source calls update() a second time after the AI drops, so
		// an AI-completed win is detected within the same update cycle.
		g.update()
	}
}

func (g *GomokuGame) five(row, col, drow, dcol int) bool {
	v := g.board[row][col]
	if v == cellEmpty {
		return false
	}
	for k := 1; k < 5; k++ {
		if g.board[row+drow*k][col+dcol*k] != v {
			return false
		}
	}
	if v == cellWhite {
		g.status = gomokuWhiteWin
	} else {
		g.status = gomokuBlackWin
	}
	return true
}

func (g *GomokuGame) isNearby(i, j int) bool {
	for di := -1; di < 2; di++ {
		for dj := -1; dj < 2; dj++ {
			ni, nj := i+di, j+dj
			if ni >= 0 && ni < boardSize && nj >= 0 && nj < boardSize && g.board[ni][nj] != cellEmpty {
				return true
			}
		}
	}
	return false
}

var (
	patternCheng5  = "sssss"
	patternHuo4    = " ssss "
	patternsChong4 = []string{" sssso", "s sss", "ss ss", "sss s", "ossss "}
	patternsLian3  = []string{" sss  ", "  sss "}
	patternsTiao3  = []string{" s ss ", " ss s "}
	patternsMian3  = []string{"  ssso", " s sso", " ss so", "osss  ", "oss s ", "os ss ", "ss  s", "s  ss", "s s s", "o sss o"}
	patternsHuo2   = []string{"   ss ", "  ss  ", " ss   ", "  s s ", " s s  "}
	patternsMian2  = []string{"   sso", "  s so", " s  so", "s   s", "oss   ", "os s  ", "os  s ", "o  ss o", "o ss  o", "o s s o"}
)

var scoreLines = [4][9][2]int{
	{{-4, 0}, {-3, 0}, {-2, 0}, {-1, 0}, {0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}},
	{{0, -4}, {0, -3}, {0, -2}, {0, -1}, {0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
	{{-4, -4}, {-3, -3}, {-2, -2}, {-1, -1}, {0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}},
	{{-4, 4}, {-3, 3}, {-2, 2}, {-1, 1}, {0, 0}, {1, -1}, {2, -2}, {3, -3}, {4, -4}},
}

func anyContains(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func (g *GomokuGame) pointScore(i, j int, side cell) int {
	score := 1
	for _, line := range scoreLines {
		var b strings.Builder
		for _, pt := range line {
			x := j - pt[0]
			y := i - pt[1]
			if x < 0 || x >= boardSize || y < 0 || y >= boardSize {
				b.WriteByte('n')
				continue
			}
			switch g.board[y][x] {
			case side:
				b.WriteByte('s')
			case cellEmpty:
				b.WriteByte(' ')
			default:
				b.WriteByte('o')
			}
		}
		line := b.String()

		if strings.Contains(line, patternCheng5) {
			score += 5000000
		}
		if strings.Contains(line, patternHuo4) {
			score += 100000
		}
		if anyContains(line, patternsChong4) {
			score += 16000
		}
		if anyContains(line, patternsLian3) {
			score += 8000
		}
		if anyContains(line, patternsTiao3) {
			score += 2000
		}
		if anyContains(line, patternsMian3) {
			score += 300
		}
		if anyContains(line, patternsHuo2) {
			score += 20
		}
		if anyContains(line, patternsMian2) {
			score += 2
		}
	}
	return score
}

func (g *GomokuGame) situation() int {
	self, oppo := 0, 0
	for i := 0; i < boardSize; i++ {
		for j := 0; j < boardSize; j++ {
			switch g.board[i][j] {
			case cellWhite:
				self += g.pointScore(i, j, cellWhite)
			case cellBlack:
				oppo += g.pointScore(i, j, cellBlack)
			}
		}
	}
	return self - oppo + int(g.rng.Int31()&7)
}

const maxSearchDepth = 1

// aiDrop runs a shallow alpha-beta search and commits the chosen move. It
// always evaluates from white's perspective, matching the source (the
// built-in opponent only ever plays white).
func (g *GomokuGame) aiDrop() {
	g.aiThinking = true
	dropX, dropY := 0, 0
	alpha := minInt
	for i := 0; i < boardSize; i++ {
		for j := 0; j < boardSize; j++ {
			if g.board[i][j] == cellEmpty && g.isNearby(i, j) {
				g.board[i][j] = cellWhite
				score := g.searchMin(1, true, alpha)
				g.board[i][j] = cellEmpty
				if score > alpha {
					alpha = score
					dropX, dropY = j, i
				}
			}
		}
	}
	g.aiThinking = false
	g.currentBlack = false // dropRaw() below flips it back after placing
	g.dropRaw(dropY, dropX, false)
}

// dropRaw places a stone bypassing turn/thinking checks, used only by the
// AI once it has committed to a move.
func (g *GomokuGame) dropRaw(row, col int, isBlack bool) {
	if isBlack {
		g.board[row][col] = cellBlack
	} else {
		g.board[row][col] = cellWhite
	}
	g.currentBlack = !isBlack
	g.lastDropX, g.lastDropY = col, row
}

const maxInt = int(^uint(0) >> 1)
const minInt = -maxInt - 1

func (g *GomokuGame) searchMax(depth int, toBlack bool, parentBeta int) int {
	alpha := minInt
	for i := 0; i < boardSize; i++ {
		for j := 0; j < boardSize; j++ {
			if g.board[i][j] != cellEmpty || !g.isNearby(i, j) {
				continue
			}
			g.board[i][j] = sideCell(toBlack)
			var score int
			if depth < maxSearchDepth {
				score = g.searchMin(depth+1, !toBlack, alpha)
			} else {
				score = g.situation()
			}
			g.board[i][j] = cellEmpty
			if score > alpha {
				alpha = score
				if alpha >= parentBeta {
					return alpha
				}
			}
		}
	}
	return alpha
}

func (g *GomokuGame) searchMin(depth int, toBlack bool, parentAlpha int) int {
	beta := maxInt
	for i := 0; i < boardSize; i++ {
		for j := 0; j < boardSize; j++ {
			if g.board[i][j] != cellEmpty || !g.isNearby(i, j) {
				continue
			}
			g.board[i][j] = sideCell(toBlack)
			var score int
			if depth < maxSearchDepth {
				score = g.searchMax(depth+1, !toBlack, beta)
			} else {
				score = g.situation()
			}
			g.board[i][j] = cellEmpty
			if score < beta {
				beta = score
				if beta <= parentAlpha {
					return beta
				}
			}
		}
	}
	return beta
}

func sideCell(black bool) cell {
	if black {
		return cellBlack
	}
	return cellWhite
}

func (g *GomokuGame) Kind() Kind { return KindGomoku }

func (g *GomokuGame) Players() []int64 {
	if g.whiteID == aiBotID {
		return []int64{g.blackID}
	}
	return []int64{g.blackID, g.whiteID}
}

func (g *GomokuGame) TurnTimeout() time.Duration { return 0 }

func (g *GomokuGame) HandleMove(playerID int64, messageType string, payload interface{}) error {
	if messageType != "GOMOKU_DROP" {
		return errors.New("unknown message type")
	}
	coords, ok := payload.([2]int)
	if !ok {
		return errors.New("bad payload")
	}
	return g.Drop(playerID, coords[0], coords[1])
}

func (g *GomokuGame) CheckResult() *Result {
	switch g.status {
	case gomokuBlackWin:
		id := g.blackID
		return &Result{WinnerID: &id, Reason: "five_in_a_row"}
	case gomokuWhiteWin:
		if g.whiteID == aiBotID {
			return &Result{WinnerID: nil, Reason: "ai_win"}
		}
		id := g.whiteID
		return &Result{WinnerID: &id, Reason: "five_in_a_row"}
	case gomokuTied:
		return &Result{WinnerID: nil, Reason: "board_full"}
	default:
		return nil
	}
}

func (g *GomokuGame) IsFinished() bool { return g.status != gomokuNotEnd }

func (g *GomokuGame) Snapshot(playerID int64) interface{} {
	board := make([][]int, boardSize)
	for i := range board {
		row := make([]int, boardSize)
		for j := range row {
			row[j] = int(g.board[i][j])
		}
		board[i] = row
	}
	return map[string]interface{}{
		"board":             board,
		"last_drop_x":       g.lastDropX,
		"last_drop_y":       g.lastDropY,
		"current_is_black":  g.currentBlack,
		"ai_enabled":        g.aiEnabled,
	}
}
