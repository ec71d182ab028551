package game

import "testing"

func TestGomokuFiveInARowHorizontalWin(t *testing.T) {
	g := NewGomokuGame([]int64{1, 2})
	// black plays row 0 cols 0..4, white plays row 1 cols 0..3 in between.
	moves := []struct {
		x, y    int
		black   bool
	}{
		{0, 0, true}, {0, 1, false},
		{1, 0, true}, {1, 1, false},
		{2, 0, true}, {2, 1, false},
		{3, 0, true}, {3, 1, false},
		{4, 0, true},
	}
	for _, m := range moves {
		userID := int64(1)
		if !m.black {
			userID = 2
		}
		if err := g.Drop(userID, m.x, m.y); err != nil {
			t.Fatalf("drop (%d,%d): %v", m.x, m.y, err)
		}
	}
	if !g.IsFinished() {
		t.Fatalf("expected game to be finished after five in a row")
	}
	res := g.CheckResult()
	if res == nil || res.WinnerID == nil || *res.WinnerID != 1 {
		t.Fatalf("expected black (player 1) to win, got %+v", res)
	}
}

func TestGomokuRejectsOccupiedCell(t *testing.T) {
	g := NewGomokuGame([]int64{1, 2})
	if err := g.Drop(1, 7, 7); err != nil {
		t.Fatalf("first drop: %v", err)
	}
	if err := g.Drop(2, 7, 7); err == nil {
		t.Fatalf("expected error dropping on an occupied cell")
	}
}

func TestGomokuRejectsOutOfTurn(t *testing.T) {
	g := NewGomokuGame([]int64{1, 2})
	if err := g.Drop(2, 7, 7); err == nil {
		t.Fatalf("expected error: black moves first")
	}
}

func TestGomokuRejectsOutOfRange(t *testing.T) {
	g := NewGomokuGame([]int64{1, 2})
	if err := g.Drop(1, -1, 0); err == nil {
		t.Fatalf("expected error for negative coordinate")
	}
	if err := g.Drop(1, boardSize, 0); err == nil {
		t.Fatalf("expected error for out-of-range coordinate")
	}
}

func TestGomokuSinglePlayerUsesBuiltInAI(t *testing.T) {
	g := NewGomokuGame([]int64{1})
	if !g.aiEnabled {
		t.Fatalf("expected built-in AI enabled for a single human player")
	}
	if err := g.Drop(1, 7, 7); err != nil {
		t.Fatalf("drop: %v", err)
	}
	// The AI should have replied with a white stone somewhere on the board.
	found := false
	for i := 0; i < boardSize; i++ {
		for j := 0; j < boardSize; j++ {
			if g.board[i][j] == cellWhite {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected the built-in AI to place a white stone in reply")
	}
	if !g.currentBlack {
		t.Fatalf("expected turn to return to black after the AI's reply")
	}
}

func TestGomokuPlayersReflectsAIOpponent(t *testing.T) {
	g := NewGomokuGame([]int64{1})
	players := g.Players()
	if len(players) != 1 || players[0] != 1 {
		t.Fatalf("expected Players() to report only the human seat, got %v", players)
	}
}
