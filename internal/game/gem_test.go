package game

import "testing"

func newTestGem(n int) *GemGame {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return NewGemGame(ids)
}

func TestGemBankSizingByPlayerCount(t *testing.T) {
	cases := map[int]int{2: 4, 3: 5, 4: 7}
	for n, want := range cases {
		g := newTestGem(n)
		for m := MineralCopper; m <= MineralNetherite; m++ {
			if g.bank[m] != want {
				t.Fatalf("players=%d mineral=%d bank=%d, want %d", n, m, g.bank[m], want)
			}
		}
		if g.bank[MineralGold] != 5 {
			t.Fatalf("players=%d gold bank=%d, want 5", n, g.bank[MineralGold])
		}
	}
}

func bankTotal(g *GemGame) int {
	total := 0
	for _, n := range g.bank {
		total += n
	}
	for _, p := range g.players {
		total += p.totalMineCount()
	}
	return total
}

func TestGemMineralConservationAcrossTake3(t *testing.T) {
	g := newTestGem(3)
	before := bankTotal(g)

	cur := g.players[g.currentIdx]
	if err := g.Take3(cur.userID, [3]Mineral{MineralCopper, MineralDiamond, MineralEmerald}); err != nil {
		t.Fatalf("Take3: %v", err)
	}
	if got := bankTotal(g); got != before {
		t.Fatalf("mineral total after Take3 = %d, want %d", got, before)
	}
}

func TestGemTake3RejectsDuplicateColors(t *testing.T) {
	g := newTestGem(2)
	cur := g.players[g.currentIdx]
	if err := g.Take3(cur.userID, [3]Mineral{MineralCopper, MineralCopper, MineralDiamond}); err == nil {
		t.Fatalf("expected error for duplicate mineral colors")
	}
}

func TestGemTake2RequiresFourInBank(t *testing.T) {
	g := newTestGem(4) // bank starts at 7 per color
	cur := g.players[g.currentIdx]
	g.bank[MineralCopper] = 3
	if err := g.Take2(cur.userID, MineralCopper); err == nil {
		t.Fatalf("expected error when bank has fewer than 4 of the color")
	}
	g.bank[MineralCopper] = 4
	if err := g.Take2(cur.userID, MineralCopper); err != nil {
		t.Fatalf("Take2 with bank=4 should succeed: %v", err)
	}
}

func TestGemReserveGrantsGoldWhenAvailable(t *testing.T) {
	g := newTestGem(2)
	cur := g.players[g.currentIdx]
	cardIdx := g.faceUp[0].Idx
	before := g.bank[MineralGold]

	if err := g.Reserve(cur.userID, cardIdx); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if len(cur.reserved) != 1 {
		t.Fatalf("expected 1 reserved card, got %d", len(cur.reserved))
	}
	if cur.mineCount[MineralGold] != 1 || g.bank[MineralGold] != before-1 {
		t.Fatalf("expected a gold granted on reserve")
	}
}

func TestGemAffordabilitySubstitutesGold(t *testing.T) {
	g := newTestGem(2)
	p := g.players[0]
	card := GemCard{Costs: [5]int{2, 0, 0, 0, 0}}
	p.mineCount[MineralCopper] = 1
	p.mineCount[MineralGold] = 1
	if !g.checkAffordability(p, &card) {
		t.Fatalf("expected gold to substitute for the missing copper")
	}
	p.mineCount[MineralGold] = 0
	if g.checkAffordability(p, &card) {
		t.Fatalf("expected unaffordable without gold substitution")
	}
}

func TestGemGoalAssignedInSortedIndexOrder(t *testing.T) {
	g := newTestGem(2)
	g.goals = []GoalCard{
		{Reputation: 3, Condition: [5]int{1, 0, 0, 0, 0}, Idx: 5},
		{Reputation: 3, Condition: [5]int{1, 0, 0, 0, 0}, Idx: 2},
	}
	g.players[0].couponCount[MineralCopper] = 1
	g.checkGoals()

	if g.goals[1].OwnerID == nil || *g.goals[1].OwnerID != g.players[0].userID {
		t.Fatalf("expected the lowest-index goal (idx 2) to be assigned first")
	}
	if g.goals[0].OwnerID != nil {
		t.Fatalf("goal idx 5 should remain unassigned once the condition holder already claimed idx 2")
	}
}

func TestGemWinnerOnReputationOverFourteen(t *testing.T) {
	g := newTestGem(2)
	g.players[0].reputation = 15
	g.checkWinnerLocked()
	if g.winnerID == nil || *g.winnerID != g.players[0].userID {
		t.Fatalf("expected player 0 to win with reputation 15")
	}
}
