package game

import "testing"

func TestEncodeDecodeCardRoundTrip(t *testing.T) {
	for color := ColorRed; color <= ColorBlack; color++ {
		for content := ContentZero; content <= ContentWildDrawFour; content++ {
			c := Card{Color: color, Content: content}
			got := DecodeCard(EncodeCard(c))
			if got != c {
				t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
			}
		}
	}
}

func newTestUno(n int) *UnoGame {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return NewUnoGame(ids)
}

func totalCards(g *UnoGame) int {
	total := len(g.deck)
	for _, p := range g.players {
		total += len(p.hand)
	}
	return total
}

func TestUnoDeckConservation(t *testing.T) {
	g := newTestUno(4)
	if got := totalCards(g); got != 108 {
		t.Fatalf("deck+hands after init = %d, want 108", got)
	}

	// Drive a handful of legal moves and recheck conservation each time.
	for i := 0; i < 20; i++ {
		cur := g.playerAt(g.nextPlayerIdx)
		played := false
		for _, c := range cur.hand {
			ok := c.Color == ColorBlack || c.Color == g.lastColor || c.Content == g.lastContent
			if ok {
				if _, err := g.Play(cur.userID, EncodeCard(c), ColorRed); err == nil {
					played = true
					break
				}
			}
		}
		if !played {
			if g.waitSuspect {
				g.Dissuspect(g.playerAt(g.nextPlayerIdx).userID)
			} else {
				g.DrawOne(cur.userID)
			}
		}
		if got := totalCards(g); got != 108 {
			t.Fatalf("iteration %d: deck+hands = %d, want 108", i, got)
		}
		if g.IsFinished() {
			break
		}
	}
}

func TestUnoSayUnoPenalty(t *testing.T) {
	g := newTestUno(3)
	cur := g.playerAt(g.nextPlayerIdx)
	// Shrink hand to 2 cards directly so SayUno is legal.
	cur.hand = cur.hand[:2]

	if err := g.SayUno(cur.userID); err != nil {
		t.Fatalf("SayUno by current player with 2 cards should succeed: %v", err)
	}
	if !cur.saidUno {
		t.Fatalf("saidUno flag not set")
	}

	other := g.players[(g.nextPlayerIdx+1)%len(g.players)]
	before := len(other.hand)
	if err := g.SayUno(other.userID); err == nil {
		t.Fatalf("SayUno by non-current player should error")
	}
	if len(other.hand) != before+2 {
		t.Fatalf("non-current SayUno should penalize 2 cards, got %d -> %d", before, len(other.hand))
	}
}

func TestUnoSuspectColorOnlyMatchAfterWild(t *testing.T) {
	g := newTestUno(3)
	// Force state: prior top card was a wild draw four with color blue.
	g.cardB4Wild4 = Card{Color: ColorBlue, Content: ContentWildDrawFour}
	g.waitSuspect = true

	sus := g.lastPlayer()
	sus.snapshotBeforeWild = []Card{{Color: ColorBlue, Content: ContentFive}}

	accuser := g.playerAt(g.nextPlayerIdx)
	success, err := g.Suspect(accuser.userID)
	if err != nil {
		t.Fatalf("Suspect: %v", err)
	}
	if !success {
		t.Fatalf("expected suspect success on color-only match against a wild-prior card")
	}
}

func TestUnoTurnAdvancesOnPlay(t *testing.T) {
	g := newTestUno(3)
	start := g.nextPlayerIdx
	cur := g.playerAt(start)

	var toPlay *Card
	for i := range cur.hand {
		c := cur.hand[i]
		if c.Content != ContentReverse && c.Content != ContentSkip && c.Content != ContentDrawTwo &&
			(c.Color == g.lastColor || c.Content == g.lastContent) {
			toPlay = &cur.hand[i]
			break
		}
	}
	if toPlay == nil {
		t.Skip("no plain-advancing card in hand for this shuffle")
	}
	if _, err := g.Play(cur.userID, EncodeCard(*toPlay), ColorRed); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.nextPlayerIdx == start {
		t.Fatalf("turn did not advance after a plain play")
	}
}
