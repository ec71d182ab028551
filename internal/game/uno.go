package game

import (
	"errors"
	"math/rand"
	"time"
)

// Color is the UNO card color. Black is reserved for wild cards.
type Color int

const (
	ColorRed Color = iota
	ColorYellow
	ColorGreen
	ColorBlue
	ColorBlack
)

// Content is the face value of a card.
type Content int

const (
	ContentZero Content = iota
	ContentOne
	ContentTwo
	ContentThree
	ContentFour
	ContentFive
	ContentSix
	ContentSeven
	ContentEight
	ContentNine
	ContentSkip
	ContentDrawTwo
	ContentReverse
	ContentWild
	ContentWildDrawFour
)

// Card is a single UNO card. EncodeCard/DecodeCard give the wire form.
type Card struct {
	Color   Color
	Content Content
}

// EncodeCard packs a card as color*16+content, per the wire encoding.
func EncodeCard(c Card) int {
	return int(c.Color)*16 + int(c.Content)
}

// DecodeCard is the inverse of EncodeCard.
func DecodeCard(code int) Card {
	return Card{Color: Color(code / 16), Content: Content(code % 16)}
}

func isNumberCard(c Card) bool {
	return c.Content <= ContentNine
}

type unoPlayer struct {
	userID             int64
	hand               []Card
	drawnOne           bool
	lastDrew           Card
	saidUno            bool
	snapshotBeforeWild []Card
}

// UnoPlayPayload is the decoded body of UNO_PLAY.
type UnoPlayPayload struct {
	Card           int
	SpecifiedColor int
}

// UnoGame implements the UNO-family card game described for 3-10 players.
type UnoGame struct {
	players       []*unoPlayer
	deck          []Card
	lastColor     Color
	lastContent   Content
	cardB4Wild4   Card
	reversed      bool
	waitSuspect   bool
	nextPlayerIdx int
	winnerID      *int64
	rng           *rand.Rand
}

func NewUnoGame(playerIDs []int64) *UnoGame {
	g := &UnoGame{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, id := range playerIDs {
		g.players = append(g.players, &unoPlayer{userID: id})
	}
	g.init()
	return g
}

func (g *UnoGame) buildDeck() []Card {
	colors := []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}
	numberedContents := []Content{
		ContentOne, ContentTwo, ContentThree, ContentFour, ContentFive,
		ContentSix, ContentSeven, ContentEight, ContentNine,
		ContentSkip, ContentDrawTwo, ContentReverse,
	}
	cards := make([]Card, 0, 108)
	for _, c := range colors {
		for _, content := range numberedContents {
			cards = append(cards, Card{c, content}, Card{c, content})
		}
	}
	for _, c := range colors {
		cards = append(cards, Card{c, ContentZero})
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, Card{ColorBlack, ContentWild})
		cards = append(cards, Card{ColorBlack, ContentWildDrawFour})
	}
	return cards
}

func (g *UnoGame) init() {
	deck := g.buildDeck()
	g.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	g.deck = deck

	g.nextPlayerIdx = g.rng.Intn(len(g.players))

	for _, p := range g.players {
		p.hand = nil
		p.drawnOne = false
		p.saidUno = false
		for i := 0; i < 7; i++ {
			p.hand = append(p.hand, g.popFront())
		}
	}

	for !isNumberCard(g.lastCard()) {
		g.pushBack(g.popFront())
	}
	last := g.lastCard()
	g.lastColor = last.Color
	g.lastContent = last.Content
	g.reversed = false
}

func (g *UnoGame) popFront() Card {
	c := g.deck[0]
	g.deck = g.deck[1:]
	return c
}

func (g *UnoGame) pushBack(c Card) {
	g.deck = append(g.deck, c)
}

func (g *UnoGame) lastCard() Card {
	return g.deck[len(g.deck)-1]
}

func (g *UnoGame) give(p *unoPlayer, count int) Card {
	var c Card
	for i := 0; i < count; i++ {
		c = g.popFront()
		p.hand = append(p.hand, c)
	}
	return c
}

func (g *UnoGame) next() {
	if g.reversed {
		g.nextPlayerIdx++
	} else {
		g.nextPlayerIdx--
	}
	n := len(g.players)
	g.nextPlayerIdx = ((g.nextPlayerIdx % n) + n) % n
}

func (g *UnoGame) playerAt(idx int) *unoPlayer {
	return g.players[idx]
}

func (g *UnoGame) findPlayer(userID int64) *unoPlayer {
	for _, p := range g.players {
		if p.userID == userID {
			return p
		}
	}
	return nil
}

func (g *UnoGame) lastPlayer() *unoPlayer {
	n := len(g.players)
	var idx int
	if g.reversed {
		idx = ((g.nextPlayerIdx-1)%n + n) % n
	} else {
		idx = ((g.nextPlayerIdx+1)%n + n) % n
	}
	return g.players[idx]
}

// Play applies UNO_PLAY. punish reports whether a say-uno penalty fired.
func (g *UnoGame) Play(userID int64, code int, specifiedColor Color) (punish bool, err error) {
	if g.waitSuspect {
		return false, errors.New("wait_suspect")
	}
	card := DecodeCard(code)

	ok := card.Color == ColorBlack || card.Color == g.lastColor || card.Content == g.lastContent
	if !ok {
		return false, errors.New("card not playable")
	}

	player := g.playerAt(g.nextPlayerIdx)
	if player.userID != userID {
		return false, errors.New("not your turn")
	}

	if player.drawnOne && player.lastDrew != card {
		return false, errors.New("must play the drawn card")
	}
	player.drawnOne = false

	idx := -1
	for i, c := range player.hand {
		if c == card {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, errors.New("card not in hand")
	}

	if card.Content == ContentWildDrawFour {
		player.snapshotBeforeWild = append([]Card(nil), player.hand...)
	}

	g.pushBack(card)
	player.hand = append(player.hand[:idx], player.hand[idx+1:]...)

	if len(player.hand) == 1 && !player.saidUno {
		punish = true
		g.give(player, 2)
	}
	player.saidUno = false

	if card.Content == ContentReverse {
		g.reversed = !g.reversed
	}

	g.next()

	switch card.Content {
	case ContentDrawTwo:
		g.give(g.playerAt(g.nextPlayerIdx), 2)
		g.next()
	case ContentSkip:
		g.next()
	case ContentWildDrawFour:
		g.waitSuspect = true
		g.cardB4Wild4 = Card{Color: g.lastColor, Content: g.lastContent}
	}

	if card.Color == ColorBlack {
		g.lastColor = specifiedColor
	} else {
		g.lastColor = card.Color
	}
	g.lastContent = card.Content

	g.checkWinnerLocked()
	return punish, nil
}

// DrawOne applies UNO_DRAW_ONE.
func (g *UnoGame) DrawOne(userID int64) (punish bool, card Card, err error) {
	if g.waitSuspect {
		return false, Card{}, errors.New("wait_suspect")
	}
	player := g.playerAt(g.nextPlayerIdx)
	if player.userID != userID {
		return false, Card{}, errors.New("not your turn")
	}
	if player.drawnOne {
		return false, Card{}, errors.New("already drawn")
	}
	if player.saidUno {
		punish = true
		g.give(player, 2)
		player.saidUno = false
	}
	player.drawnOne = true
	card = g.give(player, 1)
	player.lastDrew = card
	return punish, card, nil
}

// SkipAfterDrawingOne applies UNO_SKIP_AFTER_DRAWING_ONE.
func (g *UnoGame) SkipAfterDrawingOne(userID int64) error {
	if g.waitSuspect {
		return errors.New("wait_suspect")
	}
	player := g.playerAt(g.nextPlayerIdx)
	if player.userID != userID {
		return errors.New("not your turn")
	}
	if !player.drawnOne {
		return errors.New("nothing drawn")
	}
	player.drawnOne = false
	g.next()
	return nil
}

// SayUno applies UNO_SAY_UNO. A non-current caller, or a current player not
// holding exactly 2 cards, is penalized 2 cards (matches source behavior).
func (g *UnoGame) SayUno(userID int64) error {
	player := g.playerAt(g.nextPlayerIdx)
	if player.userID != userID {
		if other := g.findPlayer(userID); other != nil {
			g.give(other, 2)
		}
		return errors.New("not your turn")
	}
	if len(player.hand) != 2 {
		g.give(player, 2)
		return errors.New("wrong hand size")
	}
	player.saidUno = true
	return nil
}

// Suspect applies UNO_SUSPECT. success reports whether the challenge won.
func (g *UnoGame) Suspect(userID int64) (success bool, err error) {
	if !g.waitSuspect {
		return false, errors.New("no pending suspect")
	}
	player := g.playerAt(g.nextPlayerIdx)
	if player.userID != userID {
		return false, errors.New("not your turn")
	}
	sus := g.lastPlayer()

	for _, c := range sus.snapshotBeforeWild {
		if c.Color == g.cardB4Wild4.Color ||
			(g.cardB4Wild4.Content != ContentWild && g.cardB4Wild4.Content != ContentWildDrawFour &&
				c.Content == g.cardB4Wild4.Content) {
			success = true
			break
		}
	}
	if success {
		g.give(sus, 4)
	} else {
		g.give(player, 6)
		g.next()
	}
	g.waitSuspect = false
	g.checkWinnerLocked()
	return success, nil
}

// Dissuspect applies UNO_DISSUSPECT.
func (g *UnoGame) Dissuspect(userID int64) error {
	if !g.waitSuspect {
		return errors.New("no pending suspect")
	}
	player := g.playerAt(g.nextPlayerIdx)
	if player.userID != userID {
		return errors.New("not your turn")
	}
	g.give(player, 4)
	g.next()
	g.waitSuspect = false
	g.checkWinnerLocked()
	return nil
}

func (g *UnoGame) checkWinnerLocked() {
	if g.winnerID != nil {
		return
	}
	for _, p := range g.players {
		if len(p.hand) == 0 {
			id := p.userID
			g.winnerID = &id
			return
		}
	}
}

func (g *UnoGame) Kind() Kind { return KindUno }

func (g *UnoGame) Players() []int64 {
	ids := make([]int64, len(g.players))
	for i, p := range g.players {
		ids[i] = p.userID
	}
	return ids
}

func (g *UnoGame) TurnTimeout() time.Duration { return 0 }

func (g *UnoGame) HandleMove(playerID int64, messageType string, payload interface{}) error {
	switch messageType {
	case "UNO_PLAY":
		p, ok := payload.(UnoPlayPayload)
		if !ok {
			return errors.New("bad payload")
		}
		_, err := g.Play(playerID, p.Card, Color(p.SpecifiedColor))
		return err
	case "UNO_DRAW_ONE":
		_, _, err := g.DrawOne(playerID)
		return err
	case "UNO_SKIP_AFTER_DRAWING_ONE":
		return g.SkipAfterDrawingOne(playerID)
	case "UNO_SAY_UNO":
		return g.SayUno(playerID)
	case "UNO_SUSPECT":
		_, err := g.Suspect(playerID)
		return err
	case "UNO_DISSUSPECT":
		return g.Dissuspect(playerID)
	default:
		return errors.New("unknown message type")
	}
}

func (g *UnoGame) CheckResult() *Result {
	if g.winnerID == nil {
		return nil
	}
	return &Result{WinnerID: g.winnerID, Reason: "empty_hand"}
}

func (g *UnoGame) IsFinished() bool { return g.winnerID != nil }

// Snapshot reports game state visible to playerID: hand sizes for
// everyone, full hand only for the requesting player.
func (g *UnoGame) Snapshot(playerID int64) interface{} {
	players := make([]map[string]interface{}, 0, len(g.players))
	for _, p := range g.players {
		entry := map[string]interface{}{
			"user_id":    p.userID,
			"card_count": len(p.hand),
			"said_uno":   p.saidUno,
		}
		if p.userID == playerID {
			hand := make([]int, len(p.hand))
			for i, c := range p.hand {
				hand[i] = EncodeCard(c)
			}
			entry["hand"] = hand
		}
		players = append(players, entry)
	}
	return map[string]interface{}{
		"players":       players,
		"last_color":    int(g.lastColor),
		"last_content":  int(g.lastContent),
		"reversed":      g.reversed,
		"wait_suspect":  g.waitSuspect,
		"next_player":   g.playerAt(g.nextPlayerIdx).userID,
		"deck_remaining": len(g.deck),
	}
}
