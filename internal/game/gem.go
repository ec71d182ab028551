package game

import (
	"errors"
	"math/rand"
	"sort"
	"time"
)

type gemPlayerStatus string

const (
	gemWaiting          gemPlayerStatus = "WAITING"
	gemAction           gemPlayerStatus = "ACTION"
	gemNeedReturnMineral gemPlayerStatus = "NEED_RETURN_MINERAL"
)

type gemPlayer struct {
	userID          int64
	owned           []GemCard
	reserved        []GemCard
	couponCount     [5]int // discount per color, indexed by Mineral
	mineCount       [6]int // indexed by Mineral, including Gold
	reputation      int
	status          gemPlayerStatus
}

func (p *gemPlayer) totalMineCount() int {
	total := 0
	for _, n := range p.mineCount {
		total += n
	}
	return total
}

// GemGame implements the Splendor-style mineral/coupon engagement game.
type GemGame struct {
	bank         [6]int
	faceUp       []*GemCard // live slots: 4 per tier, index order lv1,lv1,lv1,lv1,lv2...
	rest         []GemCard  // undealt cards: lv1 then lv2 then lv3, each tier shuffled on its own
	goals        []GoalCard
	players      []*gemPlayer
	turnOrder    []int64
	currentIdx   int
	winnerID     *int64
	rng          *rand.Rand
}

func NewGemGame(playerIDs []int64) *GemGame {
	g := &GemGame{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	for _, id := range playerIDs {
		g.players = append(g.players, &gemPlayer{userID: id, status: gemWaiting})
		g.turnOrder = append(g.turnOrder, id)
	}
	g.currentIdx = g.rng.Intn(len(g.players))
	g.players[g.currentIdx].status = gemAction

	switch len(playerIDs) {
	case 2:
		for i := 0; i < 5; i++ {
			g.bank[i] = 4
		}
	case 3:
		for i := 0; i < 5; i++ {
			g.bank[i] = 5
		}
	case 4:
		for i := 0; i < 5; i++ {
			g.bank[i] = 7
		}
	}
	g.bank[MineralGold] = 5

	goalCount := len(playerIDs) + 1
	pool := allGoalCards
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	g.goals = append(g.goals, pool[:goalCount]...)

	lv1 := allCouponsLv1
	lv2 := allCouponsLv2
	lv3 := allCouponsLv3
	g.rng.Shuffle(len(lv1), func(i, j int) { lv1[i], lv1[j] = lv1[j], lv1[i] })
	g.rng.Shuffle(len(lv2), func(i, j int) { lv2[i], lv2[j] = lv2[j], lv2[i] })
	g.rng.Shuffle(len(lv3), func(i, j int) { lv3[i], lv3[j] = lv3[j], lv3[i] })

	g.rest = append(g.rest, lv1[4:]...)
	g.rest = append(g.rest, lv2[4:]...)
	g.rest = append(g.rest, lv3[4:]...)

	for i := 0; i < 4; i++ {
		c := lv1[i]
		g.faceUp = append(g.faceUp, &c)
	}
	for i := 0; i < 4; i++ {
		c := lv2[i]
		g.faceUp = append(g.faceUp, &c)
	}
	for i := 0; i < 4; i++ {
		c := lv3[i]
		g.faceUp = append(g.faceUp, &c)
	}
	return g
}

func (g *GemGame) findPlayer(userID int64) *gemPlayer {
	for _, p := range g.players {
		if p.userID == userID {
			return p
		}
	}
	return nil
}

func (g *GemGame) advanceTurn() {
	g.players[g.currentIdx].status = gemWaiting
	g.currentIdx = (g.currentIdx + 1) % len(g.players)
	g.players[g.currentIdx].status = gemAction
}

func (g *GemGame) settleOrAdvance(p *gemPlayer) {
	if p.totalMineCount() > 10 {
		p.status = gemNeedReturnMineral
		return
	}
	g.advanceTurn()
}

// Take3 applies SPLENDOR_TAKE_3: three distinct non-wild colors, each with
// bank >= 1.
func (g *GemGame) Take3(userID int64, mines [3]Mineral) error {
	p := g.findPlayer(userID)
	if p == nil || p.status != gemAction {
		return errors.New("not your turn")
	}
	if mines[0] == mines[1] || mines[1] == mines[2] || mines[2] == mines[0] {
		return errors.New("mines must be distinct")
	}
	for _, m := range mines {
		if m == MineralGold || g.bank[m] == 0 {
			return errors.New("mine unavailable")
		}
	}
	for _, m := range mines {
		g.bank[m]--
		p.mineCount[m]++
	}
	g.settleOrAdvance(p)
	return nil
}

// Take2 applies SPLENDOR_TAKE_2: one non-wild color with bank >= 4.
func (g *GemGame) Take2(userID int64, mine Mineral) error {
	p := g.findPlayer(userID)
	if p == nil || p.status != gemAction {
		return errors.New("not your turn")
	}
	if mine == MineralGold || g.bank[mine] < 4 {
		return errors.New("mine unavailable")
	}
	g.bank[mine] -= 2
	p.mineCount[mine] += 2
	g.settleOrAdvance(p)
	return nil
}

func (g *GemGame) fillSlot(slotIdx int) {
	level := g.faceUp[slotIdx].Level
	for i, c := range g.rest {
		if c.Level == level {
			*g.faceUp[slotIdx] = c
			g.rest = append(g.rest[:i], g.rest[i+1:]...)
			return
		}
	}
	*g.faceUp[slotIdx] = emptyCard(level)
}

func (g *GemGame) findFaceUp(idx int) (int, *GemCard) {
	for i, c := range g.faceUp {
		if c.Idx == idx {
			return i, c
		}
	}
	return -1, nil
}

// Reserve applies SPLENDOR_RESERVE_COUPON.
func (g *GemGame) Reserve(userID int64, cardIdx int) error {
	p := g.findPlayer(userID)
	if p == nil || p.status != gemAction {
		return errors.New("not your turn")
	}
	if len(p.reserved) > 2 {
		return errors.New("reservation full")
	}
	slot, card := g.findFaceUp(cardIdx)
	if card == nil || card.isEmpty() {
		return errors.New("card not found")
	}
	p.reserved = append(p.reserved, *card)
	g.fillSlot(slot)

	if g.bank[MineralGold] > 0 {
		p.mineCount[MineralGold]++
		g.bank[MineralGold]--
	}
	g.settleOrAdvance(p)
	return nil
}

func (g *GemGame) checkAffordability(p *gemPlayer, c *GemCard) bool {
	goldLeft := p.mineCount[MineralGold]
	for mine := 0; mine < 5; mine++ {
		have := p.mineCount[mine] + p.couponCount[mine]
		if have+goldLeft < c.Costs[mine] {
			return false
		}
		shortfall := c.Costs[mine] - have
		if shortfall > 0 {
			goldLeft -= shortfall
		}
	}
	return true
}

func (g *GemGame) pay(p *gemPlayer, c *GemCard) {
	for mine := 0; mine < 5; mine++ {
		cost := c.Costs[mine] - p.couponCount[mine]
		if cost <= 0 {
			continue
		}
		p.mineCount[mine] -= cost
		g.bank[mine] += cost
		if p.mineCount[mine] < 0 {
			deficit := p.mineCount[mine]
			p.mineCount[MineralGold] += deficit
			g.bank[mine] += deficit
			g.bank[MineralGold] -= deficit
			p.mineCount[mine] = 0
		}
	}
}

// Buy applies SPLENDOR_BUY_COUPON.
func (g *GemGame) Buy(userID int64, cardIdx int) error {
	p := g.findPlayer(userID)
	if p == nil || p.status != gemAction {
		return errors.New("not your turn")
	}
	slot, card := g.findFaceUp(cardIdx)
	if card == nil || card.isEmpty() {
		return errors.New("card not found")
	}
	if !g.checkAffordability(p, card) {
		return errors.New("cannot afford")
	}
	g.pay(p, card)

	bought := *card
	p.owned = append(p.owned, bought)
	p.couponCount[bought.Type]++
	p.reputation += bought.Reputation
	g.fillSlot(slot)

	g.advanceTurn()
	g.checkGoals()
	g.checkWinnerLocked()
	return nil
}

// BuyReserved applies SPLENDOR_BUY_RESERVED_COUPON.
func (g *GemGame) BuyReserved(userID int64, cardIdx int) error {
	p := g.findPlayer(userID)
	if p == nil || p.status != gemAction {
		return errors.New("not your turn")
	}
	idx := -1
	for i, c := range p.reserved {
		if c.Idx == cardIdx {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errors.New("card not reserved")
	}
	card := p.reserved[idx]
	if !g.checkAffordability(p, &card) {
		return errors.New("cannot afford")
	}
	g.pay(p, &card)

	p.owned = append(p.owned, card)
	p.couponCount[card.Type]++
	p.reputation += card.Reputation
	p.reserved = append(p.reserved[:idx], p.reserved[idx+1:]...)

	g.advanceTurn()
	g.checkGoals()
	g.checkWinnerLocked()
	return nil
}

// ReturnMineral applies SPLENDOR_RETURN_MINE, draining holdings back to 10.
func (g *GemGame) ReturnMineral(userID int64, mine Mineral) error {
	p := g.findPlayer(userID)
	if p == nil || p.status != gemNeedReturnMineral {
		return errors.New("not awaiting return")
	}
	if p.mineCount[mine] < 1 {
		return errors.New("nothing to return")
	}
	p.mineCount[mine]--
	g.bank[mine]++

	if p.totalMineCount() < 11 {
		g.advanceTurn()
	}
	return nil
}

// checkGoals visits unowned goal cards in ascending goal index (Idx) order
// and assigns each to the first player whose coupon counts satisfy the
// condition. A player receives at most one goal per call.
func (g *GemGame) checkGoals() {
	order := make([]int, len(g.goals))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return g.goals[order[a]].Idx < g.goals[order[b]].Idx })
	awarded := make(map[int64]bool)
	for _, i := range order {
		goal := &g.goals[i]
		if goal.OwnerID != nil {
			continue
		}
		for _, p := range g.players {
			if awarded[p.userID] {
				continue
			}
			ok := true
			for c := 0; c < 5; c++ {
				if p.couponCount[c] < goal.Condition[c] {
					ok = false
					break
				}
			}
			if ok {
				id := p.userID
				goal.OwnerID = &id
				p.reputation += goal.Reputation
				awarded[p.userID] = true
				break
			}
		}
	}
}

func (g *GemGame) checkWinnerLocked() {
	if g.winnerID != nil {
		return
	}
	for _, p := range g.players {
		if p.reputation > 14 {
			id := p.userID
			g.winnerID = &id
			return
		}
	}
}

func (g *GemGame) Kind() Kind { return KindGem }

func (g *GemGame) Players() []int64 { return append([]int64(nil), g.turnOrder...) }

func (g *GemGame) TurnTimeout() time.Duration { return 0 }

func (g *GemGame) HandleMove(playerID int64, messageType string, payload interface{}) error {
	switch messageType {
	case "SPLENDOR_TAKE_3":
		mines, ok := payload.([3]Mineral)
		if !ok {
			return errors.New("bad payload")
		}
		return g.Take3(playerID, mines)
	case "SPLENDOR_TAKE_2":
		mine, ok := payload.(Mineral)
		if !ok {
			return errors.New("bad payload")
		}
		return g.Take2(playerID, mine)
	case "SPLENDOR_RESERVE_COUPON":
		idx, ok := payload.(int)
		if !ok {
			return errors.New("bad payload")
		}
		return g.Reserve(playerID, idx)
	case "SPLENDOR_BUY_COUPON":
		idx, ok := payload.(int)
		if !ok {
			return errors.New("bad payload")
		}
		return g.Buy(playerID, idx)
	case "SPLENDOR_BUY_RESERVED_COUPON":
		idx, ok := payload.(int)
		if !ok {
			return errors.New("bad payload")
		}
		return g.BuyReserved(playerID, idx)
	case "SPLENDOR_RETURN_MINE":
		mine, ok := payload.(Mineral)
		if !ok {
			return errors.New("bad payload")
		}
		return g.ReturnMineral(playerID, mine)
	default:
		return errors.New("unknown message type")
	}
}

func (g *GemGame) CheckResult() *Result {
	if g.winnerID == nil {
		return nil
	}
	return &Result{WinnerID: g.winnerID, Reason: "reputation"}
}

func (g *GemGame) IsFinished() bool { return g.winnerID != nil }

func (g *GemGame) Snapshot(playerID int64) interface{} {
	faceUp := make([]GemCard, len(g.faceUp))
	for i, c := range g.faceUp {
		faceUp[i] = *c
	}
	players := make([]map[string]interface{}, 0, len(g.players))
	for _, p := range g.players {
		entry := map[string]interface{}{
			"user_id":    p.userID,
			"owned":      p.owned,
			"mine_count": p.mineCount,
			"reputation": p.reputation,
			"status":     p.status,
		}
		if p.userID == playerID {
			entry["reserved"] = p.reserved
		} else {
			entry["reserved_count"] = len(p.reserved)
		}
		players = append(players, entry)
	}
	return map[string]interface{}{
		"bank":     g.bank,
		"face_up":  faceUp,
		"goals":    g.goals,
		"players":  players,
		"turn":     g.players[g.currentIdx].userID,
	}
}
