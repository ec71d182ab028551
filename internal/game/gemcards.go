package game

// Mineral is the Gem game's resource color. Gold is the wild substitute,
// never appearing as a card cost.
type Mineral int

const (
	MineralCopper Mineral = iota
	MineralDiamond
	MineralEmerald
	MineralIron
	MineralNetherite
	MineralGold
)

// GemCard is a purchasable coupon at one of three tiers.
type GemCard struct {
	Reputation int
	Costs      [5]int // indexed by Mineral, Gold excluded
	Type       Mineral
	Level      int
	Idx        int
}

func (c GemCard) isEmpty() bool { return c.Reputation == -1 }

func emptyCard(level int) GemCard {
	return GemCard{Reputation: -1, Type: MineralGold, Level: level}
}

// GoalCard is an end-game scoring card (called "Ally" in the source),
// awarded once a player's owned-card color counts meet its condition.
type GoalCard struct {
	Reputation int
	Condition  [5]int
	Idx        int
	OwnerID    *int64
}

// allGoalCards is the fixed 10-entry goal pool; players+1 are drawn per game.
var allGoalCards = [10]GoalCard{
	{Reputation: 3, Condition: [5]int{0, 0, 0, 4, 4}, Idx: 0},
	{Reputation: 3, Condition: [5]int{0, 4, 4, 0, 0}, Idx: 1},
	{Reputation: 3, Condition: [5]int{3, 3, 3, 0, 0}, Idx: 2},
	{Reputation: 3, Condition: [5]int{0, 3, 3, 3, 0}, Idx: 3},
	{Reputation: 3, Condition: [5]int{3, 0, 0, 3, 3}, Idx: 4},
	{Reputation: 3, Condition: [5]int{3, 0, 3, 0, 3}, Idx: 5},
	{Reputation: 3, Condition: [5]int{4, 0, 4, 0, 0}, Idx: 6},
	{Reputation: 3, Condition: [5]int{4, 0, 0, 0, 4}, Idx: 7},
	{Reputation: 3, Condition: [5]int{0, 4, 0, 4, 0}, Idx: 8},
	{Reputation: 3, Condition: [5]int{0, 3, 0, 3, 3}, Idx: 9},
}

// allCoupons{Lv1,Lv2,Lv3} are the fixed tier card tables, reproduced
// verbatim from the source (the shuffling is the only unconstrained part).
var allCouponsLv1 = [40]GemCard{
	{0, [5]int{0, 0, 0, 3, 0}, MineralCopper, 1, 1},
	{0, [5]int{1, 0, 0, 1, 3}, MineralCopper, 1, 2},
	{0, [5]int{0, 2, 1, 0, 0}, MineralCopper, 1, 3},
	{0, [5]int{0, 0, 1, 2, 2}, MineralCopper, 1, 4},
	{0, [5]int{0, 1, 1, 2, 1}, MineralCopper, 1, 5},
	{0, [5]int{0, 1, 1, 1, 1}, MineralCopper, 1, 6},
	{0, [5]int{2, 0, 0, 2, 0}, MineralCopper, 1, 7},
	{1, [5]int{0, 0, 0, 4, 0}, MineralCopper, 1, 8},
	{0, [5]int{0, 0, 0, 1, 2}, MineralDiamond, 1, 9},
	{0, [5]int{2, 0, 1, 1, 1}, MineralDiamond, 1, 10},
	{0, [5]int{1, 0, 1, 1, 1}, MineralDiamond, 1, 11},
	{0, [5]int{1, 1, 3, 0, 0}, MineralDiamond, 1, 12},
	{0, [5]int{0, 0, 0, 0, 3}, MineralDiamond, 1, 13},
	{0, [5]int{2, 0, 2, 1, 0}, MineralDiamond, 1, 14},
	{0, [5]int{0, 0, 2, 0, 2}, MineralDiamond, 1, 15},
	{1, [5]int{0, 0, 0, 0, 4}, MineralDiamond, 1, 16},
	{0, [5]int{0, 1, 0, 2, 0}, MineralEmerald, 1, 17},
	{0, [5]int{2, 2, 0, 0, 0}, MineralEmerald, 1, 18},
	{0, [5]int{0, 3, 1, 1, 0}, MineralEmerald, 1, 19},
	{0, [5]int{1, 1, 0, 1, 1}, MineralEmerald, 1, 20},
	{0, [5]int{1, 1, 0, 1, 2}, MineralEmerald, 1, 21},
	{0, [5]int{2, 1, 0, 0, 2}, MineralEmerald, 1, 22},
	{0, [5]int{3, 0, 0, 0, 0}, MineralEmerald, 1, 23},
	{1, [5]int{0, 0, 0, 0, 4}, MineralEmerald, 1, 24},
	{0, [5]int{0, 2, 2, 0, 1}, MineralIron, 1, 25},
	{0, [5]int{2, 0, 0, 0, 1}, MineralIron, 1, 26},
	{0, [5]int{1, 1, 1, 0, 1}, MineralIron, 1, 27},
	{0, [5]int{0, 3, 0, 0, 0}, MineralIron, 1, 28},
	{0, [5]int{0, 2, 0, 0, 2}, MineralIron, 1, 29},
	{0, [5]int{1, 1, 2, 0, 1}, MineralIron, 1, 30},
	{0, [5]int{0, 1, 0, 0, 1}, MineralIron, 1, 31},
	{1, [5]int{0, 0, 4, 0, 0}, MineralIron, 1, 32},
	{0, [5]int{1, 1, 1, 1, 0}, MineralNetherite, 1, 33},
	{0, [5]int{1, 0, 2, 0, 0}, MineralNetherite, 1, 34},
	{0, [5]int{0, 0, 2, 2, 0}, MineralNetherite, 1, 35},
	{0, [5]int{3, 0, 1, 0, 1}, MineralNetherite, 1, 36},
	{0, [5]int{0, 0, 3, 0, 0}, MineralNetherite, 1, 37},
	{0, [5]int{1, 2, 1, 1, 0}, MineralNetherite, 1, 38},
	{0, [5]int{1, 2, 0, 1, 0}, MineralNetherite, 1, 39},
	{1, [5]int{0, 4, 0, 0, 0}, MineralNetherite, 1, 40},
}

var allCouponsLv2 = [30]GemCard{
	{1, [5]int{2, 3, 0, 0, 3}, MineralCopper, 2, 41},
	{1, [5]int{2, 0, 0, 2, 3}, MineralCopper, 2, 42},
	{2, [5]int{0, 4, 2, 1, 0}, MineralCopper, 2, 43},
	{2, [5]int{0, 0, 0, 3, 5}, MineralCopper, 2, 44},
	{2, [5]int{0, 0, 0, 0, 5}, MineralCopper, 2, 45},
	{3, [5]int{6, 0, 0, 0, 0}, MineralCopper, 2, 46},
	{1, [5]int{3, 2, 2, 0, 0}, MineralDiamond, 2, 47},
	{1, [5]int{0, 2, 3, 0, 3}, MineralDiamond, 2, 48},
	{2, [5]int{0, 3, 0, 5, 0}, MineralDiamond, 2, 49},
	{2, [5]int{0, 5, 0, 0, 0}, MineralDiamond, 2, 50},
	{2, [5]int{1, 0, 0, 2, 4}, MineralDiamond, 2, 51},
	{3, [5]int{0, 6, 0, 0, 0}, MineralDiamond, 2, 52},
	{1, [5]int{3, 0, 2, 3, 0}, MineralEmerald, 2, 53},
	{1, [5]int{0, 3, 0, 3, 2}, MineralEmerald, 2, 54},
	{2, [5]int{0, 2, 0, 4, 1}, MineralEmerald, 2, 55},
	{2, [5]int{0, 0, 5, 0, 0}, MineralEmerald, 2, 56},
	{2, [5]int{0, 5, 3, 0, 0}, MineralEmerald, 2, 57},
	{3, [5]int{0, 0, 6, 0, 0}, MineralEmerald, 2, 58},
	{1, [5]int{2, 0, 3, 0, 2}, MineralIron, 2, 59},
	{1, [5]int{3, 3, 0, 2, 0}, MineralIron, 2, 60},
	{2, [5]int{4, 0, 1, 0, 2}, MineralIron, 2, 61},
	{2, [5]int{5, 0, 0, 0, 0}, MineralIron, 2, 62},
	{2, [5]int{5, 0, 0, 0, 3}, MineralIron, 2, 63},
	{3, [5]int{0, 0, 0, 6, 0}, MineralIron, 2, 64},
	{1, [5]int{0, 2, 2, 3, 0}, MineralNetherite, 2, 65},
	{1, [5]int{0, 0, 3, 3, 2}, MineralNetherite, 2, 66},
	{2, [5]int{2, 1, 4, 0, 0}, MineralNetherite, 2, 67},
	{2, [5]int{0, 0, 0, 5, 0}, MineralNetherite, 2, 68},
	{2, [5]int{3, 0, 5, 0, 0}, MineralNetherite, 2, 69},
	{3, [5]int{0, 0, 0, 0, 6}, MineralNetherite, 2, 70},
}

var allCouponsLv3 = [20]GemCard{
	{3, [5]int{0, 5, 3, 3, 3}, MineralCopper, 3, 71},
	{4, [5]int{0, 0, 7, 0, 0}, MineralCopper, 3, 72},
	{4, [5]int{3, 3, 6, 0, 0}, MineralCopper, 3, 73},
	{5, [5]int{3, 0, 7, 0, 0}, MineralCopper, 3, 74},
	{3, [5]int{3, 0, 3, 3, 5}, MineralDiamond, 3, 75},
	{4, [5]int{0, 0, 0, 7, 0}, MineralDiamond, 3, 76},
	{4, [5]int{0, 3, 0, 6, 3}, MineralDiamond, 3, 77},
	{5, [5]int{0, 3, 0, 7, 0}, MineralDiamond, 3, 78},
	{3, [5]int{3, 3, 0, 5, 3}, MineralEmerald, 3, 79},
	{4, [5]int{0, 6, 3, 3, 0}, MineralEmerald, 3, 80},
	{4, [5]int{0, 7, 0, 0, 0}, MineralEmerald, 3, 81},
	{5, [5]int{0, 7, 3, 0, 0}, MineralEmerald, 3, 82},
	{3, [5]int{5, 3, 3, 0, 3}, MineralIron, 3, 83},
	{4, [5]int{0, 0, 0, 0, 7}, MineralIron, 3, 84},
	{4, [5]int{3, 0, 0, 3, 6}, MineralIron, 3, 85},
	{5, [5]int{0, 0, 0, 3, 7}, MineralIron, 3, 86},
	{3, [5]int{3, 3, 5, 3, 0}, MineralNetherite, 3, 87},
	{4, [5]int{7, 0, 0, 0, 0}, MineralNetherite, 3, 88},
	{4, [5]int{6, 0, 3, 0, 3}, MineralNetherite, 3, 89},
	{5, [5]int{7, 0, 0, 0, 3}, MineralNetherite, 3, 90},
}
