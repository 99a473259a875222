package board

// Group is the colour set or category a tile belongs to.
type Group string

const (
	GroupNone      Group = "none"
	GroupBrown     Group = "brown"
	GroupLightBlue Group = "lightBlue"
	GroupPink      Group = "pink"
	GroupOrange    Group = "orange"
	GroupRed       Group = "red"
	GroupYellow    Group = "yellow"
	GroupGreen     Group = "green"
	GroupDarkBlue  Group = "darkBlue"
	GroupRailroad  Group = "railroad"
	GroupUtility   Group = "utility"
)

// Kind describes how a tile behaves when a player lands on it.
type Kind string

const (
	KindStreet         Kind = "street"
	KindRailroad       Kind = "railroad"
	KindUtility        Kind = "utility"
	KindIncomeTax      Kind = "incomeTax"
	KindLuxuryTax      Kind = "luxuryTax"
	KindChance         Kind = "chance"
	KindCommunityChest Kind = "communityChest"
	KindGo             Kind = "go"
	KindJail           Kind = "jail"
	KindFreeParking    Kind = "freeParking"
	KindGoToJail       Kind = "goToJail"
)

const (
	// Size is the number of tiles on the board
	Size = 40
	// GoTile is where every player starts
	GoTile = 0
	// JailTile is where jailed players are kept
	JailTile = 10
	// GoToJailTile sends the lander straight to jail
	GoToJailTile = 30
	// MaxHouses is the house count that represents a hotel
	MaxHouses = 5
)

// Tile is one immutable board position.
type Tile struct {
	ID        int
	Name      string
	Kind      Kind
	Group     Group
	Price     int
	Rent      []int
	HouseCost int
}

// Ownable reports whether the tile can be bought.
func (t Tile) Ownable() bool {
	return t.Price > 0
}

// Buildable reports whether houses can be placed on the tile.
func (t Tile) Buildable() bool {
	return t.Kind == KindStreet
}

var tiles = [Size]Tile{
	{ID: 0, Name: "GO", Kind: KindGo, Group: GroupNone},
	{ID: 1, Name: "Mediterranean Avenue", Kind: KindStreet, Group: GroupBrown, Price: 60, Rent: []int{2, 10, 30, 90, 160, 250}, HouseCost: 50},
	{ID: 2, Name: "Community Chest", Kind: KindCommunityChest, Group: GroupNone},
	{ID: 3, Name: "Baltic Avenue", Kind: KindStreet, Group: GroupBrown, Price: 60, Rent: []int{4, 20, 60, 180, 320, 450}, HouseCost: 50},
	{ID: 4, Name: "Income Tax", Kind: KindIncomeTax, Group: GroupNone},
	{ID: 5, Name: "Reading Railroad", Kind: KindRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}},
	{ID: 6, Name: "Oriental Avenue", Kind: KindStreet, Group: GroupLightBlue, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, HouseCost: 50},
	{ID: 7, Name: "Chance", Kind: KindChance, Group: GroupNone},
	{ID: 8, Name: "Vermont Avenue", Kind: KindStreet, Group: GroupLightBlue, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, HouseCost: 50},
	{ID: 9, Name: "Connecticut Avenue", Kind: KindStreet, Group: GroupLightBlue, Price: 120, Rent: []int{8, 40, 100, 300, 450, 600}, HouseCost: 50},
	{ID: 10, Name: "Jail", Kind: KindJail, Group: GroupNone},
	{ID: 11, Name: "St. Charles Place", Kind: KindStreet, Group: GroupPink, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, HouseCost: 100},
	{ID: 12, Name: "Electric Company", Kind: KindUtility, Group: GroupUtility, Price: 150},
	{ID: 13, Name: "States Avenue", Kind: KindStreet, Group: GroupPink, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, HouseCost: 100},
	{ID: 14, Name: "Virginia Avenue", Kind: KindStreet, Group: GroupPink, Price: 160, Rent: []int{12, 60, 180, 500, 700, 900}, HouseCost: 100},
	{ID: 15, Name: "Pennsylvania Railroad", Kind: KindRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}},
	{ID: 16, Name: "St. James Place", Kind: KindStreet, Group: GroupOrange, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, HouseCost: 100},
	{ID: 17, Name: "Community Chest", Kind: KindCommunityChest, Group: GroupNone},
	{ID: 18, Name: "Tennessee Avenue", Kind: KindStreet, Group: GroupOrange, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, HouseCost: 100},
	{ID: 19, Name: "New York Avenue", Kind: KindStreet, Group: GroupOrange, Price: 200, Rent: []int{16, 80, 220, 600, 800, 1000}, HouseCost: 100},
	{ID: 20, Name: "Free Parking", Kind: KindFreeParking, Group: GroupNone},
	{ID: 21, Name: "Kentucky Avenue", Kind: KindStreet, Group: GroupRed, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, HouseCost: 150},
	{ID: 22, Name: "Chance", Kind: KindChance, Group: GroupNone},
	{ID: 23, Name: "Indiana Avenue", Kind: KindStreet, Group: GroupRed, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, HouseCost: 150},
	{ID: 24, Name: "Illinois Avenue", Kind: KindStreet, Group: GroupRed, Price: 240, Rent: []int{20, 100, 300, 750, 925, 1100}, HouseCost: 150},
	{ID: 25, Name: "B. & O. Railroad", Kind: KindRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}},
	{ID: 26, Name: "Atlantic Avenue", Kind: KindStreet, Group: GroupYellow, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, HouseCost: 150},
	{ID: 27, Name: "Ventnor Avenue", Kind: KindStreet, Group: GroupYellow, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, HouseCost: 150},
	{ID: 28, Name: "Water Works", Kind: KindUtility, Group: GroupUtility, Price: 150},
	{ID: 29, Name: "Marvin Gardens", Kind: KindStreet, Group: GroupYellow, Price: 280, Rent: []int{24, 120, 360, 850, 1025, 1200}, HouseCost: 150},
	{ID: 30, Name: "Go To Jail", Kind: KindGoToJail, Group: GroupNone},
	{ID: 31, Name: "Pacific Avenue", Kind: KindStreet, Group: GroupGreen, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, HouseCost: 200},
	{ID: 32, Name: "North Carolina Avenue", Kind: KindStreet, Group: GroupGreen, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, HouseCost: 200},
	{ID: 33, Name: "Community Chest", Kind: KindCommunityChest, Group: GroupNone},
	{ID: 34, Name: "Pennsylvania Avenue", Kind: KindStreet, Group: GroupGreen, Price: 320, Rent: []int{28, 150, 450, 1000, 1200, 1400}, HouseCost: 200},
	{ID: 35, Name: "Short Line", Kind: KindRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}},
	{ID: 36, Name: "Chance", Kind: KindChance, Group: GroupNone},
	{ID: 37, Name: "Park Place", Kind: KindStreet, Group: GroupDarkBlue, Price: 350, Rent: []int{35, 175, 500, 1100, 1300, 1500}, HouseCost: 200},
	{ID: 38, Name: "Luxury Tax", Kind: KindLuxuryTax, Group: GroupNone},
	{ID: 39, Name: "Boardwalk", Kind: KindStreet, Group: GroupDarkBlue, Price: 400, Rent: []int{50, 200, 600, 1400, 1700, 2000}, HouseCost: 200},
}

// groupMembers maps every group to its tile ids in board order.
var groupMembers = func() map[Group][]int {
	members := make(map[Group][]int)
	for _, t := range tiles {
		if t.Group == GroupNone {
			continue
		}
		members[t.Group] = append(members[t.Group], t.ID)
	}
	return members
}()

// Get returns the tile at the given position.
func Get(id int) (Tile, bool) {
	if id < 0 || id >= Size {
		return Tile{}, false
	}
	return tiles[id], true
}

// MustGet returns the tile at the given position and panics when it does not exist.
func MustGet(id int) Tile {
	t, ok := Get(id)
	if !ok {
		panic("board: tile out of range")
	}
	return t
}

// Tiles returns a copy of all tiles in board order.
func Tiles() []Tile {
	out := make([]Tile, Size)
	copy(out, tiles[:])
	return out
}

// Members returns the tile ids belonging to a group.
func Members(g Group) []int {
	ids := groupMembers[g]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Railroads returns the four railroad tile ids.
func Railroads() []int {
	return Members(GroupRailroad)
}

// Utilities returns the two utility tile ids.
func Utilities() []int {
	return Members(GroupUtility)
}

// Nearest returns the first tile of the group strictly ahead of from, wrapping past GO.
func Nearest(from int, g Group) (int, bool) {
	for step := 1; step <= Size; step++ {
		id := (from + step) % Size
		if tiles[id].Group == g {
			return id, true
		}
	}
	return 0, false
}

// Advance moves steps tiles forward (or backward if negative) from pos.
func Advance(pos, steps int) int {
	return ((pos+steps)%Size + Size) % Size
}
