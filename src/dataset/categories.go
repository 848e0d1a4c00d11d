package dataset

// Category indexes the fixed object-category table. The detection pipeline
// that produced the dataset emits exactly these 27 labels; there are no
// dynamic categories.
type Category int

const (
	CatPerson Category = iota
	CatBird
	CatCat
	CatDog
	CatHorse
	CatSheep
	CatCow
	CatTree
	CatGrass
	CatFlower
	CatPlant
	CatSea
	CatRiver
	CatLake
	CatMountain
	CatHill
	CatRoad
	CatSidewalk
	CatBridge
	CatBuilding
	CatHouse
	CatTower
	CatBicycle
	CatCar
	CatBoat
	CatChair
	CatTable

	NumCategories int = iota
)

var categoryNames = [NumCategories]string{
	"person", "bird", "cat", "dog", "horse", "sheep", "cow",
	"tree", "grass", "flower", "plant",
	"sea", "river", "lake",
	"mountain", "hill",
	"road", "sidewalk", "bridge",
	"building", "house", "tower",
	"bicycle", "car", "boat",
	"chair", "table",
}

func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// CategoryByName resolves a CSV column base name to its Category.
func CategoryByName(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// Categories returns all categories in table order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// CategoryGroup maps one display label onto one or more underlying
// categories. A photograph counts toward a group when ANY member flag is
// set, at most once per group.
type CategoryGroup struct {
	Label   string
	Members []Category
}

// CategoryGroups is the curated 9-group mapping used by the treemap view.
var CategoryGroups = []CategoryGroup{
	{Label: "Person", Members: []Category{CatPerson}},
	{Label: "Animal", Members: []Category{CatBird, CatCat, CatDog, CatHorse, CatSheep, CatCow}},
	{Label: "Greenery", Members: []Category{CatTree, CatGrass, CatFlower, CatPlant}},
	{Label: "Water", Members: []Category{CatSea, CatRiver, CatLake}},
	{Label: "Mountain", Members: []Category{CatMountain, CatHill}},
	{Label: "Road", Members: []Category{CatRoad, CatSidewalk, CatBridge}},
	{Label: "Building", Members: []Category{CatBuilding, CatHouse, CatTower}},
	{Label: "Vehicle", Members: []Category{CatBicycle, CatCar, CatBoat}},
	{Label: "Household Objects", Members: []Category{CatChair, CatTable}},
}
