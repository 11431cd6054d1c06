package genre

// Static genre taxonomy: canonical ordering plus adjacency. Used for
// tie-breaking ranked suggestions and as a fallback when no
// co-occurrence signal exists. Keys and values are normalized
// (lowercase, single-spaced) forms.
//
// The table is intentionally coarse; co-occurrence from the user's own
// library is the primary signal and always wins over it.

// taxonomyOrder is the canonical ordering of known genres. Position in
// this list breaks count ties; unknown genres sort after known ones,
// alphabetically.
var taxonomyOrder = []string{
	"rock",
	"pop",
	"electronic",
	"hip hop",
	"jazz",
	"classical",
	"metal",
	"folk",
	"blues",
	"country",
	"soul",
	"funk",
	"reggae",
	"punk",
	"indie rock",
	"alternative",
	"indie pop",
	"house",
	"techno",
	"trance",
	"drum and bass",
	"dubstep",
	"ambient",
	"downtempo",
	"trip hop",
	"synthpop",
	"new wave",
	"hard rock",
	"progressive rock",
	"psychedelic rock",
	"grunge",
	"shoegaze",
	"post rock",
	"post punk",
	"ska",
	"r&b",
	"disco",
	"latin",
	"world",
	"soundtrack",
}

// taxonomyAdjacency maps a genre to its related genres, most related
// first.
var taxonomyAdjacency = map[string][]string{
	"rock":             {"indie rock", "alternative", "hard rock", "punk", "metal", "grunge"},
	"indie rock":       {"rock", "alternative", "indie pop", "shoegaze", "post punk"},
	"alternative":      {"rock", "indie rock", "grunge", "new wave"},
	"hard rock":        {"rock", "metal", "punk"},
	"progressive rock": {"rock", "psychedelic rock", "metal"},
	"psychedelic rock": {"rock", "progressive rock", "shoegaze"},
	"grunge":           {"alternative", "rock", "punk"},
	"punk":             {"rock", "post punk", "ska", "hard rock"},
	"post punk":        {"punk", "new wave", "indie rock"},
	"metal":            {"hard rock", "rock", "punk"},
	"pop":              {"indie pop", "synthpop", "r&b", "disco"},
	"indie pop":        {"pop", "indie rock", "synthpop"},
	"synthpop":         {"pop", "new wave", "electronic"},
	"new wave":         {"synthpop", "post punk", "pop"},
	"electronic":       {"house", "techno", "ambient", "downtempo", "drum and bass"},
	"house":            {"techno", "disco", "electronic", "trance"},
	"techno":           {"house", "trance", "electronic"},
	"trance":           {"techno", "house", "electronic"},
	"drum and bass":    {"dubstep", "electronic", "downtempo"},
	"dubstep":          {"drum and bass", "electronic"},
	"ambient":          {"downtempo", "electronic", "classical"},
	"downtempo":        {"ambient", "trip hop", "electronic"},
	"trip hop":         {"downtempo", "electronic", "hip hop"},
	"hip hop":          {"r&b", "trip hop", "funk"},
	"r&b":              {"soul", "hip hop", "funk", "pop"},
	"soul":             {"r&b", "funk", "blues"},
	"funk":             {"soul", "disco", "r&b"},
	"disco":            {"funk", "house", "pop"},
	"jazz":             {"blues", "soul", "funk"},
	"blues":            {"jazz", "soul", "rock"},
	"classical":        {"soundtrack", "ambient"},
	"soundtrack":       {"classical", "ambient"},
	"folk":             {"country", "blues", "world"},
	"country":          {"folk", "blues"},
	"reggae":           {"ska", "world"},
	"ska":              {"reggae", "punk"},
	"shoegaze":         {"indie rock", "psychedelic rock", "post rock"},
	"post rock":        {"shoegaze", "ambient", "indie rock"},
	"latin":            {"world", "pop"},
	"world":            {"latin", "folk", "reggae"},
}

// taxonomyRank caches each genre's position in taxonomyOrder.
var taxonomyRank = func() map[string]int {
	m := make(map[string]int, len(taxonomyOrder))
	for i, g := range taxonomyOrder {
		m[g] = i
	}
	return m
}()

// Rank returns the taxonomy position of a normalized genre, with
// unknown genres ranked after every known one.
func Rank(norm string) int {
	if r, ok := taxonomyRank[norm]; ok {
		return r
	}
	return len(taxonomyOrder)
}

// Adjacent returns the static related genres of a normalized genre,
// most related first. Nil for unknown genres.
func Adjacent(norm string) []string {
	return taxonomyAdjacency[norm]
}
