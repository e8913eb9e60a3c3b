package formatting

// Landmark is a fixed named map coordinate used as a reference point
// when narrating hero and ward positions.
type Landmark struct {
	Name string
	X    float64
	Y    float64
}

// Landmarks is the reference table of map locations, in world units as
// reported by the minimap feed. Order matters: Nearest resolves
// exact-distance ties to the earliest entry, so the table is a slice.
var Landmarks = []Landmark{
	{"Radiant Top T1", -6336, 1856},
	{"Radiant Top T2", -6288, -872},
	{"Radiant Top T3", -6592, -3408},
	{"Radiant Mid T1", -1544, -1408},
	{"Radiant Mid T2", -3336, -2791},
	{"Radiant Mid T3", -4640, -4144},
	{"Radiant Bot T1", 4924, -6080},
	{"Radiant Bot T2", -360, -6256},
	{"Radiant Bot T3", -3952, -6112},
	{"Radiant Top Rax", -6336, -3758},
	{"Radiant Mid Rax", -4672, -4552},
	{"Radiant Bot Rax", -4280, -6360},
	{"Radiant Ancient", -5920, -5352},
	{"Radiant Fountain", -7456, -6938},
	{"Dire Top T1", -4672, 6016},
	{"Dire Top T2", -128, 6016},
	{"Dire Top T3", 3552, 5776},
	{"Dire Mid T1", 524, 652},
	{"Dire Mid T2", 2496, 2112},
	{"Dire Mid T3", 4272, 3759},
	{"Dire Bot T1", 6269, -2240},
	{"Dire Bot T2", 6400, 384},
	{"Dire Bot T3", 6336, 3032},
	{"Dire Top Rax", 3898, 5496},
	{"Dire Mid Rax", 4336, 4183},
	{"Dire Bot Rax", 6592, 3392},
	{"Dire Ancient", 5528, 5000},
	{"Dire Fountain", 7408, 6848},
	{"Top Powerup Rune Spawn", -6800, 2400},
	{"Bot Powerup Rune Spawn", 6800, -2600},
	{"Top Radiant Secret Shop", -5080, 1947},
	{"Bot Radiant Secret Shop", -6860, -5262},
	{"Top Dire Secret Shop", 5360, 5384},
	{"Bot Dire Secret Shop", 4886, -1207},
	{"Radiant Outpost Top", -4096, -448},
	{"Radiant Outpost Bot", 3392, -448},
	{"Dire Outpost Top", -3332, 35},
	{"Dire Outpost Bot", 4068, -868},
	{"Roshan", 2900, 2600},
	{"Top Lotus Pool", -7682, 4419},
	{"Bot Lotus Pool", 8007, -4996},
	{"Top Twin Gate", -7488, 6912},
	{"Bot Twin Gate", 7360, -6528},
}
