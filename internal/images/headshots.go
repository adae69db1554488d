package images

// nbaHeadshotIDs maps a player's display name to the numeric id used in NBA.com headshot paths.
var nbaHeadshotIDs = map[string]string{
	"Aaron Gordon":            "203932",
	"Aaron Holiday":           "1628988",
	"Abdel Nader":             "1627846",
	"Al Horford":              "201143",
	"Al-Farouq Aminu":         "202329",
	"Alan Williams":           "1626210",
	"Alec Burks":              "202692",
	"Alex Abrines":            "203518",
	"Alex Caruso":             "1627936",
	"Alex Len":                "203458",
	"Anthony Davis":           "203076",
	"Bam Adebayo":             "1628389",
	"Ben Simmons":             "1627732",
	"Bradley Beal":            "203078",
	"Brandon Ingram":          "1627742",
	"Brook Lopez":             "201572",
	"CJ McCollum":             "203468",
	"Chris Paul":              "101108",
	"Damian Lillard":          "203081",
	"De'Aaron Fox":            "1628368",
	"DeMar DeRozan":           "201942",
	"Deandre Ayton":           "1629028",
	"Devin Booker":            "1626164",
	"Domantas Sabonis":        "1627734",
	"Donovan Mitchell":        "1628378",
	"Draymond Green":          "203110",
	"Dwyane Wade":             "2548",
	"Giannis Antetokounmpo":   "203507",
	"Gordon Hayward":          "202330",
	"Jamal Murray":            "1627750",
	"James Harden":            "201935",
	"Jaylen Brown":            "1627759",
	"Jayson Tatum":            "1628369",
	"Jimmy Butler":            "202710",
	"Joel Embiid":             "203954",
	"John Collins":            "1628381",
	"Jrue Holiday":            "201950",
	"Karl-Anthony Towns":      "1626157",
	"Kawhi Leonard":           "202695",
	"Kevin Durant":            "201142",
	"Khris Middleton":         "203114",
	"Klay Thompson":           "202691",
	"Kristaps Porzingis":      "204001",
	"Kyle Lowry":              "200768",
	"Kyrie Irving":            "202681",
	"LaMarcus Aldridge":       "200746",
	"LeBron James":            "2544",
	"Luka Doncic":             "1629029",
	"Myles Turner":            "1626167",
	"Nikola Jokic":            "203999",
	"Nikola Vucevic":          "202696",
	"Pascal Siakam":           "1627783",
	"Paul George":             "202331",
	"Rudy Gobert":             "203497",
	"Russell Westbrook":       "201566",
	"Shai Gilgeous-Alexander": "1628983",
	"Stephen Curry":           "201939",
	"Tobias Harris":           "202699",
	"Trae Young":              "1629027",
	"Victor Oladipo":          "203506",
	"Zach LaVine":             "203897",
	"Zion Williamson":         "1629627",
}
