package catalog

import "math"

// Title is a named rank on a house's XP ladder.
type Title struct {
	Name string
	XP   int64
}

// titleCurve builds the cumulative XP thresholds for the title ladders.
// Roughly 150k cumulative XP at rank 20.
func titleCurve(ranks int, startDelta float64, growth float64) []int64 {
	cum := make([]int64, ranks)
	var acc int64
	for i := 0; i < ranks; i++ {
		acc += int64(math.Round(startDelta * math.Pow(growth, float64(i))))
		cum[i] = acc
	}
	return cum
}

var curve = titleCurve(20, 300, 1.28)

var titleNames = map[string][]string{
	"Mage": {
		"Novice", "Apprenti", "Adepte", "Érudit", "Conjurateur",
		"Enchanteur", "Thaumaturge", "Arcaniste", "Maître des Runes", "Hiérophante",
		"Grand Arcaniste", "Sage d'Azur", "Archimage", "Grand Archimage",
		"Magister", "Magister Émérite", "Magister Arcanum", "Magister Primus",
		"Magister Suprême", "Magister Absolu",
	},
	"Archer": {
		"Novice", "Apprenti tireur", "Éclaireur", "Pisteur", "Archer",
		"Traqueur", "Marqueur", "Maître-archer", "Œil de Lynx", "Faucon",
		"Pluie-de-Flèches", "Guetteur du Zénith", "Vent-rapide", "Cœur-juste",
		"Flèche Chantante", "Main Sûre", "Œil Absolu", "Héraut des Vents",
		"Seigneur des Carquois", "Maître Sylvestre",
	},
	"Guerrier": {
		"Recrue", "Novice des armes", "Soldat", "Homme d'armes", "Vétéran",
		"Champion", "Brise-ligne", "Garde d'élite", "Porte-étendard", "Maître d'armes",
		"Colosse", "Marteau de guerre", "Seigneur des Batailles", "Parangon",
		"Légende d'acier", "Haut-Maréchal", "Titan", "Grand Stratège",
		"Seigneur de Guerre", "Seigneur de Guerre Suprême",
	},
	"Voleur": {
		"Pied-léger", "Filou", "Crocheteur", "Escamoteur", "Compagnon d'ombre",
		"Passe-muraille", "Main Silencieuse", "Couteau Noir", "Aiguille", "Ombre experte",
		"Prince des ruelles", "Brume", "Passe-voile", "Fantôme", "Spectre",
		"Maître des Voleurs", "Voile-nocturne", "Seigneur de l'Ombre",
		"Grand Maître des Voleurs", "Renard Gris",
	},
}

// Titles returns the XP-ordered title ladder for a house, or nil if the
// house has no ladder.
func Titles(house string) []Title {
	names, ok := titleNames[house]
	if !ok {
		return nil
	}
	ladder := make([]Title, len(names))
	for i, name := range names {
		ladder[i] = Title{Name: name, XP: curve[i]}
	}
	return ladder
}

// TitleProgress describes where an XP total sits on a house ladder.
type TitleProgress struct {
	Current  *Title // nil below the first rank
	Next     *Title // nil at the top rank
	XPToNext int64
}

// TitleFor returns ladder progress for the given house XP total.
func TitleFor(house string, xp int64) TitleProgress {
	ladder := Titles(house)
	if len(ladder) == 0 {
		return TitleProgress{}
	}

	var p TitleProgress
	for i := range ladder {
		if xp >= ladder[i].XP {
			p.Current = &ladder[i]
			continue
		}
		p.Next = &ladder[i]
		p.XPToNext = ladder[i].XP - xp
		break
	}
	return p
}
