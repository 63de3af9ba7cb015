package catalog

// Theme carries the visual identity of a house for embeds.
type Theme struct {
	Name  string
	Color int
	Icon  string
}

var defaultTheme = Theme{Name: "Collegium", Color: 0x1976d2, Icon: "✨"}

var themesByHouse = map[string]Theme{
	"Mage":     {Name: "Mage", Color: 0x6a5acd, Icon: "🧙"},
	"Archer":   {Name: "Archer", Color: 0x2e7d32, Icon: "🏹"},
	"Guerrier": {Name: "Guerrier", Color: 0xb71c1c, Icon: "🛡️"},
	"Voleur":   {Name: "Voleur", Color: 0x424242, Icon: "🗡️"},
}

// ThemeFor returns the theme for a house name, or the default theme.
func ThemeFor(house string) Theme {
	if t, ok := themesByHouse[house]; ok {
		return t
	}
	return defaultTheme
}
