package focus

import (
	"fmt"

	"collegium/bot/common"
)

// introLine opens a session with a line matching the member's house.
func introLine(house string, minutes int, skill string) string {
	switch house {
	case "Mage":
		return fmt.Sprintf("🧙 %s, une antique bibliothèque s'ouvre devant toi. Sauras-tu déchiffrer ses runes en %d min sur **%s** ?", house, minutes, skill)
	case "Guerrier":
		return fmt.Sprintf("🛡️ %s, l'entraînement commence. Tiendras-tu %d min sur **%s** ?", house, minutes, skill)
	case "Archer":
		return fmt.Sprintf("🏹 %s, ajuste ton tir. %d min de concentration sur **%s** t'attendent.", house, minutes, skill)
	case "Voleur":
		return fmt.Sprintf("🗡️ %s, l'ombre t'accompagne. %d min en filigrane sur **%s**.", house, minutes, skill)
	default:
		return fmt.Sprintf("🎒 %s, une nouvelle étape commence : %d min sur **%s**.", house, minutes, skill)
	}
}

func victoryLine(house string, xp, gold int64) string {
	line := fmt.Sprintf("🏆 %s, tu ressors victorieux ! +%d XP", house, xp)
	if gold > 0 {
		line += fmt.Sprintf(" • +%s 🪙", common.FormatGold(gold))
	}
	return line
}

func failLine(house string, xp int64) string {
	return fmt.Sprintf("⚰️ %s, la bataille était rude… mais tu obtiens tout de même %d XP.", house, xp)
}
