package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHouses(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		houses, err := ParseHouses("")
		require.NoError(t, err)
		assert.Nil(t, houses)
	})

	t.Run("name and role", func(t *testing.T) {
		houses, err := ParseHouses("Mage:100000000000000001")
		require.NoError(t, err)
		require.Len(t, houses, 1)
		assert.Equal(t, "Mage", houses[0].Name)
		assert.Equal(t, "100000000000000001", houses[0].RoleID)
		assert.Empty(t, houses[0].Emoji)
	})

	t.Run("optional emoji", func(t *testing.T) {
		houses, err := ParseHouses("Mage:100000000000000001:🧙")
		require.NoError(t, err)
		require.Len(t, houses, 1)
		assert.Equal(t, "🧙", houses[0].Emoji)
	})

	t.Run("multiple entries with spaces", func(t *testing.T) {
		houses, err := ParseHouses("Mage:1 , Guerrier:2:⚔️, Archer:3")
		require.NoError(t, err)
		require.Len(t, houses, 3)
		assert.Equal(t, "Guerrier", houses[1].Name)
		assert.Equal(t, "⚔️", houses[1].Emoji)
		assert.Equal(t, "Archer", houses[2].Name)
	})

	t.Run("trailing comma ignored", func(t *testing.T) {
		houses, err := ParseHouses("Mage:1,")
		require.NoError(t, err)
		assert.Len(t, houses, 1)
	})

	t.Run("missing role id", func(t *testing.T) {
		_, err := ParseHouses("Mage")
		assert.Error(t, err)

		_, err = ParseHouses("Mage:")
		assert.Error(t, err)
	})
}

func TestHouseLookups(t *testing.T) {
	cfg := &Config{Houses: []House{
		{Name: "Mage", RoleID: "1"},
		{Name: "Guerrier", RoleID: "2"},
	}}

	house := cfg.HouseByRoleID("2")
	require.NotNil(t, house)
	assert.Equal(t, "Guerrier", house.Name)

	assert.Nil(t, cfg.HouseByRoleID("9"))

	house = cfg.HouseByName("Mage")
	require.NotNil(t, house)
	assert.Equal(t, "1", house.RoleID)

	assert.Nil(t, cfg.HouseByName("Druide"))
}
