package focus

import (
	"strings"

	"collegium/bot/common"
	"collegium/config"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
)

// Feature represents the focus session feature
type Feature struct {
	session      *discordgo.Session
	focusService service.FocusService
	houses       []config.House
	guildID      string
}

// NewFeature creates a new focus feature instance
func NewFeature(session *discordgo.Session, focusService service.FocusService, houses []config.House, guildID string) *Feature {
	return &Feature{
		session:      session,
		focusService: focusService,
		houses:       houses,
		guildID:      guildID,
	}
}

// HandleCommand handles the /focus command and its subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Sous-commande attendue : start, validate, abort ou status")
		return
	}

	switch options[0].Name {
	case "start":
		f.handleStart(s, i, options[0].Options)
	case "validate":
		f.handleValidate(s, i)
	case "abort":
		f.handleAbort(s, i)
	case "status":
		f.handleStatus(s, i)
	default:
		common.RespondWithError(s, i, "Sous-commande inconnue")
	}
}

// HandleComponent handles focus panel buttons (focus_start_<min>, focus_custom,
// focus_validate, focus_abort)
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	switch {
	case customID == "focus_custom":
		f.openCustomModal(s, i)
	case customID == "focus_validate":
		f.handleValidate(s, i)
	case customID == "focus_abort":
		f.handleAbort(s, i)
	case strings.HasPrefix(customID, "focus_start_"):
		f.handleStartButton(s, i, strings.TrimPrefix(customID, "focus_start_"))
	}
}

// HandleModal handles the custom session parameters modal submit
func (f *Feature) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.ModalSubmitData().CustomID == "focus_custom_modal" {
		f.handleCustomModal(s, i)
	}
}

// memberHouseRoleID returns the invoking member's house role ID, or "" when
// they carry none.
func (f *Feature) memberHouseRoleID(i *discordgo.InteractionCreate) string {
	if i.Member == nil {
		return ""
	}
	for _, role := range i.Member.Roles {
		for _, h := range f.houses {
			if h.RoleID == role {
				return h.RoleID
			}
		}
	}
	return ""
}

// houseName resolves a role ID against the configured houses.
func (f *Feature) houseName(roleID string) string {
	for _, h := range f.houses {
		if h.RoleID == roleID {
			return h.Name
		}
	}
	return "Aventurier"
}
