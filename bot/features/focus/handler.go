package focus

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"collegium/bot/common"
	"collegium/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var minutes int64
	var skill, subject string
	for _, opt := range options {
		switch opt.Name {
		case "minutes":
			minutes = opt.IntValue()
		case "skill":
			skill = opt.StringValue()
		case "subject":
			subject = opt.StringValue()
		}
	}

	f.startSession(s, i, int(minutes), skill, subject)
}

func (f *Feature) handleStartButton(s *discordgo.Session, i *discordgo.InteractionCreate, minutesStr string) {
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil {
		common.RespondWithError(s, i, "Durée invalide.")
		return
	}
	f.startSession(s, i, minutes, "", "")
}

func (f *Feature) startSession(s *discordgo.Session, i *discordgo.InteractionCreate, minutes int, skill, subject string) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseDiscordID(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Impossible de traiter la demande. Réessaie.")
		return
	}

	houseRoleID := f.memberHouseRoleID(i)
	session, err := f.focusService.Start(ctx, discordID, minutes, skill, subject, houseRoleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionAlreadyRunning):
			common.RespondWithError(s, i, "Tu as déjà une session en cours. Valide-la ou interromps-la d'abord.")
		case errors.Is(err, service.ErrValidation):
			common.RespondWithError(s, i, fmt.Sprintf("Durée invalide : entre %d et %d minutes.", service.MinSessionMinutes, service.MaxSessionMinutes))
		default:
			log.Errorf("Error starting session for user %d: %v", discordID, err)
			common.RespondWithError(s, i, "Impossible de démarrer la session. Réessaie.")
		}
		return
	}

	house := f.houseName(houseRoleID)
	embed := sessionStartedEmbed(house, session)
	if err := common.RespondWithEmbed(s, i, embed, sessionComponents(), false); err != nil {
		log.Errorf("Error responding to focus start: %v", err)
		return
	}

	f.scheduleEndReminder(i.ChannelID, user.ID, discordID, session)
}

// scheduleEndReminder pings the user in the channel when the target end
// passes and the session is still unvalidated. Purely advisory; the
// registry stays the single source of truth.
func (f *Feature) scheduleEndReminder(channelID, userMention string, discordID int64, session *service.ActiveSession) {
	startedAt := session.StartedAt
	time.AfterFunc(time.Until(session.TargetEnd), func() {
		active := f.focusService.Active(discordID)
		if active == nil || !active.StartedAt.Equal(startedAt) {
			return
		}
		msg := fmt.Sprintf("⏰ <@%s> ta session **%s** est terminée. Clique sur **Valider** pour récolter tes récompenses !", userMention, active.Skill)
		if _, err := f.session.ChannelMessageSend(channelID, msg); err != nil {
			log.Errorf("Error sending end-of-session reminder: %v", err)
		}
	})
}

func (f *Feature) handleValidate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseDiscordID(user.ID)
	if err != nil {
		common.RespondWithError(s, i, "Impossible de traiter la demande. Réessaie.")
		return
	}

	result, err := f.focusService.Validate(ctx, discordID)
	if err != nil {
		var tooEarly *service.TooEarlyError
		switch {
		case errors.As(err, &tooEarly):
			common.RespondWithError(s, i, fmt.Sprintf("Pas si vite ! Encore **%s** avant de pouvoir valider.", common.FormatCountdown(tooEarly.Remaining)))
		case errors.Is(err, service.ErrNoActiveSession):
			common.RespondWithError(s, i, "Aucune session en cours.")
		default:
			log.Errorf("Error validating session for user %d: %v", discordID, err)
			common.RespondWithError(s, i, "Impossible de valider la session. Réessaie.")
		}
		return
	}

	house := f.houseName(f.memberHouseRoleID(i))
	if err := common.RespondWithEmbed(s, i, sessionValidatedEmbed(house, result), nil, false); err != nil {
		log.Errorf("Error responding to focus validate: %v", err)
	}
}

func (f *Feature) handleAbort(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseDiscordID(user.ID)
	if err != nil {
		common.RespondWithError(s, i, "Impossible de traiter la demande. Réessaie.")
		return
	}

	result, err := f.focusService.Abort(ctx, discordID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			common.RespondWithError(s, i, "Aucune session en cours.")
		} else {
			log.Errorf("Error aborting session for user %d: %v", discordID, err)
			common.RespondWithError(s, i, "Impossible d'interrompre la session. Réessaie.")
		}
		return
	}

	house := f.houseName(f.memberHouseRoleID(i))
	if err := common.RespondWithEmbed(s, i, sessionAbortedEmbed(house, result), nil, false); err != nil {
		log.Errorf("Error responding to focus abort: %v", err)
	}
}

func (f *Feature) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := common.InteractionUser(i)
	discordID, err := common.ParseDiscordID(user.ID)
	if err != nil {
		common.RespondWithError(s, i, "Impossible de traiter la demande. Réessaie.")
		return
	}

	session := f.focusService.Active(discordID)
	if session == nil {
		common.RespondWithError(s, i, "Aucune session en cours.")
		return
	}

	house := f.houseName(session.HouseRoleID)
	if err := common.RespondWithEmbed(s, i, sessionStatusEmbed(house, session), sessionComponents(), true); err != nil {
		log.Errorf("Error responding to focus status: %v", err)
	}
}

func (f *Feature) openCustomModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "focus_custom_modal",
			Title:    "Nouvelle session Focus",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "minutes",
							Label:       "Durée (minutes)",
							Style:       discordgo.TextInputShort,
							Placeholder: "25",
							Required:    true,
							MaxLength:   3,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "skill",
							Label:       "Compétence",
							Style:       discordgo.TextInputShort,
							Placeholder: "Général",
							Required:    false,
							MaxLength:   50,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "subject",
							Label:       "Sujet",
							Style:       discordgo.TextInputShort,
							Required:    false,
							MaxLength:   100,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Errorf("Error opening custom focus modal: %v", err)
	}
}

func (f *Feature) handleCustomModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()

	var minutesStr, skill, subject string
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			input, ok := comp.(*discordgo.TextInput)
			if !ok {
				continue
			}
			switch input.CustomID {
			case "minutes":
				minutesStr = input.Value
			case "skill":
				skill = input.Value
			case "subject":
				subject = input.Value
			}
		}
	}

	minutes, err := strconv.Atoi(minutesStr)
	if err != nil {
		common.RespondWithError(s, i, "Durée invalide : entre un nombre de minutes.")
		return
	}

	f.startSession(s, i, minutes, skill, subject)
}
