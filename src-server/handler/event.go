package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventdesk/src-server/utils"
	"eventdesk/src-server/view"

	"github.com/bwmarrin/discordgo"
)

const discordFetchTimeout = 10 * time.Second

func Event(as *utils.AppState) {
	id := "event"
	as.AddAppCmdHandler(id, eventHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Show speakers, location or attendees of an event.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "The event id",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "section",
				Description: "What to show",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Speakers", Value: "speakers"},
					{Name: "Location", Value: "location"},
					{Name: "Attendees", Value: "attendees"},
				},
			},
		},
	})
}

func eventHandler(as *utils.AppState) utils.AppCmdHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		}); err != nil {
			slog.Warn("can't respond", "handler", "event", "content", "deferring", "error", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), discordFetchTimeout)
		defer cancel()

		options := optionMap(i.ApplicationCommandData().Options)
		eventID := options["id"]
		dv := as.NewDetailView(eventID, nil)

		var (
			embed *discordgo.MessageEmbed
			err   error
		)
		switch section := options["section"]; section {
		case "speakers":
			var rows []view.SpeakerRow
			if rows, err = dv.LoadSpeakers(ctx); err == nil {
				embed = SpeakersEmbed(eventID, rows)
			}
		case "location":
			if event, loadErr := dv.LoadLocation(ctx); loadErr == nil {
				embed = LocationEmbed(eventID, event)
			} else {
				err = loadErr
			}
		case "attendees":
			var rows []view.AttendeeRow
			if rows, err = dv.LoadAttendees(ctx); err == nil {
				embed = AttendeesEmbed(eventID, rows)
			}
		default:
			if err := utils.InteractRespEditContent(s, i, "Unknown section "+section); err != nil {
				slog.Warn("can't respond", "handler", "event", "content", "bad-section", "error", err)
			}
			return nil
		}
		if err != nil {
			msg := fmt.Sprintf("Can't get event details\n```\n%s\n```", err.Error())
			if err := utils.InteractRespEditContent(s, i, msg); err != nil {
				slog.Warn("can't respond", "handler", "event", "content", "fetch-failed", "error", err)
			}
			return err
		}

		embeds := []*discordgo.MessageEmbed{embed}
		components := CreateButtons(as.Config.GetHostname(), dv.CreateSpeaker(), dv.CreateAttendee())
		startTimer := time.Now()
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds:     &embeds,
			Components: &components,
		}); err != nil {
			slog.Warn("can't respond", "handler", "event", "content", "event-detail", "error", err)
		}
		as.MetricChans.Observe(as.MetricChans.DiscordSendMessage, time.Since(startTimer))
		return nil
	}
}
