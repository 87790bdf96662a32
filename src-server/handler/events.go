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

func Events(as *utils.AppState) {
	id := "events"
	as.AddAppCmdHandler(id, eventsHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "List upcoming events.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Part of the event name",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "start",
				Description: "Only events starting at or after this date, e.g. 2025-04-01 or next friday",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "location",
				Description: "Part of the location name, at least 2 characters",
			},
		},
	})
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	m := make(map[string]string, len(options))
	for _, opt := range options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			m[opt.Name] = opt.StringValue()
		}
	}
	return m
}

func eventsHandler(as *utils.AppState) utils.AppCmdHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		}); err != nil {
			slog.Warn("can't respond", "handler", "events", "content", "deferring", "error", err)
		}

		options := optionMap(i.ApplicationCommandData().Options)
		threshold, err := as.ParseStartDate(options["start"])
		if err != nil {
			if err := utils.InteractRespEditContent(s, i, fmt.Sprintf("Can't parse start date\n```\n%s\n```", err.Error())); err != nil {
				slog.Warn("can't respond", "handler", "events", "content", "bad-date", "error", err)
			}
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), discordFetchTimeout)
		defer cancel()

		lv := as.NewListView()
		if err := lv.Load(ctx); err != nil {
			msg := fmt.Sprintf("Can't get upcoming events\n```\n%s\n```", err.Error())
			if err := utils.InteractRespEditContent(s, i, msg); err != nil {
				slog.Warn("can't respond", "handler", "events", "content", "fetch-failed", "error", err)
			}
			return err
		}

		rows := view.Apply(lv.Full(),
			view.NameContains(options["name"]),
			view.StartsAtOrAfter(threshold),
			view.LocationContains(options["location"]),
		)
		embeds := EventRowEmbeds(rows)
		content := eventsSummary(len(rows), len(embeds))

		startTimer := time.Now()
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: &content,
			Embeds:  &embeds,
		}); err != nil {
			slog.Warn("can't respond", "handler", "events", "content", "events-list", "error", err)
		}
		as.MetricChans.Observe(as.MetricChans.DiscordSendMessage, time.Since(startTimer))
		return nil
	}
}

func eventsSummary(total, shown int) string {
	switch {
	case total == 0:
		return "No upcoming event"
	case total == 1:
		return "There is 1 upcoming event"
	case shown < total:
		return fmt.Sprintf("There are %d upcoming events, showing the first %d", total, shown)
	}
	return fmt.Sprintf("There are %d upcoming events", total)
}
