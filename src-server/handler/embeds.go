package handler

import (
	"fmt"
	"strings"
	"time"

	"eventdesk/src-server/model"
	"eventdesk/src-server/utils"
	"eventdesk/src-server/view"

	"github.com/bwmarrin/discordgo"
)

// Discord accepts at most 10 embeds per message.
const maxEmbeds = 10

// discordTimestamp renders a stored date-time as a Discord timestamp, or
// as-is when it can't be parsed.
func discordTimestamp(dateTime string) string {
	t, err := time.Parse(model.DateTimeLayout, dateTime)
	if err != nil {
		return dateTime
	}
	return fmt.Sprintf("<t:%d:f>", t.Unix())
}

func EventRowEmbed(row *view.EventRow) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: row.Name,
		URL:   row.DetailsPageURL,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Start Date",
				Value:  discordTimestamp(row.StartDateTime),
				Inline: true,
			},
			{
				Name:   "Location",
				Value:  row.LocationLabel,
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: row.ID,
		},
	}
	if row.EndDateTime != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "End Date",
			Value:  discordTimestamp(row.EndDateTime),
			Inline: true,
		})
	}
	if row.OrganizerName != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name: row.OrganizerName,
		}
	}
	return embed
}

// EventRowEmbeds renders up to maxEmbeds rows.
func EventRowEmbeds(rows []*view.EventRow) []*discordgo.MessageEmbed {
	embeds := make([]*discordgo.MessageEmbed, 0, min(len(rows), maxEmbeds))
	for _, row := range rows {
		if len(embeds) == maxEmbeds {
			break
		}
		embeds = append(embeds, EventRowEmbed(row))
	}
	return embeds
}

func SpeakersEmbed(eventID string, rows []view.SpeakerRow) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  utils.CleanupString("speakers"),
		Footer: &discordgo.MessageEmbedFooter{Text: eventID},
	}
	if len(rows) == 0 {
		embed.Description = "No speaker yet"
	}
	for _, row := range rows {
		value := []string{row.Email}
		if row.CompanyName != "" {
			value = append(value, row.CompanyName)
		}
		if row.Phone != "" {
			value = append(value, row.Phone)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  row.Name,
			Value: strings.Join(value, "\n"),
		})
	}
	return embed
}

func AttendeesEmbed(eventID string, rows []view.AttendeeRow) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  utils.CleanupString("attendees"),
		Footer: &discordgo.MessageEmbedFooter{Text: eventID},
	}
	if len(rows) == 0 {
		embed.Description = "No attendee yet"
	}
	for _, row := range rows {
		value := []string{row.Email, row.Location}
		if row.CompanyName != "" {
			value = append(value, row.CompanyName)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   row.Name,
			Value:  strings.Join(value, "\n"),
			Inline: true,
		})
	}
	return embed
}

// LocationEmbed renders the location of an event. A nil event means the
// event is virtual.
func LocationEmbed(eventID string, event *model.Event) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  utils.CleanupString("location"),
		Footer: &discordgo.MessageEmbedFooter{Text: eventID},
	}
	if event == nil || event.Location == nil {
		embed.Description = view.VirtualEventLabel
		return embed
	}
	loc := event.Location
	embed.Description = loc.Name
	address := make([]string, 0, 3)
	for _, part := range []string{loc.Street, strings.TrimSpace(loc.PostalCode + " " + loc.City), loc.Country} {
		if part != "" {
			address = append(address, part)
		}
	}
	if len(address) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Address",
			Value: strings.Join(address, "\n"),
		})
	}
	return embed
}

// CreateButtons links to the creation screens of the event's related records.
func CreateButtons(hostname string, speaker, attendee view.PageReference) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label: "New speaker",
					Style: discordgo.LinkButton,
					URL:   "https://" + hostname + speaker.URL(),
				},
				discordgo.Button{
					Label: "New attendee",
					Style: discordgo.LinkButton,
					URL:   "https://" + hostname + attendee.URL(),
				},
			},
		},
	}
}
