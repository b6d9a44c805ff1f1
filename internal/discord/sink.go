package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"bgsbot/internal/report"
	"bgsbot/pkg/retrylimit"
)

// sendAttempts bounds retries on transient send failures before the failure
// is surfaced to the caller for logging.
const sendAttempts = 3

// ChannelSink delivers text and report pages to one Discord channel.
// It implements core.Channel.
type ChannelSink struct {
	Session   *discordgo.Session
	ChannelID string
	Limiter   *retrylimit.AdaptiveLimiter
}

func (c *ChannelSink) SendText(ctx context.Context, content string) error {
	return retrylimit.WithRetryMax(ctx, func() error {
		_, err := c.Session.ChannelMessageSend(c.ChannelID, content)
		return err
	}, c.Limiter, sendAttempts)
}

func (c *ChannelSink) SendEmbed(ctx context.Context, page *report.Page) error {
	embed := embedFromPage(page)
	return retrylimit.WithRetryMax(ctx, func() error {
		_, err := c.Session.ChannelMessageSendEmbed(c.ChannelID, embed)
		return err
	}, c.Limiter, sendAttempts)
}

func embedFromPage(page *report.Page) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(page.Fields))
	for _, f := range page.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   f.Title,
			Value:  f.Body,
			Inline: f.Inline,
		})
	}
	return &discordgo.MessageEmbed{
		Title:     page.Title,
		Color:     page.Color,
		Timestamp: page.Timestamp.UTC().Format(time.RFC3339),
		Fields:    fields,
	}
}
