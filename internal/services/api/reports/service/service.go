// Package service runs the report submission pipeline: preview fetch, embed
// composition and dispatch to the configured channel
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bukatsu/internal/adapters/discord"
	"bukatsu/internal/core/embed"
	"bukatsu/internal/core/xlink"
	perr "bukatsu/internal/platform/errors"
	"bukatsu/internal/platform/logger"

	activities "bukatsu/internal/services/api/activities/domain"
	authdomain "bukatsu/internal/services/api/auth/domain"
	"bukatsu/internal/services/api/reports/domain"
)

// announcement above the embed on every posted report
const dispatchContent = "新しい活動報告が投稿されました！"

// Dispatcher posts the finished message, satisfied by the discord adapter
type Dispatcher interface {
	PostMessage(ctx context.Context, channelID, content string, embeds []embed.Embed, file *discord.File) (string, error)
}

// PreviewFetcher resolves an X link into post metadata, nil on any failure
type PreviewFetcher interface {
	Fetch(ctx context.Context, rawURL string) *embed.PostMetadata
}

// Config carries the dispatch target and the preview budget
type Config struct {
	ChannelID      string
	PreviewTimeout time.Duration
}

// Service implements domain.Submitter
type Service struct {
	cfg      Config
	dispatch Dispatcher
	previews PreviewFetcher
	log      logger.Logger
	now      func() time.Time
	newID    func() string
}

// New builds the submission service
func New(cfg Config, d Dispatcher, p PreviewFetcher) *Service {
	if cfg.PreviewTimeout <= 0 {
		cfg.PreviewTimeout = 5 * time.Second
	}
	return &Service{
		cfg:      cfg,
		dispatch: d,
		previews: p,
		log:      *logger.Named("reports"),
		now:      time.Now,
		newID:    func() string { return uuid.NewString()[:8] },
	}
}

var extByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Submit composes and posts one report. The input must already be validated.
// A missing preview never blocks the post; a dispatch failure does
func (s *Service) Submit(
	ctx context.Context,
	act activities.Activity,
	in domain.SubmitInput,
	img *domain.Upload,
) (string, error) {
	ident, _ := authdomain.IdentityFrom(ctx)

	link, _ := xlink.Normalize(in.XPostURL)

	var preview *embed.PostMetadata
	if link != "" && s.previews != nil {
		pctx, cancel := context.WithTimeout(ctx, s.cfg.PreviewTimeout)
		preview = s.previews.Fetch(pctx, link)
		cancel()
	}

	var file *discord.File
	if img != nil {
		ext, ok := extByMIME[img.ContentType]
		if !ok {
			return "", perr.Validationf("画像形式が無効です。JPEG, PNG, GIF, WebP のみ対応しています")
		}
		file = &discord.File{
			Name:        fmt.Sprintf("report_%d_%s.%s", s.now().UnixMilli(), s.newID(), ext),
			ContentType: img.ContentType,
			Data:        img.Data,
		}
	}

	count, _ := in.Participants.Value()
	report := embed.Compose(embed.ComposeInput{
		Activity:         act,
		CustomName:       in.CustomActivityName,
		Date:             in.Date,
		StartTime:        in.TimeStart,
		EndTime:          in.TimeEnd,
		ParticipantCount: count,
		Content:          in.Content,
		XLink:            link,
		ImageFilename:    fileName(file),
		SubmitterName:    ident.Username,
		SubmitterIconURL: discord.AvatarURL(ident.ID, ident.Avatar),
		Now:              s.now(),
	})

	embeds := append([]embed.Embed{report}, embed.PreviewEmbeds(preview)...)

	id, err := s.dispatch.PostMessage(ctx, s.cfg.ChannelID, dispatchContent, embeds, file)
	if err != nil {
		s.log.Error().Err(err).Str("channel_id", s.cfg.ChannelID).Msg("dispatch failed")
		return "", perr.Upstreamf("Failed to post message")
	}
	s.log.Info().Str("message_id", id).Str("activity", act.ID).Msg("report posted")
	return id, nil
}

func fileName(f *discord.File) string {
	if f == nil {
		return ""
	}
	return f.Name
}
