package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"bukatsu/internal/core/embed"
	perr "bukatsu/internal/platform/errors"
)

// attachment cross-references an uploaded file from the message payload
type attachment struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	Description string `json:"description,omitempty"`
}

type messagePayload struct {
	Content     string        `json:"content"`
	Embeds      []embed.Embed `json:"embeds"`
	Attachments []attachment  `json:"attachments,omitempty"`
}

// PostMessage sends a message with embeds to a channel using the bot token.
// Without a file the payload goes as plain JSON; with a file it becomes a
// multipart form where payload_json cross-references files[0] by filename.
// Returns the created message id
func (c *Client) PostMessage(
	ctx context.Context,
	channelID, content string,
	embeds []embed.Embed,
	file *File,
) (string, error) {
	payload := messagePayload{Content: content, Embeds: embeds}

	var body bytes.Buffer
	contentType := "application/json"

	if file == nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "discord encode payload failed")
		}
	} else {
		payload.Attachments = []attachment{{ID: 0, Filename: file.Name, Description: "活動報告画像"}}
		mw := multipart.NewWriter(&body)

		pj, err := json.Marshal(payload)
		if err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "discord encode payload failed")
		}
		if err := mw.WriteField("payload_json", string(pj)); err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "discord write payload part failed")
		}

		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[0]"; filename=%q`, file.Name))
		hdr.Set("Content-Type", file.ContentType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "discord create file part failed")
		}
		if _, err := part.Write(file.Data); err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "discord write file part failed")
		}
		if err := mw.Close(); err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "discord close multipart failed")
		}
		contentType = mw.FormDataContentType()
	}

	path := fmt.Sprintf("/channels/%s/messages", channelID)
	resp, err := c.do(ctx, http.MethodPost, path, c.botAuth(), &body, contentType)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", c.statusErr(resp, "post message")
	}
	defer c.closeBody(resp, path)

	msg, err := decode[Message](resp.Body)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUpstream, "discord decode message failed")
	}
	if strings.TrimSpace(msg.ID) == "" {
		return "", perr.Upstreamf("discord message id missing in response")
	}
	return msg.ID, nil
}
