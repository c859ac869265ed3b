// Package http accepts report submissions as JSON or multipart form data
package http

import (
	"errors"
	"io"
	"mime"
	stdhttp "net/http"
	"strings"

	perr "bukatsu/internal/platform/errors"
	"bukatsu/internal/platform/logger"
	phttp "bukatsu/internal/platform/net/http"
	"bukatsu/internal/platform/net/http/bind"

	"bukatsu/internal/modkit/httpkit"
	"bukatsu/internal/services/api/reports/domain"
)

// maxUpload mirrors the Discord free-tier attachment cap
const maxUpload = 8 << 20

// multipart boundary and field overhead on top of the image itself
const formOverhead = 1 << 20

// upload failure messages shown to the member as-is
const (
	msgTooLarge    = "画像サイズは8MB以下にしてください"
	msgUploadError = "ファイルアップロードエラー"
	msgBadType     = "画像形式が無効です。JPEG, PNG, GIF, WebP のみ対応しています"
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Deps are the handler dependencies
type Deps struct {
	Svc domain.Submitter
}

type handlers struct {
	deps Deps
	log  logger.Logger
}

// Register mounts the report routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, log: *logger.Named("reports")}
	r.Post("/", h.submit)
}

// SubmitResponse acknowledges a posted report
type SubmitResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId" example:"1234567890123456789"`
}

// swagger:route POST /reports Reports reportSubmit
// @Summary Submit an activity report
// @Tags Reports
// @Accept json,mpfd
// @Produce json
// @Success 200 {object} SubmitResponse
// @Failure 400 {object} httpkit.Envelope
// @Router /reports [post]
func (h *handlers) submit(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, img, err := h.decode(w, r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	act, err := in.Validate()
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	id, err := h.deps.Svc.Submit(r.Context(), act, in, img)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondOK(w, r, SubmitResponse{Success: true, MessageID: id})
}

// decode picks the parser from the request content type. JSON submissions
// cannot carry an image
func (h *handlers) decode(w stdhttp.ResponseWriter, r *stdhttp.Request) (domain.SubmitInput, *domain.Upload, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		return h.decodeMultipart(w, r)
	}
	in, err := bind.ParseJSON[domain.SubmitInput](r)
	return in, nil, err
}

func (h *handlers) decodeMultipart(
	w stdhttp.ResponseWriter,
	r *stdhttp.Request,
) (domain.SubmitInput, *domain.Upload, error) {
	var zero domain.SubmitInput

	r.Body = stdhttp.MaxBytesReader(w, r.Body, maxUpload+formOverhead)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		var mbe *stdhttp.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return zero, nil, perr.Validationf("%s", msgTooLarge)
		}
		h.log.Warn().Err(err).Msg("multipart parse failed")
		return zero, nil, perr.Validationf("%s", msgUploadError)
	}

	in := domain.SubmitInput{
		ActivityID:         strings.TrimSpace(r.FormValue("activityId")),
		CustomActivityName: r.FormValue("customActivityName"),
		Date:               strings.TrimSpace(r.FormValue("date")),
		TimeStart:          strings.TrimSpace(r.FormValue("timeStart")),
		TimeEnd:            strings.TrimSpace(r.FormValue("timeEnd")),
		Participants:       domain.ParseCount(r.FormValue("participants")),
		Content:            r.FormValue("content"),
		XPostURL:           strings.TrimSpace(r.FormValue("xPostUrl")),
	}

	f, hdr, err := r.FormFile("image")
	if errors.Is(err, stdhttp.ErrMissingFile) {
		return in, nil, nil
	}
	if err != nil {
		h.log.Warn().Err(err).Msg("image part unreadable")
		return zero, nil, perr.Validationf("%s", msgUploadError)
	}
	defer f.Close()

	if hdr.Size > maxUpload {
		return zero, nil, perr.Validationf("%s", msgTooLarge)
	}
	ct := hdr.Header.Get("Content-Type")
	if !allowedMIME[ct] {
		return zero, nil, perr.Validationf("%s", msgBadType)
	}

	data, err := io.ReadAll(io.LimitReader(f, maxUpload+1))
	if err != nil {
		h.log.Warn().Err(err).Msg("image read failed")
		return zero, nil, perr.Validationf("%s", msgUploadError)
	}
	if len(data) > maxUpload {
		return zero, nil, perr.Validationf("%s", msgTooLarge)
	}

	return in, &domain.Upload{Data: data, ContentType: ct}, nil
}
