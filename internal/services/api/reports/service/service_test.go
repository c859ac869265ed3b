package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"bukatsu/internal/adapters/discord"
	"bukatsu/internal/core/embed"
	perr "bukatsu/internal/platform/errors"
	"bukatsu/internal/platform/logger"

	activities "bukatsu/internal/services/api/activities/domain"
	authdomain "bukatsu/internal/services/api/auth/domain"
	"bukatsu/internal/services/api/reports/domain"
)

type fakeDispatch struct {
	channelID string
	content   string
	embeds    []embed.Embed
	file      *discord.File
	id        string
	err       error
}

func (f *fakeDispatch) PostMessage(
	_ context.Context,
	channelID, content string,
	embeds []embed.Embed,
	file *discord.File,
) (string, error) {
	f.channelID, f.content, f.embeds, f.file = channelID, content, embeds, file
	return f.id, f.err
}

type fakePreviews struct {
	gotURL string
	meta   *embed.PostMetadata
}

func (f *fakePreviews) Fetch(_ context.Context, rawURL string) *embed.PostMetadata {
	f.gotURL = rawURL
	return f.meta
}

func testService(d Dispatcher, p PreviewFetcher) *Service {
	s := New(Config{ChannelID: "ch1"}, d, p)
	s.log = *logger.Named("test")
	s.now = func() time.Time { return time.Date(2024, 1, 15, 16, 30, 0, 0, time.UTC) }
	s.newID = func() string { return "abcd1234" }
	return s
}

func identCtx() context.Context {
	return authdomain.WithIdentity(context.Background(), authdomain.Identity{
		ID:       "123",
		Username: "taro",
		Avatar:   "hash",
	})
}

func muscle(t *testing.T) activities.Activity {
	t.Helper()
	a, ok := activities.ByID("muscle")
	if !ok {
		t.Fatalf("catalog missing muscle")
	}
	return a
}

func TestSubmitPlainJSONDispatch(t *testing.T) {
	fd := &fakeDispatch{id: "m1"}
	s := testService(fd, &fakePreviews{})

	in := domain.SubmitInput{
		Date: "2024-01-15", TimeStart: "14:30", TimeEnd: "16:00",
		Participants: domain.ParseCount("10"), Content: "ベンチプレス",
	}
	id, err := s.Submit(identCtx(), muscle(t), in, nil)
	if err != nil || id != "m1" {
		t.Fatalf("got id=%q err=%v", id, err)
	}
	if fd.channelID != "ch1" || fd.content != "新しい活動報告が投稿されました！" {
		t.Fatalf("dispatch args: %q %q", fd.channelID, fd.content)
	}
	if fd.file != nil {
		t.Fatalf("no file expected")
	}
	if len(fd.embeds) != 1 {
		t.Fatalf("want 1 embed, got %d", len(fd.embeds))
	}
	e := fd.embeds[0]
	if e.Title != "🏋️ 筋トレ部" {
		t.Fatalf("title %q", e.Title)
	}
	if e.Footer == nil || e.Footer.Text != "taro" {
		t.Fatalf("footer %+v", e.Footer)
	}
	if e.Footer.IconURL != "https://cdn.discordapp.com/avatars/123/hash.png" {
		t.Fatalf("footer icon %q", e.Footer.IconURL)
	}
}

func TestSubmitAttachmentFilename(t *testing.T) {
	fd := &fakeDispatch{id: "m2"}
	s := testService(fd, nil)

	in := domain.SubmitInput{
		Date: "2024-01-15", TimeStart: "09:00", TimeEnd: "10:00",
		Participants: domain.ParseCount("3"),
	}
	img := &domain.Upload{Data: []byte("png-bytes"), ContentType: "image/png"}
	if _, err := s.Submit(identCtx(), muscle(t), in, img); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if fd.file == nil {
		t.Fatalf("file missing")
	}
	want := regexp.MustCompile(`^report_\d+_abcd1234\.png$`)
	if !want.MatchString(fd.file.Name) {
		t.Fatalf("filename %q", fd.file.Name)
	}
	if fd.embeds[0].Image == nil || fd.embeds[0].Image.URL != "attachment://"+fd.file.Name {
		t.Fatalf("embed image not cross-referenced: %+v", fd.embeds[0].Image)
	}
}

func TestSubmitRejectsUnknownImageType(t *testing.T) {
	s := testService(&fakeDispatch{}, nil)
	in := domain.SubmitInput{
		Date: "2024-01-15", TimeStart: "09:00", TimeEnd: "10:00",
		Participants: domain.ParseCount("3"),
	}
	img := &domain.Upload{Data: []byte("x"), ContentType: "image/tiff"}
	if _, err := s.Submit(identCtx(), muscle(t), in, img); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestSubmitAppendsPreviewGallery(t *testing.T) {
	fd := &fakeDispatch{id: "m3"}
	fp := &fakePreviews{meta: &embed.PostMetadata{
		Title:  "Alice (@alice)",
		Text:   "hello",
		URL:    "https://x.com/alice/status/42",
		Images: []string{"https://img/1.jpg", "https://img/2.jpg"},
	}}
	s := testService(fd, fp)

	in := domain.SubmitInput{
		Date: "2024-01-15", TimeStart: "14:30", TimeEnd: "16:00",
		Participants: domain.ParseCount("5"),
		XPostURL:     "https://x.com/alice/status/42?s=20",
	}
	if _, err := s.Submit(identCtx(), muscle(t), in, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if fp.gotURL != "https://x.com/alice/status/42" {
		t.Fatalf("preview fetched with %q, want the normalized link", fp.gotURL)
	}
	if len(fd.embeds) != 3 {
		t.Fatalf("want report + 2 preview embeds, got %d", len(fd.embeds))
	}
	if fd.embeds[1].Color != embed.ColorPreview || fd.embeds[2].Image == nil {
		t.Fatalf("gallery malformed: %+v", fd.embeds[1:])
	}

	var link string
	for _, f := range fd.embeds[0].Fields {
		if f.Name == "X (Twitter)" {
			link = f.Value
		}
	}
	if link != "https://x.com/alice/status/42" {
		t.Fatalf("report link field %q", link)
	}
}

func TestSubmitPreviewFailureIsSilent(t *testing.T) {
	fd := &fakeDispatch{id: "m4"}
	s := testService(fd, &fakePreviews{meta: nil})

	in := domain.SubmitInput{
		Date: "2024-01-15", TimeStart: "14:30", TimeEnd: "16:00",
		Participants: domain.ParseCount("5"),
		XPostURL:     "https://x.com/alice/status/42",
	}
	id, err := s.Submit(identCtx(), muscle(t), in, nil)
	if err != nil || id != "m4" {
		t.Fatalf("got id=%q err=%v", id, err)
	}
	if len(fd.embeds) != 1 {
		t.Fatalf("want report embed only, got %d", len(fd.embeds))
	}
}

func TestSubmitDispatchFailureMapsGeneric(t *testing.T) {
	fd := &fakeDispatch{err: perr.Upstreamf("discord said no")}
	s := testService(fd, nil)

	in := domain.SubmitInput{
		Date: "2024-01-15", TimeStart: "14:30", TimeEnd: "16:00",
		Participants: domain.ParseCount("5"),
	}
	_, err := s.Submit(identCtx(), muscle(t), in, nil)
	if err == nil || err.Error() != "Failed to post message" {
		t.Fatalf("want generic message, got %v", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("want upstream code, got %v", perr.CodeOf(err))
	}
}
