package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/yeisme/artvault/pkg/configs"
	"github.com/yeisme/artvault/pkg/internal/media"
	"github.com/yeisme/artvault/pkg/internal/model"
	"github.com/yeisme/artvault/pkg/internal/storage/kv"
	"github.com/yeisme/artvault/pkg/internal/types"
)

// fakeBlobStore 内存 BlobStore 实现.
type fakeBlobStore struct {
	objects map[string][]byte
	seq     int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Store(ctx context.Context, data []byte, fileName, contentType string) (string, error) {
	f.seq++
	key := fmt.Sprintf("uploads/2025/01/obj-%d-%s", f.seq, fileName)
	f.objects[key] = data

	return key, nil
}

func (f *fakeBlobStore) DeriveThumb(ctx context.Context, storedPath, mediaType string) (string, error) {
	if mediaType != media.TypeImage {
		return "", nil
	}

	return storedPath, nil
}

// makeFileHeader 构造 multipart.FileHeader，模拟 HTTP 上传.
func makeFileHeader(t *testing.T, fileName, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	hdr.Set("Content-Type", contentType)

	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(64 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}

	files := form.File["file"]
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	return files[0]
}

func testMediaConfig() configs.MediaConfig {
	return configs.MediaConfig{
		MaxImageBytes:   10 * 1024 * 1024,
		MaxVideoBytes:   50 * 1024 * 1024,
		MaxVideoSeconds: 180,
		BaseURL:         "https://cdn.x",
	}
}

func newTestService(t *testing.T) (*SubmissionService, *fakeBlobStore, string) {
	t.Helper()

	store := newTestStore(t)
	blob := newFakeBlobStore()

	kvStore, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("memory kv: %v", err)
	}

	auth := newAuthServiceWith(kvStore, "s3cret", time.Hour)

	token, _, err := auth.Login(context.Background(), "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	return newSubmissionServiceWith(store, blob, auth, testMediaConfig()), blob, token
}

func submitImage(t *testing.T, svc *SubmissionService, title string) string {
	t.Helper()

	meta := &types.SubmitMetadata{Title: title, AuthorName: "anon", Tags: "oil, canvas"}
	file := makeFileHeader(t, title+".png", "image/png", []byte("png-bytes"))

	resp, err := svc.Submit(context.Background(), meta, file, nil)
	if err != nil {
		t.Fatalf("submit %s: %v", title, err)
	}

	return resp.ID
}

func TestSubmitCreatesPendingSubmission(t *testing.T) {
	svc, blob, _ := newTestService(t)
	ctx := context.Background()

	meta := &types.SubmitMetadata{Title: "sunset", AuthorName: "anon", Description: "dusk", Tags: "oil,oil, canvas"}
	file := makeFileHeader(t, "sunset.png", "image/png", []byte("png-bytes"))

	resp, err := svc.Submit(ctx, meta, file, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if resp.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", resp.Status)
	}

	sub, err := svc.store.Get(ctx, resp.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if sub.MediaType != media.TypeImage {
		t.Errorf("media_type = %q, want image", sub.MediaType)
	}

	if sub.FilePath == "" || sub.ThumbPath != sub.FilePath {
		t.Errorf("paths: file=%q thumb=%q", sub.FilePath, sub.ThumbPath)
	}

	if got := sub.Tags(); len(got) != 2 || got[0] != "oil" || got[1] != "canvas" {
		t.Errorf("tags = %v", got)
	}

	if _, ok := blob.objects[sub.FilePath]; !ok {
		t.Error("file bytes not stored")
	}
}

func TestSubmitVideoKeepsDuration(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	dur := 42.5
	meta := &types.SubmitMetadata{Title: "clip", AuthorName: "anon"}
	file := makeFileHeader(t, "clip.mp4", "video/mp4", []byte("mp4-bytes"))

	resp, err := svc.Submit(ctx, meta, file, &dur)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	sub, err := svc.store.Get(ctx, resp.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if sub.MediaType != media.TypeVideo {
		t.Errorf("media_type = %q, want video", sub.MediaType)
	}

	if sub.DurationSeconds == nil || *sub.DurationSeconds != 42.5 {
		t.Errorf("duration = %v, want 42.5", sub.DurationSeconds)
	}

	if sub.ThumbPath != "" {
		t.Errorf("video thumb = %q, want empty", sub.ThumbPath)
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	meta := &types.SubmitMetadata{Title: "t", AuthorName: "a"}

	if _, err := svc.Submit(ctx, meta, nil, nil); !errors.Is(err, media.ErrMissingFile) {
		t.Errorf("no file err = %v, want ErrMissingFile", err)
	}

	pdf := makeFileHeader(t, "doc.pdf", "application/pdf", []byte("%PDF"))
	if _, err := svc.Submit(ctx, meta, pdf, nil); !errors.Is(err, media.ErrUnsupportedType) {
		t.Errorf("pdf err = %v, want ErrUnsupportedType", err)
	}

	big := makeFileHeader(t, "big.png", "image/png", make([]byte, 10*1024*1024+1))
	if _, err := svc.Submit(ctx, meta, big, nil); !errors.Is(err, media.ErrImageTooLarge) {
		t.Errorf("oversize err = %v, want ErrImageTooLarge", err)
	}

	longDur := 181.0
	vid := makeFileHeader(t, "long.mp4", "video/mp4", []byte("mp4"))
	if _, err := svc.Submit(ctx, meta, vid, &longDur); !errors.Is(err, ErrVideoTooLong) {
		t.Errorf("long video err = %v, want ErrVideoTooLong", err)
	}
}

// 大小校验必须依据 multipart 头里声明的 Size，在读入文件字节之前完成.
// 这里的 FileHeader 声明了超限大小但没有可读内容：
// 若实现先读后验，读到的 0 字节会错误地通过校验.
func TestSubmitValidatesSizeBeforeRead(t *testing.T) {
	svc, blob, _ := newTestService(t)
	ctx := context.Background()
	meta := &types.SubmitMetadata{Title: "t", AuthorName: "a"}

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Type", "image/png")
	file := &multipart.FileHeader{
		Filename: "huge.png",
		Header:   hdr,
		Size:     10*1024*1024 + 1,
	}

	if _, err := svc.Submit(ctx, meta, file, nil); !errors.Is(err, media.ErrImageTooLarge) {
		t.Fatalf("err = %v, want ErrImageTooLarge", err)
	}

	if len(blob.objects) != 0 {
		t.Error("rejected upload must not reach blob store")
	}
}

func TestApproveRequiresCredential(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	id := submitImage(t, svc, "guarded")

	if _, err := svc.Approve(ctx, id, "invalid-token"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	// 凭证失败不触碰存储，状态保持 pending
	sub, err := svc.store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if sub.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", sub.Status)
	}
}

func TestModerationFlow(t *testing.T) {
	svc, _, token := newTestService(t)
	ctx := context.Background()

	idA := submitImage(t, svc, "approve-me")
	idB := submitImage(t, svc, "reject-me")

	approved, err := svc.Approve(ctx, idA, token)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if approved.Status != model.StatusApproved {
		t.Errorf("status = %q", approved.Status)
	}

	rejected, err := svc.Reject(ctx, idB, "blurry", token)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	if rejected.Status != model.StatusRejected || rejected.RejectedReason != "blurry" {
		t.Errorf("got %+v", rejected)
	}

	// 重复审核返回 AlreadyDecided
	if _, err := svc.Approve(ctx, idA, token); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("re-approve err = %v, want ErrAlreadyDecided", err)
	}
}

func TestGalleryShowsOnlyApproved(t *testing.T) {
	svc, _, token := newTestService(t)
	ctx := context.Background()

	idA := submitImage(t, svc, "public")
	idB := submitImage(t, svc, "hidden")

	if _, err := svc.Approve(ctx, idA, token); err != nil {
		t.Fatalf("approve: %v", err)
	}

	gallery, err := svc.Gallery(ctx)
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}

	if gallery.Total != 1 || gallery.Items[0].ID != idA {
		t.Fatalf("gallery = %+v", gallery)
	}

	item := gallery.Items[0]
	if item.ThumbURL == "" || item.DetailURL != "/api/v1/items/"+idA {
		t.Errorf("item urls: %+v", item)
	}

	// 未通过的投稿在详情接口一律 NotFound
	if _, err := svc.Detail(ctx, idB); !errors.Is(err, ErrNotFound) {
		t.Errorf("pending detail err = %v, want ErrNotFound", err)
	}

	detail, err := svc.Detail(ctx, idA)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}

	if detail.MediaURL == "" {
		t.Error("empty media url")
	}
}

func TestListSubmissionsRequiresCredential(t *testing.T) {
	svc, _, token := newTestService(t)
	ctx := context.Background()

	submitImage(t, svc, "one")
	id := submitImage(t, svc, "two")

	if _, err := svc.ListSubmissions(ctx, types.FilterAll, "nope"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	if _, err := svc.Approve(ctx, id, token); err != nil {
		t.Fatalf("approve: %v", err)
	}

	list, err := svc.ListSubmissions(ctx, types.FilterPending, token)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if list.Total != 1 || list.Items[0].Title != "one" {
		t.Errorf("list = %+v", list)
	}
}

func TestResolveMediaURL(t *testing.T) {
	svc, _, _ := newTestService(t)

	got := svc.ResolveMediaURL("uploads/2025/01/x.png")
	if got != "https://cdn.x/uploads/2025/01/x.png" {
		t.Errorf("got %q", got)
	}

	if svc.ResolveMediaURL("") != "" {
		t.Error("empty path should resolve to empty url")
	}
}
