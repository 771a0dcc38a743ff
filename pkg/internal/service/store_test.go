package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/artvault/pkg/internal/model"
	"github.com/yeisme/artvault/pkg/internal/types"
)

// newTestStore 创建基于内存 SQLite 的存储.
// 限制单连接，保证条件更新串行执行.
func newTestStore(t *testing.T) *SubmissionStore {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	store := NewSubmissionStore(gdb)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return store
}

func mustCreate(t *testing.T, store *SubmissionStore, title string) string {
	t.Helper()

	id, err := store.Create(context.Background(), &model.Submission{
		Title:      title,
		AuthorName: "anon",
		MediaType:  "image",
		FilePath:   "uploads/2025/01/" + title + ".png",
	})
	if err != nil {
		t.Fatalf("create %s: %v", title, err)
	}

	return id
}

func TestCreateRequiresTitleAndAuthor(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, &model.Submission{Title: "", AuthorName: "a"})
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("err = %v, want ErrInvalidSubmission", err)
	}

	_, err = store.Create(ctx, &model.Submission{Title: "t", AuthorName: "  "})
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("err = %v, want ErrInvalidSubmission", err)
	}
}

func TestCreateAssignsPendingAndID(t *testing.T) {
	store := newTestStore(t)

	id := mustCreate(t, store, "first")
	if id == "" {
		t.Fatal("empty id")
	}

	sub, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if sub.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", sub.Status)
	}

	if sub.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get(context.Background(), "01UNKNOWN"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirstWithFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id1 := mustCreate(t, store, "one")
	id2 := mustCreate(t, store, "two")
	id3 := mustCreate(t, store, "three")

	if _, err := store.SetApproved(ctx, id2); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// 三条投稿、一条已通过：pending 过滤应返回剩下两条，最新在前
	pending, err := store.List(ctx, types.FilterPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}

	if len(pending) != 2 {
		t.Fatalf("len = %d, want 2", len(pending))
	}

	if pending[0].ID != id3 || pending[1].ID != id1 {
		t.Errorf("order = [%s %s], want [%s %s]", pending[0].ID, pending[1].ID, id3, id1)
	}

	all, err := store.List(ctx, types.FilterAll)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}

	approved, err := store.List(ctx, types.FilterApproved)
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}

	if len(approved) != 1 || approved[0].ID != id2 {
		t.Errorf("approved = %+v", approved)
	}
}

func TestDecideIsOneShot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := mustCreate(t, store, "artwork")

	sub, err := store.SetApproved(ctx, id)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if sub.Status != model.StatusApproved {
		t.Errorf("status = %q, want approved", sub.Status)
	}

	// 终态后的任何审核动作都是 AlreadyDecided
	if _, err := store.SetApproved(ctx, id); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("re-approve err = %v, want ErrAlreadyDecided", err)
	}

	if _, err := store.SetRejected(ctx, id, "late"); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("reject after approve err = %v, want ErrAlreadyDecided", err)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Status != model.StatusApproved || got.RejectedReason != "" {
		t.Errorf("state overwritten: %+v", got)
	}
}

func TestRejectRecordsReason(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := mustCreate(t, store, "noisy")

	sub, err := store.SetRejected(ctx, id, "off topic")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	if sub.Status != model.StatusRejected || sub.RejectedReason != "off topic" {
		t.Errorf("got %+v", sub)
	}

	// 空原因也允许，落库为为空串而非 NULL
	id2 := mustCreate(t, store, "quiet")

	sub2, err := store.SetRejected(ctx, id2, "")
	if err != nil {
		t.Fatalf("reject empty reason: %v", err)
	}

	if sub2.RejectedReason != "" {
		t.Errorf("reason = %q, want empty", sub2.RejectedReason)
	}
}

func TestDecideNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.SetApproved(context.Background(), "01MISSING"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestConcurrentDecideExactlyOneWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := mustCreate(t, store, "contested")

	var (
		wg         sync.WaitGroup
		approveErr error
		rejectErr  error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		_, approveErr = store.SetApproved(ctx, id)
	}()

	go func() {
		defer wg.Done()

		_, rejectErr = store.SetRejected(ctx, id, "race")
	}()

	wg.Wait()

	winners := 0
	for _, err := range []error{approveErr, rejectErr} {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrAlreadyDecided):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1 (approve=%v reject=%v)", winners, approveErr, rejectErr)
	}

	sub, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if !model.IsTerminal(sub.Status) {
		t.Errorf("status = %q, want terminal", sub.Status)
	}
}

// 并发投稿并发生成 ID，ulid.MonotonicEntropy 必须在锁内使用，
// 否则竞争会产生重复甚至 panic.
func TestConcurrentSubmissionIDsUnique(t *testing.T) {
	const (
		goroutines = 16
		perG       = 200
	)

	now := time.Now().UTC()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{}, goroutines*perG)
	)

	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()

			local := make([]string, 0, perG)
			for i := 0; i < perG; i++ {
				local = append(local, newSubmissionID(now))
			}

			mu.Lock()
			defer mu.Unlock()

			for _, id := range local {
				ids[id] = struct{}{}
			}
		}()
	}

	wg.Wait()

	if len(ids) != goroutines*perG {
		t.Fatalf("unique ids = %d, want %d", len(ids), goroutines*perG)
	}
}

func TestCountByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, "a")
	id := mustCreate(t, store, "b")

	if _, err := store.SetApproved(ctx, id); err != nil {
		t.Fatalf("approve: %v", err)
	}

	n, err := store.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	if n != 1 {
		t.Errorf("pending count = %d, want 1", n)
	}
}
