package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"link-directory/internal/store"

	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal

	listCategoriesFn = store.ListCategories
	listLinksFn = store.ListLinks
	createCategoryFn = store.CreateCategory
	updateCategoryFn = store.UpdateCategory
	deleteCategoryFn = store.DeleteCategory
	createLinkFn = store.CreateLink
	updateLinkFn = store.UpdateLink
	deleteLinkFn = store.DeleteLink
	incrementVisitsFn = store.IncrementVisits
	createVisitLogFn = store.CreateVisitLog

	createSubmissionFn = store.CreateSubmission
	getSubmissionFn = store.GetSubmission
	listPendingSubmissionsFn = store.ListPendingSubmissions
	resolveSubmissionFn = store.ResolveSubmission
}

// captureLogger 記錄所有輸出，供測試檢查
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Infof(format string, args ...interface{}) { l.add(format, args...) }
func (l *captureLogger) Warnf(format string, args ...interface{}) { l.add(format, args...) }

func (l *captureLogger) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *captureLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// stubIcons 回傳固定圖示並記錄查詢的網址
type stubIcons struct {
	icon  *string
	mu    sync.Mutex
	calls []string
}

func (s *stubIcons) Resolve(_ context.Context, rawURL string) *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, rawURL)
	return s.icon
}
