package links

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"link-directory/internal/model"
	"link-directory/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	CreateFn func(ctx context.Context, l *model.Link) error
	UpdateFn func(ctx context.Context, l *model.Link) error
	DeleteFn func(ctx context.Context, id int64) error
	VisitFn  func(ctx context.Context, id int64, ip, ua *string) error
}

func (f *fakeCatalog) CreateLink(ctx context.Context, l *model.Link) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, l)
	}
	panic("unexpected CreateLink")
}

func (f *fakeCatalog) UpdateLink(ctx context.Context, l *model.Link) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, l)
	}
	panic("unexpected UpdateLink")
}

func (f *fakeCatalog) DeleteLink(ctx context.Context, id int64) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	panic("unexpected DeleteLink")
}

func (f *fakeCatalog) RecordVisit(ctx context.Context, id int64, ip, ua *string) error {
	if f.VisitFn != nil {
		return f.VisitFn(ctx, id, ip, ua)
	}
	panic("unexpected RecordVisit")
}

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

func newCtx(method, body, id string) (echo.Context, *http.Request, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = testValidator{v: validator.New()}
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, req, rec
}

func TestCreateLinkHandler(t *testing.T) {
	ctx, _, rec := newCtx(http.MethodPost, `{"name":"Go","url":"https://go.dev"}`, "")
	require.NoError(t, CreateLinkHandler(&fakeCatalog{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ctx, _, rec = newCtx(http.MethodPost, `{"category_id":99,"name":"Go","url":"https://go.dev"}`, "")
	f := &fakeCatalog{CreateFn: func(context.Context, *model.Link) error {
		return store.ErrCategoryNotFound
	}}
	require.NoError(t, CreateLinkHandler(f)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ctx, _, rec = newCtx(http.MethodPost, `{"category_id":1,"name":"Go","url":"https://go.dev","description":"d"}`, "")
	f.CreateFn = func(_ context.Context, l *model.Link) error {
		require.Equal(t, int64(1), l.CategoryID)
		require.Equal(t, "d", l.Description)
		l.ID = 21
		return nil
	}
	require.NoError(t, CreateLinkHandler(f)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":21}`, rec.Body.String())
}

func TestUpdateLinkHandler(t *testing.T) {
	ctx, _, rec := newCtx(http.MethodPut, `{"name":"Go","url":"https://go.dev"}`, "x")
	require.NoError(t, UpdateLinkHandler(&fakeCatalog{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ctx, _, rec = newCtx(http.MethodPut, `{"name":"Go"}`, "2")
	require.NoError(t, UpdateLinkHandler(&fakeCatalog{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ctx, _, rec = newCtx(http.MethodPut, `{"name":"Go","url":"https://go.dev"}`, "2")
	f := &fakeCatalog{UpdateFn: func(_ context.Context, l *model.Link) error {
		require.Equal(t, int64(2), l.ID)
		return store.ErrNotFound
	}}
	require.NoError(t, UpdateLinkHandler(f)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	ctx, _, rec = newCtx(http.MethodPut, `{"name":"Go","url":"https://go.dev"}`, "2")
	f.UpdateFn = func(context.Context, *model.Link) error { return nil }
	require.NoError(t, UpdateLinkHandler(f)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteLinkHandler(t *testing.T) {
	ctx, _, rec := newCtx(http.MethodDelete, "", "5")
	f := &fakeCatalog{DeleteFn: func(_ context.Context, id int64) error {
		require.Equal(t, int64(5), id)
		return nil
	}}
	require.NoError(t, DeleteLinkHandler(f)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, _, rec = newCtx(http.MethodDelete, "", "5")
	f.DeleteFn = func(context.Context, int64) error { return store.ErrNotFound }
	require.NoError(t, DeleteLinkHandler(f)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVisitHandler(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		ctx, _, rec := newCtx(http.MethodPost, "", "nope")
		require.NoError(t, VisitHandler(&fakeCatalog{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("cloudflare header wins", func(t *testing.T) {
		ctx, req, rec := newCtx(http.MethodPost, "", "3")
		req.Header.Set(HeaderCFConnectingIP, "203.0.113.7")
		req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
		req.Header.Set("User-Agent", "curl/8")
		f := &fakeCatalog{VisitFn: func(_ context.Context, id int64, ip, ua *string) error {
			require.Equal(t, int64(3), id)
			require.Equal(t, "203.0.113.7", *ip)
			require.Equal(t, "curl/8", *ua)
			return nil
		}}
		require.NoError(t, VisitHandler(f)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("falls back to real ip and omits empty agent", func(t *testing.T) {
		ctx, req, rec := newCtx(http.MethodPost, "", "3")
		req.Header.Del("User-Agent")
		req.RemoteAddr = "192.0.2.4:5555"
		f := &fakeCatalog{VisitFn: func(_ context.Context, _ int64, ip, ua *string) error {
			require.Equal(t, "192.0.2.4", *ip)
			require.Nil(t, ua)
			return nil
		}}
		require.NoError(t, VisitHandler(f)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown link", func(t *testing.T) {
		ctx, _, rec := newCtx(http.MethodPost, "", "404")
		f := &fakeCatalog{VisitFn: func(context.Context, int64, *string, *string) error {
			return errors.Join(errors.New("RecordVisit"), store.ErrNotFound)
		}}
		require.NoError(t, VisitHandler(f)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		ctx, _, rec := newCtx(http.MethodPost, "", "4")
		f := &fakeCatalog{VisitFn: func(context.Context, int64, *string, *string) error {
			return errors.New("db down")
		}}
		require.NoError(t, VisitHandler(f)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

}
