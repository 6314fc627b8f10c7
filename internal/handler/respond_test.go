package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"link-directory/internal/service"
	"link-directory/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{&service.ValidationError{Msg: "name is required"}, http.StatusBadRequest, `{"error":"name is required"}`},
		{fmt.Errorf("CreateLink: %w", store.ErrCategoryNotFound), http.StatusBadRequest, `{"error":"category does not exist"}`},
		{store.ErrEmailTaken, http.StatusBadRequest, `{"error":"email already registered"}`},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"invalid email or password"}`},
		{fmt.Errorf("Review: %w", store.ErrNotFound), http.StatusNotFound, `{"error":"not found"}`},
		{fmt.Errorf("Review: %w", store.ErrConflict), http.StatusConflict, `{"error":"submission already reviewed"}`},
		{store.ErrCategoryInUse, http.StatusConflict, `{"error":"category is still referenced by links or submissions"}`},
		{errors.New("pq: connection refused on 10.0.0.5"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}
	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, Error(c, tc.err))
		require.Equal(t, tc.status, rec.Code, tc.err.Error())
		require.JSONEq(t, tc.body, rec.Body.String())
	}
}

func TestParamID(t *testing.T) {
	e := echo.New()
	for raw, ok := range map[string]bool{"7": true, "0": false, "-1": false, "abc": false, "": false} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		id, err := ParamID(c, "id")
		if ok {
			require.NoError(t, err)
			require.Equal(t, int64(7), id)
		} else {
			require.Error(t, err, raw)
		}
	}
}
