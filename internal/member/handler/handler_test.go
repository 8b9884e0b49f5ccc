package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/festy23/querystudy/internal/apierror"
	"github.com/festy23/querystudy/internal/member/model"
	"github.com/festy23/querystudy/internal/member/service"
	teamModel "github.com/festy23/querystudy/internal/team/model"
	"github.com/festy23/querystudy/pkg/page"
)

// mockService is a mock implementation of service.Service for unit tests.
type mockService struct {
	mock.Mock
}

var _ service.Service = (*mockService)(nil)

func (m *mockService) Search(ctx context.Context, cond model.MemberSearchCondition) ([]model.MemberTeamDto, error) {
	args := m.Called(ctx, cond)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MemberTeamDto), args.Error(1)
}

func (m *mockService) SearchPage(
	ctx context.Context,
	cond model.MemberSearchCondition,
	req page.Request,
	mode service.SearchMode,
) (page.Page[model.MemberTeamDto], error) {
	args := m.Called(ctx, cond, req, mode)
	return args.Get(0).(page.Page[model.MemberTeamDto]), args.Error(1)
}

func (m *mockService) Register(ctx context.Context, req *model.RegisterMemberRequest) (*model.MemberResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MemberResponse), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id uint) (*model.MemberResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MemberResponse), args.Error(1)
}

func intPtr(i int) *int { return &i }

func setupRouter(t *testing.T, svc service.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidations())

	router := gin.New()
	h := New(svc, zap.NewNop().Sugar())
	router.GET("/v1/members", h.SearchV1)
	router.GET("/v2/members", h.SearchV2)
	router.GET("/v3/members", h.SearchV3)
	router.GET("/members/:id", h.GetMember)
	router.POST("/members", h.RegisterMember)
	return router
}

func serve(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierror.Response {
	t.Helper()
	var response apierror.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHandler_SearchV1(t *testing.T) {
	t.Run("binds every filter", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)

		cond := model.MemberSearchCondition{
			Username: "member3",
			TeamName: "teamB",
			AgeGoe:   intPtr(20),
			AgeLoe:   intPtr(40),
		}
		rows := []model.MemberTeamDto{{
			MemberID: 3,
			Username: null.StringFrom("member3"),
			Age:      30,
			TeamID:   null.UintFrom(2),
			TeamName: null.StringFrom("teamB"),
		}}
		mockSvc.On("Search", mock.Anything, cond).Return(rows, nil)

		w := serve(router, http.MethodGet, "/v1/members?username=member3&teamName=teamB&ageGoe=20&ageLoe=40", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`[{"member_id":3,"username":"member3","age":30,"team_id":2,"team_name":"teamB"}]`,
			w.Body.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("no filters", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		mockSvc.On("Search", mock.Anything, model.MemberSearchCondition{}).Return([]model.MemberTeamDto{}, nil)

		w := serve(router, http.MethodGet, "/v1/members", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("crossed age bounds rejected by binding", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)

		w := serve(router, http.MethodGet, "/v1/members?ageGoe=40&ageLoe=20", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
		assert.Equal(t, model.ErrInvalidAgeRange.Error(), response.Error.Message)
		mockSvc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("negative age rejected", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)

		w := serve(router, http.MethodGet, "/v1/members?ageGoe=-1", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("non numeric age rejected", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)

		w := serve(router, http.MethodGet, "/v1/members?ageLoe=old", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		mockSvc.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("database error"))

		w := serve(router, http.MethodGet, "/v1/members", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, w).Error.Code)
	})
}

func TestHandler_SearchPage(t *testing.T) {
	tests := []struct {
		name string
		path string
		mode service.SearchMode
	}{
		{name: "v2 uses simple mode", path: "/v2/members", mode: service.SearchModeSimple},
		{name: "v3 uses complex mode", path: "/v3/members", mode: service.SearchModeComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockService)
			router := setupRouter(t, mockSvc)

			req := page.NewRequest(1, 2)
			content := []model.MemberTeamDto{{MemberID: 3, Username: null.StringFrom("member3"), Age: 30}}
			expected := page.New(content, req, 3)
			mockSvc.On("SearchPage", mock.Anything, model.MemberSearchCondition{TeamName: "teamB"}, req, tt.mode).
				Return(expected, nil)

			w := serve(router, http.MethodGet, tt.path+"?teamName=teamB&page=1&size=2", nil)

			assert.Equal(t, http.StatusOK, w.Code)
			var response page.Page[model.MemberTeamDto]
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, expected, response)
			mockSvc.AssertExpectations(t)
		})
	}

	t.Run("missing paging passes zero request", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		mockSvc.On("SearchPage", mock.Anything, model.MemberSearchCondition{}, page.Request{}, service.SearchModeComplex).
			Return(page.New([]model.MemberTeamDto{}, page.NewRequest(0, 20), 0), nil)

		w := serve(router, http.MethodGet, "/v3/members", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid page", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)

		w := serve(router, http.MethodGet, "/v2/members?page=first", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "SearchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("age range error from service", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		mockSvc.On("SearchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(page.Page[model.MemberTeamDto]{}, model.ErrInvalidAgeRange)

		w := serve(router, http.MethodGet, "/v3/members", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetMember(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		teamID := uint(1)
		resp := &model.MemberResponse{
			MemberID: 1,
			Username: null.StringFrom("member1"),
			Age:      10,
			TeamID:   &teamID,
			TeamName: null.StringFrom("teamA"),
		}
		mockSvc.On("Get", mock.Anything, uint(1)).Return(resp, nil)

		w := serve(router, http.MethodGet, "/members/1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"member_id":1,"username":"member1","age":10,"team_id":1,"team_name":"teamA"}`,
			w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, path := range []string{"/members/abc", "/members/0"} {
			mockSvc := new(mockService)
			router := setupRouter(t, mockSvc)

			w := serve(router, http.MethodGet, path, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code, path)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		mockSvc.On("Get", mock.Anything, uint(9)).Return(nil, model.ErrMemberNotFound)

		w := serve(router, http.MethodGet, "/members/9", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w).Error.Code)
	})
}

func TestHandler_RegisterMember(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		resp := &model.MemberResponse{MemberID: 5, Username: null.StringFrom("member5"), Age: 50}
		mockSvc.On("Register", mock.Anything, &model.RegisterMemberRequest{Username: "member5", Age: 50}).
			Return(resp, nil)

		w := serve(router, http.MethodPost, "/members", []byte(`{"username":"member5","age":50}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t,
			`{"member_id":5,"username":"member5","age":50,"team_id":null,"team_name":null}`,
			w.Body.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{name: "malformed json", body: `{"username":`},
			{name: "missing username", body: `{"age":10}`},
			{name: "negative age", body: `{"username":"member5","age":-1}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockSvc := new(mockService)
				router := setupRouter(t, mockSvc)

				w := serve(router, http.MethodPost, "/members", []byte(tt.body))

				assert.Equal(t, http.StatusBadRequest, w.Code)
				mockSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("team not found", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, teamModel.ErrTeamNotFound)

		w := serve(router, http.MethodPost, "/members", []byte(`{"username":"member5","age":50,"team_id":9}`))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("blank username from service", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, model.ErrInvalidUsername)

		w := serve(router, http.MethodPost, "/members", []byte(`{"username":"  ","age":50}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(t, mockSvc)
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("database error"))

		w := serve(router, http.MethodPost, "/members", []byte(`{"username":"member5","age":50}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
