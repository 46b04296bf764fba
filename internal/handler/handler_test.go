package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"peaceconnect_service/internal/config"
	"peaceconnect_service/internal/model"
	"peaceconnect_service/internal/repository"
	"peaceconnect_service/internal/service"
	"peaceconnect_service/pkg/databaseManager"
	"peaceconnect_service/pkg/healthcheck"
	"peaceconnect_service/pkg/submission"
	"peaceconnect_service/pkg/suggestion"
	"peaceconnect_service/pkg/utils"
	"peaceconnect_service/pkg/websocketManager"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type HandlerTestSuite struct {
	suite.Suite
	manager databaseManager.DatabaseManager
	router  *gin.Engine
	catalog service.CatalogService
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	return cfg
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	logger := zap.NewNop()

	manager, err := databaseManager.NewSQLiteManager(":memory:")
	s.Require().NoError(err)
	s.manager = manager
	db := manager.GetDB()
	s.Require().NoError(service.Migrate(ctx, db))

	clock := clockwork.NewRealClock()
	publisher := service.NopPublisher()
	events := repository.NewEventRepository(db)
	articles := repository.NewArticleRepository(db)
	comments := repository.NewCommentRepository(db)
	requests := repository.NewHelpRequestRepository(db)

	s.catalog = service.NewCatalogService(repository.NewCategoryRepository(db), repository.NewThemeRepository(db), service.NopCache(), 0, logger)
	suggester := submission.NewSuggester(suggestion.New(suggestion.WithLatency(0)))

	handlers := Handlers{
		HelpRequest: NewHelpRequestHandler(service.NewHelpRequestService(requests, publisher, logger), suggester, logger),
		Event:       NewEventHandler(service.NewEventService(events, repository.NewRegistrationRepository(db), publisher, clock, logger)),
		Article:     NewArticleHandler(service.NewArticleService(articles, comments, publisher, clock, logger)),
		Catalog:     NewCatalogHandler(s.catalog),
		Dashboard:   NewDashboardHandler(service.NewDashboardService(events, articles, comments, requests)),
		WebSocket:   websocketManager.NewWebSocketHandler(websocketManager.NewManager(clock, logger)),
	}
	s.router = NewRouter(testConfig(), handlers, healthcheck.New(healthcheck.Config{}), logger)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.Require().NoError(s.manager.Close())
}

func (s *HandlerTestSuite) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) sendJSON(method, path string, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder) utils.Response {
	var resp utils.Response
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func (s *HandlerTestSuite) createEvent() uint {
	categoryID, err := s.catalog.CreateCategory(context.Background(), service.Fields{"name": "Formations"})
	s.Require().NoError(err)

	w := s.sendJSON(http.MethodPost, "/api/v1/admin/events", map[string]interface{}{
		"title":       "Atelier de médiation",
		"description": "Atelier pratique",
		"location":    "Lyon",
		"event_date":  "2025-04-12T14:30",
		"category_id": categoryID,
		"capacity":    30,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.decode(w).ID
}

func helpRequestValues() url.Values {
	return url.Values{
		"help_type":      {"mediation"},
		"urgency_level":  {"high"},
		"situation":      {"Conflit persistant avec un voisin"},
		"location":       {"Lyon"},
		"contact_method": {"email"},
	}
}

func (s *HandlerTestSuite) TestHelpRequestProbe() {
	w := s.get("/api/help-request")

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"success":true,"status":"ok"}`, w.Body.String())
}

func (s *HandlerTestSuite) TestHelpRequestSubmit() {
	w := s.postForm("/api/help-request", helpRequestValues())

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	resp := s.decode(w)
	s.True(resp.Success)
	s.NotZero(resp.ID)

	w = s.get("/api/v1/admin/help-requests/" + strconv.FormatUint(uint64(resp.ID), 10))
	s.Require().Equal(http.StatusOK, w.Code)
	var body struct {
		Data model.HelpRequest `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("mediation", body.Data.HelpType)
	s.Equal(service.DefaultHelpStatus, body.Data.Status)
}

func (s *HandlerTestSuite) TestHelpRequestSubmitRejectsUnknownType() {
	values := helpRequestValues()
	values.Set("help_type", "unknown")
	values.Set("situation", "court")

	w := s.postForm("/api/help-request", values)

	s.Equal(http.StatusBadRequest, w.Code)
	want := utils.Response{
		Error: submission.MsgFixErrors,
		Errors: map[string][]string{
			"help_type": {"Type d'aide invalide"},
			"situation": {"Minimum 10 caractères requis"},
		},
	}
	if diff := cmp.Diff(want, s.decode(w)); diff != "" {
		s.Failf("unexpected envelope", "(-want +got):\n%s", diff)
	}
}

func (s *HandlerTestSuite) TestSuggestion() {
	w := s.postForm("/api/help-request/suggestion", url.Values{"description": {"court"}})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(submission.MsgDescriptionTooShort, s.decode(w).Error)

	w = s.postForm("/api/help-request/suggestion", url.Values{"description": {"Je subis du harcèlement au travail"}})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "documentez tous les incidents")
}

func (s *HandlerTestSuite) TestEventValidationError() {
	w := s.sendJSON(http.MethodPost, "/api/v1/admin/events", map[string]interface{}{"title": "Atelier"})

	s.Equal(http.StatusBadRequest, w.Code)
	resp := s.decode(w)
	s.False(resp.Success)
	s.Equal(`Le champ obligatoire "description" est manquant.`, resp.Error)
	s.Contains(resp.Errors, "description")
}

func (s *HandlerTestSuite) TestRegistrationConflict() {
	eventID := s.createEvent()
	path := "/api/v1/events/" + strconv.FormatUint(uint64(eventID), 10) + "/registrations"
	values := url.Values{"full_name": {"Amina Diallo"}, "email": {"amina@example.org"}}

	w := s.postForm(path, values)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.postForm(path, values)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(MsgAlreadyRegistered, s.decode(w).Error)

	w = s.postForm("/api/v1/events/999/registrations", values)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestNotFoundAndBadID() {
	s.Equal(http.StatusNotFound, s.get("/api/v1/events/999").Code)
	s.Equal(http.StatusBadRequest, s.get("/api/v1/events/abc").Code)

	w := s.sendJSON(http.MethodPut, "/api/v1/admin/categories/999", map[string]string{"name": "x"})
	s.Equal(http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/help-requests/999", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestPrivateEventHiddenFromPublic() {
	eventID := s.createEvent()
	path := strconv.FormatUint(uint64(eventID), 10)

	s.Equal(http.StatusOK, s.get("/api/v1/events/"+path).Code)

	w := s.sendJSON(http.MethodPut, "/api/v1/admin/events/"+path, map[string]interface{}{
		"title":       "Atelier",
		"description": "Atelier pratique",
		"location":    "Lyon",
		"event_date":  "2025-04-12 14:30:00",
		"category_id": "1",
		"visibility":  "private",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	s.Equal(http.StatusNotFound, s.get("/api/v1/events/"+path).Code)
	s.Equal(http.StatusOK, s.get("/api/v1/admin/events/"+path).Code)
}

func (s *HandlerTestSuite) TestCommentModerationFlow() {
	w := s.sendJSON(http.MethodPost, "/api/v1/admin/articles", map[string]interface{}{
		"title":   "Dialogue",
		"content": "Texte",
		"status":  "published",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	articlePath := "/api/v1/articles/" + strconv.FormatUint(uint64(s.decode(w).ID), 10)

	w = s.postForm(articlePath+"/comments", url.Values{"author_name": {"Lina"}, "content": {"Merci"}})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	commentID := s.decode(w).ID

	var body struct {
		Data []model.Comment `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(s.get(articlePath+"/comments").Body.Bytes(), &body))
	s.Empty(body.Data)

	w = s.sendJSON(http.MethodPut, "/api/v1/admin/comments/"+strconv.FormatUint(uint64(commentID), 10)+"/approve", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	body.Data = nil
	s.Require().NoError(json.Unmarshal(s.get(articlePath+"/comments").Body.Bytes(), &body))
	s.Len(body.Data, 1)
}

func (s *HandlerTestSuite) TestDraftArticleHiddenFromPublicComments() {
	w := s.sendJSON(http.MethodPost, "/api/v1/admin/articles", map[string]interface{}{
		"title":   "Brouillon",
		"content": "Texte",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id := strconv.FormatUint(uint64(s.decode(w).ID), 10)

	s.Equal(http.StatusNotFound, s.get("/api/v1/articles/"+id).Code)

	w = s.postForm("/api/v1/articles/"+id+"/comments", url.Values{"author_name": {"Lina"}, "content": {"Merci"}})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(MsgNotFound, s.decode(w).Error)

	s.Equal(http.StatusNotFound, s.get("/api/v1/articles/"+id+"/comments").Code)
	s.Equal(http.StatusOK, s.get("/api/v1/admin/articles/"+id+"/comments").Code)
}

func (s *HandlerTestSuite) TestDuplicateCatalogNames() {
	for _, kind := range []string{"categories", "themes"} {
		path := "/api/v1/admin/" + kind

		w := s.postForm(path, url.Values{"name": {"Doublon"}})
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

		w = s.postForm(path, url.Values{"name": {"Doublon"}})
		s.Equal(http.StatusConflict, w.Code, kind)
		resp := s.decode(w)
		s.False(resp.Success)
		s.Equal(MsgDuplicateName, resp.Error, kind)

		w = s.postForm(path, url.Values{"name": {"Autre"}})
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		other := strconv.FormatUint(uint64(s.decode(w).ID), 10)

		w = s.sendJSON(http.MethodPut, path+"/"+other, map[string]string{"name": "Doublon"})
		s.Equal(http.StatusConflict, w.Code, kind)
		s.NotContains(w.Body.String(), "duplicate", kind)
	}
}

func (s *HandlerTestSuite) TestCatalogAndDashboard() {
	s.Require().NoError(s.catalog.SeedDefaults(context.Background()))

	var categories struct {
		Data []model.Category `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(s.get("/api/v1/categories").Body.Bytes(), &categories))
	s.Len(categories.Data, len(service.DefaultCategories))

	w := s.get("/api/v1/admin/dashboard")
	s.Require().Equal(http.StatusOK, w.Code)
	var stats struct {
		Data service.DashboardStats `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &stats))
	s.Zero(stats.Data.TotalEvents)
}

func (s *HandlerTestSuite) TestOpsEndpoints() {
	s.Equal(http.StatusOK, s.get("/livez").Code)
	s.Equal(http.StatusOK, s.get("/version").Code)
}

type MockHelpRequestService struct {
	mock.Mock
}

func (m *MockHelpRequestService) List(ctx context.Context, filter repository.HelpRequestFilter) ([]*model.HelpRequest, error) {
	args := m.Called(ctx, filter)
	reqs, _ := args.Get(0).([]*model.HelpRequest)
	return reqs, args.Error(1)
}

func (m *MockHelpRequestService) Get(ctx context.Context, id uint) (*model.HelpRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*model.HelpRequest)
	return req, args.Error(1)
}

func (m *MockHelpRequestService) Create(ctx context.Context, fields service.Fields) (uint, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockHelpRequestService) Update(ctx context.Context, id uint, fields service.Fields) (bool, error) {
	args := m.Called(ctx, id, fields)
	return args.Bool(0), args.Error(1)
}

func (m *MockHelpRequestService) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestHelpRequestSubmitStorageFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(MockHelpRequestService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(f service.Fields) bool {
		return f.Get("help_type") == "mediation" && f.Get("contact_method") == "email"
	})).Return(uint(0), errors.New("database is locked"))

	h := NewHelpRequestHandler(svc, submission.NewSuggester(suggestion.New(suggestion.WithLatency(0))), zap.NewNop())
	r := gin.New()
	r.POST("/api/help-request", h.Submit)

	req := httptest.NewRequest(http.MethodPost, "/api/help-request", strings.NewReader(helpRequestValues().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var resp utils.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error != utils.MsgInternalError {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	svc.AssertExpectations(t)
}
