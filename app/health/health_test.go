package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type HealthCheckTestSuite struct {
	suite.Suite
	checker *Checker
	router  *mux.Router
	clock   time.Time
}

func TestHealthCheckTestSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func (suite *HealthCheckTestSuite) SetupTest() {
	suite.clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.checker = NewChecker(log.NewNopLogger(), DefaultConfig())
	suite.checker.now = func() time.Time { return suite.clock }
	suite.router = mux.NewRouter()
	suite.checker.RegisterRoutes(suite.router)
}

func (suite *HealthCheckTestSuite) get(path string) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func (suite *HealthCheckTestSuite) TestLiveness() {
	rec, body := suite.get("/health")
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Require().Equal("ok", body["status"])
}

func (suite *HealthCheckTestSuite) TestNotReadyBeforeFirstCommit() {
	rec, body := suite.get("/health/ready")
	suite.Require().Equal(http.StatusServiceUnavailable, rec.Code)
	suite.Require().Equal(string(StatusUnhealthy), body["status"])
}

func (suite *HealthCheckTestSuite) TestReadyAfterCommit() {
	suite.checker.RecordCommit(3, []byte{0xab, 0xcd})

	rec, body := suite.get("/health/ready")
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Require().Equal(string(StatusHealthy), body["status"])

	health := suite.checker.Check()
	suite.Require().Equal(int64(3), health.Components["state"].Metrics["height"])
	suite.Require().Equal("abcd", health.Components["state"].Metrics["app_hash"])
}

func (suite *HealthCheckTestSuite) TestStaleCommitDegrades() {
	suite.checker.RecordCommit(1, nil)
	suite.clock = suite.clock.Add(2 * time.Minute)

	rec, body := suite.get("/health/detailed")
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Require().Equal(string(StatusDegraded), body["status"])
}

func (suite *HealthCheckTestSuite) TestBlockErrorIsUnhealthy() {
	suite.checker.RecordCommit(1, nil)
	suite.checker.RecordBlockError(errors.New("invariant broken"))

	rec, _ := suite.get("/health/detailed")
	suite.Require().Equal(http.StatusServiceUnavailable, rec.Code)

	suite.checker.RecordBlockError(nil)
	rec, _ = suite.get("/health/detailed")
	suite.Require().Equal(http.StatusOK, rec.Code)
}

func TestCalculateOverallStatus(t *testing.T) {
	require.Equal(t, StatusHealthy, calculateOverallStatus(map[string]ComponentHealth{
		"a": {Status: StatusHealthy},
	}))
	require.Equal(t, StatusDegraded, calculateOverallStatus(map[string]ComponentHealth{
		"a": {Status: StatusHealthy},
		"b": {Status: StatusDegraded},
	}))
	require.Equal(t, StatusUnhealthy, calculateOverallStatus(map[string]ComponentHealth{
		"a": {Status: StatusDegraded},
		"b": {Status: StatusUnhealthy},
	}))
}
