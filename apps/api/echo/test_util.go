package echoapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maendeleo/backend/core"
	"github.com/maendeleo/backend/core/course"
	"github.com/maendeleo/backend/core/progress"
	dummydb "github.com/maendeleo/backend/storage/database/dummy"
)

var (
	testConf = &core.Config{
		Env:                "test",
		TestMode:           true,
		AppName:            "Maendeleo",
		SecretKey:          []byte("secret"),
		JWTExpirationDelta: 10 * time.Minute,
		Progress:           core.ProgressConfig{DashboardConcurrency: 4},
	}

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
	errBadScope     = httpErr{Error: "invalid scope"}
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	token    string
	wantCode int
	wantData []byte
}

func newTestServer(t *testing.T, db *dummydb.DB) Server {
	logger := core.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	courseSvc := course.NewService(dummydb.NewHierarchyRepository(db), dummydb.NewLookupRepository(db))
	progressSvc := progress.NewService(
		logger,
		testConf,
		dummydb.NewProgressRepository(db),
		dummydb.NewEnrollmentRepository(db),
		dummydb.NewCourseSectionRepository(db),
		courseSvc,
	)
	return NewServer(&Options{
		Address:        "localhost:8000",
		DisableReqLogs: true,
		Conf:           testConf,
		Logger:         logger,
		ProgressSvc:    progressSvc,
	})
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr TokenUser) string {
	claims := GetUserClaims(testConf, usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decodeBody() failed: %v; body %s", err, rec.Body.String())
	}
}
