package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

func newGateRouter(t *testing.T) (*gin.Engine, *utils.TokenMaker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	key := make([]byte, utils.SymmetricKeySize)
	copy(key, "access-gate-test-key")
	maker, err := utils.NewTokenMaker(key)
	if err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	router.Use(AccessGate(maker, DefaultPolicy))

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "ok"}) }
	router.GET("/", ok)
	router.GET("/admin/users", ok)
	router.GET("/doctor/availability", ok)
	router.GET("/receptionist/patients", ok)
	router.GET("/doctor/whoami", func(c *gin.Context) {
		claims, err := ExtractIdentity(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID, "role": claims.Role})
	})

	return router, maker
}

func issueToken(t *testing.T, maker *utils.TokenMaker, id string, role models.Role) string {
	t.Helper()
	token, err := maker.Issue(&models.User{ID: id, Email: id + "@clinic.test", Role: role})
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: utils.TokenCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAccessGatePolicy(t *testing.T) {
	router, maker := newGateRouter(t)

	adminToken := issueToken(t, maker, "admin-1", models.RoleAdmin)
	doctorToken := issueToken(t, maker, "doctor-1", models.RoleDoctor)
	receptionistToken := issueToken(t, maker, "recep-1", models.RoleReceptionist)

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
	}{
		{"public root without token", "/", "", http.StatusOK},
		{"missing token", "/doctor/availability", "", http.StatusUnauthorized},
		{"garbage token", "/doctor/availability", "v2.local.garbage", http.StatusUnauthorized},
		{"doctor on doctor path", "/doctor/availability", doctorToken, http.StatusOK},
		{"doctor on admin path", "/admin/users", doctorToken, http.StatusUnauthorized},
		{"admin on admin path", "/admin/users", adminToken, http.StatusOK},
		{"admin on doctor path", "/doctor/availability", adminToken, http.StatusUnauthorized},
		{"receptionist on own path", "/receptionist/patients", receptionistToken, http.StatusOK},
		{"receptionist on doctor path", "/doctor/availability", receptionistToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.path, tt.token)
			if w.Code != tt.wantCode {
				t.Errorf("GET %s = %d, want %d (body %s)", tt.path, w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode == http.StatusUnauthorized && !strings.Contains(w.Body.String(), "Unauthorized") {
				t.Errorf("denied response body = %s, want Unauthorized message", w.Body.String())
			}
		})
	}
}

func TestAccessGateAttachesIdentity(t *testing.T) {
	router, maker := newGateRouter(t)
	token := issueToken(t, maker, "doctor-42", models.RoleDoctor)

	w := doRequest(router, "/doctor/whoami", token)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /doctor/whoami = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "doctor-42") {
		t.Errorf("identity not propagated, body = %s", w.Body.String())
	}
}

func TestAccessGateRejectsWrongKeyToken(t *testing.T) {
	router, _ := newGateRouter(t)

	otherKey := make([]byte, utils.SymmetricKeySize)
	copy(otherKey, "a-completely-different-key------")
	otherMaker, err := utils.NewTokenMaker(otherKey)
	if err != nil {
		t.Fatal(err)
	}
	token := issueToken(t, otherMaker, "admin-1", models.RoleAdmin)

	w := doRequest(router, "/admin/users", token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("token signed with foreign key accepted: %d", w.Code)
	}
}
