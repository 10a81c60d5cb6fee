// README: Profile self-service handler tests.
package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"swiftdrop/internal/http/handlers"
	"swiftdrop/internal/http/middleware"
	"swiftdrop/internal/modules/profile"
	"swiftdrop/internal/types"
)

// editableProfiles is a map-backed stand-in for the profile store.
type editableProfiles struct {
	mu       sync.Mutex
	profiles map[types.ID]profile.Profile
}

func (e *editableProfiles) Get(_ context.Context, id types.ID) (*profile.Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.profiles[id]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return &p, nil
}

func (e *editableProfiles) UpdateContact(_ context.Context, id types.ID, fullName, phone string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.profiles[id]
	if !ok {
		return profile.ErrNotFound
	}
	p.FullName = fullName
	p.PhoneNumber = phone
	e.profiles[id] = p
	return nil
}

func newProfileRouter(t *testing.T, store *editableProfiles) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := sessionTable{
		"tok-cust1": {UserID: "cust1", Role: profile.RoleCustomer},
	}
	h := handlers.NewProfileHandler(store)
	r := gin.New()
	authed := r.Group("", middleware.Auth(sessions))
	authed.GET("/profiles/me", h.Me)
	authed.PUT("/profiles/me", h.UpdateMe)
	return r
}

func seedProfiles() *editableProfiles {
	return &editableProfiles{profiles: map[types.ID]profile.Profile{
		"cust1": {ID: "cust1", Role: profile.RoleCustomer, FullName: "Ada Obi", PhoneNumber: "+2348011111111"},
	}}
}

func TestProfileMe(t *testing.T) {
	r := newProfileRouter(t, seedProfiles())

	w := do(r, http.MethodGet, "/profiles/me", "tok-cust1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}
	var p profile.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != "cust1" || p.FullName != "Ada Obi" {
		t.Errorf("profile = %+v", p)
	}

	if w := do(r, http.MethodGet, "/profiles/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous me: %d, want 401", w.Code)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	store := seedProfiles()
	r := newProfileRouter(t, store)

	// sending only the phone keeps the name
	w := do(r, http.MethodPut, "/profiles/me", "tok-cust1", map[string]string{"phone_number": "+2348099999999"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	var p profile.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.FullName != "Ada Obi" || p.PhoneNumber != "+2348099999999" {
		t.Errorf("after partial update: %+v", p)
	}

	got := store.profiles["cust1"]
	if got.FullName != "Ada Obi" || got.PhoneNumber != "+2348099999999" {
		t.Errorf("stored profile = %+v", got)
	}

	// both fields at once
	w = do(r, http.MethodPut, "/profiles/me", "tok-cust1", map[string]string{
		"full_name":    "Ada Obi-Eze",
		"phone_number": "+2348022222222",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("full update: %d", w.Code)
	}
	got = store.profiles["cust1"]
	if got.FullName != "Ada Obi-Eze" || got.PhoneNumber != "+2348022222222" {
		t.Errorf("stored profile = %+v", got)
	}
}

func TestUpdateProfileRejectsEmpty(t *testing.T) {
	store := seedProfiles()
	r := newProfileRouter(t, store)

	if w := do(r, http.MethodPut, "/profiles/me", "tok-cust1", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("empty update: %d, want 400", w.Code)
	}
	if got := store.profiles["cust1"]; got.FullName != "Ada Obi" {
		t.Errorf("profile changed on rejected update: %+v", got)
	}
}
