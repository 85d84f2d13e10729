package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardenhq/gardenapi/internal/core/auth"
	"github.com/gardenhq/gardenapi/internal/core/domain"
	"github.com/gardenhq/gardenapi/internal/shell/store"
)

// =============================================================================
// Test Helpers
// =============================================================================

type testAPI struct {
	handler http.Handler
	store   store.Store
	tokens  *auth.TokenIssuer
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})

	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	handler := SetupAPI(APIConfig{
		Store:  s,
		Tokens: tokens,
	})

	return &testAPI{handler: handler, store: s, tokens: tokens}
}

// newUser creates an account directly in the store and returns it with a
// valid bearer token.
func (a *testAPI) newUser(t *testing.T, username, email string, admin bool) (*domain.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("password1")
	require.NoError(t, err)

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	require.NoError(t, a.store.CreateUser(t.Context(), user))

	token, err := a.tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (a *testAPI) newGarden(t *testing.T, name string, ownerID int) *domain.Garden {
	t.Helper()

	garden := &domain.Garden{
		Name:         name,
		Description:  "a test garden",
		CreationDate: domain.DateOnly(time.Now()),
		UserID:       ownerID,
	}
	require.NoError(t, a.store.CreateGarden(t.Context(), garden))
	return garden
}

func (a *testAPI) newPlant(t *testing.T, name string) *domain.Plant {
	t.Helper()

	plant := &domain.Plant{
		Name:       name,
		Genus:      "Testus",
		Watering:   domain.WateringFrequent,
		GrowthRate: domain.GrowthHigh,
	}
	require.NoError(t, a.store.CreatePlant(t.Context(), plant))
	return plant
}

// do performs a request against the router. A non-empty token is sent as
// a bearer credential; a non-nil body is JSON-encoded.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

// =============================================================================
// Root Tests
// =============================================================================

func TestWelcome(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, "GET", "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Welcome to the Virtual Garden API! Create your dream garden with ease", body["message"])
}

func TestHealth(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestOpenAPISpec(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, "GET", "/openapi.json", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "3.0.3", body["openapi"])
}

// =============================================================================
// Register Tests
// =============================================================================

func TestRegister(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, "POST", "/auth/register", "", map[string]string{
		"user_name": "User1",
		"email":     "user1@email.com",
		"password":  "user1pw",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "User1", body["user_name"])
	assert.Equal(t, "user1@email.com", body["email"])
	assert.NotZero(t, body["id"])
	assert.NotContains(t, body, "password")
}

func TestRegister_ValidationErrors(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, "POST", "/auth/register", "", map[string]string{
		"user_name": "ab",
		"email":     "not-an-email",
		"password":  "short",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body["error"], 3)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	api := setupTestAPI(t)
	api.newUser(t, "User1", "user1@email.com", false)

	rec := api.do(t, "POST", "/auth/register", "", map[string]string{
		"user_name": "User2",
		"email":     "user1@email.com",
		"password":  "user2pw",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// =============================================================================
// Login Tests
// =============================================================================

func TestLogin(t *testing.T) {
	api := setupTestAPI(t)
	api.newUser(t, "User1", "user1@email.com", false)

	rec := api.do(t, "POST", "/auth/login", "", map[string]string{
		"email":    "user1@email.com",
		"password": "password1",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "User1", body["user_name"])
	assert.Equal(t, "user1@email.com", body["email"])
	assert.NotEmpty(t, body["token"])

	// The issued token works on a protected route.
	token := body["token"].(string)
	rec = api.do(t, "POST", "/garden/", token, map[string]string{"garden_name": "My Garden"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	api := setupTestAPI(t)
	api.newUser(t, "User1", "user1@email.com", false)

	rec := api.do(t, "POST", "/auth/login", "", map[string]string{
		"email":    "user1@email.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, rec)["error"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, "POST", "/auth/login", "", map[string]string{
		"email":    "nobody@email.com",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, rec)["error"])
}

func TestLogin_MissingCredentials(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, "POST", "/auth/login", "", map[string]string{"email": "user1@email.com"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Please provide your email and password", decodeBody(t, rec)["error"])
}

// =============================================================================
// User Management Tests
// =============================================================================

func TestListUsers_AdminOnly(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.newUser(t, "Admin1", "admin@admin.com", true)
	_, userToken := api.newUser(t, "User1", "user1@email.com", false)

	rec := api.do(t, "GET", "/auth/user", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to perform action", decodeBody(t, rec)["error"])

	rec = api.do(t, "GET", "/auth/user", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decodeList(t, rec)
	assert.Len(t, users, 2)
	assert.NotContains(t, users[0], "password")
}

func TestGetUser_AdminOnly(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.newUser(t, "Admin1", "admin@admin.com", true)
	user, userToken := api.newUser(t, "User1", "user1@email.com", false)
	api.newGarden(t, "Garden1", user.ID)

	rec := api.do(t, "GET", fmt.Sprintf("/auth/user/%d", user.ID), userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, "GET", fmt.Sprintf("/auth/user/%d", user.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User1", body["user_name"])
	gardens := body["gardens"].([]any)
	require.Len(t, gardens, 1)

	// A garden embedded in its owner omits the redundant owner embed
	// but keeps its children.
	embedded := gardens[0].(map[string]any)
	assert.Equal(t, "Garden1", embedded["garden_name"])
	assert.NotContains(t, embedded, "user")
	assert.Contains(t, embedded, "garden_plants")
	assert.Contains(t, embedded, "comments")
}

func TestGetUser_NotFound(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.newUser(t, "Admin1", "admin@admin.com", true)

	rec := api.do(t, "GET", "/auth/user/999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User id:'999' not found", decodeBody(t, rec)["error"])
}

func TestUpdateUser_Self(t *testing.T) {
	api := setupTestAPI(t)
	user, token := api.newUser(t, "User1", "user1@email.com", false)

	rec := api.do(t, "PATCH", fmt.Sprintf("/auth/user/%d", user.ID), token, map[string]string{
		"email": "renamed@email.com",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "renamed@email.com", body["email"])
	assert.Equal(t, "User1", body["user_name"])
}

func TestUpdateUser_OtherAccountForbidden(t *testing.T) {
	api := setupTestAPI(t)
	target, _ := api.newUser(t, "User1", "user1@email.com", false)
	_, otherToken := api.newUser(t, "User2", "user2@email.com", false)

	rec := api.do(t, "PATCH", fmt.Sprintf("/auth/user/%d", target.ID), otherToken, map[string]string{
		"email": "hijacked@email.com",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateUser_AdminFlag(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.newUser(t, "Admin1", "admin@admin.com", true)
	user, userToken := api.newUser(t, "User1", "user1@email.com", false)

	// The account owner may not elevate themselves.
	rec := api.do(t, "PATCH", fmt.Sprintf("/auth/user/%d", user.ID), userToken, map[string]any{
		"is_admin": true,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to modify 'admin' status", decodeBody(t, rec)["error"])

	got, err := api.store.GetUser(t.Context(), user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAdmin)

	// An admin may.
	rec = api.do(t, "PATCH", fmt.Sprintf("/auth/user/%d", user.ID), adminToken, map[string]any{
		"is_admin": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["is_admin"])
}

func TestDeleteUser(t *testing.T) {
	api := setupTestAPI(t)
	user, token := api.newUser(t, "User1", "user1@email.com", false)

	rec := api.do(t, "DELETE", fmt.Sprintf("/auth/user/%d", user.ID), token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User: 'user1@email.com' successfully deleted.", decodeBody(t, rec)["message"])

	_, err := api.store.GetUser(t.Context(), user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// =============================================================================
// Garden Tests
// =============================================================================

func TestCreateGarden(t *testing.T) {
	api := setupTestAPI(t)
	_, token := api.newUser(t, "User1", "user1@email.com", false)

	rec := api.do(t, "POST", "/garden/", token, map[string]string{
		"garden_name": "Garden1",
		"description": "This is garden1 description",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Garden1", body["garden_name"])
	assert.Equal(t, "This is garden1 description", body["description"])
	owner := body["user"].(map[string]any)
	assert.Equal(t, "User1", owner["user_name"])
}

func TestCreateGarden_RequiresToken(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, "POST", "/garden/", "", map[string]string{"garden_name": "Garden1"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or missing JWT", decodeBody(t, rec)["error"])
}

func TestCreateGarden_Invalid(t *testing.T) {
	api := setupTestAPI(t)
	_, token := api.newUser(t, "User1", "user1@email.com", false)

	rec := api.do(t, "POST", "/garden/", token, map[string]string{"garden_name": ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListGardens_Public(t *testing.T) {
	api := setupTestAPI(t)
	user, _ := api.newUser(t, "User1", "user1@email.com", false)
	api.newGarden(t, "Garden1", user.ID)
	api.newGarden(t, "Garden2", user.ID)

	rec := api.do(t, "GET", "/garden/", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	gardens := decodeList(t, rec)
	require.Len(t, gardens, 2)
	assert.Equal(t, "Garden2", gardens[0]["garden_name"])
}

func TestGetGarden_WithChildren(t *testing.T) {
	api := setupTestAPI(t)
	user, _ := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", user.ID)
	plant := api.newPlant(t, "Azalea")

	gp := &domain.GardenPlant{
		Color: domain.ColorGreen, Position: domain.PositionNorth, Size: domain.SizeSmall,
		GardenID: garden.ID, PlantID: plant.ID,
	}
	require.NoError(t, api.store.CreateGardenPlant(t.Context(), gp))

	comment := &domain.Comment{
		Message: "This is comment1", CommentDate: domain.DateOnly(time.Now()),
		UserID: user.ID, GardenID: garden.ID,
	}
	require.NoError(t, api.store.CreateComment(t.Context(), comment))

	rec := api.do(t, "GET", fmt.Sprintf("/garden/%d", garden.ID), "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Garden1", body["garden_name"])
	assert.Len(t, body["garden_plants"].([]any), 1)
	assert.Len(t, body["comments"].([]any), 1)
}

func TestGetGarden_NotFound(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, "GET", "/garden/999", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Garden id:'999' not found", decodeBody(t, rec)["error"])
}

func TestUpdateGarden_OwnerAndAdmin(t *testing.T) {
	api := setupTestAPI(t)
	owner, ownerToken := api.newUser(t, "User1", "user1@email.com", false)
	_, otherToken := api.newUser(t, "User2", "user2@email.com", false)
	_, adminToken := api.newUser(t, "Admin1", "admin@admin.com", true)
	garden := api.newGarden(t, "Garden1", owner.ID)

	path := fmt.Sprintf("/garden/%d", garden.ID)

	rec := api.do(t, "PATCH", path, otherToken, map[string]string{"description": "hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to perform action", decodeBody(t, rec)["error"])

	got, err := api.store.GetGarden(t.Context(), garden.ID)
	require.NoError(t, err)
	assert.Equal(t, "a test garden", got.Description)

	rec = api.do(t, "PATCH", path, ownerToken, map[string]string{"description": "owner edit"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner edit", decodeBody(t, rec)["description"])

	rec = api.do(t, "PATCH", path, adminToken, map[string]string{"description": "admin edit"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin edit", decodeBody(t, rec)["description"])
}

func TestDeleteGarden(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)

	rec := api.do(t, "DELETE", fmt.Sprintf("/garden/%d", garden.ID), token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Garden 'Garden1' deleted successfully", decodeBody(t, rec)["message"])
}

// =============================================================================
// Plant Tests
// =============================================================================

func TestCreatePlant_AdminOnly(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.newUser(t, "Admin1", "admin@admin.com", true)
	_, userToken := api.newUser(t, "User1", "user1@email.com", false)

	body := map[string]string{
		"plant_name":  "Ginkgo",
		"genus":       "Ginkgo Biloba",
		"watering":    "Frequent",
		"growth_rate": "Moderate",
	}

	rec := api.do(t, "POST", "/plant/", userToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, "POST", "/plant/", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeBody(t, rec)
	assert.Equal(t, "Ginkgo", resp["plant_name"])
	assert.Equal(t, "Moderate", resp["growth_rate"])
}

func TestCreatePlant_EnumDefaults(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.newUser(t, "Admin1", "admin@admin.com", true)

	rec := api.do(t, "POST", "/plant/", adminToken, map[string]string{
		"plant_name": "Azalea",
		"genus":      "Rhododendron",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeBody(t, rec)
	assert.Equal(t, "Frequent", resp["watering"])
	assert.Equal(t, "High", resp["growth_rate"])
}

func TestListPlants_Public(t *testing.T) {
	api := setupTestAPI(t)
	api.newPlant(t, "Azalea")

	rec := api.do(t, "GET", "/plant/", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	plants := decodeList(t, rec)
	require.Len(t, plants, 1)
	assert.Equal(t, "Azalea", plants[0]["plant_name"])
	// The collection view omits placements.
	assert.NotContains(t, plants[0], "garden_plants")
}

func TestGetPlant_EmbedsPlacements(t *testing.T) {
	api := setupTestAPI(t)
	owner, _ := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)
	plant := api.newPlant(t, "Azalea")

	gp := &domain.GardenPlant{
		Color: domain.ColorGreen, Position: domain.PositionNorth, Size: domain.SizeSmall,
		GardenID: garden.ID, PlantID: plant.ID,
	}
	require.NoError(t, api.store.CreateGardenPlant(t.Context(), gp))

	rec := api.do(t, "GET", fmt.Sprintf("/plant/%d", plant.ID), "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["garden_plants"].([]any), 1)
}

func TestDeletePlant(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.newUser(t, "Admin1", "admin@admin.com", true)
	plant := api.newPlant(t, "Azalea")

	rec := api.do(t, "DELETE", fmt.Sprintf("/plant/%d", plant.ID), adminToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Plant 'Azalea' deleted successfully", decodeBody(t, rec)["message"])
}

// =============================================================================
// Garden Plant Tests
// =============================================================================

func TestCreateGardenPlant(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)
	plant := api.newPlant(t, "Azalea")

	rec := api.do(t, "POST", fmt.Sprintf("/garden/%d/plant/%d", garden.ID, plant.ID), token, map[string]string{
		"position": "North",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "North", body["position"])
	assert.Equal(t, "Green", body["color"])
	assert.Equal(t, "Medium", body["size"])
	embedded := body["plant"].(map[string]any)
	assert.Equal(t, "Azalea", embedded["plant_name"])
}

func TestCreateGardenPlant_PositionConflict(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)
	plant := api.newPlant(t, "Azalea")

	path := fmt.Sprintf("/garden/%d/plant/%d", garden.ID, plant.ID)

	rec := api.do(t, "POST", path, token, map[string]string{"position": "North"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, "POST", path, token, map[string]string{"position": "North"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Position 'North' already been occupied", decodeBody(t, rec)["error"])
}

func TestCreateGardenPlant_MissingPosition(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)
	plant := api.newPlant(t, "Azalea")

	rec := api.do(t, "POST", fmt.Sprintf("/garden/%d/plant/%d", garden.ID, plant.ID), token, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateGardenPlant_UnknownPlant(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)

	rec := api.do(t, "POST", fmt.Sprintf("/garden/%d/plant/999", garden.ID), token, map[string]string{
		"position": "North",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Plant id:'999' not found", decodeBody(t, rec)["error"])
}

func TestUpdateGardenPlant_Reposition(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)
	plant := api.newPlant(t, "Azalea")

	north := &domain.GardenPlant{
		Color: domain.ColorGreen, Position: domain.PositionNorth, Size: domain.SizeSmall,
		GardenID: garden.ID, PlantID: plant.ID,
	}
	require.NoError(t, api.store.CreateGardenPlant(t.Context(), north))
	south := &domain.GardenPlant{
		Color: domain.ColorGreen, Position: domain.PositionSouth, Size: domain.SizeSmall,
		GardenID: garden.ID, PlantID: plant.ID,
	}
	require.NoError(t, api.store.CreateGardenPlant(t.Context(), south))

	path := fmt.Sprintf("/garden/%d/garden_plant/%d", garden.ID, north.ID)

	// Moving onto an occupied slot is rejected.
	rec := api.do(t, "PATCH", path, token, map[string]string{"position": "South"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Re-sending the current position is a no-op, not a conflict.
	rec = api.do(t, "PATCH", path, token, map[string]string{"position": "North", "color": "Red"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "North", body["position"])
	assert.Equal(t, "Red", body["color"])

	// Moving to a free slot works.
	rec = api.do(t, "PATCH", path, token, map[string]string{"position": "East"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "East", decodeBody(t, rec)["position"])
}

func TestUpdateGardenPlant_WrongGarden(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden1 := api.newGarden(t, "Garden1", owner.ID)
	garden2 := api.newGarden(t, "Garden2", owner.ID)
	plant := api.newPlant(t, "Azalea")

	gp := &domain.GardenPlant{
		Color: domain.ColorGreen, Position: domain.PositionNorth, Size: domain.SizeSmall,
		GardenID: garden1.ID, PlantID: plant.ID,
	}
	require.NoError(t, api.store.CreateGardenPlant(t.Context(), gp))

	rec := api.do(t, "PATCH", fmt.Sprintf("/garden/%d/garden_plant/%d", garden2.ID, gp.ID), token,
		map[string]string{"color": "Red"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("Garden plant id:'%d' not found for garden id:'%d'", gp.ID, garden2.ID),
		decodeBody(t, rec)["error"])
}

func TestListGardenPlants(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)
	plant := api.newPlant(t, "Azalea")

	gp := &domain.GardenPlant{
		Color: domain.ColorGreen, Position: domain.PositionNorth, Size: domain.SizeSmall,
		GardenID: garden.ID, PlantID: plant.ID,
	}
	require.NoError(t, api.store.CreateGardenPlant(t.Context(), gp))

	rec := api.do(t, "GET", fmt.Sprintf("/garden/%d/garden_plants", garden.ID), token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)
}

func TestListGardenPlants_Public(t *testing.T) {
	api := setupTestAPI(t)
	owner, _ := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)
	plant := api.newPlant(t, "Azalea")

	gp := &domain.GardenPlant{
		Color: domain.ColorGreen, Position: domain.PositionNorth, Size: domain.SizeSmall,
		GardenID: garden.ID, PlantID: plant.ID,
	}
	require.NoError(t, api.store.CreateGardenPlant(t.Context(), gp))

	// Visitors can browse placements without credentials.
	rec := api.do(t, "GET", fmt.Sprintf("/garden/%d/garden_plants", garden.ID), "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	placements := decodeList(t, rec)
	require.Len(t, placements, 1)
	assert.Equal(t, "North", placements[0]["position"])
}

func TestDeleteGardenPlant(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)
	plant := api.newPlant(t, "Azalea")

	gp := &domain.GardenPlant{
		Color: domain.ColorGreen, Position: domain.PositionNorth, Size: domain.SizeSmall,
		GardenID: garden.ID, PlantID: plant.ID,
	}
	require.NoError(t, api.store.CreateGardenPlant(t.Context(), gp))

	rec := api.do(t, "DELETE", fmt.Sprintf("/garden/%d/garden_plant/%d", garden.ID, gp.ID), token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fmt.Sprintf("Garden plant id:'%d' deleted successfully", gp.ID), decodeBody(t, rec)["message"])
}

// =============================================================================
// Comment Tests
// =============================================================================

func TestCreateComment(t *testing.T) {
	api := setupTestAPI(t)
	owner, _ := api.newUser(t, "User1", "user1@email.com", false)
	_, visitorToken := api.newUser(t, "User2", "user2@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)

	// Any authenticated user may comment, not just the owner.
	rec := api.do(t, "POST", fmt.Sprintf("/garden/%d/comment/", garden.ID), visitorToken, map[string]string{
		"message": "This is comment1",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "This is comment1", body["message"])
	author := body["user"].(map[string]any)
	assert.Equal(t, "User2", author["user_name"])
}

func TestCreateComment_Invalid(t *testing.T) {
	api := setupTestAPI(t)
	owner, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", owner.ID)

	rec := api.do(t, "POST", fmt.Sprintf("/garden/%d/comment/", garden.ID), token, map[string]string{
		"message": "1st!",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateComment_AuthorOnly(t *testing.T) {
	api := setupTestAPI(t)
	author, authorToken := api.newUser(t, "User1", "user1@email.com", false)
	_, otherToken := api.newUser(t, "User2", "user2@email.com", false)
	_, adminToken := api.newUser(t, "Admin1", "admin@admin.com", true)
	garden := api.newGarden(t, "Garden1", author.ID)

	comment := &domain.Comment{
		Message: "This is comment1", CommentDate: domain.DateOnly(time.Now()),
		UserID: author.ID, GardenID: garden.ID,
	}
	require.NoError(t, api.store.CreateComment(t.Context(), comment))

	path := fmt.Sprintf("/garden/%d/comment/%d", garden.ID, comment.ID)

	rec := api.do(t, "PATCH", path, otherToken, map[string]string{"message": "Defaced message"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, "PATCH", path, authorToken, map[string]string{"message": "Edited by author"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Edited by author", decodeBody(t, rec)["message"])

	rec = api.do(t, "PATCH", path, adminToken, map[string]string{"message": "Edited by admin"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteComment(t *testing.T) {
	api := setupTestAPI(t)
	author, token := api.newUser(t, "User1", "user1@email.com", false)
	garden := api.newGarden(t, "Garden1", author.ID)

	comment := &domain.Comment{
		Message: "This is comment1", CommentDate: domain.DateOnly(time.Now()),
		UserID: author.ID, GardenID: garden.ID,
	}
	require.NoError(t, api.store.CreateComment(t.Context(), comment))

	rec := api.do(t, "DELETE", fmt.Sprintf("/garden/%d/comment/%d", garden.ID, comment.ID), token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Comment message:'This is comment1' was deleted successfully", decodeBody(t, rec)["message"])
}

func TestComment_WrongGarden(t *testing.T) {
	api := setupTestAPI(t)
	author, token := api.newUser(t, "User1", "user1@email.com", false)
	garden1 := api.newGarden(t, "Garden1", author.ID)
	garden2 := api.newGarden(t, "Garden2", author.ID)

	comment := &domain.Comment{
		Message: "This is comment1", CommentDate: domain.DateOnly(time.Now()),
		UserID: author.ID, GardenID: garden1.ID,
	}
	require.NoError(t, api.store.CreateComment(t.Context(), comment))

	rec := api.do(t, "PATCH", fmt.Sprintf("/garden/%d/comment/%d", garden2.ID, comment.ID), token,
		map[string]string{"message": "Moved message"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("Comment id:'%d' not found for garden id:'%d'", comment.ID, garden2.ID),
		decodeBody(t, rec)["error"])
}
