package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/http/handler"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/internal/service"
	"github.com/ovenledger/bakery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newContactRouter wires the contact routes behind a middleware that
// injects a fixed authenticated owner, the way the real router does
// after token verification.
func newContactRouter(t *testing.T, ownerID uuid.UUID) chi.Router {
	t.Helper()

	db := testutil.SetupTestDB(t)
	svc := service.NewContactService(repository.NewContactRepository(db), zap.NewNop())
	h := handler.NewContactHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithUserContext(req.Context(), &auth.UserContext{
				UserID:      ownerID,
				Email:       "owner@example.com",
				DisplayName: "Owner",
			})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.ListContacts)
		r.Post("/", h.CreateContact)
		r.Get("/{id}", h.GetContact)
		r.Put("/{id}", h.UpdateContact)
		r.Delete("/{id}", h.DeleteContact)
	})
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestContactHandler_CreateAndGet(t *testing.T) {
	router := newContactRouter(t, testutil.NewOwnerID())

	rec := doJSON(t, router, http.MethodPost, "/contacts", domain.CreateContactRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.ContactDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Jane Doe", created.FullName)
	assert.NotEqual(t, uuid.Nil, created.ID)

	rec = doJSON(t, router, http.MethodGet, "/contacts/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched domain.ContactDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "jane@example.com", fetched.Email)
}

func TestContactHandler_Create_ValidationError(t *testing.T) {
	router := newContactRouter(t, testutil.NewOwnerID())

	rec := doJSON(t, router, http.MethodPost, "/contacts", domain.CreateContactRequest{
		LastName: "Doe",
		Email:    "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Errors, "firstName")
	assert.Contains(t, apiErr.Errors, "email")
}

func TestContactHandler_Get_InvalidID(t *testing.T) {
	router := newContactRouter(t, testutil.NewOwnerID())

	rec := doJSON(t, router, http.MethodGet, "/contacts/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactHandler_Get_NotFound(t *testing.T) {
	router := newContactRouter(t, testutil.NewOwnerID())

	rec := doJSON(t, router, http.MethodGet, "/contacts/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestContactHandler_List_Paginates(t *testing.T) {
	router := newContactRouter(t, testutil.NewOwnerID())

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/contacts", domain.CreateContactRequest{
			FirstName: fmt.Sprintf("Contact%d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/contacts?page=1&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.PageSize)
	assert.Equal(t, 2, page.TotalPages)
}

func TestContactHandler_Delete(t *testing.T) {
	router := newContactRouter(t, testutil.NewOwnerID())

	rec := doJSON(t, router, http.MethodPost, "/contacts", domain.CreateContactRequest{FirstName: "Jane"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.ContactDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodDelete, "/contacts/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/contacts/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
