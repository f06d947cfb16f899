package masterdata

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

// fakeNameStore is an in-memory NameStore double.
type fakeNameStore struct {
	rows   map[int64]*NameRow
	nextID int64
}

func newFakeNameStore() *fakeNameStore {
	return &fakeNameStore{rows: map[int64]*NameRow{}, nextID: 1}
}

func (f *fakeNameStore) List(ctx context.Context) ([]NameRow, error) {
	out := []NameRow{}
	for _, r := range f.rows {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeNameStore) Get(ctx context.Context, id int64) (*NameRow, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (f *fakeNameStore) Create(ctx context.Context, req *CreateNameRequest) (*NameRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, r := range f.rows {
		if r.Name == req.Name {
			return nil, ErrNameTaken
		}
	}
	row := &NameRow{ID: f.nextID, Name: req.Name, CreatedAt: time.Now().UTC()}
	f.rows[row.ID] = row
	f.nextID++
	return row, nil
}

func (f *fakeNameStore) Update(ctx context.Context, id int64, req *UpdateNameRequest) (*NameRow, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		r.Name = *req.Name
	}
	return r, nil
}

func (f *fakeNameStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func newNameRouter(h *NameTableHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/audiences", h.List)
	r.Post("/audiences", h.Create)
	r.Get("/audiences/{id}", h.Get)
	r.Put("/audiences/{id}", h.Update)
	r.Delete("/audiences/{id}", h.Delete)
	return r
}

func TestNameTableHandler_CreateDuplicateIs409(t *testing.T) {
	store := newFakeNameStore()
	h := NewNameTableHandler(store, "audiences", logging.Default())
	router := newNameRouter(h)

	body := []byte(`{"name":"Students"}`)
	req := httptest.NewRequest(http.MethodPost, "/audiences", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d, want 201", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/audiences", bytes.NewReader(body))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409", w.Code)
	}
	if len(store.rows) != 1 {
		t.Errorf("store has %d rows, want 1 (no row created on conflict)", len(store.rows))
	}
}

func TestNameTableHandler_CreateMissingNameIs400(t *testing.T) {
	h := NewNameTableHandler(newFakeNameStore(), "audiences", logging.Default())
	router := newNameRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/audiences", strings.NewReader(`{"name":""}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestNameTableHandler_GetUnknownIs404(t *testing.T) {
	h := NewNameTableHandler(newFakeNameStore(), "audiences", logging.Default())
	router := newNameRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/audiences/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
}

func TestNameTableHandler_InvalidIDIs400(t *testing.T) {
	h := NewNameTableHandler(newFakeNameStore(), "audiences", logging.Default())
	router := newNameRouter(h)

	req := httptest.NewRequest(http.MethodDelete, "/audiences/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestNameTableHandler_UpdateAndDelete(t *testing.T) {
	store := newFakeNameStore()
	h := NewNameTableHandler(store, "audiences", logging.Default())
	router := newNameRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/audiences", strings.NewReader(`{"name":"Tourists"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/audiences/1", strings.NewReader(`{"name":"Visitors"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", w.Code)
	}
	if store.rows[1].Name != "Visitors" {
		t.Errorf("name = %q, want Visitors", store.rows[1].Name)
	}

	req = httptest.NewRequest(http.MethodDelete, "/audiences/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", w.Code)
	}
	if len(store.rows) != 0 {
		t.Error("row should be gone")
	}
}
