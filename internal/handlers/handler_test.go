// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory collaborators and a routed test
// environment shared by the handler tests.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"landingkit/internal/builder"
	"landingkit/internal/content"
	"landingkit/internal/engine"
	"landingkit/internal/leads"
	"landingkit/internal/middleware"
	"landingkit/internal/models"
	"landingkit/internal/pages"
	"landingkit/internal/registry"
)

// fakeStore keeps pages and their owners in memory. It serves the page
// manager, the editor and the public handler.
type fakeStore struct {
	mu    sync.Mutex
	pages map[uuid.UUID]models.Page
	pros  map[uuid.UUID]models.Professional
	saves int
	// onFind runs before each public lookup.
	onFind func(slug string)
}

func newFakeStore() *fakeStore {
	return &fakeStore{pages: make(map[uuid.UUID]models.Page), pros: make(map[uuid.UUID]models.Professional)}
}

func (f *fakeStore) Create(_ context.Context, p *models.Page) (*models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := *p
	out.ID = uuid.New()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.pages[out.ID] = out
	return &out, nil
}

func (f *fakeStore) Delete(_ context.Context, userID, id uuid.UUID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pages[id]
	if !ok || p.UserID != userID {
		return "", fmt.Errorf("page %s: %w", id, models.ErrNotFound)
	}
	delete(f.pages, id)
	return p.CustomUsername, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.PageSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PageSummary
	for _, p := range f.pages {
		if p.UserID == userID {
			out = append(out, models.PageSummary{Page: p})
		}
	}
	return out, nil
}

func (f *fakeStore) SlugExists(_ context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pages {
		if p.CustomUsername == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) HasTemplate(_ context.Context, userID uuid.UUID, id models.TemplateID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pages {
		if p.UserID == userID && p.TemplateType == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FetchPage(_ context.Context, id uuid.UUID) (*models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pages[id]
	if !ok {
		return nil, fmt.Errorf("page %s: %w", id, models.ErrNotFound)
	}
	return &p, nil
}

func (f *fakeStore) UpdateContent(_ context.Context, id uuid.UUID, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pages[id]
	if !ok {
		return fmt.Errorf("page %s: %w", id, models.ErrNotFound)
	}
	p.Content = raw
	f.pages[id] = p
	f.saves++
	return nil
}

func (f *fakeStore) FindBySlugWithOwner(_ context.Context, slug string) (*models.PageWithOwner, error) {
	if f.onFind != nil {
		f.onFind(slug)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pages {
		if p.CustomUsername == slug {
			return &models.PageWithOwner{Page: p, Owner: f.pros[p.UserID]}, nil
		}
	}
	return nil, nil
}

// put stores a page directly and returns it.
func (f *fakeStore) put(owner models.Professional, id models.TemplateID, slug, raw string) models.Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pros[owner.ID] = owner
	p := models.Page{ID: uuid.New(), UserID: owner.ID, TemplateType: id, CustomUsername: slug, Content: raw}
	f.pages[p.ID] = p
	return p
}

func (f *fakeStore) page(id uuid.UUID) models.Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pages[id]
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	gens        map[string]uint64
	hits        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte), gens: make(map[string]uint64)}
}

func (c *fakeCache) Get(_ context.Context, slug string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[slug]
	if ok {
		c.hits++
	}
	return b, ok
}

func (c *fakeCache) Generation(_ context.Context, slug string) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[slug], true
}

func (c *fakeCache) SetIfCurrent(_ context.Context, slug string, html []byte, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[slug] != gen {
		return false
	}
	c.entries[slug] = html
	return true
}

func (c *fakeCache) Invalidate(_ context.Context, slug string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[slug]++
	delete(c.entries, slug)
	c.invalidated = append(c.invalidated, slug)
	return nil
}

func (c *fakeCache) has(slug string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[slug]
	return ok
}

type fakeLeadStore struct {
	mu    sync.Mutex
	leads []models.Lead
	err   error
}

func (s *fakeLeadStore) Create(_ context.Context, l *models.Lead) (*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := *l
	out.ID = uuid.New()
	s.leads = append(s.leads, out)
	return &out, nil
}

func (s *fakeLeadStore) ListByProfessional(_ context.Context, professionalID uuid.UUID, limit int) ([]models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Lead
	for i := len(s.leads) - 1; i >= 0 && len(out) < limit; i-- {
		if s.leads[i].ProfessionalID == professionalID {
			out = append(out, s.leads[i])
		}
	}
	return out, nil
}

func (s *fakeLeadStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.leads)
}

type fakeUploader struct {
	contentType string
	body        string
	deleted     []string
}

func (u *fakeUploader) UploadHeroImage(_ context.Context, pageID uuid.UUID, contentType string, body io.Reader, _ int64) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	u.contentType = contentType
	u.body = string(b)
	return "https://cdn.example.test/hero/" + pageID.String() + "/image.png", nil
}

func (u *fakeUploader) DeleteURL(_ context.Context, rawURL string) error {
	u.deleted = append(u.deleted, rawURL)
	return nil
}

var errLeadStoreDown = errors.New("lead store down")

// testEnv wires the handlers to in-memory collaborators behind a chi
// router shaped like the production one.
type testEnv struct {
	store     *fakeStore
	cache     *fakeCache
	leadStore *fakeLeadStore
	sessions  *builder.Sessions
	uploader  *fakeUploader
	pro       models.Professional
	router    chi.Router
}

// professionalHeader lets a request act as another professional.
const professionalHeader = "X-Test-Professional"

func newTestEnv(t *testing.T, redirectURL string) *testEnv {
	t.Helper()
	reg := registry.New()
	env := &testEnv{
		store:     newFakeStore(),
		cache:     newFakeCache(),
		leadStore: &fakeLeadStore{},
		uploader:  &fakeUploader{},
		pro:       models.Professional{ID: uuid.New(), Username: "jane", DisplayName: "Jane Doe", Email: "jane@example.test"},
	}
	env.sessions = builder.NewSessions(builder.Deps{
		Store:     env.store,
		Templates: reg,
		Delay:     time.Hour,
		OnSaved: func(p models.Page) {
			env.cache.Invalidate(context.Background(), p.CustomUsername)
		},
	})
	t.Cleanup(func() { env.sessions.CloseAll(context.Background()) })

	eng := engine.MustNew()
	manager := pages.NewManager(env.store, reg, env.cache, "https://pages.example.test")
	leadService := leads.NewService(env.leadStore, redirectURL)
	public := NewPublic(eng, env.store, reg, leadService, env.cache)
	pageAPI := NewPages(manager, reg, env.sessions)
	editorAPI := NewEditor(env.sessions, eng, env.uploader)
	leadAPI := NewLeads(leadService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				pro := env.pro
				if id := r.Header.Get(professionalHeader); id != "" {
					pro = models.Professional{ID: uuid.MustParse(id), Username: "other"}
				}
				next.ServeHTTP(w, r.WithContext(middleware.WithProfessional(r.Context(), &pro)))
			})
		})
		r.Get("/templates", pageAPI.Templates)
		r.Get("/pages", pageAPI.List)
		r.Post("/pages", pageAPI.Create)
		r.Delete("/pages/{id}", pageAPI.Delete)
		r.Get("/leads", leadAPI.List)
		r.Route("/pages/{id}/editor", func(r chi.Router) {
			r.Post("/", editorAPI.Open)
			r.Get("/", editorAPI.Snapshot)
			r.Patch("/", editorAPI.Edit)
			r.Delete("/", editorAPI.Close)
			r.Post("/save", editorAPI.Save)
			r.Post("/image", editorAPI.UploadImage)
			r.Get("/preview", editorAPI.Preview)
		})
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF(false))
		r.Get("/{slug}", public.Page)
		r.Post("/{slug}/lead", public.SubmitLead)
	})
	env.router = r
	return env
}

// seedPage stores a page of template id with its default content.
func (env *testEnv) seedPage(t *testing.T, id models.TemplateID, slug string) models.Page {
	t.Helper()
	tmpl, err := registry.New().Lookup(id)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	raw, err := content.Encode(content.Seed(tmpl))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return env.store.put(env.pro, id, slug, raw)
}

func bodyContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body is missing %q", want)
		}
	}
}
