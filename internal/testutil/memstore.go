package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/recipebook/recipebook/internal/model"
	"github.com/recipebook/recipebook/internal/repository"
)

// MemStore is an in-memory implementation of the user, recipe, category,
// and meal plan stores. It mirrors the repository's not-found, duplicate,
// and cascade semantics so handler and service tests can run without Postgres.
type MemStore struct {
	mu         sync.Mutex
	users      map[string]*model.User
	recipes    map[string]*model.Recipe
	categories map[string]*model.Category
	plans      map[string]*model.MealPlan
	deleted    map[string]struct{} // user IDs removed by DeleteUser
	writes     int
	FailWith   error // returned by create calls when set
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users:      make(map[string]*model.User),
		recipes:    make(map[string]*model.Recipe),
		categories: make(map[string]*model.Category),
		plans:      make(map[string]*model.MealPlan),
		deleted:    make(map[string]struct{}),
	}
}

func (m *MemStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return repository.ErrUsernameExists
		}
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	m.writes++
	return nil
}

func (m *MemStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *MemStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *MemStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *MemStore) ListUsers(_ context.Context) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) SetUserAdmin(_ context.Context, id string, isAdmin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsAdmin = isAdmin
	m.writes++
	return nil
}

func (m *MemStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	m.writes++
	return nil
}

func (m *MemStore) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	m.deleted[id] = struct{}{}
	for pid, p := range m.plans {
		if p.UserID == id {
			delete(m.plans, pid)
		}
	}
	for _, r := range m.recipes {
		if r.UserID != nil && *r.UserID == id {
			r.UserID = nil
		}
	}
	m.writes++
	return nil
}

func (m *MemStore) CreateRecipe(_ context.Context, recipe *model.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if recipe.CategoryID != nil {
		if _, ok := m.categories[*recipe.CategoryID]; !ok {
			return repository.ErrInvalidCategory
		}
	}
	if recipe.UserID != nil && m.isDeleted(*recipe.UserID) {
		return repository.ErrUserNotFound
	}
	cp := *recipe
	m.recipes[recipe.ID] = &cp
	m.writes++
	return nil
}

func (m *MemStore) GetRecipeByID(_ context.Context, id string) (*model.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.recipes[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, repository.ErrRecipeNotFound
}

func (m *MemStore) RecipeExists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.recipes[id]
	return ok, nil
}

func (m *MemStore) ListRecipes(_ context.Context, filter repository.RecipeFilter) ([]*model.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Recipe, 0)
	for _, r := range m.recipes {
		if filter.CategoryID != "" && (r.CategoryID == nil || *r.CategoryID != filter.CategoryID) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Sort == model.RecipeSortRating {
			ri, rj := ratingOf(out[i]), ratingOf(out[j])
			if ri != rj {
				return ri > rj
			}
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func ratingOf(r *model.Recipe) float64 {
	if r.Rating == nil {
		return -1
	}
	return *r.Rating
}

func (m *MemStore) SearchRecipes(_ context.Context, term string) ([]*model.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	term = strings.ToLower(term)
	out := make([]*model.Recipe, 0)
	for _, r := range m.recipes {
		haystack := strings.ToLower(r.Title + " " + strings.Join(r.Ingredients, " ") + " " + strings.Join(r.Instructions, " "))
		if strings.Contains(haystack, term) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemStore) UpdateRecipe(_ context.Context, recipe *model.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recipes[recipe.ID]; !ok {
		return repository.ErrRecipeNotFound
	}
	cp := *recipe
	m.recipes[recipe.ID] = &cp
	m.writes++
	return nil
}

func (m *MemStore) RateRecipe(_ context.Context, id string, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return repository.ErrRecipeNotFound
	}
	r.Rating = &rating
	m.writes++
	return nil
}

func (m *MemStore) DeleteRecipe(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recipes[id]; !ok {
		return repository.ErrRecipeNotFound
	}
	delete(m.recipes, id)
	for _, p := range m.plans {
		if p.RecipeID != nil && *p.RecipeID == id {
			p.RecipeID = nil
		}
	}
	m.writes++
	return nil
}

func (m *MemStore) CreateCategory(_ context.Context, category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *category
	m.categories[category.ID] = &cp
	m.writes++
	return nil
}

func (m *MemStore) GetCategoryByID(_ context.Context, id string) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *MemStore) CategoryExists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.categories[id]
	return ok, nil
}

func (m *MemStore) ListCategories(_ context.Context) ([]*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Category, 0, len(m.categories))
	for _, c := range m.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemStore) UpdateCategory(_ context.Context, category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	cp := *category
	m.categories[category.ID] = &cp
	m.writes++
	return nil
}

func (m *MemStore) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	for _, r := range m.recipes {
		if r.CategoryID != nil && *r.CategoryID == id {
			r.CategoryID = nil
		}
	}
	m.writes++
	return nil
}

func (m *MemStore) CreateMealPlan(_ context.Context, plan *model.MealPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isDeleted(plan.UserID) {
		return repository.ErrUserNotFound
	}
	cp := *plan
	m.plans[plan.ID] = &cp
	m.writes++
	return nil
}

func (m *MemStore) GetMealPlan(_ context.Context, id, userID string) (*model.MealPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrMealPlanNotFound
	}
	return m.withTitle(p), nil
}

func (m *MemStore) ListMealPlans(_ context.Context, userID string) ([]*model.MealPlan, error) {
	return m.listPlans(userID, func(*model.MealPlan) bool { return true }), nil
}

func (m *MemStore) ListMealPlansByDateRange(_ context.Context, userID string, start, end time.Time) ([]*model.MealPlan, error) {
	return m.listPlans(userID, func(p *model.MealPlan) bool {
		return !p.Date.Before(start) && !p.Date.After(end)
	}), nil
}

func (m *MemStore) listPlans(userID string, keep func(*model.MealPlan) bool) []*model.MealPlan {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.MealPlan, 0)
	for _, p := range m.plans {
		if p.UserID == userID && keep(p) {
			out = append(out, m.withTitle(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *MemStore) withTitle(p *model.MealPlan) *model.MealPlan {
	cp := *p
	cp.RecipeTitle = nil
	if p.RecipeID != nil {
		if r, ok := m.recipes[*p.RecipeID]; ok {
			title := r.Title
			cp.RecipeTitle = &title
		}
	}
	return &cp
}

func (m *MemStore) UpdateMealPlan(_ context.Context, plan *model.MealPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[plan.ID]
	if !ok || p.UserID != plan.UserID {
		return repository.ErrMealPlanNotFound
	}
	cp := *plan
	m.plans[plan.ID] = &cp
	m.writes++
	return nil
}

func (m *MemStore) DeleteMealPlan(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[id]
	if !ok || p.UserID != userID {
		return repository.ErrMealPlanNotFound
	}
	delete(m.plans, id)
	m.writes++
	return nil
}

// Writes returns the number of successful mutations.
func (m *MemStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// SetRecipeCreatedAt overrides a recipe's creation time.
func (m *MemStore) SetRecipeCreatedAt(id string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.recipes[id]; ok {
		r.CreatedAt = at
	}
}

// isDeleted reports whether id belonged to a user removed by DeleteUser.
// Writes referencing such a user fail the way the foreign key would.
// Callers hold m.mu.
func (m *MemStore) isDeleted(id string) bool {
	_, ok := m.deleted[id]
	return ok
}
