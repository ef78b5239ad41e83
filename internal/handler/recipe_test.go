package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/recipebook/recipebook/internal/handler/dto"
)

const pancakes = `{"title":"Pancakes","ingredients":["flour","milk","eggs"],"instructions":"Mix\nFry","difficulty":"easy","cooking_time":15}`

func TestRecipeHandler_CreateAndGet(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := mustCreate[dto.RecipeResponse](t, env, "/api/recipes", pancakes, "user-1")
	if created.Title != "Pancakes" || len(created.Instructions) != 2 {
		t.Errorf("unexpected recipe %+v", created)
	}
	if created.UserID == nil || *created.UserID != "user-1" {
		t.Errorf("user_id = %v, want user-1", created.UserID)
	}

	rec := env.do(t, http.MethodGet, "/api/recipes/"+created.ID, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeBody[dto.RecipeResponse](t, rec)
	if got.ID != created.ID || got.Difficulty == nil || *got.Difficulty != "easy" {
		t.Errorf("unexpected recipe %+v", got)
	}

	expectError(t, env.do(t, http.MethodGet, "/api/recipes/missing", "", ""), http.StatusNotFound, "Recipe not found")
}

func TestRecipeHandler_Create_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing title", `{"ingredients":["a"],"instructions":["b"]}`, "Missing required fields"},
		{"missing ingredients", `{"title":"x","instructions":["b"]}`, "Missing required fields"},
		{"blank instructions", `{"title":"x","ingredients":"a","instructions":" \n "}`, "Missing required fields"},
		{"bad difficulty", `{"title":"x","ingredients":"a","instructions":"b","difficulty":"extreme"}`, "difficulty must be one of easy, medium, hard"},
		{"negative calories", `{"title":"x","ingredients":"a","instructions":"b","calories":-5}`, "calories must not be negative"},
		{"unknown category", `{"title":"x","ingredients":"a","instructions":"b","category_id":"nope"}`, "Category does not exist"},
		{"malformed json", `{"title":`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			rec := env.do(t, http.MethodPost, "/api/recipes", tt.body, "user-1")
			expectError(t, rec, http.StatusBadRequest, tt.wantMsg)

			if env.store.Writes() != 0 {
				t.Error("invalid recipe must not be written")
			}
		})
	}
}

func TestRecipeHandler_RequiresAuth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	expectError(t, env.do(t, http.MethodPost, "/api/recipes", pancakes, ""), http.StatusUnauthorized, "Access denied. No token provided.")
}

func TestRecipeHandler_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	created := mustCreate[dto.RecipeResponse](t, env, "/api/recipes", pancakes, "user-1")

	rec := env.do(t, http.MethodPut, "/api/recipes/"+created.ID,
		`{"title":"Crepes","ingredients":"flour, milk","instructions":"[\"Mix\",\"Swirl\"]"}`, "user-2")
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	updated := decodeBody[dto.RecipeResponse](t, rec)
	if updated.Title != "Crepes" || strings.Join(updated.Ingredients, "|") != "flour|milk" || updated.Instructions[1] != "Swirl" {
		t.Errorf("unexpected update %+v", updated)
	}

	expectError(t, env.do(t, http.MethodPut, "/api/recipes/missing", pancakes, "user-1"), http.StatusNotFound, "Recipe not found")

	rec = env.do(t, http.MethodDelete, "/api/recipes/"+created.ID, "", "user-1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	expectError(t, env.do(t, http.MethodDelete, "/api/recipes/"+created.ID, "", "user-1"), http.StatusNotFound, "Recipe not found")
}

func TestRecipeHandler_Rate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	created := mustCreate[dto.RecipeResponse](t, env, "/api/recipes", pancakes, "user-1")
	path := "/api/recipes/" + created.ID + "/rate"

	tests := []struct {
		name   string
		body   string
		status int
		want   float64
	}{
		{"number", `{"rating":4.567}`, http.StatusOK, 4.57},
		{"numeric string", `{"rating":"3"}`, http.StatusOK, 3},
		{"upper bound", `{"rating":5}`, http.StatusOK, 5},
		{"too high", `{"rating":5.5}`, http.StatusBadRequest, 0},
		{"negative", `{"rating":-1}`, http.StatusBadRequest, 0},
		{"missing", `{}`, http.StatusBadRequest, 0},
		{"not numeric", `{"rating":"five"}`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		rec := env.do(t, http.MethodPost, path, tt.body, "user-1")
		if rec.Code != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.status)
			continue
		}
		if tt.status != http.StatusOK {
			continue
		}
		body := decodeBody[dto.RateResponse](t, rec)
		if body.ID != created.ID || body.Rating != tt.want {
			t.Errorf("%s: response = %+v, want rating %v", tt.name, body, tt.want)
		}
	}

	got := decodeBody[dto.RecipeResponse](t, env.do(t, http.MethodGet, "/api/recipes/"+created.ID, "", ""))
	if got.Rating == nil || *got.Rating != 5 {
		t.Errorf("persisted rating = %v, want 5", got.Rating)
	}

	expectError(t, env.do(t, http.MethodPost, "/api/recipes/missing/rate", `{"rating":1}`, "user-1"), http.StatusNotFound, "Recipe not found")
}

func TestRecipeHandler_ListSearchAndCategory(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	breakfast := mustCreate[dto.CategoryResponse](t, env, "/api/categories", `{"name":"Breakfast"}`, "user-1")

	mustCreate[dto.RecipeResponse](t, env, "/api/recipes", pancakes, "user-1")
	mustCreate[dto.RecipeResponse](t, env, "/api/recipes",
		`{"title":"Porridge","ingredients":"oats, water","instructions":"Boil","category_id":"`+breakfast.ID+`"}`, "user-1")

	rec := env.do(t, http.MethodGet, "/api/recipes?limit=1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if list := decodeBody[[]dto.RecipeResponse](t, rec); len(list) != 1 {
		t.Errorf("limit=1 returned %d recipes", len(list))
	}

	expectError(t, env.do(t, http.MethodGet, "/api/recipes?limit=zero", "", ""), http.StatusBadRequest, "limit must be a positive integer")
	expectError(t, env.do(t, http.MethodGet, "/api/recipes?sort=random", "", ""), http.StatusBadRequest, "")

	rec = env.do(t, http.MethodGet, "/api/recipes/search?query=OATS", "", "")
	found := decodeBody[[]dto.RecipeResponse](t, rec)
	if len(found) != 1 || found[0].Title != "Porridge" {
		t.Errorf("search returned %+v", found)
	}
	expectError(t, env.do(t, http.MethodGet, "/api/recipes/search", "", ""), http.StatusBadRequest, "Search query is required")

	rec = env.do(t, http.MethodGet, "/api/recipes/category/"+breakfast.ID, "", "")
	inCategory := decodeBody[[]dto.RecipeResponse](t, rec)
	if len(inCategory) != 1 || inCategory[0].Title != "Porridge" {
		t.Errorf("category listing returned %+v", inCategory)
	}
}

func TestRecipeHandler_InternalErrorIsOpaque(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.store.FailWith = errors.New("pq: connection reset by peer")

	rec := env.do(t, http.MethodPost, "/api/recipes", pancakes, "user-1")
	expectError(t, rec, http.StatusInternalServerError, "An internal error occurred")
}
