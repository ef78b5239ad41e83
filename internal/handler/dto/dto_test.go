package dto

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/recipebook/recipebook/internal/model"
)

func TestRecipeRequest_FlexibleLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		body             string
		wantIngredients  []string
		wantInstructions []string
	}{
		{
			name:             "json arrays",
			body:             `{"ingredients":["flour"," sugar ",""],"instructions":["mix","bake"]}`,
			wantIngredients:  []string{"flour", "sugar"},
			wantInstructions: []string{"mix", "bake"},
		},
		{
			name:             "stringified arrays",
			body:             `{"ingredients":"[\"eggs\",\"milk\"]","instructions":"[\"whisk\"]"}`,
			wantIngredients:  []string{"eggs", "milk"},
			wantInstructions: []string{"whisk"},
		},
		{
			name:             "plain strings",
			body:             `{"ingredients":"eggs, milk,, butter ","instructions":"whisk\n\n fry \n"}`,
			wantIngredients:  []string{"eggs", "milk", "butter"},
			wantInstructions: []string{"whisk", "fry"},
		},
		{
			name:             "instructions keep commas",
			body:             `{"ingredients":"salt","instructions":"season, then serve"}`,
			wantIngredients:  []string{"salt"},
			wantInstructions: []string{"season, then serve"},
		},
		{
			name:             "missing fields",
			body:             `{"title":"x"}`,
			wantIngredients:  nil,
			wantInstructions: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req RecipeRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got := []string(req.Ingredients); !reflect.DeepEqual(got, tt.wantIngredients) {
				t.Errorf("ingredients = %q, want %q", got, tt.wantIngredients)
			}
			if got := []string(req.Instructions); !reflect.DeepEqual(got, tt.wantInstructions) {
				t.Errorf("instructions = %q, want %q", got, tt.wantInstructions)
			}
		})
	}
}

func TestRecipeRequest_InvalidList(t *testing.T) {
	t.Parallel()

	var req RecipeRequest
	if err := json.Unmarshal([]byte(`{"ingredients":42}`), &req); err == nil {
		t.Error("expected error for numeric ingredients")
	}
}

func TestRateRequest_Number(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body    string
		want    float64
		wantNil bool
		wantErr bool
	}{
		{`{"rating":4.5}`, 4.5, false, false},
		{`{"rating":"3.25"}`, 3.25, false, false},
		{`{"rating":" 2 "}`, 2, false, false},
		{`{"rating":null}`, 0, true, false},
		{`{}`, 0, true, false},
		{`{"rating":"great"}`, 0, false, true},
		{`{"rating":true}`, 0, false, true},
		{`{"rating":"NaN"}`, 0, false, true},
		{`{"rating":"Infinity"}`, 0, false, true},
		{`{"rating":"-Inf"}`, 0, false, true},
	}

	for _, tt := range tests {
		var req RateRequest
		err := json.Unmarshal([]byte(tt.body), &req)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tt.body)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.body, err)
			continue
		}
		if tt.wantNil {
			if req.Rating != nil {
				t.Errorf("%s: rating = %v, want nil", tt.body, *req.Rating)
			}
			continue
		}
		if req.Rating == nil || float64(*req.Rating) != tt.want {
			t.Errorf("%s: rating = %v, want %v", tt.body, req.Rating, tt.want)
		}
	}
}

func TestToUserResponse_OmitsPasswordHash(t *testing.T) {
	t.Parallel()

	user := &model.User{ID: "u1", Username: "alice", Email: "a@example.com", PasswordHash: "$argon2id$secret"}

	data, err := json.Marshal(ToUserResponse(user))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "argon2id") || strings.Contains(string(data), "password") {
		t.Errorf("user response leaks password hash: %s", data)
	}
}

func TestToMealPlanResponse(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	resp := ToMealPlanResponse(&model.MealPlan{ID: "m1", Date: date, UserID: "u1"})

	if resp.Date != "2026-03-14" {
		t.Errorf("date = %q, want 2026-03-14", resp.Date)
	}
	if resp.Name != "Meal Plan for 2026-03-14" {
		t.Errorf("name = %q, want fallback", resp.Name)
	}
}

func TestToRecipeResponse_EmptyLists(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ToRecipeResponse(&model.Recipe{ID: "r1", Title: "Toast"}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"ingredients":[]`) {
		t.Errorf("expected empty ingredients array, got %s", data)
	}
}
