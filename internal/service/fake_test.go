package service

import (
	"errors"

	"github.com/recipebook/recipebook/internal/model"
	"github.com/recipebook/recipebook/internal/testutil"
)

type memStore = testutil.MemStore

func newMemStore() *memStore {
	return testutil.NewMemStore()
}

// stubTokens issues deterministic tokens.
type stubTokens struct {
	err error
}

func (s stubTokens) Issue(user *model.User) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + user.ID, nil
}

var errStoreDown = errors.New("store unavailable")

var (
	_ UserStore     = (*memStore)(nil)
	_ RecipeStore   = (*memStore)(nil)
	_ CategoryStore = (*memStore)(nil)
	_ MealPlanStore = (*memStore)(nil)
)
