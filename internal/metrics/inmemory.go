package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered        uint64
	LoginsSucceeded        uint64
	LoginsFailed           uint64
	AuthRejected           uint64
	RateLimited            uint64
	RecipesCreated         uint64
	RecipesUpdated         uint64
	RecipesDeleted         uint64
	RecipesRated           uint64
	CategoriesCreated      uint64
	CategoriesDeleted      uint64
	MealPlansCreated       uint64
	MealPlansDeleted       uint64
	RequestDurationCount   uint64
	RequestDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory. It backs the /metrics endpoint.
type InMemoryRecorder struct {
	usersRegistered        uint64
	loginsSucceeded        uint64
	loginsFailed           uint64
	authRejected           uint64
	rateLimited            uint64
	recipesCreated         uint64
	recipesUpdated         uint64
	recipesDeleted         uint64
	recipesRated           uint64
	categoriesCreated      uint64
	categoriesDeleted      uint64
	mealPlansCreated       uint64
	mealPlansDeleted       uint64
	requestDurationCount   uint64
	requestDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:        atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded:        atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:           atomic.LoadUint64(&m.loginsFailed),
		AuthRejected:           atomic.LoadUint64(&m.authRejected),
		RateLimited:            atomic.LoadUint64(&m.rateLimited),
		RecipesCreated:         atomic.LoadUint64(&m.recipesCreated),
		RecipesUpdated:         atomic.LoadUint64(&m.recipesUpdated),
		RecipesDeleted:         atomic.LoadUint64(&m.recipesDeleted),
		RecipesRated:           atomic.LoadUint64(&m.recipesRated),
		CategoriesCreated:      atomic.LoadUint64(&m.categoriesCreated),
		CategoriesDeleted:      atomic.LoadUint64(&m.categoriesDeleted),
		MealPlansCreated:       atomic.LoadUint64(&m.mealPlansCreated),
		MealPlansDeleted:       atomic.LoadUint64(&m.mealPlansDeleted),
		RequestDurationCount:   atomic.LoadUint64(&m.requestDurationCount),
		RequestDurationTotalNs: atomic.LoadInt64(&m.requestDurationTotalNs),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLogin increments the login counter for the given outcome.
func (m *InMemoryRecorder) IncLogin(success bool) {
	if success {
		atomic.AddUint64(&m.loginsSucceeded, 1)
		return
	}
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncAuthRejected increments the rejected bearer token counter.
func (m *InMemoryRecorder) IncAuthRejected() {
	atomic.AddUint64(&m.authRejected, 1)
}

// IncRateLimited increments the rate limited request counter.
func (m *InMemoryRecorder) IncRateLimited() {
	atomic.AddUint64(&m.rateLimited, 1)
}

func (m *InMemoryRecorder) IncRecipeCreated() {
	atomic.AddUint64(&m.recipesCreated, 1)
}

func (m *InMemoryRecorder) IncRecipeUpdated() {
	atomic.AddUint64(&m.recipesUpdated, 1)
}

func (m *InMemoryRecorder) IncRecipeDeleted() {
	atomic.AddUint64(&m.recipesDeleted, 1)
}

func (m *InMemoryRecorder) IncRecipeRated() {
	atomic.AddUint64(&m.recipesRated, 1)
}

func (m *InMemoryRecorder) IncCategoryCreated() {
	atomic.AddUint64(&m.categoriesCreated, 1)
}

func (m *InMemoryRecorder) IncCategoryDeleted() {
	atomic.AddUint64(&m.categoriesDeleted, 1)
}

func (m *InMemoryRecorder) IncMealPlanCreated() {
	atomic.AddUint64(&m.mealPlansCreated, 1)
}

func (m *InMemoryRecorder) IncMealPlanDeleted() {
	atomic.AddUint64(&m.mealPlansDeleted, 1)
}

// ObserveRequestDuration records an HTTP request duration.
func (m *InMemoryRecorder) ObserveRequestDuration(duration time.Duration) {
	atomic.AddUint64(&m.requestDurationCount, 1)
	atomic.AddInt64(&m.requestDurationTotalNs, duration.Nanoseconds())
}
