package api

import (
	"errors"
	"time"

	"github.com/hollyoak/plateful/internal/db"
	"github.com/hollyoak/plateful/internal/imagestore"
	"github.com/hollyoak/plateful/internal/importer"
	"github.com/hollyoak/plateful/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute

	passwordResetTokenTTL = 30 * time.Minute
)

type Handler struct {
	repositories     *db.Repositories
	authService      *services.AuthService
	recipeService    *services.RecipeService
	planService      *services.PlanService
	images           *imagestore.Store
	recipeImporter   *importer.Importer
	groceryChecklist *services.GroceryChecklist
	sessionNotifier  *services.SessionNotifier
	loginLimiter     *attemptLimiter
	secretKey        []byte
	location         *time.Location
	cookieSecure     bool
	publicImages     bool
}

func NewHandler(database *gorm.DB, secret string, images *imagestore.Store, location *time.Location, cookieSecure bool, publicImages bool) (*Handler, error) {
	if location == nil {
		location = time.Local
	}
	if images == nil {
		return nil, errors.New("image store is required")
	}

	repositories := db.NewRepositories(database)
	groceryChecklist := services.NewGroceryChecklist()
	sessionNotifier := services.NewSessionNotifier()
	sessionNotifier.Subscribe(groceryChecklist)

	return &Handler{
		repositories:     repositories,
		authService:      services.NewAuthService(repositories.Users),
		recipeService:    services.NewRecipeService(repositories.Recipes),
		planService:      services.NewPlanService(repositories.Plans, repositories.Recipes),
		images:           images,
		recipeImporter:   importer.New(),
		groceryChecklist: groceryChecklist,
		sessionNotifier:  sessionNotifier,
		loginLimiter:     newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		secretKey:        []byte(secret),
		location:         location,
		cookieSecure:     cookieSecure,
		publicImages:     publicImages,
	}, nil
}
