package api

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	DisplayName     string `json:"display_name" form:"display_name"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type resetPasswordInput struct {
	Token           string `json:"token" form:"token"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type deleteAccountInput struct {
	Password string `json:"password" form:"password"`
}

type recipePayload struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CookTimeMinutes *int     `json:"cook_time_minutes"`
	Tags            []string `json:"tags"`
	SourceURLs      []string `json:"source_urls"`
	Ingredients     []string `json:"ingredients"`
}

type importRecipePayload struct {
	URL string `json:"url" form:"url"`
}

type planEntryPayload struct {
	Day      int    `json:"day"`
	MealType string `json:"meal_type"`
	RecipeID *uint  `json:"recipe_id"`
	Notes    string `json:"notes"`
}

type toggleGroceryPayload struct {
	Item string `json:"item" form:"item"`
}
