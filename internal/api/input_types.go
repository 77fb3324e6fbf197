package api

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type deleteAccountInput struct {
	Password string `json:"password" form:"password"`
}

// profileInput carries biometric and goal answers. Weight and height may be
// given in other units; they are converted before validation.
type profileInput struct {
	Sex              string   `json:"sex"`
	AgeYears         int      `json:"age_years"`
	Height           float64  `json:"height"`
	HeightUnit       string   `json:"height_unit"`
	Weight           float64  `json:"weight"`
	WeightUnit       string   `json:"weight_unit"`
	ActivityLevel    string   `json:"activity_level"`
	Goal             string   `json:"goal"`
	TargetWeight     *float64 `json:"target_weight"`
	TargetBodyFatPct *float64 `json:"target_body_fat_pct"`
}

type targetsInput struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

type foodEntryInput struct {
	MealType string  `json:"meal_type"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type weightInput struct {
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
}
