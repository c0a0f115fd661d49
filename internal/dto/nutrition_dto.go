package dto

// AnalyzeFoodRequest accepts the image as a remote URL (either key spelling)
// or as raw base64 data.
type AnalyzeFoodRequest struct {
	ImageUrl    string `json:"imageUrl"`
	ImageUrlAlt string `json:"image_url"`
	ImageBase64 string `json:"imageBase64"`
}

// MacroItem is one recognized food item with its macro estimate.
type MacroItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// AnalyzeFoodResponse is the parsed model output. Raw carries the original
// model text when no structured JSON could be located at all.
type AnalyzeFoodResponse struct {
	Items         []MacroItem `json:"items"`
	TotalCalories float64     `json:"totalCalories,omitempty"`
	ProteinG      float64     `json:"protein_g,omitempty"`
	CarbsG        float64     `json:"carbs_g,omitempty"`
	FatG          float64     `json:"fat_g,omitempty"`
	Raw           string      `json:"raw,omitempty"`
}
