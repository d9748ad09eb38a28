package places

// API response shapes for the Fusion-style place search endpoints.
// Only the fields the app consumes are declared.

type autocompleteResponse struct {
	Terms []struct {
		Text string `json:"text"`
	} `json:"terms"`
	Businesses []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"businesses"`
	Categories []struct {
		Title string `json:"title"`
	} `json:"categories"`
}

type searchResponse struct {
	Businesses []apiBusiness `json:"businesses"`
	Total      int           `json:"total"`
}

type apiBusiness struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	ImageURL    string  `json:"image_url"`
	URL         string  `json:"url"`
	Categories  []struct {
		Alias string `json:"alias"`
		Title string `json:"title"`
	} `json:"categories"`
	Coordinates *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Location struct {
		Address1 string `json:"address1"`
		City     string `json:"city"`
		State    string `json:"state"`
		ZipCode  string `json:"zip_code"`
	} `json:"location"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
