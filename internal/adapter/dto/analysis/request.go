package analysis

// GenerateRequest submits pasted statement text for readout generation.
// File uploads use the multipart form endpoint instead.
type GenerateRequest struct {
	Country    string `json:"country" validate:"required,min=2,max=255"`
	SpeechDate string `json:"speech_date" validate:"omitempty,max=50"`
	Text       string `json:"text" validate:"required,min=1"`
}

// ListRequest filters the stored analyses.
type ListRequest struct {
	Country         string `query:"country"`
	Classification  string `query:"classification" validate:"omitempty,oneof='African Member State' 'Development Partner' 'Unspecified'"`
	AfricaMentioned *bool  `query:"africa_mentioned"`
	SDG             int    `query:"sdg" validate:"omitempty,min=1,max=17"`
	DateFrom        string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo          string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Search          string `query:"search"`
	Limit           int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset          int    `query:"offset" validate:"omitempty,min=0"`
}
