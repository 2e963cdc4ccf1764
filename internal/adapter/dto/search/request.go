package search

// QueryRequest asks a natural-language question over the corpus.
type QueryRequest struct {
	Query string `json:"query" validate:"required,min=3,max=2000"`
}

// TrendsRequest selects the per-year trend series. At least one of keyword
// or country must be set; the handler enforces that.
type TrendsRequest struct {
	Keyword string `query:"keyword" validate:"omitempty,max=255"`
	Country string `query:"country" validate:"omitempty,max=255"`
}

// CorpusSearchRequest filters the corpus by keyword and metadata.
type CorpusSearchRequest struct {
	Keyword  string `query:"keyword" validate:"omitempty,max=255"`
	Country  string `query:"country" validate:"omitempty,max=255"`
	YearFrom int    `query:"year_from" validate:"omitempty,min=1946"`
	YearTo   int    `query:"year_to" validate:"omitempty,min=1946"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=200"`
}
