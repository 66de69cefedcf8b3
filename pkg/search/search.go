package search

// Type identifies the shape of a search: which query ran and which
// parameters it carries.
type Type string

const (
	TypeKeyword   Type = "keyword"
	TypeGenreYear Type = "genre_year"
)

// Label returns the human readable name of the search type.
func (t Type) Label() string {
	switch t {
	case TypeKeyword:
		return "Keyword Search"
	case TypeGenreYear:
		return "Genre & Year Search"
	case "":
		return "N/A"
	default:
		return string(t)
	}
}

// KeywordQuery is a title substring search.
type KeywordQuery struct {
	Keyword string `validate:"required"`
}

// GenreYearQuery matches one genre within an inclusive range of release years.
// YearStart == YearEnd selects a single year.
type GenreYearQuery struct {
	CategoryID int `validate:"gt=0"`
	YearStart  int `validate:"gte=0"`
	YearEnd    int `validate:"gte=0"`
}

// Genre is a catalog category.
type Genre struct {
	ID   int
	Name string
}

// KeywordHit is one row of a keyword search.
type KeywordHit struct {
	ID          int
	Title       string
	ReleaseYear int
	Genre       string
	RentalRate  *float64
}

// GenreHit is one row of a genre/year search.
type GenreHit struct {
	ID          int
	Title       string
	ReleaseYear int
	Genre       string
}

// Results holds the rows of exactly one search. Type tells which of the
// slices is populated.
type Results struct {
	Type    Type
	Keyword []KeywordHit
	Genre   []GenreHit
}

// Len returns the number of rows regardless of the result shape.
func (r Results) Len() int {
	switch r.Type {
	case TypeKeyword:
		return len(r.Keyword)
	case TypeGenreYear:
		return len(r.Genre)
	default:
		return 0
	}
}
