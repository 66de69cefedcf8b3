package search

import (
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// InputError reports user input that cannot be turned into a query.
// Its message is meant to be shown to the user as is.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

var (
	ErrEmptyKeyword   = &InputError{Message: "Keyword cannot be empty."}
	ErrEmptyGenreYear = &InputError{Message: "Genre ID and year input cannot be empty."}
	ErrInvalidYear    = &InputError{Message: "Invalid year input. Please use digits (e.g., 2005) or range (e.g., 2000-2010)."}
	ErrInvalidGenreID = &InputError{Message: "Invalid genre ID. Please enter one of the numbers listed above."}
)

// ParseKeyword trims the raw input and rejects empty or whitespace-only keywords.
func ParseKeyword(raw string) (KeywordQuery, error) {
	q := KeywordQuery{Keyword: strings.TrimSpace(raw)}
	if err := validate.Struct(q); err != nil {
		return KeywordQuery{}, ErrEmptyKeyword
	}
	return q, nil
}

// ParseGenreYear builds a genre/year query from the genre id and the year
// input, which is either a single year ("2005") or a range ("1990-2025").
func ParseGenreYear(rawGenre, rawYears string) (GenreYearQuery, error) {
	rawGenre = strings.TrimSpace(rawGenre)
	rawYears = strings.TrimSpace(rawYears)
	if rawGenre == "" || rawYears == "" {
		return GenreYearQuery{}, ErrEmptyGenreYear
	}

	start, end, err := ParseYearRange(rawYears)
	if err != nil {
		return GenreYearQuery{}, err
	}

	id, err := strconv.Atoi(rawGenre)
	if err != nil {
		return GenreYearQuery{}, ErrInvalidGenreID
	}

	q := GenreYearQuery{CategoryID: id, YearStart: start, YearEnd: end}
	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "CategoryID" {
			return GenreYearQuery{}, ErrInvalidGenreID
		}
		return GenreYearQuery{}, ErrInvalidYear
	}
	return q, nil
}

// ParseYearRange accepts "YYYY" or "YYYY-YYYY". A single year yields start == end.
func ParseYearRange(raw string) (start, end int, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, ErrEmptyGenreYear
	}

	first, second, isRange := strings.Cut(raw, "-")
	start, err = strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, ErrInvalidYear
	}
	if !isRange {
		return start, start, nil
	}
	end, err = strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, ErrInvalidYear
	}
	return start, end, nil
}
