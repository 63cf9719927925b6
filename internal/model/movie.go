package model

// Movie is the canonical catalog entry. Raw rows keep whatever encodings the
// catalog ingester wrote (year as "1980", "1980-01-01" or a number; genres as
// a comma string or a JSON array string; critic rating as "86%", 86 or 8.6);
// they are normalized into this shape exactly once, at catalog-read time.
type Movie struct {
	ID         string // external catalog id, stable across rooms
	Title      string
	Overview   string
	PosterLink string
	Year       int // 0 when unknown
	Genres     []string
	Rating     *float64 // 0-10 scale, nil when unrated
	MPAA       string   // "" when unrated
	Runtime    int      // minutes, 0 when unknown
}

const EmptyTitle string = ""
