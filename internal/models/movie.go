package models

// Movie is a single entry of a TMDB listing, search or discover response.
// Optional fields stay pointers so "absent" survives a round trip through
// the favourites store instead of turning into a zero value.
type Movie struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"original_title"`
	Overview         string   `json:"overview"`
	PosterPath       *string  `json:"poster_path"`
	BackdropPath     *string  `json:"backdrop_path"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	ReleaseDate      *string  `json:"release_date,omitempty"`
	OriginalLanguage string   `json:"original_language"`
	Popularity       float64  `json:"popularity"`
	Adult            bool     `json:"adult"`
	GenreIDs         []int    `json:"genre_ids,omitempty"`
}

// MovieDetail is the superset returned by the per-id detail endpoint.
type MovieDetail struct {
	Movie
	Runtime             int                 `json:"runtime"`
	Status              string              `json:"status"`
	Genres              []Genre             `json:"genres"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	Homepage            string              `json:"homepage"`
	Tagline             string              `json:"tagline"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCompany struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

// Video is one entry of the /movie/{id}/videos response.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type PagedMovies struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type GenreList struct {
	Genres []Genre `json:"genres"`
}

type VideoList struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}
