// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package tmdb

// Wire types mirror the TMDB v3 JSON.

type apiMovie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int   `json:"genre_ids"`
}

type apiSearch struct {
	Page         int        `json:"page"`
	Results      []apiMovie `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

type apiDetails struct {
	apiMovie
	Tagline             string       `json:"tagline"`
	Runtime             *int         `json:"runtime"`
	Budget              int64        `json:"budget"`
	Revenue             int64        `json:"revenue"`
	Status              string       `json:"status"`
	Homepage            string       `json:"homepage"`
	IMDBID              string       `json:"imdb_id"`
	Genres              []Genre      `json:"genres"`
	ProductionCompanies []apiCompany `json:"production_companies"`
	ProductionCountries []apiCountry `json:"production_countries"`
	SpokenLanguages     []apiLang    `json:"spoken_languages"`
	Credits             *apiCredits  `json:"credits"`
	Images              *apiImages   `json:"images"`
	Videos              *apiVideos   `json:"videos"`
}

type apiCompany struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	OriginCountry string `json:"origin_country"`
}

type apiCountry struct {
	ISO  string `json:"iso_3166_1"`
	Name string `json:"name"`
}

type apiLang struct {
	ISO         string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

type apiCredits struct {
	Cast []struct {
		ID          int     `json:"id"`
		Name        string  `json:"name"`
		Character   string  `json:"character"`
		ProfilePath *string `json:"profile_path"`
		Order       int     `json:"order"`
	} `json:"cast"`
	Crew []struct {
		ID          int     `json:"id"`
		Name        string  `json:"name"`
		Job         string  `json:"job"`
		Department  string  `json:"department"`
		ProfilePath *string `json:"profile_path"`
	} `json:"crew"`
}

type apiImage struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	VoteAverage float64 `json:"vote_average"`
}

type apiImages struct {
	Backdrops []apiImage `json:"backdrops"`
	Posters   []apiImage `json:"posters"`
}

type apiVideos struct {
	Results []struct {
		ID          string `json:"id"`
		Key         string `json:"key"`
		Name        string `json:"name"`
		Site        string `json:"site"`
		Type        string `json:"type"`
		Official    bool   `json:"official"`
		PublishedAt string `json:"published_at"`
	} `json:"results"`
}

// SearchResult is one movie from a search, with image paths expanded to
// full URLs.
type SearchResult struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Year             *int    `json:"year"`
	Poster           *string `json:"poster"`
	PosterOriginal   *string `json:"posterOriginal"`
	Overview         string  `json:"overview"`
	VoteAverage      float64 `json:"voteAverage"`
	VoteCount        int     `json:"voteCount"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"originalLanguage"`
	OriginalTitle    string  `json:"originalTitle"`
	ReleaseDate      string  `json:"releaseDate"`
	BackdropPath     *string `json:"backdropPath"`
	GenreIDs         []int   `json:"genreIds"`
	TMDBID           int     `json:"tmdbId"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Results      []SearchResult `json:"results"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"totalPages"`
	TotalResults int            `json:"totalResults"`
}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company is a production company.
type Company struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	OriginCountry string `json:"originCountry"`
}

// Country is a production country.
type Country struct {
	ISO  string `json:"iso"`
	Name string `json:"name"`
}

// Language is a spoken language.
type Language struct {
	ISO         string `json:"iso"`
	EnglishName string `json:"englishName"`
	Name        string `json:"name"`
}

// Person is a cast or crew credit.
type Person struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character,omitempty"`
	Job         string  `json:"job,omitempty"`
	Department  string  `json:"department,omitempty"`
	ProfilePath *string `json:"profilePath"`
	Order       int     `json:"order,omitempty"`
}

// Image is a backdrop or poster.
type Image struct {
	FilePath    string  `json:"filePath"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspectRatio"`
	VoteAverage float64 `json:"voteAverage"`
}

// Images groups the first few backdrops and posters.
type Images struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
}

// Video is a YouTube trailer or teaser.
type Video struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"publishedAt"`
	YouTubeURL  string `json:"youtubeUrl"`
}

// MovieDetails is a full movie record with optional credits, images and
// videos.
type MovieDetails struct {
	ID                  int        `json:"id"`
	Title               string     `json:"title"`
	Year                *int       `json:"year"`
	Poster              *string    `json:"poster"`
	PosterOriginal      *string    `json:"posterOriginal"`
	Backdrop            *string    `json:"backdrop"`
	BackdropOriginal    *string    `json:"backdropOriginal"`
	Overview            string     `json:"overview"`
	Tagline             string     `json:"tagline"`
	Runtime             *int       `json:"runtime"`
	ReleaseDate         string     `json:"releaseDate"`
	VoteAverage         float64    `json:"voteAverage"`
	VoteCount           int        `json:"voteCount"`
	Popularity          float64    `json:"popularity"`
	Budget              int64      `json:"budget"`
	Revenue             int64      `json:"revenue"`
	Status              string     `json:"status"`
	OriginalLanguage    string     `json:"originalLanguage"`
	OriginalTitle       string     `json:"originalTitle"`
	Adult               bool       `json:"adult"`
	Homepage            string     `json:"homepage"`
	IMDBID              string     `json:"imdbId"`
	Genres              []Genre    `json:"genres"`
	ProductionCompanies []Company  `json:"productionCompanies"`
	ProductionCountries []Country  `json:"productionCountries"`
	SpokenLanguages     []Language `json:"spokenLanguages"`
	TMDBID              int        `json:"tmdbId"`
	Source              string     `json:"source"`
	Cast                []Person   `json:"cast,omitempty"`
	Crew                []Person   `json:"crew,omitempty"`
	Images              *Images    `json:"images,omitempty"`
	Videos              []Video    `json:"videos,omitempty"`
}
