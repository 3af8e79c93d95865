package services

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

// ImageURL builds the full poster/backdrop URL from a stored relative path.
// An absent path yields an empty string so callers can suppress the image
// reference entirely instead of rendering a broken link.
func ImageURL(path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return imageBaseURL + *path
}
