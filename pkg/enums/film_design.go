package enums

import "fmt"

// FilmDesign names the sandblasted film pattern. The design is cosmetic and
// never contributes to the quote.
type FilmDesign string

const (
	FilmDesignOpale       FilmDesign = "Opale"
	FilmDesignRayures     FilmDesign = "Rayures"
	FilmDesignGeometrique FilmDesign = "Géométrique"
	FilmDesignDegrade     FilmDesign = "Dégradé"
)

var validFilmDesigns = []FilmDesign{
	FilmDesignOpale,
	FilmDesignRayures,
	FilmDesignGeometrique,
	FilmDesignDegrade,
}

// FilmDesigns lists every selectable pattern in catalog order.
func FilmDesigns() []FilmDesign {
	out := make([]FilmDesign, len(validFilmDesigns))
	copy(out, validFilmDesigns)
	return out
}

// String implements fmt.Stringer.
func (f FilmDesign) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FilmDesign.
func (f FilmDesign) IsValid() bool {
	for _, candidate := range validFilmDesigns {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFilmDesign converts raw input into a FilmDesign.
func ParseFilmDesign(value string) (FilmDesign, error) {
	for _, candidate := range validFilmDesigns {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid film design %q", value)
}
