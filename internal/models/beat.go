// internal/models/beat.go
package models

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// Beat is a catalog entry. DisplayPrice keeps the localized string shown in
// the storefront ("$250.000", "Gratis"); Price is the numeric value used for
// cart math.
type Beat struct {
	ID           int     `json:"id" gorm:"primaryKey"`
	Title        string  `json:"titulo" gorm:"size:255;not null"`
	Artist       string  `json:"artista" gorm:"size:255"`
	Genre        string  `json:"genero" gorm:"size:100;index"`
	DisplayPrice string  `json:"precio" gorm:"size:50"`
	Price        float64 `json:"precioNumerico"`
	Description  string  `json:"descripcion" gorm:"type:text"`
	AudioRef     string  `json:"fuente,omitempty"`
	ImageRef     string  `json:"imagen"`
	ProductLink  string  `json:"enlaceProducto"`
}

// UnmarshalJSON tolerates stored data whose ids are strings: they are
// coerced to integers, with non-numeric ids treated as 0.
func (b *Beat) UnmarshalJSON(data []byte) error {
	type alias Beat
	aux := struct {
		ID interface{} `json:"id"`
		*alias
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.ID = coerceID(aux.ID)
	return nil
}

func coerceID(v interface{}) int {
	switch id := v.(type) {
	case float64:
		return int(id)
	case string:
		n, err := strconv.Atoi(id)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// BeatFilter narrows List results. Empty fields match everything; non-empty
// fields are exact-match predicates.
type BeatFilter struct {
	Genre  string `form:"genero" json:"genero,omitempty"`
	Artist string `form:"artista" json:"artista,omitempty"`
}

func (f BeatFilter) Matches(b Beat) bool {
	if f.Genre != "" && b.Genre != f.Genre {
		return false
	}
	if f.Artist != "" && b.Artist != f.Artist {
		return false
	}
	return true
}

var nonPriceRunes = regexp.MustCompile(`[^\d.]`)

// NormalizePrice parses a localized price string to its numeric value.
// Non-digit and non-dot runes are stripped first; anything unparseable
// (including "Gratis") is 0.
func NormalizePrice(s string) float64 {
	cleaned := nonPriceRunes.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// DefaultCatalog is the static catalog the local tier is seeded with when
// storage holds no beats yet.
func DefaultCatalog() []Beat {
	return []Beat{
		{
			ID:           1,
			Title:        "La melodia de Lampa",
			Artist:       "Ismael Rivas",
			Genre:        "Electrónica",
			DisplayPrice: "$250.000",
			Price:        250000,
			Description:  "Disfruta de un clásico de la Electrónica en este beat exclusivo, ideal para ambientar cualquier momento.",
			ImageRef:     "/img/16.jpg",
			ProductLink:  "/producto/1",
		},
		{
			ID:           2,
			Title:        "Baby girl",
			Artist:       "Samuel Canchaya Smith",
			Genre:        "Pop",
			DisplayPrice: "$999.999",
			Price:        999999,
			Description:  "Un beat pop pegajoso perfecto para crear hits modernos y comerciales.",
			ImageRef:     "/img/2.jpg",
			ProductLink:  "/producto/2",
		},
		{
			ID:           3,
			Title:        "Renquiña",
			Artist:       "Axel Moraga",
			Genre:        "Chill",
			DisplayPrice: "Gratis",
			Price:        0,
			Description:  "Un beat chill relajante para momentos de tranquilidad y reflexión.",
			ImageRef:     "/img/3.jpg",
			ProductLink:  "/producto/3",
		},
		{
			ID:           4,
			Title:        "Funky Town",
			Artist:       "Carlos Santana",
			Genre:        "Funk",
			DisplayPrice: "$500.000",
			Price:        500000,
			Description:  "Un beat funky con mucho groove para animar cualquier fiesta.",
			ImageRef:     "/img/4.jpg",
			ProductLink:  "/producto/4",
		},
		{
			ID:           5,
			Title:        "Jazz in the Park",
			Artist:       "John Coltrane",
			Genre:        "Jazz",
			DisplayPrice: "$750.000",
			Price:        750000,
			Description:  "Un beat jazzístico perfecto para una tarde relajada en el parque.",
			ImageRef:     "/img/6.jpg",
			ProductLink:  "/producto/5",
		},
		{
			ID:           6,
			Title:        "Rock On",
			Artist:       "Jimi Hendrix",
			Genre:        "Rock",
			DisplayPrice: "$1.000.000",
			Price:        1000000,
			Description:  "Un beat rockero lleno de energía y poder para los amantes del rock.",
			ImageRef:     "/img/7.jpg",
			ProductLink:  "/producto/6",
		},
		{
			ID:           7,
			Title:        "Classical Symphony",
			Artist:       "Ludwig van Beethoven",
			Genre:        "Clásica",
			DisplayPrice: "$1.500.000",
			Price:        1500000,
			Description:  "Un beat clásico con la majestuosidad de una sinfonía de Beethoven.",
			ImageRef:     "/img/8.jpg",
			ProductLink:  "/producto/7",
		},
		{
			ID:           8,
			Title:        "Hip Hop Vibes",
			Artist:       "Kendrick Lamar",
			Genre:        "Hip Hop",
			DisplayPrice: "$2.000.000",
			Price:        2000000,
			Description:  "Un beat hip hop con mucho flow y estilo para los amantes del género.",
			ImageRef:     "/img/10.jpg",
			ProductLink:  "/producto/8",
		},
		{
			ID:           9,
			Title:        "Reggae Roots",
			Artist:       "Bob Marley",
			Genre:        "Reggae",
			DisplayPrice: "$1.200.000",
			Price:        1200000,
			Description:  "Un beat reggae con las raíces del legendario Bob Marley.",
			ImageRef:     "/img/11.jpg",
			ProductLink:  "/producto/9",
		},
	}
}
