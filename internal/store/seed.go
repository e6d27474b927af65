package store

import "github.com/Carlacms18/movie-catalog/internal/models"

// SeedCatalog returns the fixed starter catalog shipped with the app. It
// hands out fresh copies so backends can mutate (assign ids) freely.
func SeedCatalog() []models.Movie {
	return []models.Movie{
		{
			Title:    "Interestelar",
			Year:     2014,
			Director: "Christopher Nolan",
			Genre:    []string{"Ficção Científica", "Drama", "Aventura"},
			Poster:   "https://exemplo.com/poster-interestelar.jpg",
			Rating:   8.6,
			Synopsis: "Uma equipe de exploradores viaja através de um buraco de minhoca no espaço na tentativa de garantir a sobrevivência da humanidade.",
		},
		{
			Title:    "Pulp Fiction",
			Year:     1994,
			Director: "Quentin Tarantino",
			Genre:    []string{"Crime", "Drama"},
			Poster:   "https://exemplo.com/poster-pulp-fiction.jpg",
			Rating:   8.9,
			Synopsis: "As vidas de dois assassinos da máfia, um boxeador, um gângster e sua esposa, e um par de bandidos se entrelaçam em quatro histórias de violência e redenção.",
		},
	}
}
