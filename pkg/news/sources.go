package news

import "regexp"

// registry lists the supported Chilean outlets in report order. Front pages
// change layout without notice, so matching is by article-link shape rather
// than by page structure.
var registry = []Source{
	{
		Code:        "emol",
		Name:        "El Mercurio (Emol)",
		HomeURL:     "https://www.emol.com",
		LinkPattern: regexp.MustCompile(`/noticias/`),
	},
	{
		Code:        "la_tercera",
		Name:        "La Tercera",
		HomeURL:     "https://www.latercera.com",
		LinkPattern: regexp.MustCompile(`/noticia/`),
	},
	{
		Code:        "el_mostrador",
		Name:        "El Mostrador",
		HomeURL:     "https://www.elmostrador.cl",
		LinkPattern: regexp.MustCompile(`/\d{4}/\d{2}/\d{2}/`),
	},
	{
		Code:        "biobio",
		Name:        "BioBioChile",
		HomeURL:     "https://www.biobiochile.cl",
		LinkPattern: regexp.MustCompile(`/noticias/`),
	},
	{
		Code:        "cooperativa",
		Name:        "Cooperativa",
		HomeURL:     "https://www.cooperativa.cl",
		LinkPattern: regexp.MustCompile(`/noticias/`),
	},
}

// lookup resolves a source code against the registry.
func lookup(code string) (Source, bool) {
	for _, s := range registry {
		if s.Code == code {
			return s, true
		}
	}
	return Source{}, false
}
