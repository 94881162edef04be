package domain

// DefaultEventTypes is the vocabulary inserted when the event-type table is empty.
var DefaultEventTypes = []string{
	"Sem Chuva",
	"Chuva Fraca",
	"Chuva Forte",
	"Granizo",
	"Raios",
	"Deslizamento",
	"Alagamento",
	"Queda de Árvore",
	"Transbordamento de Rio",
	"Neblina",
	"Incêndio",
	"Tornado",
}
