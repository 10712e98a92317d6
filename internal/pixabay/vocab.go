package pixabay

// Categories accepted by the category parameter.
var Categories = []string{
	"backgrounds", "fashion", "nature", "science", "education",
	"feelings", "health", "people", "religion", "places",
	"animals", "industry", "computer", "food", "sports",
	"transportation", "travel", "buildings", "business", "music",
}

// FacetValues lists the choices offered for each facet. The client never
// validates against this table; it only drives the filter picker.
var FacetValues = map[string][]string{
	FacetOrder:       {"popular", "latest"},
	FacetOrientation: {"horizontal", "vertical"},
	FacetType:        {"photo", "illustration", "vector"},
	FacetColors: {
		"red", "orange", "yellow", "green", "turquoise", "blue",
		"pink", "gray", "black", "brown", "white",
	},
}
