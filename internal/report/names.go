package report

// Names maps approach identifiers to display names.
type Names map[string]string

// DefaultNames returns the display names of the known approaches.
func DefaultNames() Names {
	return Names{
		"baseline_cat":            "Baseline (cat)",
		"awk":                     "AWK",
		"python_vanilla":          "Python (vanilla)",
		"python_maxsplit":         "Python (maxsplit)",
		"python_maxsplit_dowhile": "Python (maxsplit+dowhile)",
		"python_pandas":           "Python (pandas)",
		"python_cyvcf2":           "Python (cyvcf2)",
		"python_scikit_allel":     "Python (scikit-allel)",
		"rust":                    "Rust",
		"go_split":                "Go (split)",
		"go_fields":               "Go (fields)",
		"go_table":                "Go (gota)",
	}
}

// Display returns the display name for approach, or approach itself when
// it has none.
func (n Names) Display(approach string) string {
	if name, ok := n[approach]; ok {
		return name
	}
	return approach
}

// Merge returns a copy of n overridden by other.
func (n Names) Merge(other map[string]string) Names {
	out := make(Names, len(n)+len(other))
	for k, v := range n {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
