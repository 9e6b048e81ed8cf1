package literal

// Summary aggregates counts over a set of literal mappings.
type Summary struct {
	// Count is the total number of mappings.
	Count int `json:"count"`

	// SourceCounter counts mappings per source label.
	SourceCounter map[string]int `json:"source_counter"`

	// ProvenanceCounter counts provenance references per prefix.
	ProvenanceCounter map[string]int `json:"provenance_counter"`

	// TypeCounter counts mappings per synonym type CURIE.
	TypeCounter map[string]int `json:"type_counter"`

	// PredicateCounter counts mappings per predicate CURIE.
	PredicateCounter map[string]int `json:"predicate_counter"`
}

// Summarize counts mappings by source, provenance prefix, synonym type and
// predicate. Mappings without a type or predicate do not contribute to the
// corresponding counters.
func Summarize(lms []LiteralMapping) Summary {
	res := Summary{
		Count:             len(lms),
		SourceCounter:     make(map[string]int),
		ProvenanceCounter: make(map[string]int),
		TypeCounter:       make(map[string]int),
		PredicateCounter:  make(map[string]int),
	}
	for _, lm := range lms {
		for _, src := range lm.Sources() {
			res.SourceCounter[src]++
		}
		for _, ref := range lm.Provenance {
			res.ProvenanceCounter[ref.Prefix]++
		}
		if lm.Type.Valid() {
			res.TypeCounter[lm.Type.Curie()]++
		}
		if lm.Predicate != UnknownPredicate {
			res.PredicateCounter[lm.Predicate.String()]++
		}
	}
	return res
}
