package domain

// Locus names one antigen-determining region and the reference database
// its evidence is aligned against.
type Locus struct {
	Name     string `yaml:"name" json:"name"`
	Database string `yaml:"database" json:"database"`
}

// LocusNames returns the names of loci in order.
func LocusNames(loci []Locus) []string {
	out := make([]string, len(loci))
	for i, l := range loci {
		out[i] = l.Name
	}
	return out
}
