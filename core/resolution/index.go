package resolution

// labelIndex partitions entity ids by type label, preserving creation
// order within each label. Labels never change after creation, so the
// index is only written when an entity is created.
type labelIndex struct {
	byLabel map[string][]int64
}

func newLabelIndex() *labelIndex {
	return &labelIndex{byLabel: make(map[string][]int64)}
}

// Register appends an entity id under its label.
func (idx *labelIndex) Register(label string, id int64) {
	idx.byLabel[label] = append(idx.byLabel[label], id)
}

// IDs returns the entity ids created under a label, oldest first. The
// returned slice is the index's own backing store and must not be mutated.
func (idx *labelIndex) IDs(label string) []int64 {
	return idx.byLabel[label]
}

// Labels returns every label with at least one entity. Order is
// unspecified.
func (idx *labelIndex) Labels() []string {
	labels := make([]string, 0, len(idx.byLabel))
	for label := range idx.byLabel {
		labels = append(labels, label)
	}
	return labels
}
