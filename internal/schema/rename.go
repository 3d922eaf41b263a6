package schema

// diffIndex applies the asymmetric fulfillment check: an index changed if
// the old index does NOT already fulfil everything the new one needs, AND
// the new one DOES fulfil everything the old one provided. A plain index
// widened into a unique index, for instance, fails the first half (the old
// plain index can't serve as a replacement for a unique one) and passes the
// second (the new unique index can still serve every purpose the old plain
// index served) - so it is reported as changed. An index that shrinks
// capability in a way nothing downstream needs is left alone.
func diffIndex(from, to *Index) bool {
	return !to.IsFulfilledBy(from) && from.IsFulfilledBy(to)
}

// detectColumnRenames pairs a removed column with an added column when
// exactly one added column is a plausible rename target for it (same type,
// same length/precision/scale, same nullability) - and vice versa. A column
// with more than one candidate match, or none, is left as a genuine
// add+remove instead of being guessed at.
func detectColumnRenames(removed, added []*Column, c *Comparator) (removedMatched, addedMatched map[string]*Column) {
	removedMatched = map[string]*Column{}
	addedMatched = map[string]*Column{}
	usedAdded := map[string]bool{}

	for _, r := range removed {
		var candidates []*Column
		for _, a := range added {
			if usedAdded[lower(a.Name)] {
				continue
			}
			if columnsLikelySameShape(r, a) {
				candidates = append(candidates, a)
			}
		}
		if len(candidates) != 1 {
			continue
		}
		sources := 0
		for _, other := range removed {
			if columnsLikelySameShape(other, candidates[0]) {
				sources++
			}
		}
		if sources == 1 {
			removedMatched[lower(r.Name)] = candidates[0]
			addedMatched[r.Name] = candidates[0]
			usedAdded[lower(candidates[0].Name)] = true
		}
	}
	return
}

func columnsLikelySameShape(a, b *Column) bool {
	if a.Type != b.Type {
		return false
	}
	if a.NotNull != b.NotNull {
		return false
	}
	if a.Type == "STRING" || a.Type == "BINARY" {
		if a.Length != b.Length {
			return false
		}
	}
	if a.Type == "DECIMAL" {
		if a.Precision != b.Precision || a.Scale != b.Scale {
			return false
		}
	}
	return true
}

func columnIsRenameTarget(renamed map[string]*Column, col *Column) bool {
	for _, v := range renamed {
		if v == col {
			return true
		}
	}
	return false
}

// detectIndexRenames mirrors detectColumnRenames for indexes: exactly one
// added index spanning the same columns, uniqueness and primary-ness as a
// removed index is treated as a rename rather than a drop+create.
func detectIndexRenames(removed, added []*Index) (removedMatched, addedMatched map[string]*Index) {
	removedMatched = map[string]*Index{}
	addedMatched = map[string]*Index{}
	usedAdded := map[string]bool{}

	for _, r := range removed {
		var candidates []*Index
		for _, a := range added {
			if usedAdded[lower(a.Name)] {
				continue
			}
			if r.spansSameColumns(a) && r.IsUnique == a.IsUnique && r.IsPrimary == a.IsPrimary {
				candidates = append(candidates, a)
			}
		}
		if len(candidates) == 1 {
			removedMatched[lower(r.Name)] = candidates[0]
			addedMatched[r.Name] = candidates[0]
			usedAdded[lower(candidates[0].Name)] = true
		}
	}
	return
}

func indexIsRenameTarget(renamed map[string]*Index, idx *Index) bool {
	for _, v := range renamed {
		if v == idx {
			return true
		}
	}
	return false
}
