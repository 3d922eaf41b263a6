package schema

import (
	"sort"

	"github.com/alekitto/dbal/internal/dbvalue"
)

// Dialect is the minimal platform identity the comparator needs in order to
// apply dialect-specific masking before comparing two column definitions.
// platform.Platform satisfies this implicitly.
type Dialect interface {
	Name() string
}

// Comparator diffs two Schema or Table values into pure-data Diff structs.
// Its only state is the target dialect, used to mask properties a platform
// can't reliably compare (MySQL's charset/collation); every method is
// otherwise a pure function of its arguments, which is what lets the
// migration executor call it freely against schemas it introspects or
// builds in memory. dialect may be nil, in which case no masking applies.
type Comparator struct {
	dialect Dialect
}

func NewComparator(dialect Dialect) *Comparator {
	return &Comparator{dialect: dialect}
}

// masksCharsetAndCollation reports whether the target dialect is MySQL or
// MariaDB, which never reliably round-trip an explicit column charset or
// collation through introspection - a mismatch there is noise, not a real
// schema difference, so it must not be compared.
func (c *Comparator) masksCharsetAndCollation() bool {
	if c.dialect == nil {
		return false
	}
	name := c.dialect.Name()
	return name == "mysql" || name == "mariadb"
}

// CompareSchemas diffs from into to.
func (c *Comparator) CompareSchemas(from, to *Schema) *SchemaDiff {
	diff := &SchemaDiff{}

	toNamespaces := map[string]bool{}
	for _, ns := range to.NamespaceNames {
		toNamespaces[lower(ns)] = true
	}
	fromNamespaces := map[string]bool{}
	for _, ns := range from.NamespaceNames {
		fromNamespaces[lower(ns)] = true
		if !toNamespaces[lower(ns)] {
			diff.DroppedSchemas = append(diff.DroppedSchemas, ns)
		}
	}
	for _, ns := range to.NamespaceNames {
		if !fromNamespaces[lower(ns)] {
			diff.CreatedSchemas = append(diff.CreatedSchemas, ns)
		}
	}

	// foreignKeysToTable maps a (soon to be removed) table name to every FK,
	// anywhere in `from`, that references it - including FKs owned by a
	// table that is ALSO being removed, which are skipped below since
	// dropping the referencing table already drops the constraint.
	foreignKeysToTable := map[string][]*ForeignKeyConstraint{}
	for _, t := range from.Tables {
		for _, fk := range t.ForeignKeys {
			key := lower(fk.ForeignTableName)
			foreignKeysToTable[key] = append(foreignKeysToTable[key], fk)
		}
	}

	removedTables := map[string]bool{}
	for _, fromTable := range from.Tables {
		toTable, ok := to.Table(fromTable.Name)
		if !ok {
			diff.DroppedTables = append(diff.DroppedTables, fromTable)
			removedTables[lower(fromTable.Name)] = true
			continue
		}
		if tableDiff := c.DiffTable(fromTable, toTable); tableDiff != nil {
			diff.AlteredTables = append(diff.AlteredTables, tableDiff)
		}
	}
	for _, toTable := range to.Tables {
		if !from.HasTable(toTable.Name) {
			diff.CreatedTables = append(diff.CreatedTables, toTable)
		}
	}

	// Collect orphaned FKs for removed tables, skipping FKs owned by a
	// table that is itself being removed, and skipping any already
	// recorded implicitly via an AlteredTables entry for the owning table.
	alteredOwners := map[string]bool{}
	for _, td := range diff.AlteredTables {
		alteredOwners[lower(td.Name())] = true
	}
	seen := map[string]bool{}
	for _, removedTable := range diff.DroppedTables {
		for _, fk := range foreignKeysToTable[lower(removedTable.Name)] {
			owner := owningTableName(from, fk)
			if removedTables[lower(owner)] {
				continue
			}
			if alteredOwners[lower(owner)] {
				continue
			}
			dedupeKey := lower(owner) + "/" + fk.Name
			if seen[dedupeKey] {
				continue
			}
			seen[dedupeKey] = true
			diff.OrphanedForeignKeys = append(diff.OrphanedForeignKeys, fk)
		}
	}

	diff.CreatedSequences, diff.AlteredSequences, diff.DroppedSequences = c.diffSequences(from, to)

	return diff
}

func owningTableName(s *Schema, fk *ForeignKeyConstraint) string {
	for _, t := range s.Tables {
		for _, f := range t.ForeignKeys {
			if f == fk {
				return t.Name
			}
		}
	}
	return ""
}

func (c *Comparator) diffSequences(from, to *Schema) (created, altered, dropped []*Sequence) {
	isAutoIncrementSeq := func(s *Schema, seq *Sequence) bool {
		for _, t := range s.Tables {
			if seq.IsAutoIncrementSequenceFor(t) {
				return true
			}
		}
		return false
	}

	fromSeqs := map[string]*Sequence{}
	for _, seq := range from.Sequences {
		fromSeqs[lower(seq.Name)] = seq
	}
	toSeqs := map[string]*Sequence{}
	for _, seq := range to.Sequences {
		toSeqs[lower(seq.Name)] = seq
	}

	for key, fromSeq := range fromSeqs {
		toSeq, ok := toSeqs[key]
		if !ok {
			if isAutoIncrementSeq(from, fromSeq) {
				continue
			}
			dropped = append(dropped, fromSeq)
			continue
		}
		if isAutoIncrementSeq(from, fromSeq) && isAutoIncrementSeq(to, toSeq) {
			continue
		}
		if fromSeq.StartingValue != toSeq.StartingValue || fromSeq.Allocation != toSeq.Allocation {
			altered = append(altered, toSeq)
		}
	}
	for key, toSeq := range toSeqs {
		if _, ok := fromSeqs[key]; !ok {
			if isAutoIncrementSeq(to, toSeq) {
				continue
			}
			created = append(created, toSeq)
		}
	}

	return
}

// DiffTable compares two versions of the same table. It returns nil when
// nothing changed.
func (c *Comparator) DiffTable(from, to *Table) *TableDiff {
	diff := &TableDiff{OldTable: from, RenamedColumns: map[string]*Column{}, RenamedIndexes: map[string]*Index{}}

	if !equalFoldName(from.Name, to.Name) {
		diff.NewName = to.Name
	}

	fromCols := map[string]*Column{}
	for _, col := range from.Columns {
		fromCols[lower(col.Name)] = col
	}
	toCols := map[string]*Column{}
	for _, col := range to.Columns {
		toCols[lower(col.Name)] = col
	}

	var removedCandidates, addedCandidates []*Column
	for key, fromCol := range fromCols {
		toCol, ok := toCols[key]
		if !ok {
			removedCandidates = append(removedCandidates, fromCol)
			continue
		}
		if cd := c.DiffColumn(fromCol, toCol); cd != nil {
			diff.ChangedColumns = append(diff.ChangedColumns, cd)
		}
	}
	for key, toCol := range toCols {
		if _, ok := fromCols[key]; !ok {
			addedCandidates = append(addedCandidates, toCol)
		}
	}

	renamedFrom, renamedTo := detectColumnRenames(removedCandidates, addedCandidates, c)
	for oldName, newCol := range renamedTo {
		diff.RenamedColumns[oldName] = newCol
	}
	for _, col := range removedCandidates {
		if _, wasRenamed := renamedFrom[lower(col.Name)]; !wasRenamed {
			diff.RemovedColumns = append(diff.RemovedColumns, col)
		}
	}
	for _, col := range addedCandidates {
		if !columnIsRenameTarget(renamedTo, col) {
			diff.AddedColumns = append(diff.AddedColumns, col)
		}
	}

	fromIdx := map[string]*Index{}
	for _, idx := range from.Indexes {
		fromIdx[lower(idx.Name)] = idx
	}
	toIdx := map[string]*Index{}
	for _, idx := range to.Indexes {
		toIdx[lower(idx.Name)] = idx
	}

	var removedIdxCandidates, addedIdxCandidates []*Index
	for key, fromI := range fromIdx {
		toI, ok := toIdx[key]
		if !ok {
			removedIdxCandidates = append(removedIdxCandidates, fromI)
			continue
		}
		if diffIndex(fromI, toI) {
			diff.ChangedIndexes = append(diff.ChangedIndexes, toI)
		}
	}
	for key, toI := range toIdx {
		if _, ok := fromIdx[key]; !ok {
			addedIdxCandidates = append(addedIdxCandidates, toI)
		}
	}

	renamedIdxFrom, renamedIdxTo := detectIndexRenames(removedIdxCandidates, addedIdxCandidates)
	for oldName, newIdx := range renamedIdxTo {
		diff.RenamedIndexes[oldName] = newIdx
	}
	for _, idx := range removedIdxCandidates {
		if _, wasRenamed := renamedIdxFrom[lower(idx.Name)]; !wasRenamed {
			diff.RemovedIndexes = append(diff.RemovedIndexes, idx)
		}
	}
	for _, idx := range addedIdxCandidates {
		if !indexIsRenameTarget(renamedIdxTo, idx) {
			diff.AddedIndexes = append(diff.AddedIndexes, idx)
		}
	}

	// A primary key whose column list widens or narrows keeps the same
	// index name ("PRIMARY") on both sides, so the generic rename/diff
	// logic above - keyed by name, and gated by IsFulfilledBy's
	// same-column-count requirement - never sees it as changed. Catch it
	// explicitly here.
	if changed, ok := primaryKeyColumnsChanged(from, to); ok && changed {
		if toPrimary, ok := to.Index("PRIMARY"); ok {
			diff.ChangedIndexes = append(diff.ChangedIndexes, toPrimary)
		}
	}

	fromFKs := map[string]*ForeignKeyConstraint{}
	for _, fk := range from.ForeignKeys {
		fromFKs[fkKey(fk)] = fk
	}
	toFKs := map[string]*ForeignKeyConstraint{}
	for _, fk := range to.ForeignKeys {
		toFKs[fkKey(fk)] = fk
	}
	for key, fromFK := range fromFKs {
		if _, ok := toFKs[key]; !ok {
			diff.RemovedForeignKeys = append(diff.RemovedForeignKeys, fromFK)
		}
	}
	for key, toFK := range toFKs {
		if _, ok := fromFKs[key]; !ok {
			diff.AddedForeignKeys = append(diff.AddedForeignKeys, toFK)
		}
	}

	sortColumnDiffs(diff.ChangedColumns)
	sortColumns(diff.AddedColumns)
	sortColumns(diff.RemovedColumns)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func fkKey(fk *ForeignKeyConstraint) string {
	return lower(joinLower(fk.LocalColumns)) + ">" + lower(fk.ForeignTableName) + ">" + lower(joinLower(fk.ForeignColumns))
}

func joinLower(ss []string) string {
	out := ""
	for _, s := range ss {
		out += lower(s) + ","
	}
	return out
}

func sortColumns(cols []*Column) {
	sort.Slice(cols, func(i, j int) bool { return cols[i].Name < cols[j].Name })
}

func sortColumnDiffs(diffs []*ColumnDiff) {
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Column.Name < diffs[j].Column.Name })
}

// DiffColumn is a pure comparison of every semantically relevant column
// property. It returns nil when from and to are equivalent.
//
// Type, NotNull, Unsigned and AutoIncrement always matter. Default is
// compared with a NULL-transition special case: going from "no default" to
// "default NULL" (or back) is NOT a reported change, since many platforms
// cannot tell the two apart on introspection. Length+Fixed only matter for
// STRING/BINARY columns; Precision+Scale only matter for DECIMAL columns.
// Charset and Collation are compared too, except on MySQL/MariaDB (see
// masksCharsetAndCollation), which never reliably round-trip either through
// introspection.
func (c *Comparator) DiffColumn(from, to *Column) *ColumnDiff {
	var changed []string

	if from.Type != to.Type {
		changed = append(changed, "type")
	}
	if from.NotNull != to.NotNull {
		changed = append(changed, "notnull")
	}
	if from.Unsigned != to.Unsigned {
		changed = append(changed, "unsigned")
	}
	if from.AutoIncrement != to.AutoIncrement {
		changed = append(changed, "autoincrement")
	}
	if !defaultsEqual(from.Default, to.Default) {
		changed = append(changed, "default")
	}
	if from.Type == "STRING" || from.Type == "BINARY" {
		if from.Length != to.Length {
			changed = append(changed, "length")
		}
		if from.Fixed != to.Fixed {
			changed = append(changed, "fixed")
		}
	}
	if from.Type == "DECIMAL" {
		if from.Precision != to.Precision {
			changed = append(changed, "precision")
		}
		if from.Scale != to.Scale {
			changed = append(changed, "scale")
		}
	}
	if from.Comment != to.Comment {
		changed = append(changed, "comment")
	}
	if !c.masksCharsetAndCollation() {
		if from.Charset != to.Charset {
			changed = append(changed, "charset")
		}
		if from.Collation != to.Collation {
			changed = append(changed, "collation")
		}
	}

	if len(changed) == 0 {
		return nil
	}
	return &ColumnDiff{OldName: from.Name, Column: to, ChangedProperties: changed}
}

// defaultsEqual implements the NULL-transition special case: a column with
// no default (nil) and a column whose default is an explicit SQL NULL
// compare equal, since most platforms cannot distinguish the two on
// introspection.
func defaultsEqual(a, b *dbvalue.Value) bool {
	aNull := a == nil || a.IsNull()
	bNull := b == nil || b.IsNull()
	if aNull && bNull {
		return true
	}
	if aNull != bNull {
		return false
	}
	return a.Equal(*b)
}

// primaryKeyColumnsChanged reports, via ok, whether both tables declare a
// primary key, and via changed, whether their column lists differ (order
// matters, case does not).
func primaryKeyColumnsChanged(from, to *Table) (changed, ok bool) {
	if len(from.PrimaryKeyColumns) == 0 || len(to.PrimaryKeyColumns) == 0 {
		return false, false
	}
	if len(from.PrimaryKeyColumns) != len(to.PrimaryKeyColumns) {
		return true, true
	}
	for i := range from.PrimaryKeyColumns {
		if !equalFoldName(from.PrimaryKeyColumns[i], to.PrimaryKeyColumns[i]) {
			return true, true
		}
	}
	return false, true
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
