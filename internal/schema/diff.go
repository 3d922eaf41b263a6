package schema

// ColumnDiff is the set of property changes between an old and new version
// of the same column (matched either by identical name or by the rename
// heuristic in detectColumnRenames).
type ColumnDiff struct {
	OldName           string
	Column            *Column
	ChangedProperties []string // "type", "notnull", "unsigned", "autoincrement", "default", "length", "precision", "scale", "fixed", "comment", "charset", "collation"
}

func (d *ColumnDiff) HasChanged(prop string) bool {
	for _, p := range d.ChangedProperties {
		if p == prop {
			return true
		}
	}
	return false
}

// TableDiff is pure data describing how one table changed: additions,
// removals, renames and in-place alterations of its columns, indexes and
// foreign keys. It carries no behavior of its own; Platform.TableDiffToSQL
// converts it into dialect-specific DDL.
type TableDiff struct {
	OldTable *Table
	NewName  string // "" if unchanged

	AddedColumns   []*Column
	ChangedColumns []*ColumnDiff
	RemovedColumns []*Column
	RenamedColumns map[string]*Column // old name -> new column

	AddedIndexes   []*Index
	ChangedIndexes []*Index
	RemovedIndexes []*Index
	RenamedIndexes map[string]*Index // old name -> new index

	AddedForeignKeys   []*ForeignKeyConstraint
	RemovedForeignKeys []*ForeignKeyConstraint
}

func (d *TableDiff) IsEmpty() bool {
	return len(d.AddedColumns) == 0 && len(d.ChangedColumns) == 0 && len(d.RemovedColumns) == 0 &&
		len(d.RenamedColumns) == 0 && len(d.AddedIndexes) == 0 && len(d.ChangedIndexes) == 0 &&
		len(d.RemovedIndexes) == 0 && len(d.RenamedIndexes) == 0 && len(d.AddedForeignKeys) == 0 &&
		len(d.RemovedForeignKeys) == 0 && d.NewName == ""
}

// Name returns the table's name after the diff is applied.
func (d *TableDiff) Name() string {
	if d.NewName != "" {
		return d.NewName
	}
	return d.OldTable.Name
}

// SchemaDiff is pure data describing how one Schema changed into another.
type SchemaDiff struct {
	CreatedSchemas []string
	DroppedSchemas []string

	CreatedTables []*Table
	AlteredTables []*TableDiff
	DroppedTables []*Table

	CreatedSequences []*Sequence
	AlteredSequences []*Sequence
	DroppedSequences []*Sequence

	// OrphanedForeignKeys are FKs left in the "from" schema that point at a
	// table being dropped, where the referencing table is NOT itself being
	// dropped (so the FK must be dropped explicitly before the target
	// table disappears).
	OrphanedForeignKeys []*ForeignKeyConstraint
}

func (d *SchemaDiff) IsEmpty() bool {
	return len(d.CreatedSchemas) == 0 && len(d.DroppedSchemas) == 0 &&
		len(d.CreatedTables) == 0 && len(d.AlteredTables) == 0 && len(d.DroppedTables) == 0 &&
		len(d.CreatedSequences) == 0 && len(d.AlteredSequences) == 0 && len(d.DroppedSequences) == 0 &&
		len(d.OrphanedForeignKeys) == 0
}
