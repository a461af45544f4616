package types

type SchemaTable struct {
	Name    string
	Comment string
	Columns []SchemaColumn
}

type SchemaColumn struct {
	Name             string
	Type             string
	IsPrimary        bool
	ForeignKeyTable  string
	ForeignKeyColumn string
}

type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
}

// ColumnNames returns the column names in declaration order
func (t SchemaTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// TableData is one serialized table: its header and its rendered rows
type TableData struct {
	Name    string
	Header  []string
	Records [][]string
}

func (d TableData) Len() int {
	return len(d.Records)
}
