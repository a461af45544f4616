package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesOrderAndNames(t *testing.T) {
	var names []string
	for _, table := range Tables() {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{"products", "teams", "clients", "orders", "order_lines", "sales", "returns", "plans"}, names)
}

func TestCreateTableSQL(t *testing.T) {
	products := Tables()[0]

	expected := `CREATE TABLE products (
    article VARCHAR(50) PRIMARY KEY,
    product_name VARCHAR(255),
    category VARCHAR(100),
    cost INTEGER
);`
	assert.Equal(t, expected, CreateTableSQL(products))
}

func TestForeignKeysReferenceDeclaredColumns(t *testing.T) {
	tables := Tables()
	columns := make(map[string]bool)
	for _, table := range tables {
		for _, col := range table.Columns {
			columns[table.Name+"."+col.Name] = true
		}
	}

	fks := ForeignKeys(tables)
	require.Len(t, fks, 10)
	for _, fk := range fks {
		assert.True(t, columns[fk.RefTable+"."+fk.RefColumn], "%s.%s references missing %s.%s", fk.Table, fk.Column, fk.RefTable, fk.RefColumn)
	}
}

func TestCombinedScript(t *testing.T) {
	tables := Tables()
	script := CombinedScript("sales_dashboard", "data_sample", tables)

	assert.True(t, strings.HasPrefix(script, "-- "))
	assert.Contains(t, script, "CREATE DATABASE IF NOT EXISTS sales_dashboard;")
	assert.Contains(t, script, "USE sales_dashboard;")
	assert.Equal(t, len(tables), strings.Count(script, "CREATE TABLE "))
	assert.Less(t, strings.Index(script, "USE sales_dashboard;"), strings.Index(script, "CREATE TABLE products"))
	assert.Contains(t, script, "-- Table: order_lines (order line items)\n")
	assert.True(t, strings.HasSuffix(script, "-- Done. Import the CSV files from data_sample/ next\n"))
}

func TestTableScript(t *testing.T) {
	plans := Tables()[7]
	script := TableScript("demo", plans)

	assert.True(t, strings.HasPrefix(script, "CREATE DATABASE IF NOT EXISTS demo;\n\nUSE demo;\n\nCREATE TABLE plans (\n"))
	assert.Contains(t, script, "    period_month VARCHAR(10),\n")
	assert.True(t, strings.HasSuffix(script, ");\n"))
	assert.Equal(t, "create_table_plans.sql", TableScriptName(plans))
}
