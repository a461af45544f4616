package schema

import (
	"fmt"
	"strings"

	"github.com/Rana718/salesgen/internal/types"
)

const (
	idType      = "VARCHAR(50)"
	nameType    = "VARCHAR(255)"
	labelType   = "VARCHAR(100)"
	integerType = "INTEGER"
	numericType = "NUMERIC"
	dateType    = "DATE"
	monthType   = "VARCHAR(10)"
)

// CombinedScriptName is the file holding the database and every table
const CombinedScriptName = "create_tables.sql"

func pk(name string) types.SchemaColumn {
	return types.SchemaColumn{Name: name, Type: idType, IsPrimary: true}
}

func ref(name, table, column string) types.SchemaColumn {
	return types.SchemaColumn{Name: name, Type: idType, ForeignKeyTable: table, ForeignKeyColumn: column}
}

func col(name, typ string) types.SchemaColumn {
	return types.SchemaColumn{Name: name, Type: typ}
}

// Tables returns the table definitions in output order. CSV headers are
// taken from these definitions.
func Tables() []types.SchemaTable {
	return []types.SchemaTable{
		{
			Name:    "products",
			Comment: "product catalog",
			Columns: []types.SchemaColumn{
				pk("article"),
				col("product_name", nameType),
				col("category", labelType),
				col("cost", integerType),
			},
		},
		{
			Name:    "teams",
			Comment: "manager to team leader assignments",
			Columns: []types.SchemaColumn{
				col("manager_id", idType),
				col("team_leader_id", idType),
				col("role", idType),
			},
		},
		{
			Name:    "clients",
			Comment: "clients and their account managers",
			Columns: []types.SchemaColumn{
				pk("client_id"),
				col("client_name", nameType),
				col("inn", idType),
				ref("manager_id", "teams", "manager_id"),
			},
		},
		{
			Name:    "orders",
			Comment: "order headers",
			Columns: []types.SchemaColumn{
				pk("order_id"),
				ref("client_id", "clients", "client_id"),
				col("order_date", dateType),
				col("order_total", numericType),
				ref("manager_id", "teams", "manager_id"),
			},
		},
		{
			Name:    "order_lines",
			Comment: "order line items",
			Columns: []types.SchemaColumn{
				pk("order_line_id"),
				ref("order_id", "orders", "order_id"),
				ref("article", "products", "article"),
				col("quantity", integerType),
				col("price", numericType),
				col("line_sum", numericType),
				col("line_margin", numericType),
			},
		},
		{
			Name:    "sales",
			Comment: "realized order lines",
			Columns: []types.SchemaColumn{
				pk("sale_id"),
				ref("order_id", "orders", "order_id"),
				ref("article", "products", "article"),
				col("quantity", integerType),
				col("sale_amount", numericType),
			},
		},
		{
			Name:    "returns",
			Comment: "sale adjustments",
			Columns: []types.SchemaColumn{
				pk("return_id"),
				ref("sale_id", "sales", "sale_id"),
				ref("article", "products", "article"),
				col("return_quantity", integerType),
				col("return_amount", numericType),
			},
		},
		{
			Name:    "plans",
			Comment: "monthly targets per manager",
			Columns: []types.SchemaColumn{
				ref("manager_id", "teams", "manager_id"),
				col("period_month", monthType),
				col("plan_revenue", numericType),
				col("plan_margin", numericType),
			},
		},
	}
}

// CreateTableSQL renders a CREATE TABLE statement. Foreign keys are not
// emitted; see ForeignKeys.
func CreateTableSQL(table types.SchemaTable) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CREATE TABLE %s (\n", table.Name)
	for i, column := range table.Columns {
		b.WriteString("    ")
		b.WriteString(column.Name)
		b.WriteString(" ")
		b.WriteString(column.Type)
		if column.IsPrimary {
			b.WriteString(" PRIMARY KEY")
		}
		if i < len(table.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");")

	return b.String()
}

func databasePreamble(database string) string {
	return fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s;\n\nUSE %s;\n\n", database, database)
}

// CombinedScript creates the database and every table in one script
func CombinedScript(database, dataDir string, tables []types.SchemaTable) string {
	var b strings.Builder

	b.WriteString("-- Creates the database and all tables of the sales dataset\n")
	b.WriteString("-- DBeaver: select the WHOLE script and run it with Execute SQL Script (Alt+X)\n\n")

	b.WriteString("-- Database\n")
	b.WriteString(databasePreamble(database))

	b.WriteString("-- Tables\n")
	for _, table := range tables {
		fmt.Fprintf(&b, "-- Table: %s", table.Name)
		if table.Comment != "" {
			fmt.Fprintf(&b, " (%s)", table.Comment)
		}
		b.WriteString("\n")
		b.WriteString(CreateTableSQL(table))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "-- Done. Import the CSV files from %s/ next\n", dataDir)
	return b.String()
}

// TableScript creates the database and a single table
func TableScript(database string, table types.SchemaTable) string {
	return databasePreamble(database) + CreateTableSQL(table) + "\n"
}

// TableScriptName is the per-table script file name
func TableScriptName(table types.SchemaTable) string {
	return fmt.Sprintf("create_table_%s.sql", table.Name)
}

// ForeignKeys lists every (table, column) -> (table, column) reference
func ForeignKeys(tables []types.SchemaTable) []types.ForeignKey {
	var fks []types.ForeignKey
	for _, table := range tables {
		for _, column := range table.Columns {
			if column.ForeignKeyTable == "" {
				continue
			}
			fks = append(fks, types.ForeignKey{
				Table:     table.Name,
				Column:    column.Name,
				RefTable:  column.ForeignKeyTable,
				RefColumn: column.ForeignKeyColumn,
			})
		}
	}
	return fks
}
