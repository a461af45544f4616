package seeder

import (
	"fmt"

	"github.com/Rana718/salesgen/internal/types"
	"github.com/sirupsen/logrus"
)

const (
	TableProducts   = "products"
	TableTeams      = "teams"
	TableClients    = "clients"
	TableOrders     = "orders"
	TableOrderLines = "order_lines"
	TableSales      = "sales"
	TableReturns    = "returns"
	TablePlans      = "plans"

	stepManagers = "managers"
)

// Dataset holds every generated table of one run
type Dataset struct {
	Managers    []string
	TeamLeaders []string

	Products   []Product
	Teams      []Team
	Clients    []Client
	Orders     []Order
	OrderLines []OrderLine
	Sales      []Sale
	Returns    []Return
	Plans      []Plan
}

type Seeder struct {
	seedConfig SeedConfig
	generator  *DataGenerator
	graph      *DependencyGraph
	log        logrus.FieldLogger
}

func New(seedConfig SeedConfig, log logrus.FieldLogger) *Seeder {
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Seeder{
		seedConfig: seedConfig,
		generator:  NewDataGenerator(seedConfig.Seed),
		graph:      NewDependencyGraph(),
		log:        log,
	}
	s.registerSteps()
	return s
}

// registerSteps wires the builders. Registration order is also the order in
// which the random stream is consumed.
func (s *Seeder) registerSteps() {
	cfg := s.seedConfig
	g := s.generator

	s.graph.AddStep(&Step{
		Name: TableProducts,
		Run: func(d *Dataset) int {
			d.Products = BuildProducts(g, cfg.Products)
			return len(d.Products)
		},
	})
	s.graph.AddStep(&Step{
		Name: stepManagers,
		Run: func(d *Dataset) int {
			d.Managers = BuildManagers(cfg.Managers)
			d.TeamLeaders = BuildTeamLeaders(cfg.Managers)
			return len(d.Managers)
		},
	})
	s.graph.AddStep(&Step{
		Name:         TableTeams,
		Dependencies: []string{stepManagers},
		Run: func(d *Dataset) int {
			d.Teams = BuildTeams(g, d.Managers, d.TeamLeaders)
			return len(d.Teams)
		},
	})
	s.graph.AddStep(&Step{
		Name:         TableClients,
		Dependencies: []string{stepManagers},
		Run: func(d *Dataset) int {
			d.Clients = BuildClients(g, cfg.Clients, d.Managers)
			return len(d.Clients)
		},
	})
	s.graph.AddStep(&Step{
		Name:         TableOrders,
		Dependencies: []string{TableProducts, TableClients},
		Run: func(d *Dataset) int {
			d.Orders, d.OrderLines = BuildOrders(g, cfg.Window, cfg.Orders, cfg.MaxLinesPerOrder, d.Clients, d.Products)
			return len(d.Orders)
		},
	})
	s.graph.AddStep(&Step{
		Name:         TableSales,
		Dependencies: []string{TableOrders},
		Run: func(d *Dataset) int {
			d.Sales = BuildSales(g, d.OrderLines)
			return len(d.Sales)
		},
	})
	s.graph.AddStep(&Step{
		Name:         TableReturns,
		Dependencies: []string{TableSales},
		Run: func(d *Dataset) int {
			d.Returns = BuildReturns(g, d.Sales)
			return len(d.Returns)
		},
	})
	s.graph.AddStep(&Step{
		Name:         TablePlans,
		Dependencies: []string{stepManagers},
		Run: func(d *Dataset) int {
			d.Plans = BuildPlans(g, d.Managers, cfg.Window)
			return len(d.Plans)
		},
	})
}

// Order returns the step order Generate will follow
func (s *Seeder) Order() ([]string, error) {
	return s.graph.BuildOrder()
}

// Generate runs every step once. A Seeder owns a single random stream, so
// a second call continues the stream instead of repeating the first dataset.
func (s *Seeder) Generate() (*Dataset, error) {
	order, err := s.graph.BuildOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build generation order: %w", err)
	}

	s.log.WithField("seed", s.seedConfig.Seed).Debug("generating dataset")

	d := &Dataset{}
	for _, name := range order {
		rows := s.graph.Step(name).Run(d)
		s.log.WithFields(logrus.Fields{"step": name, "rows": rows}).Debug("step complete")
	}
	return d, nil
}

// Table renders the named table with the header of its schema definition
func (d *Dataset) Table(def types.SchemaTable) (types.TableData, error) {
	var rows [][]string
	switch def.Name {
	case TableProducts:
		rows = records(d.Products)
	case TableTeams:
		rows = records(d.Teams)
	case TableClients:
		rows = records(d.Clients)
	case TableOrders:
		rows = records(d.Orders)
	case TableOrderLines:
		rows = records(d.OrderLines)
	case TableSales:
		rows = records(d.Sales)
	case TableReturns:
		rows = records(d.Returns)
	case TablePlans:
		rows = records(d.Plans)
	default:
		return types.TableData{}, fmt.Errorf("no generated data for table %s", def.Name)
	}

	header := def.ColumnNames()
	for i, row := range rows {
		if len(row) != len(header) {
			return types.TableData{}, fmt.Errorf("table %s row %d has %d fields, header has %d", def.Name, i+1, len(row), len(header))
		}
	}

	return types.TableData{Name: def.Name, Header: header, Records: rows}, nil
}

func records[T interface{ Record() []string }](rows []T) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = row.Record()
	}
	return out
}
