package seeder

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinCost = 300
	MaxCost = 8000 // exclusive

	MinMarkup = 1.1
	MaxMarkup = 2.5

	MinLineMargin = 0.05
	MaxLineMargin = 0.35

	MaxQuantity = 5

	SaleProbability   = 0.85
	ReturnProbability = 0.08

	MinPlanRevenue = 150000
	MaxPlanRevenue = 450000 // exclusive
	MinPlanMargin  = 0.12
	MaxPlanMargin  = 0.28

	ManagerRole = "manager"
	innBase     = 7700000000
)

var Categories = []string{"Одежда", "Обувь", "Аксессуары", "Товары для дома", "Электроника"}

// BuildProducts draws every category first, then every cost.
func BuildProducts(g *DataGenerator, count int) []Product {
	categories := make([]string, count)
	for i := range categories {
		categories[i] = g.Choice(Categories)
	}

	products := make([]Product, count)
	for i := range products {
		products[i] = Product{
			Article:  fmt.Sprintf("ART%04d", i+1),
			Name:     fmt.Sprintf("Товар %d", i+1),
			Category: categories[i],
			Cost:     MinCost + g.Index(MaxCost-MinCost),
		}
	}
	return products
}

func BuildManagers(count int) []string {
	ids := make([]string, count)
	for i := range ids {
		ids[i] = fmt.Sprintf("M%02d", i+1)
	}
	return ids
}

// BuildTeamLeaders sizes the leader pool at half the managers, never below two
func BuildTeamLeaders(managers int) []string {
	count := managers / 2
	if count < 2 {
		count = 2
	}
	ids := make([]string, count)
	for i := range ids {
		ids[i] = fmt.Sprintf("TL%02d", i+1)
	}
	return ids
}

func BuildTeams(g *DataGenerator, managers, leaders []string) []Team {
	teams := make([]Team, len(managers))
	for i, manager := range managers {
		teams[i] = Team{
			ManagerID:    manager,
			TeamLeaderID: g.Choice(leaders),
			Role:         ManagerRole,
		}
	}
	return teams
}

func BuildClients(g *DataGenerator, count int, managers []string) []Client {
	clients := make([]Client, count)
	for i := range clients {
		clients[i] = Client{
			ClientID:  fmt.Sprintf("C%04d", i+1),
			Name:      fmt.Sprintf("ООО Клиент %d", i+1),
			INN:       strconv.FormatInt(innBase+int64(i+1), 10),
			ManagerID: g.Choice(managers),
		}
	}
	return clients
}

// BuildOrders generates orders and their lines together. Per order it draws
// the date offset, the client and the line count; per line the article, the
// quantity, the markup and the margin fraction.
func BuildOrders(g *DataGenerator, window DateWindow, count, maxLines int, clients []Client, products []Product) ([]Order, []OrderLine) {
	orders := make([]Order, 0, count)
	lines := make([]OrderLine, 0, count*(maxLines+1)/2)
	lastOffset := window.Days() - 1
	if lastOffset < 0 {
		lastOffset = 0
	}

	for i := 0; i < count; i++ {
		orderID := fmt.Sprintf("O%05d", i+1)
		orderDate := window.Start.AddDate(0, 0, g.IntRange(0, lastOffset))
		client := clients[g.Index(len(clients))]
		lineCount := g.IntRange(1, maxLines)

		total := 0
		for j := 0; j < lineCount; j++ {
			product := products[g.Index(len(products))]
			quantity := g.IntRange(1, MaxQuantity)
			price := int(float64(product.Cost) * g.Uniform(MinMarkup, MaxMarkup))
			lineSum := price * quantity
			margin := decimal.NewFromFloat(float64(lineSum) * g.Uniform(MinLineMargin, MaxLineMargin)).Round(2)

			lines = append(lines, OrderLine{
				OrderLineID: fmt.Sprintf("OL%06d", len(lines)+1),
				OrderID:     orderID,
				Article:     product.Article,
				Quantity:    quantity,
				Price:       price,
				LineSum:     lineSum,
				LineMargin:  margin,
			})
			total += lineSum
		}

		orders = append(orders, Order{
			OrderID:   orderID,
			ClientID:  client.ClientID,
			OrderDate: orderDate,
			Total:     total,
			ManagerID: client.ManagerID,
		})
	}

	return orders, lines
}

func BuildSales(g *DataGenerator, lines []OrderLine) []Sale {
	var sales []Sale
	for _, line := range lines {
		if !g.Chance(SaleProbability) {
			continue
		}
		sales = append(sales, Sale{
			SaleID:     fmt.Sprintf("S%06d", len(sales)+1),
			OrderID:    line.OrderID,
			Article:    line.Article,
			Quantity:   line.Quantity,
			SaleAmount: line.LineSum,
		})
	}
	return sales
}

// BuildReturns draws the inclusion mask for all sales before any returned
// quantity.
func BuildReturns(g *DataGenerator, sales []Sale) []Return {
	var picked []Sale
	for _, sale := range sales {
		if g.Chance(ReturnProbability) {
			picked = append(picked, sale)
		}
	}

	returns := make([]Return, len(picked))
	for i, sale := range picked {
		quantity := g.IntRange(1, sale.Quantity)
		returns[i] = Return{
			ReturnID:       fmt.Sprintf("R%06d", i+1),
			SaleID:         sale.SaleID,
			Article:        sale.Article,
			ReturnQuantity: quantity,
			ReturnAmount:   ProratedAmount(sale.SaleAmount, sale.Quantity, quantity),
		}
	}
	return returns
}

// ProratedAmount is amount * part / whole, kept at decimal.DivisionPrecision
// fractional digits without further rounding.
func ProratedAmount(amount, whole, part int) decimal.Decimal {
	return decimal.NewFromInt(int64(amount)).
		Mul(decimal.NewFromInt(int64(part))).
		Div(decimal.NewFromInt(int64(whole)))
}

// MonthsBetween lists YYYY-MM from the month of start to the month of end,
// both inclusive. Days of month are ignored.
func MonthsBetween(start, end time.Time) []string {
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []string
	for !cur.After(last) {
		months = append(months, cur.Format("2006-01"))
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

func BuildPlans(g *DataGenerator, managers []string, window DateWindow) []Plan {
	months := MonthsBetween(window.Start, window.End)

	plans := make([]Plan, 0, len(managers)*len(months))
	for _, manager := range managers {
		for _, month := range months {
			revenue := g.IntRange(MinPlanRevenue, MaxPlanRevenue-1)
			plans = append(plans, Plan{
				ManagerID:   manager,
				PeriodMonth: month,
				PlanRevenue: revenue,
				PlanMargin:  int(float64(revenue) * g.Uniform(MinPlanMargin, MaxPlanMargin)),
			})
		}
	}
	return plans
}
