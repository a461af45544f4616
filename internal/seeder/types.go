package seeder

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type SeedConfig struct {
	Seed             int64
	Products         int
	Clients          int
	Managers         int
	Orders           int
	MaxLinesPerOrder int
	Window           DateWindow
}

// DateWindow is the order date range. Orders land in [Start, End) by day;
// plans cover every calendar month from Start to End inclusive.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Days is the number of whole days in the window, never negative
func (w DateWindow) Days() int {
	days := int(w.End.Sub(w.Start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

type Product struct {
	Article  string
	Name     string
	Category string
	Cost     int
}

type Team struct {
	ManagerID    string
	TeamLeaderID string
	Role         string
}

type Client struct {
	ClientID  string
	Name      string
	INN       string
	ManagerID string
}

type Order struct {
	OrderID   string
	ClientID  string
	OrderDate time.Time
	Total     int
	ManagerID string
}

type OrderLine struct {
	OrderLineID string
	OrderID     string
	Article     string
	Quantity    int
	Price       int
	LineSum     int
	LineMargin  decimal.Decimal
}

type Sale struct {
	SaleID     string
	OrderID    string
	Article    string
	Quantity   int
	SaleAmount int
}

type Return struct {
	ReturnID       string
	SaleID         string
	Article        string
	ReturnQuantity int
	ReturnAmount   decimal.Decimal
}

type Plan struct {
	ManagerID   string
	PeriodMonth string
	PlanRevenue int
	PlanMargin  int
}

func (p Product) Record() []string {
	return []string{p.Article, p.Name, p.Category, strconv.Itoa(p.Cost)}
}

func (t Team) Record() []string {
	return []string{t.ManagerID, t.TeamLeaderID, t.Role}
}

func (c Client) Record() []string {
	return []string{c.ClientID, c.Name, c.INN, c.ManagerID}
}

func (o Order) Record() []string {
	return []string{o.OrderID, o.ClientID, o.OrderDate.Format("2006-01-02"), strconv.Itoa(o.Total), o.ManagerID}
}

func (l OrderLine) Record() []string {
	return []string{
		l.OrderLineID,
		l.OrderID,
		l.Article,
		strconv.Itoa(l.Quantity),
		strconv.Itoa(l.Price),
		strconv.Itoa(l.LineSum),
		l.LineMargin.StringFixed(2),
	}
}

func (s Sale) Record() []string {
	return []string{s.SaleID, s.OrderID, s.Article, strconv.Itoa(s.Quantity), strconv.Itoa(s.SaleAmount)}
}

func (r Return) Record() []string {
	return []string{r.ReturnID, r.SaleID, r.Article, strconv.Itoa(r.ReturnQuantity), r.ReturnAmount.String()}
}

func (p Plan) Record() []string {
	return []string{p.ManagerID, p.PeriodMonth, strconv.Itoa(p.PlanRevenue), strconv.Itoa(p.PlanMargin)}
}
