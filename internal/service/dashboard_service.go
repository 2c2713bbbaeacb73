package service

import (
	"math"
	"sort"
	"time"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	lowStockThreshold   = 5
	oldInventoryDays    = 60
	recentSalesWindow   = 30
	trendMonths         = 6
)

// MonthSummary aggregates one calendar month of sales.
type MonthSummary struct {
	SalesCount int     `json:"salesCount"`
	Revenue    float64 `json:"revenue"`
	Profit     float64 `json:"profit"`
}

// TrendPoint is one month of the six-point trend, oldest first.
type TrendPoint struct {
	Month   string  `json:"month"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

type Alerts struct {
	OldInventory   int   `json:"oldInventory"`
	FollowUpsToday int64 `json:"followUpsToday"`
	LowStock       bool  `json:"lowStock"`
}

type MakeCount struct {
	Make  string `json:"make"`
	Count int    `json:"count"`
}

type TopSale struct {
	Car    string  `json:"car"`
	Profit float64 `json:"profit"`
}

type QuickStats struct {
	AvgDaysToSell      int        `json:"avgDaysToSell"`
	AvgProfit          float64    `json:"avgProfit"`
	BestSellingMake    *MakeCount `json:"bestSellingMake"`
	MostProfitableSale *TopSale   `json:"mostProfitableSale"`
}

// DashboardStats is the full GET /dashboard/stats payload.
type DashboardStats struct {
	TotalCarsInStock int                      `json:"totalCarsInStock"`
	InventoryValue   float64                  `json:"inventoryValue"`
	CarsByStatus     []repository.StatusCount `json:"carsByStatus"`
	ThisMonth        MonthSummary             `json:"thisMonth"`
	Alerts           Alerts                   `json:"alerts"`
	QuickStats       QuickStats               `json:"quickStats"`
	MonthlyTrend     []TrendPoint             `json:"monthlyTrend"`
}

type DashboardService interface {
	GetStats(now time.Time) (*DashboardStats, error)
}

type dashboardService struct {
	carRepo      repository.CarRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
}

func NewDashboardService(carRepo repository.CarRepository, saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository) DashboardService {
	return &dashboardService{
		carRepo:      carRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
	}
}

type monthWindow struct {
	start time.Time
	end   time.Time
	label string
}

// GetStats recomputes the dealership snapshot from scratch on every
// call. The reads are mutually independent, so they run concurrently
// and the whole request fails if any single one fails.
func (s *dashboardService) GetStats(now time.Time) (*DashboardStats, error) {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Second)
	sixtyDaysAgo := now.AddDate(0, 0, -oldInventoryDays)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	// Trailing calendar-month windows, oldest first.
	windows := make([]monthWindow, trendMonths)
	for i := 0; i < trendMonths; i++ {
		start := startOfMonth.AddDate(0, -(trendMonths - 1 - i), 0)
		windows[i] = monthWindow{
			start: start,
			end:   start.AddDate(0, 1, 0).Add(-time.Second),
			label: start.Format("Jan 2006"),
		}
	}

	var (
		carsInStock    []model.Car
		carsByStatus   []repository.StatusCount
		monthlySales   []model.Sale
		followUpsToday int64
		recentSales    []model.Sale
		allSales       []model.Sale
		trendSales     = make([][]model.Sale, trendMonths)
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		carsInStock, err = s.carRepo.FindInStock()
		return
	})
	g.Go(func() (err error) {
		carsByStatus, err = s.carRepo.CountInStockByStatus()
		return
	})
	g.Go(func() (err error) {
		monthlySales, err = s.saleRepo.FindBetween(startOfMonth, endOfMonth)
		return
	})
	g.Go(func() (err error) {
		followUpsToday, err = s.customerRepo.CountFollowUpsBetween(today, tomorrow)
		return
	})
	g.Go(func() (err error) {
		recentSales, err = s.saleRepo.FindRecent(recentSalesWindow)
		return
	})
	g.Go(func() (err error) {
		allSales, err = s.saleRepo.FindAllWithCar()
		return
	})
	for i := range windows {
		i := i
		g.Go(func() (err error) {
			trendSales[i], err = s.saleRepo.FindBetween(windows[i].start, windows[i].end)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Everything below is derived purely in memory.

	var inventoryValue float64
	oldInventoryCount := 0
	for _, car := range carsInStock {
		inventoryValue += car.PurchasePrice + car.TotalExpenses()
		if car.PurchaseDate.Before(sixtyDaysAgo) {
			oldInventoryCount++
		}
	}

	thisMonth := summarizeMonth(monthlySales)

	avgDaysToSell, avgProfit := recentSaleAverages(recentSales)

	trend := make([]TrendPoint, trendMonths)
	for i, sales := range trendSales {
		summary := summarizeMonth(sales)
		trend[i] = TrendPoint{
			Month:   windows[i].label,
			Sales:   summary.SalesCount,
			Revenue: summary.Revenue,
			Profit:  summary.Profit,
		}
	}

	return &DashboardStats{
		TotalCarsInStock: len(carsInStock),
		InventoryValue:   inventoryValue,
		CarsByStatus:     carsByStatus,
		ThisMonth:        thisMonth,
		Alerts: Alerts{
			OldInventory:   oldInventoryCount,
			FollowUpsToday: followUpsToday,
			LowStock:       len(carsInStock) < lowStockThreshold,
		},
		QuickStats: QuickStats{
			AvgDaysToSell:      avgDaysToSell,
			AvgProfit:          avgProfit,
			BestSellingMake:    bestSellingMake(allSales),
			MostProfitableSale: mostProfitableSale(monthlySales),
		},
		MonthlyTrend: trend,
	}, nil
}

// saleMargin recomputes a sale's margin from the car's current cost
// basis; used for window aggregates, unlike the persisted per-sale
// profit which is frozen at sale time.
func saleMargin(sale *model.Sale) float64 {
	if sale.Car == nil {
		return 0
	}
	return sale.SalePrice - sale.Car.PurchasePrice - sale.Car.TotalExpenses()
}

func summarizeMonth(sales []model.Sale) MonthSummary {
	summary := MonthSummary{SalesCount: len(sales)}
	for i := range sales {
		summary.Revenue += sales[i].SalePrice
		summary.Profit += saleMargin(&sales[i])
	}
	return summary
}

// recentSaleAverages returns the mean days-on-lot and the mean
// persisted profit over the most recent sales; both are 0 with no
// sales.
func recentSaleAverages(sales []model.Sale) (int, float64) {
	if len(sales) == 0 {
		return 0, 0
	}
	var totalDays, totalProfit float64
	for i := range sales {
		if sales[i].Car != nil {
			totalDays += math.Floor(sales[i].SaleDate.Sub(sales[i].Car.PurchaseDate).Hours() / 24)
		}
		totalProfit += sales[i].Profit
	}
	n := float64(len(sales))
	return int(math.Round(totalDays / n)), math.Round(totalProfit / n)
}

// bestSellingMake picks the make with the most all-time sales. Ties go
// to the lexicographically smallest make so the result is deterministic
// regardless of query order.
func bestSellingMake(sales []model.Sale) *MakeCount {
	counts := map[string]int{}
	for i := range sales {
		if sales[i].Car != nil {
			counts[sales[i].Car.Make]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	makes := make([]string, 0, len(counts))
	for name := range counts {
		makes = append(makes, name)
	}
	sort.Strings(makes)

	best := &MakeCount{Make: makes[0], Count: counts[makes[0]]}
	for _, name := range makes[1:] {
		if counts[name] > best.Count {
			best = &MakeCount{Make: name, Count: counts[name]}
		}
	}
	return best
}

// mostProfitableSale scans this month's sales in saleDate-descending
// query order; the first sale encountered wins ties.
func mostProfitableSale(sales []model.Sale) *TopSale {
	if len(sales) == 0 {
		return nil
	}
	best := &sales[0]
	bestMargin := saleMargin(best)
	for i := 1; i < len(sales); i++ {
		if margin := saleMargin(&sales[i]); margin > bestMargin {
			best = &sales[i]
			bestMargin = margin
		}
	}
	top := &TopSale{Profit: bestMargin}
	if best.Car != nil {
		top.Car = best.Car.Make + " " + best.Car.Model
	}
	return top
}
