package service_test

import (
	"errors"
	"testing"
	"time"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"
	"dealership-backend/internal/service"

	"github.com/google/uuid"
)

func seedCar(f *fixture, purchasePrice float64, expenseAmounts ...float64) uuid.UUID {
	car := model.Car{
		Make:          "Renault",
		Model:         "Clio",
		Year:          2018,
		VIN:           "VF1" + uuid.NewString()[:14],
		PurchasePrice: purchasePrice,
		PurchaseDate:  time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:        model.CarAvailable,
	}
	for _, amount := range expenseAmounts {
		car.Expenses = append(car.Expenses, model.Expense{Amount: amount})
	}
	return f.cars.add(car)
}

func seedCustomer(f *fixture, status model.CustomerStatus) uuid.UUID {
	return f.customers.add(model.Customer{
		Name:       "Joana Pereira",
		Phone:      "+351912000000",
		Status:     status,
		LeadSource: model.SourceStandvirtual,
	})
}

func recordSaleRequest(carID, customerID uuid.UUID, price float64) *service.RecordSaleRequest {
	return &service.RecordSaleRequest{
		CarID:         carID,
		CustomerID:    customerID,
		SalePrice:     price,
		SaleDate:      "2025-03-01",
		PaymentMethod: model.PayCash,
	}
}

func TestRecordSaleComputesProfit(t *testing.T) {
	f := newFixture()
	carID := seedCar(f, 8500, 100, 50)
	customerID := seedCustomer(f, model.LeadNegotiating)
	callerID := uuid.New()
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	sale, err := svc.RecordSale(recordSaleRequest(carID, customerID, 11200), callerID)
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}

	if sale.Profit != 2550 {
		t.Fatalf("expected profit 2550, got %v", sale.Profit)
	}
	if sale.SellerID != callerID {
		t.Fatalf("expected seller to default to caller %s, got %s", callerID, sale.SellerID)
	}
	if sale.PaymentStatus != model.PaymentPending {
		t.Fatalf("expected payment status to default to PENDING, got %s", sale.PaymentStatus)
	}

	car, _ := f.cars.FindByID(carID)
	if car.Status != model.CarSold {
		t.Fatalf("expected car status SOLD, got %s", car.Status)
	}
	customer, _ := f.customers.FindByID(customerID)
	if customer.Status != model.LeadSold {
		t.Fatalf("expected customer status SOLD, got %s", customer.Status)
	}
}

func TestRecordSaleExplicitSeller(t *testing.T) {
	f := newFixture()
	carID := seedCar(f, 5000)
	customerID := seedCustomer(f, model.LeadNew)
	sellerID := uuid.New()
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	req := recordSaleRequest(carID, customerID, 7000)
	req.SellerID = &sellerID

	sale, err := svc.RecordSale(req, uuid.New())
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}
	if sale.SellerID != sellerID {
		t.Fatalf("expected seller %s, got %s", sellerID, sale.SellerID)
	}
}

func TestRecordSaleCarAlreadySold(t *testing.T) {
	f := newFixture()
	carID := seedCar(f, 5000)
	customerID := seedCustomer(f, model.LeadNew)
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	if _, err := svc.RecordSale(recordSaleRequest(carID, customerID, 7000), uuid.New()); err != nil {
		t.Fatalf("first sale failed: %v", err)
	}

	otherCustomer := seedCustomer(f, model.LeadNew)
	_, err := svc.RecordSale(recordSaleRequest(carID, otherCustomer, 7500), uuid.New())
	if !errors.Is(err, service.ErrCarAlreadySold) {
		t.Fatalf("expected ErrCarAlreadySold, got %v", err)
	}
}

func TestRecordSaleDetectsCompetingSaleUnderLock(t *testing.T) {
	f := newFixture()
	carID := seedCar(f, 5000)
	winnerID := seedCustomer(f, model.LeadNew)
	loserID := seedCustomer(f, model.LeadNew)
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	// The competing sale commits right after this request's optimistic
	// pre-check, so only the locked re-read of the car can see it.
	f.sales.add(model.Sale{
		CarID:         carID,
		CustomerID:    winnerID,
		SellerID:      uuid.New(),
		SalePrice:     7000,
		SaleDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethod: model.PayCash,
	})
	f.sales.missNextFindByCarID = true

	_, err := svc.RecordSale(recordSaleRequest(carID, loserID, 7500), uuid.New())
	if !errors.Is(err, service.ErrCarAlreadySold) {
		t.Fatalf("expected ErrCarAlreadySold, got %v", err)
	}

	sales := f.sales.all()
	if len(sales) != 1 {
		t.Fatalf("expected exactly one sale to persist, got %d", len(sales))
	}
	if sales[0].CustomerID != winnerID {
		t.Fatalf("expected the competing sale to persist, got customer %s", sales[0].CustomerID)
	}
}

func TestRecordSaleUnknownCar(t *testing.T) {
	f := newFixture()
	customerID := seedCustomer(f, model.LeadNew)
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	_, err := svc.RecordSale(recordSaleRequest(uuid.New(), customerID, 7000), uuid.New())
	if !errors.Is(err, service.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
}

func TestRecordSaleInvalidDate(t *testing.T) {
	f := newFixture()
	carID := seedCar(f, 5000)
	customerID := seedCustomer(f, model.LeadNew)
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	req := recordSaleRequest(carID, customerID, 7000)
	req.SaleDate = "01/03/2025"

	_, err := svc.RecordSale(req, uuid.New())
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordSaleRollsBackWhenCustomerUpdateFails(t *testing.T) {
	f := newFixture()
	carID := seedCar(f, 5000)
	customerID := seedCustomer(f, model.LeadNew)
	f.customers.updateStatusErr = errors.New("connection reset")
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	_, err := svc.RecordSale(recordSaleRequest(carID, customerID, 7000), uuid.New())
	if err == nil {
		t.Fatal("expected the sale to fail")
	}

	if len(f.sales.sales) != 0 {
		t.Fatalf("expected no sale rows after rollback, found %d", len(f.sales.sales))
	}
	car, _ := f.cars.FindByID(carID)
	if car.Status != model.CarAvailable {
		t.Fatalf("expected car to stay AVAILABLE after rollback, got %s", car.Status)
	}
}

func TestDeleteSaleRestoresCar(t *testing.T) {
	f := newFixture()
	carID := seedCar(f, 5000)
	customerID := seedCustomer(f, model.LeadNegotiating)
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	sale, err := svc.RecordSale(recordSaleRequest(carID, customerID, 7000), uuid.New())
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}

	if err := svc.DeleteSale(sale.ID); err != nil {
		t.Fatalf("delete sale failed: %v", err)
	}

	car, _ := f.cars.FindByID(carID)
	if car.Status != model.CarAvailable {
		t.Fatalf("expected car back to AVAILABLE, got %s", car.Status)
	}
	// Reversing the sale does not touch the customer's pipeline status.
	customer, _ := f.customers.FindByID(customerID)
	if customer.Status != model.LeadSold {
		t.Fatalf("expected customer status to stay SOLD, got %s", customer.Status)
	}
	if _, err := f.sales.FindByCarID(carID); err == nil {
		t.Fatal("expected sale row to be gone")
	}
}

func TestUpdateSaleKeepsRecordedProfit(t *testing.T) {
	f := newFixture()
	carID := seedCar(f, 8500, 150)
	customerID := seedCustomer(f, model.LeadNew)
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	sale, err := svc.RecordSale(recordSaleRequest(carID, customerID, 11200), uuid.New())
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}

	newPrice := 12000.0
	status := model.PaymentPaidInFull
	updated, err := svc.UpdateSale(sale.ID, &service.UpdateSaleRequest{
		SalePrice:     &newPrice,
		PaymentStatus: &status,
	})
	if err != nil {
		t.Fatalf("update sale failed: %v", err)
	}

	if updated.SalePrice != 12000 {
		t.Fatalf("expected sale price 12000, got %v", updated.SalePrice)
	}
	if updated.PaymentStatus != model.PaymentPaidInFull {
		t.Fatalf("expected PAID_IN_FULL, got %s", updated.PaymentStatus)
	}
	if updated.Profit != sale.Profit {
		t.Fatalf("expected profit to stay %v, got %v", sale.Profit, updated.Profit)
	}
}

func TestSalesReportSummary(t *testing.T) {
	f := newFixture()
	svc := service.NewSaleService(f.sales, f.cars, f.customers, f.txm)

	for _, sale := range []struct {
		purchase, price float64
		expenses        []float64
	}{
		{purchase: 5000, price: 7000, expenses: []float64{200}},
		{purchase: 9000, price: 12500, expenses: nil},
	} {
		carID := seedCar(f, sale.purchase, sale.expenses...)
		customerID := seedCustomer(f, model.LeadNew)
		if _, err := svc.RecordSale(recordSaleRequest(carID, customerID, sale.price), uuid.New()); err != nil {
			t.Fatalf("record sale failed: %v", err)
		}
	}

	report, err := svc.SalesReport(repository.SaleFilter{})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if report.Summary.TotalSales != 2 {
		t.Fatalf("expected 2 sales, got %d", report.Summary.TotalSales)
	}
	if report.Summary.TotalRevenue != 19500 {
		t.Fatalf("expected revenue 19500, got %v", report.Summary.TotalRevenue)
	}
	// (7000-5000-200) + (12500-9000) = 1800 + 3500
	if report.Summary.TotalProfit != 5300 {
		t.Fatalf("expected profit 5300, got %v", report.Summary.TotalProfit)
	}
	if report.Summary.AvgProfit != 2650 {
		t.Fatalf("expected avg profit 2650, got %v", report.Summary.AvgProfit)
	}
	if report.Summary.TotalExpenses != 200 {
		t.Fatalf("expected expenses 200, got %v", report.Summary.TotalExpenses)
	}
}
