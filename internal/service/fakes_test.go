package service_test

import (
	"sort"
	"time"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes backing the service tests. State lives in value maps
// so the fake transaction manager can snapshot and restore it to
// simulate a rollback.

type fakeCarRepo struct {
	cars  map[uuid.UUID]model.Car
	sales *fakeSaleRepo

	findForSaleErr  error
	findInStockErr  error
	updateStatusErr error
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: map[uuid.UUID]model.Car{}}
}

func (r *fakeCarRepo) snapshot() func() {
	saved := make(map[uuid.UUID]model.Car, len(r.cars))
	for id, car := range r.cars {
		saved[id] = car
	}
	return func() { r.cars = saved }
}

func (r *fakeCarRepo) add(car model.Car) uuid.UUID {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	r.cars[car.ID] = car
	return car.ID
}

func (r *fakeCarRepo) Create(car *model.Car) error {
	car.ID = r.add(*car)
	return nil
}

func (r *fakeCarRepo) Search(f repository.CarFilter) ([]model.Car, int64, error) {
	var out []model.Car
	for _, car := range r.cars {
		if f.Status != "" && string(car.Status) != f.Status {
			continue
		}
		out = append(out, car)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCarRepo) FindByID(id uuid.UUID) (*model.Car, error) {
	car, ok := r.cars[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &car, nil
}

func (r *fakeCarRepo) FindByVIN(vin string) (*model.Car, error) {
	for _, car := range r.cars {
		if car.VIN == vin {
			c := car
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCarRepo) FindForSale(tx *gorm.DB, id uuid.UUID) (*model.Car, error) {
	if r.findForSaleErr != nil {
		return nil, r.findForSaleErr
	}
	car, ok := r.cars[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.sales != nil {
		if sale, err := r.sales.FindByCarID(id); err == nil {
			car.Sale = sale
		}
	}
	return &car, nil
}

func (r *fakeCarRepo) FindInStock() ([]model.Car, error) {
	if r.findInStockErr != nil {
		return nil, r.findInStockErr
	}
	var out []model.Car
	for _, car := range r.cars {
		if car.Status != model.CarSold {
			out = append(out, car)
		}
	}
	return out, nil
}

func (r *fakeCarRepo) CountInStockByStatus() ([]repository.StatusCount, error) {
	counts := map[model.CarStatus]int64{}
	for _, car := range r.cars {
		if car.Status != model.CarSold {
			counts[car.Status]++
		}
	}
	statuses := make([]model.CarStatus, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

	out := make([]repository.StatusCount, len(statuses))
	for i, status := range statuses {
		out[i] = repository.StatusCount{Status: status, Count: counts[status]}
	}
	return out, nil
}

func (r *fakeCarRepo) Update(car *model.Car) error {
	if _, ok := r.cars[car.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *car
	stored.Sale = nil
	r.cars[car.ID] = stored
	return nil
}

func (r *fakeCarRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.CarStatus) error {
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	car, ok := r.cars[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	car.Status = status
	r.cars[id] = car
	return nil
}

func (r *fakeCarRepo) Delete(id uuid.UUID) error {
	delete(r.cars, id)
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]model.Customer

	updateStatusErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[uuid.UUID]model.Customer{}}
}

func (r *fakeCustomerRepo) snapshot() func() {
	saved := make(map[uuid.UUID]model.Customer, len(r.customers))
	for id, c := range r.customers {
		saved[id] = c
	}
	return func() { r.customers = saved }
}

func (r *fakeCustomerRepo) add(c model.Customer) uuid.UUID {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return c.ID
}

func (r *fakeCustomerRepo) Create(c *model.Customer) error {
	c.ID = r.add(*c)
	return nil
}

func (r *fakeCustomerRepo) FindAll(f repository.CustomerFilter) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) Update(c *model.Customer) error {
	if _, ok := r.customers[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.CustomerStatus) error {
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = status
	r.customers[id] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) CountFollowUpsBetween(start, end time.Time) (int64, error) {
	var count int64
	for _, c := range r.customers {
		if c.Status == model.LeadSold || c.Status == model.LeadLost {
			continue
		}
		if c.FollowUpDate == nil {
			continue
		}
		if !c.FollowUpDate.Before(start) && c.FollowUpDate.Before(end) {
			count++
		}
	}
	return count, nil
}

type fakeSaleRepo struct {
	sales     map[uuid.UUID]model.Sale
	cars      *fakeCarRepo
	customers *fakeCustomerRepo

	createErr error
	// missNextFindByCarID makes one FindByCarID lookup come back empty,
	// modelling a competing sale that commits right after the lookup.
	missNextFindByCarID bool
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[uuid.UUID]model.Sale{}}
}

func (r *fakeSaleRepo) snapshot() func() {
	saved := make(map[uuid.UUID]model.Sale, len(r.sales))
	for id, s := range r.sales {
		saved[id] = s
	}
	return func() { r.sales = saved }
}

func (r *fakeSaleRepo) add(s model.Sale) uuid.UUID {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Car = nil
	s.Customer = nil
	s.Seller = nil
	r.sales[s.ID] = s
	return s.ID
}

func (r *fakeSaleRepo) Create(tx *gorm.DB, s *model.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	s.ID = r.add(*s)
	return nil
}

// hydrate attaches the related car and customer the way the real repo's
// preloads would.
func (r *fakeSaleRepo) hydrate(s model.Sale) model.Sale {
	if r.cars != nil {
		if car, ok := r.cars.cars[s.CarID]; ok {
			s.Car = &car
		}
	}
	if r.customers != nil {
		if c, ok := r.customers.customers[s.CustomerID]; ok {
			s.Customer = &c
		}
	}
	return s
}

func (r *fakeSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s = r.hydrate(s)
	return &s, nil
}

func (r *fakeSaleRepo) FindByCarID(carID uuid.UUID) (*model.Sale, error) {
	if r.missNextFindByCarID {
		r.missNextFindByCarID = false
		return nil, gorm.ErrRecordNotFound
	}
	for _, s := range r.sales {
		if s.CarID == carID {
			s = r.hydrate(s)
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSaleRepo) all() []model.Sale {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, r.hydrate(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out
}

func (r *fakeSaleRepo) FindFiltered(f repository.SaleFilter) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.all() {
		if f.Start != nil && s.SaleDate.Before(*f.Start) {
			continue
		}
		if f.End != nil && s.SaleDate.After(*f.End) {
			continue
		}
		if f.PaymentStatus != "" && string(s.PaymentStatus) != f.PaymentStatus {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSaleRepo) FindBetween(start, end time.Time) ([]model.Sale, error) {
	return r.FindFiltered(repository.SaleFilter{Start: &start, End: &end})
}

func (r *fakeSaleRepo) FindRecent(limit int) ([]model.Sale, error) {
	out := r.all()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSaleRepo) FindAllWithCar() ([]model.Sale, error) {
	return r.all(), nil
}

func (r *fakeSaleRepo) Update(s *model.Sale) error {
	if _, ok := r.sales[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.add(*s)
	return nil
}

func (r *fakeSaleRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

type fakeExpenseRepo struct {
	expenses map[uuid.UUID]model.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: map[uuid.UUID]model.Expense{}}
}

func (r *fakeExpenseRepo) Create(e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses[e.ID] = *e
	return nil
}

func (r *fakeExpenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *fakeExpenseRepo) FindFiltered(f repository.ExpenseFilter) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if f.CarID != nil && e.CarID != *f.CarID {
			continue
		}
		if f.Type != "" && string(e.Type) != f.Type {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeExpenseRepo) Update(e *model.Expense) error {
	if _, ok := r.expenses[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.expenses[e.ID] = *e
	return nil
}

func (r *fakeExpenseRepo) Delete(id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

type fakeTestDriveRepo struct {
	drives []model.TestDrive
}

func (r *fakeTestDriveRepo) Create(td *model.TestDrive) error {
	if td.ID == uuid.Nil {
		td.ID = uuid.New()
	}
	r.drives = append(r.drives, *td)
	return nil
}

func (r *fakeTestDriveRepo) FindFiltered(carID, customerID *uuid.UUID) ([]model.TestDrive, error) {
	var out []model.TestDrive
	for _, td := range r.drives {
		if carID != nil && td.CarID != *carID {
			continue
		}
		if customerID != nil && td.CustomerID != *customerID {
			continue
		}
		out = append(out, td)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]model.User{}}
}

func (r *fakeUserRepo) add(u model.User) uuid.UUID {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u.ID
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) Create(u *model.User) error {
	u.ID = r.add(*u)
	return nil
}

func (r *fakeUserRepo) FindAll() ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	r.users[userID] = u
	return nil
}

type snapshotter interface {
	snapshot() func()
}

// fakeTxManager runs the callback against the fakes and restores their
// previous state when it fails, mirroring a database rollback.
type fakeTxManager struct {
	repos []snapshotter
}

func (m *fakeTxManager) Do(fn func(tx *gorm.DB) error) error {
	restores := make([]func(), len(m.repos))
	for i, r := range m.repos {
		restores[i] = r.snapshot()
	}
	if err := fn(nil); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

// fixture wires the fakes together the way main wires the real repos.
type fixture struct {
	cars      *fakeCarRepo
	customers *fakeCustomerRepo
	sales     *fakeSaleRepo
	txm       *fakeTxManager
}

func newFixture() *fixture {
	cars := newFakeCarRepo()
	customers := newFakeCustomerRepo()
	sales := newFakeSaleRepo()
	cars.sales = sales
	sales.cars = cars
	sales.customers = customers
	return &fixture{
		cars:      cars,
		customers: customers,
		sales:     sales,
		txm:       &fakeTxManager{repos: []snapshotter{cars, customers, sales}},
	}
}
