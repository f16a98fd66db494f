package orderform

import (
	"context"
	"errors"
	"testing"

	"food-delivery-admin/apiclient"
	"food-delivery-admin/catalog"
	"food-delivery-admin/models"

	"github.com/shopspring/decimal"
)

type stubSource struct{}

func (stubSource) ListRestaurants(context.Context) ([]models.Restaurant, error) { return nil, nil }
func (stubSource) ListCustomers(context.Context) ([]models.User, error)         { return nil, nil }
func (stubSource) ListDrivers(context.Context) ([]models.Driver, error)         { return nil, nil }

func (stubSource) ListProducts(_ context.Context, id string) ([]models.Product, error) {
	switch id {
	case "R1":
		return []models.Product{
			{ID: "P1", Restaurant: models.RefTo[models.Restaurant]("R1"), Price: dec("10")},
			{ID: "P2", Restaurant: models.RefTo[models.Restaurant]("R1"), Price: dec("5")},
		}, nil
	case "R2":
		return []models.Product{{ID: "P9", Price: dec("7")}}, nil
	}
	return nil, nil
}

type fakeCreator struct {
	got   *models.CreateOrderRequest
	err   error
	calls int
}

func (f *fakeCreator) CreateOrder(_ context.Context, in models.CreateOrderRequest) (*models.DeliveryOrder, error) {
	f.calls++
	f.got = &in
	if f.err != nil {
		return nil, f.err
	}
	total := decimal.Zero
	for _, l := range in.Items {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return &models.DeliveryOrder{ID: "o1", Ref: "CMD-0001", TotalPrice: total, Status: models.StatusPending}, nil
}

func newForm(t *testing.T, c Creator) *Form {
	t.Helper()
	return NewForm(catalog.NewLoader(stubSource{}, nil), c, nil)
}

func fillValid(t *testing.T, f *Form) {
	t.Helper()
	if err := f.SelectRestaurant(context.Background(), "R1"); err != nil {
		t.Fatal(err)
	}
	f.SetFields(Fields{
		CustomerID:      "C1",
		PaymentMethod:   models.PaymentCash,
		DeliveryStreet:  "12 Rue de Marseille",
		DeliveryCity:    "Tunis",
		DeliveryZipcode: "1000",
	})
	_ = f.SetProduct(0, "P1")
	_ = f.SetQuantity(0, 2)
	f.AddItem()
	_ = f.SetProduct(1, "P2")
}

func TestSubmit_TotalScenario(t *testing.T) {
	c := &fakeCreator{}
	f := newForm(t, c)
	fillValid(t, f)

	if got := FormatMoney(f.View().Total, "TND"); got != "25.00 TND" {
		t.Fatalf("preview total = %s", got)
	}
	order, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !order.TotalPrice.Equal(dec("25")) {
		t.Fatalf("server total = %s", order.TotalPrice)
	}
	if c.got.DriverID != nil {
		t.Fatalf("driver_id = %v, want nil", *c.got.DriverID)
	}
	if len(c.got.Items) != 2 || c.got.Items[0].Quantity != 2 || !c.got.Items[1].Price.Equal(dec("5")) {
		t.Fatalf("items = %+v", c.got.Items)
	}

	v := f.View()
	if v.Fields != (Fields{}) || v.RestaurantID != "" || len(v.Items) != 1 || !isBlank(v.Items[0]) {
		t.Fatalf("form not reset: %+v", v)
	}
	if len(f.Catalog().Products()) != 0 {
		t.Fatal("products not cleared")
	}
}

func TestSubmit_ValidationFailsBeforeNetwork(t *testing.T) {
	c := &fakeCreator{}
	f := newForm(t, c)
	fillValid(t, f)
	f.SetFields(Fields{CustomerID: "C1", PaymentMethod: models.PaymentCard, DeliveryStreet: "x", DeliveryCity: "y"})

	_, err := f.Submit(context.Background())
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "delivery_zipcode" || ve.Message != "delivery_zipcode is required" {
		t.Fatalf("err = %v", err)
	}
	if c.calls != 0 {
		t.Fatal("backend was called despite validation failure")
	}
}

func TestSubmit_RejectsRowWithoutProduct(t *testing.T) {
	c := &fakeCreator{}
	f := newForm(t, c)
	fillValid(t, f)
	f.AddItem()

	_, err := f.Submit(context.Background())
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "items[2].product_id" {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmit_RejectsUnknownPaymentMethod(t *testing.T) {
	f := newForm(t, &fakeCreator{})
	fillValid(t, f)
	v := f.View().Fields
	v.PaymentMethod = "bitcoin"
	f.SetFields(v)

	_, err := f.Submit(context.Background())
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != "payment_method must be one of: cash, card" {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmit_FailureLeavesFormUntouched(t *testing.T) {
	c := &fakeCreator{err: &apiclient.APIError{Status: 422, Message: "Product out of stock"}}
	f := newForm(t, c)
	fillValid(t, f)
	before := f.View()

	_, err := f.Submit(context.Background())
	if apiclient.MessageOr(err, "Failed to create order") != "Product out of stock" {
		t.Fatalf("err = %v", err)
	}
	after := f.View()
	if after.Fields != before.Fields || after.RestaurantID != "R1" || len(after.Items) != 2 || !after.Total.Equal(before.Total) {
		t.Fatalf("form changed: before=%+v after=%+v", before, after)
	}
}

func TestSubmit_SendsDriverWhenSet(t *testing.T) {
	c := &fakeCreator{}
	f := newForm(t, c)
	fillValid(t, f)
	v := f.View().Fields
	v.DriverID = "D7"
	f.SetFields(v)

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.got.DriverID == nil || *c.got.DriverID != "D7" {
		t.Fatalf("driver_id = %v", c.got.DriverID)
	}
}

func TestSelectRestaurant_SwitchClearsItems(t *testing.T) {
	f := newForm(t, &fakeCreator{})
	fillValid(t, f)

	if err := f.SelectRestaurant(context.Background(), "R1"); err != nil {
		t.Fatal(err)
	}
	if len(f.View().Items) != 2 {
		t.Fatal("reselecting the same restaurant cleared items")
	}

	if err := f.SelectRestaurant(context.Background(), "R2"); err != nil {
		t.Fatal(err)
	}
	v := f.View()
	if len(v.Items) != 1 || !isBlank(v.Items[0]) || v.RestaurantID != "R2" {
		t.Fatalf("after switch: %+v", v)
	}
	if _, ok := f.Catalog().Price("P1"); ok {
		t.Fatal("old products still loaded")
	}
}

type gatedCreator struct {
	fakeCreator
	started chan struct{}
	release chan struct{}
}

func (g *gatedCreator) CreateOrder(ctx context.Context, in models.CreateOrderRequest) (*models.DeliveryOrder, error) {
	close(g.started)
	<-g.release
	return g.fakeCreator.CreateOrder(ctx, in)
}

func TestSubmit_KeepsEditsMadeWhileInFlight(t *testing.T) {
	c := &gatedCreator{started: make(chan struct{}), release: make(chan struct{})}
	f := newForm(t, c)
	fillValid(t, f)

	type result struct {
		order *models.DeliveryOrder
		err   error
	}
	done := make(chan result)
	go func() {
		o, err := f.Submit(context.Background())
		done <- result{o, err}
	}()

	<-c.started
	if err := f.SetQuantity(1, 3); err != nil {
		t.Fatal(err)
	}
	close(c.release)
	res := <-done
	if res.err != nil || !res.order.TotalPrice.Equal(dec("25")) {
		t.Fatalf("order=%+v err=%v", res.order, res.err)
	}

	v := f.View()
	if len(v.Items) != 2 || v.Items[1].Quantity != 3 || v.Fields.CustomerID != "C1" || v.RestaurantID != "R1" {
		t.Fatalf("edits lost: %+v", v)
	}
	if len(f.Catalog().Products()) != 2 {
		t.Fatal("catalog reset despite edits")
	}
}

func TestSubmit_RejectedEditDoesNotBlockReset(t *testing.T) {
	c := &gatedCreator{started: make(chan struct{}), release: make(chan struct{})}
	f := newForm(t, c)
	fillValid(t, f)

	done := make(chan error)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-c.started
	if err := f.SetQuantity(0, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err = %v", err)
	}
	close(c.release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if v := f.View(); len(v.Items) != 1 || v.Fields.CustomerID != "" || v.RestaurantID != "" {
		t.Fatalf("form not reset: %+v", v)
	}
}
