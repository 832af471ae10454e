package product

import (
	"errors"
	"fmt"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// Domain errors for product operations.
var (
	// ErrProductIsNotConstructed is returned when using an improperly
	// initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
	// ErrNameIsRequired is returned when attempting to create a product
	// without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrInsufficientStock is returned when a reservation asks for more
	// units than are on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductInactive is returned when reserving a delisted product.
	ErrProductInactive = errors.New("product is not active")
)

// Product is an aggregate root for a single store's catalog entry. Stock
// is a non-negative on-hand count decremented by reservations and
// incremented by releases and restocks.
type Product struct {
	id      kernel.UUID
	tenant  kernel.TenantID
	storeID kernel.UUID
	name    string
	// category is a free-form merchant label, used only for browsing.
	category string
	price    kernel.Money
	stock    int
	// maxOrderQuantity caps the units a single order line may reserve.
	maxOrderQuantity int
	active           bool

	guard guard.ConstructorGuard
}

// NewProduct creates an active Product with the given starting stock.
func NewProduct(
	id kernel.UUID,
	tenant kernel.TenantID,
	storeID kernel.UUID,
	name string,
	category string,
	price kernel.Money,
	stock int,
	maxOrderQuantity int,
) (*Product, error) {
	p := &Product{
		category: category,
		active:   true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTenant(tenant),
		p.setStoreID(storeID),
		p.setName(name),
		p.setPrice(price),
		p.setStock(stock),
		p.setMaxOrderQuantity(maxOrderQuantity),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence, including its
// active flag.
func RestoreProduct(
	id kernel.UUID,
	tenant kernel.TenantID,
	storeID kernel.UUID,
	name string,
	category string,
	price kernel.Money,
	stock int,
	maxOrderQuantity int,
	active bool,
) (*Product, error) {
	p, err := NewProduct(id, tenant, storeID, name, category, price, stock, maxOrderQuantity)
	if err != nil {
		return nil, err
	}
	p.active = active
	return p, nil
}

// Validate ensures the Product was built through its constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares products by identifier.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Tenant returns the owning partition key.
func (p *Product) Tenant() kernel.TenantID {
	return p.tenant
}

// StoreID returns the store that exclusively owns this product.
func (p *Product) StoreID() kernel.UUID {
	return p.storeID
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Category returns the merchant-assigned browsing label.
func (p *Product) Category() string {
	return p.category
}

// Price returns the per-unit price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// Stock returns the current on-hand count.
func (p *Product) Stock() int {
	return p.stock
}

// MaxOrderQuantity returns the per-order unit cap.
func (p *Product) MaxOrderQuantity() int {
	return p.maxOrderQuantity
}

// IsActive reports whether the product is listed.
func (p *Product) IsActive() bool {
	return p.active
}

// Activate lists the product.
func (p *Product) Activate() {
	p.active = true
}

// Deactivate delists the product without touching its stock.
func (p *Product) Deactivate() {
	p.active = false
}

// SetPrice updates the per-unit price.
func (p *Product) SetPrice(price kernel.Money) error {
	return p.setPrice(price)
}

// Restock adds delivered inventory to the on-hand count.
func (p *Product) Restock(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not a positive quantity", qty))
	}
	p.stock += qty
	return nil
}

// Reserve takes qty units out of stock for an order line. The caller is
// responsible for releasing them if the order does not go through.
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not a positive quantity", qty))
	}
	if !p.active {
		return ErrProductInactive
	}
	if qty > p.maxOrderQuantity {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, p.maxOrderQuantity)
	}
	if qty > p.stock {
		return ErrInsufficientStock
	}
	p.stock -= qty
	return nil
}

// Release returns previously reserved units to stock. Releases are never
// capped: a cancelled order restores exactly what it reserved even if
// the merchant restocked in between.
func (p *Product) Release(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not a positive quantity", qty))
	}
	p.stock += qty
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	p.tenant = tenant
	return nil
}

func (p *Product) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	p.storeID = storeID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%d is negative", price.Int64()))
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}

func (p *Product) setMaxOrderQuantity(limit int) error {
	if limit <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxOrderQuantity",
			fmt.Errorf("%d is not a positive limit", limit))
	}
	p.maxOrderQuantity = limit
	return nil
}
