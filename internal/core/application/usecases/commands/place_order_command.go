package commands

import (
	"errors"
	"fmt"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// ErrPlaceOrderCommandIsNotConstructed is returned when a
// PlaceOrderCommand bypassed its constructor.
var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderItem is one requested order line: which product, how many
// units, and what to do if the store runs out while packing.
type PlaceOrderItem struct {
	ProductID    kernel.UUID
	Quantity     int
	Substitution order.SubstitutionPolicy
}

func (i PlaceOrderItem) validate() error {
	if err := i.ProductID.Validate(); err != nil {
		return err
	}
	if i.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not a positive quantity", i.Quantity))
	}
	return i.Substitution.Validate()
}

// PlaceOrderCommand is a request to place a new order against a store.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	tenant        kernel.TenantID
	customerID    kernel.UUID
	storeID       kernel.UUID
	items         []PlaceOrderItem
	address       order.DeliveryAddress
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a placement request with at least one
// valid item.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	tenant kernel.TenantID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	items []PlaceOrderItem,
	address order.DeliveryAddress,
	paymentMethod order.PaymentMethod,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenant(tenant),
		cmd.setCustomerID(customerID),
		cmd.setStoreID(storeID),
		cmd.setItems(items),
		cmd.setAddress(address),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the caller-minted identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Tenant returns the partition the order belongs to.
func (c PlaceOrderCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// CustomerID returns the ordering customer.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// StoreID returns the store the order targets.
func (c PlaceOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Items returns the requested order lines.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	return append([]PlaceOrderItem(nil), c.items...)
}

// Address returns the delivery drop point.
func (c PlaceOrderCommand) Address() order.DeliveryAddress {
	return c.address
}

// PaymentMethod returns how the customer chose to pay.
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.validate(); err != nil {
			return err
		}
	}
	c.items = append([]PlaceOrderItem(nil), items...)
	return nil
}

func (c *PlaceOrderCommand) setAddress(address order.DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
