package order

import (
	"errors"
	"fmt"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly
// initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// SubstitutionPolicy tells the store what to do when an item runs out
// between reservation and packing.
type SubstitutionPolicy int

const (
	// SubstitutionUnknown catches uninitialized policy values.
	SubstitutionUnknown SubstitutionPolicy = iota
	// SubstitutionNone refunds the line; never substitute.
	SubstitutionNone
	// SubstitutionSimilar lets the store pick a comparable item.
	SubstitutionSimilar
	// SubstitutionContact has the store call the customer first.
	SubstitutionContact
)

func getSubstitutionStrings() map[SubstitutionPolicy]string {
	return map[SubstitutionPolicy]string{
		SubstitutionUnknown: "unknown",
		SubstitutionNone:    "none",
		SubstitutionSimilar: "similar",
		SubstitutionContact: "contact_customer",
	}
}

// SubstitutionPolicyFromString parses the persistence form of a policy.
func SubstitutionPolicyFromString(value string) (SubstitutionPolicy, error) {
	for policy, str := range getSubstitutionStrings() {
		if policy != SubstitutionUnknown && str == value {
			return policy, nil
		}
	}
	return SubstitutionUnknown, errs.NewValueIsInvalidErrorWithCause("substitutionPolicy",
		fmt.Errorf("%q is not a valid substitution policy", value))
}

// Validate checks the policy is one of the defined values.
func (p SubstitutionPolicy) Validate() error {
	if p <= SubstitutionUnknown || p > SubstitutionContact {
		return errs.NewValueIsInvalidErrorWithCause("substitutionPolicy",
			fmt.Errorf("%d is not a valid substitution policy", p))
	}
	return nil
}

// String returns the lowercase snake form used in persistence and APIs.
func (p SubstitutionPolicy) String() string {
	if str, ok := getSubstitutionStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Item is an ordered line: a product snapshot with quantity and frozen
// unit price. The snapshot protects the order from later catalog edits.
type Item struct {
	productID kernel.UUID
	// name is snapshotted at placement; later renames do not affect it.
	name         string
	quantity     int
	unitPrice    kernel.Money
	substitution SubstitutionPolicy

	guard guard.ConstructorGuard
}

// NewItem creates a line item with a positive quantity and a frozen
// unit price.
func NewItem(
	productID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	substitution SubstitutionPolicy,
) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setSubstitution(substitution),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was built through its constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the reserved product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name as snapshotted at placement.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the reserved unit count.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price frozen at placement.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns unit price times quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulQty(i.quantity)
}

// Substitution returns the out-of-stock handling policy.
func (i Item) Substitution() SubstitutionPolicy {
	return i.substitution
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not a positive quantity", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice.Int64()))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setSubstitution(policy SubstitutionPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	i.substitution = policy
	return nil
}
