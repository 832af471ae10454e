// Package orderrepo maps order aggregates to their relational form.
// Line items and the status history live in child tables; the history
// table is append-only, mirroring the aggregate's audit trail.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
)

// OrderDTO is the database row for an order aggregate.
//
// ReadyAt is denormalized from the history: the instant the order
// entered ready_for_pickup, nil before that. The assignment sweeper
// filters on it without joining the history table.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Tenant     string     `gorm:"type:varchar(64);not null;index"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	StoreID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ZoneID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	RiderID    *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"type:varchar(32);not null;index"`

	Subtotal    int64 `gorm:"type:bigint;not null"`
	DeliveryFee int64 `gorm:"type:bigint;not null"`
	Commission  int64 `gorm:"type:bigint;not null"`
	Tax         int64 `gorm:"type:bigint;not null"`
	Discount    int64 `gorm:"type:bigint;not null"`
	Total       int64 `gorm:"type:bigint;not null"`

	AddressText string  `gorm:"type:varchar(512);not null"`
	DropLat     float64 `gorm:"type:double precision;not null"`
	DropLng     float64 `gorm:"type:double precision;not null"`

	PaymentMethod string `gorm:"type:varchar(32);not null"`
	PaymentStatus string `gorm:"type:varchar(32);not null"`

	CancellationReason *string    `gorm:"type:varchar(255)"`
	CancelledByID      *uuid.UUID `gorm:"type:uuid"`
	CancelledByRole    *string    `gorm:"type:varchar(32)"`
	CancelledAt        *time.Time `gorm:"type:timestamptz"`

	FeedbackRating  *int       `gorm:"type:int"`
	FeedbackComment *string    `gorm:"type:varchar(1024)"`
	FeedbackLeftAt  *time.Time `gorm:"type:timestamptz"`

	PlacedAt    time.Time  `gorm:"type:timestamptz;not null"`
	ReadyAt     *time.Time `gorm:"type:timestamptz;index"`
	DeliveredAt *time.Time `gorm:"type:timestamptz"`

	Items   []ItemDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default to "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line with its product snapshot.
type ItemDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Quantity     int       `gorm:"type:int;not null"`
	UnitPrice    int64     `gorm:"type:bigint;not null"`
	Substitution string    `gorm:"type:varchar(32);not null"`
}

// TableName overrides GORM's default to "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryEntryDTO is one line of the append-only status audit trail.
// The surrogate key preserves insertion order.
type HistoryEntryDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(32);not null"`
	At        time.Time `gorm:"type:timestamptz;not null"`
	Note      string    `gorm:"type:varchar(512);not null"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	ActorRole string    `gorm:"type:varchar(32);not null"`
}

// TableName overrides GORM's default to "order_history".
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:      orderID,
			ProductID:    item.ProductID().Bytes(),
			Name:         item.Name(),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice().Int64(),
			Substitution: item.Substitution().String(),
		})
	}

	var readyAt *time.Time
	history := make([]HistoryEntryDTO, 0, len(o.History()))
	for _, entry := range o.History() {
		if entry.Status == order.ReadyForPickup && readyAt == nil {
			at := entry.At
			readyAt = &at
		}
		history = append(history, HistoryEntryDTO{
			OrderID:   orderID,
			Status:    entry.Status.String(),
			At:        entry.At,
			Note:      entry.Note,
			ActorID:   entry.Actor.ID().Bytes(),
			ActorRole: entry.Actor.Role().String(),
		})
	}

	pricing := o.Pricing()
	dto := OrderDTO{
		ID:            orderID,
		Tenant:        o.Tenant().String(),
		CustomerID:    o.CustomerID().Bytes(),
		StoreID:       o.StoreID().Bytes(),
		ZoneID:        o.ZoneID().Bytes(),
		Status:        o.Status().String(),
		Subtotal:      pricing.Subtotal().Int64(),
		DeliveryFee:   pricing.DeliveryFee().Int64(),
		Commission:    pricing.Commission().Int64(),
		Tax:           pricing.Tax().Int64(),
		Discount:      pricing.Discount().Int64(),
		Total:         pricing.Total().Int64(),
		AddressText:   o.Address().Text(),
		DropLat:       o.Address().Location().Lat(),
		DropLng:       o.Address().Location().Lng(),
		PaymentMethod: o.PaymentMethod().String(),
		PaymentStatus: o.PaymentStatus().String(),
		PlacedAt:      o.PlacedAt(),
		ReadyAt:       readyAt,
		DeliveredAt:   o.DeliveredAt(),
		Items:         items,
		History:       history,
	}

	if o.Rider() != nil {
		riderID := o.Rider().Bytes()
		dto.RiderID = &riderID
	}

	if c := o.Cancellation(); c != nil {
		reason := c.Reason
		cancelledBy := c.CancelledBy.ID().Bytes()
		role := c.CancelledBy.Role().String()
		at := c.CancelledAt
		dto.CancellationReason = &reason
		dto.CancelledByID = &cancelledBy
		dto.CancelledByRole = &role
		dto.CancelledAt = &at
	}

	if f := o.CustomerFeedback(); f != nil {
		rating := f.Rating
		comment := f.Comment
		leftAt := f.LeftAt
		dto.FeedbackRating = &rating
		dto.FeedbackComment = &comment
		dto.FeedbackLeftAt = &leftAt
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenant, err := kernel.NewTenantID(dto.Tenant)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rid, ridErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if ridErr != nil {
			return nil, ridErr
		}
		riderID = &rid
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	pricing, err := order.NewPricing(
		kernel.Money(dto.Subtotal),
		kernel.Money(dto.DeliveryFee),
		kernel.Money(dto.Commission),
		kernel.Money(dto.Tax),
		kernel.Money(dto.Discount),
	)
	if err != nil {
		return nil, err
	}

	dropPoint, err := kernel.NewGeoPoint(dto.DropLat, dto.DropLng)
	if err != nil {
		return nil, err
	}
	address, err := order.NewDeliveryAddress(dto.AddressText, dropPoint)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	cancellation, err := cancellationToDomain(dto)
	if err != nil {
		return nil, err
	}

	var feedback *order.Feedback
	if dto.FeedbackRating != nil {
		comment := ""
		if dto.FeedbackComment != nil {
			comment = *dto.FeedbackComment
		}
		var leftAt time.Time
		if dto.FeedbackLeftAt != nil {
			leftAt = *dto.FeedbackLeftAt
		}
		feedback = &order.Feedback{Rating: *dto.FeedbackRating, Comment: comment, LeftAt: leftAt}
	}

	return order.RestoreOrder(id, tenant, customerID, storeID, zoneID, riderID,
		items, pricing, address, status, history, paymentMethod, paymentStatus,
		cancellation, feedback, dto.PlacedAt, dto.DeliveredAt)
}

func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		substitution, err := order.SubstitutionPolicyFromString(dto.Substitution)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(productID, dto.Name, dto.Quantity,
			kernel.Money(dto.UnitPrice), substitution)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func historyToDomain(dtos []HistoryEntryDTO) ([]order.HistoryEntry, error) {
	history := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		status, err := order.StatusFromString(dto.Status)
		if err != nil {
			return nil, err
		}
		actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
		if err != nil {
			return nil, err
		}
		role, err := order.RoleFromString(dto.ActorRole)
		if err != nil {
			return nil, err
		}
		actor, err := order.NewActor(actorID, role)
		if err != nil {
			return nil, err
		}
		history = append(history, order.HistoryEntry{
			Status: status,
			At:     dto.At,
			Note:   dto.Note,
			Actor:  actor,
		})
	}
	return history, nil
}

func cancellationToDomain(dto OrderDTO) (*order.CancellationRecord, error) {
	if dto.CancelledAt == nil {
		return nil, nil
	}

	cancelledByID, err := kernel.UUIDFromBytes((*dto.CancelledByID)[:])
	if err != nil {
		return nil, err
	}
	role, err := order.RoleFromString(*dto.CancelledByRole)
	if err != nil {
		return nil, err
	}
	cancelledBy, err := order.NewActor(cancelledByID, role)
	if err != nil {
		return nil, err
	}

	reason := ""
	if dto.CancellationReason != nil {
		reason = *dto.CancellationReason
	}

	return &order.CancellationRecord{
		Reason:      reason,
		CancelledBy: cancelledBy,
		CancelledAt: *dto.CancelledAt,
	}, nil
}
