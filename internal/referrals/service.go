package referrals

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
	"github.com/sweetquest/sweetquest-backend/pkg/pagination"
)

// Service manages orders and referral reporting.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, params ListOrdersParams) (*OrderPage, error)
	ListOrdersByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
	ComputeStats(ctx context.Context) (*Stats, error)
	ComputeAnalytics(ctx context.Context) ([]AffiliateAnalytics, error)
}

// CreateOrderInput captures a new order with optional referral attribution.
type CreateOrderInput struct {
	CustomerName  string
	ContactNumber string
	ServiceType   enums.ServiceType
	Total         decimal.Decimal
	PaymentMethod *string
	ReferenceNo   *string

	DeliveryAddress *string
	Landmark        *string
	PickupTime      *string
	PartySize       *int
	DineInTime      *string
	Notes           *string

	AffiliateID  *uuid.UUID
	ReferralCode *string
	ReferredBy   *string
}

// ListOrdersParams configures an order listing.
type ListOrdersParams struct {
	Status       *enums.OrderStatus
	OnlyReferred bool
	Limit        int
	Cursor       string
}

// OrderPage is one keyset page of orders. NextCursor is empty on the last
// page.
type OrderPage struct {
	Orders     []models.Order
	NextCursor string
}

// TopAffiliate names the partner leading by summed referred sales.
type TopAffiliate struct {
	ID    uuid.UUID
	Name  string
	Count int64
	Sales decimal.Decimal
}

// Stats summarizes referral performance across all partners.
type Stats struct {
	TotalReferrals   int64
	TotalRevenue     decimal.Decimal
	AvgOrderValue    decimal.Decimal
	TotalAffiliates  int64
	ActiveAffiliates int64
	TopAffiliate     *TopAffiliate
}

// AffiliateAnalytics breaks referral counts down per partner.
type AffiliateAnalytics struct {
	AffiliateID    uuid.UUID
	AffiliateName  string
	TotalReferrals int64
	TotalRevenue   decimal.Decimal
	WeekReferrals  int64
	MonthReferrals int64
	LastReferralAt *time.Time
}

// ServiceParams groups dependencies for the referral service.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
	Now    func() time.Time
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService constructs a referral service.
func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repo required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, logg: params.Logger, now: now}, nil
}

// CreateOrder persists a new order. Orders start pending.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.ContactNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact number is required")
	}
	if !input.ServiceType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid service type")
	}
	if input.Total.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total cannot be negative")
	}

	order := &models.Order{
		CustomerName:    strings.TrimSpace(input.CustomerName),
		ContactNumber:   strings.TrimSpace(input.ContactNumber),
		ServiceType:     input.ServiceType,
		Total:           input.Total,
		PaymentMethod:   input.PaymentMethod,
		ReferenceNo:     input.ReferenceNo,
		Status:          enums.OrderStatusPending,
		DeliveryAddress: input.DeliveryAddress,
		Landmark:        input.Landmark,
		PickupTime:      input.PickupTime,
		PartySize:       input.PartySize,
		DineInTime:      input.DineInTime,
		Notes:           input.Notes,
		AffiliateID:     input.AffiliateID,
		ReferralCode:    input.ReferralCode,
		ReferredBy:      input.ReferredBy,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return order, nil
}

// ListOrders returns one keyset page of orders, newest first, with affiliate
// attribution preloaded. The repo fetches one extra row to detect whether a
// next page exists.
func (s *service) ListOrders(ctx context.Context, params ListOrdersParams) (*OrderPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	orders, err := s.repo.ListOrders(ctx, ListOrdersQuery{
		Status:       params.Status,
		OnlyReferred: params.OnlyReferred,
		Limit:        pagination.LimitWithBuffer(params.Limit),
		Cursor:       cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	page := &OrderPage{Orders: orders}
	if len(orders) > limit {
		page.Orders = orders[:limit]
		last := page.Orders[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

// ListOrdersByAffiliate returns one partner's referred orders newest first.
func (s *service) ListOrdersByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]models.Order, error) {
	if affiliateID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "affiliate id is required")
	}
	orders, err := s.repo.ListOrdersByAffiliate(ctx, affiliateID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders by affiliate")
	}
	return orders, nil
}

// UpdateOrderStatus overwrites the order status. Any valid status can follow
// any other; the kitchen owns the sequencing.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return order, nil
}

// ComputeStats aggregates referral totals. The database function is the fast
// path; when it is unavailable the service falls back to aggregating the
// referred orders directly.
func (s *service) ComputeStats(ctx context.Context) (*Stats, error) {
	row, err := s.repo.ReferralStats(ctx)
	if err == nil {
		stats := &Stats{
			TotalReferrals:   row.TotalReferrals,
			TotalRevenue:     row.TotalRevenue,
			AvgOrderValue:    row.AvgOrderValue,
			TotalAffiliates:  row.TotalAffiliates,
			ActiveAffiliates: row.ActiveAffiliates,
		}
		if row.TopAffiliateID != nil && row.TopAffiliateName != nil && row.TopAffiliateCount != nil {
			stats.TopAffiliate = &TopAffiliate{
				ID:    *row.TopAffiliateID,
				Name:  *row.TopAffiliateName,
				Count: *row.TopAffiliateCount,
			}
			if row.TopAffiliateSales != nil {
				stats.TopAffiliate.Sales = *row.TopAffiliateSales
			}
		}
		return stats, nil
	}

	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, "referral stats function unavailable, using fallback aggregation")
	return s.computeStatsFallback(ctx)
}

func (s *service) computeStatsFallback(ctx context.Context) (*Stats, error) {
	orders, err := s.repo.ListReferredOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list referred orders")
	}

	total, active, err := s.repo.CountAffiliates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count affiliates")
	}

	stats := &Stats{
		TotalRevenue:     decimal.Zero,
		AvgOrderValue:    decimal.Zero,
		TotalAffiliates:  total,
		ActiveAffiliates: active,
	}
	perAffiliate := map[uuid.UUID]*TopAffiliate{}

	for _, order := range orders {
		stats.TotalReferrals++
		stats.TotalRevenue = stats.TotalRevenue.Add(order.Total)

		if order.AffiliateID == nil {
			continue
		}
		entry, ok := perAffiliate[*order.AffiliateID]
		if !ok {
			entry = &TopAffiliate{ID: *order.AffiliateID, Sales: decimal.Zero}
			if order.Affiliate != nil {
				entry.Name = order.Affiliate.Name
			}
			perAffiliate[*order.AffiliateID] = entry
		}
		entry.Count++
		entry.Sales = entry.Sales.Add(order.Total)
	}

	if stats.TotalReferrals > 0 {
		stats.AvgOrderValue = stats.TotalRevenue.
			Div(decimal.NewFromInt(stats.TotalReferrals)).
			Round(2)
	}

	// The leader is whoever brought in the most sales, not the most orders.
	for _, entry := range perAffiliate {
		if stats.TopAffiliate == nil || entry.Sales.GreaterThan(stats.TopAffiliate.Sales) {
			stats.TopAffiliate = entry
		}
	}
	return stats, nil
}

// ComputeAnalytics breaks referral performance down per partner with calendar
// week (Monday start) and calendar month counts, ordered by total revenue
// descending.
func (s *service) ComputeAnalytics(ctx context.Context) ([]AffiliateAnalytics, error) {
	orders, err := s.repo.ListReferredOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list referred orders")
	}

	now := s.now().UTC()
	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	byAffiliate := map[uuid.UUID]*AffiliateAnalytics{}
	ordered := []uuid.UUID{}

	for _, order := range orders {
		if order.AffiliateID == nil {
			continue
		}
		id := *order.AffiliateID
		entry, ok := byAffiliate[id]
		if !ok {
			entry = &AffiliateAnalytics{AffiliateID: id, TotalRevenue: decimal.Zero}
			if order.Affiliate != nil {
				entry.AffiliateName = order.Affiliate.Name
			}
			byAffiliate[id] = entry
			ordered = append(ordered, id)
		}

		entry.TotalReferrals++
		entry.TotalRevenue = entry.TotalRevenue.Add(order.Total)

		createdAt := order.CreatedAt.UTC()
		if !createdAt.Before(weekStart) {
			entry.WeekReferrals++
		}
		if !createdAt.Before(monthStart) {
			entry.MonthReferrals++
		}
		if entry.LastReferralAt == nil || createdAt.After(*entry.LastReferralAt) {
			last := createdAt
			entry.LastReferralAt = &last
		}
	}

	result := make([]AffiliateAnalytics, 0, len(ordered))
	for _, id := range ordered {
		result = append(result, *byAffiliate[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalRevenue.GreaterThan(result[j].TotalRevenue)
	})
	return result, nil
}

// startOfWeek returns midnight on the Monday of the instant's week.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(weekday - 1))
}
