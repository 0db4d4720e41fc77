package dealsync

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/shopspring/decimal"

	"dealsync/internal/config"
	"dealsync/internal/domain"
	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/service/catalog"
	"dealsync/internal/domain/service/customer"
	"dealsync/internal/domain/service/order"
	"dealsync/internal/domain/service/pricing"
	"dealsync/internal/domain/value"
	"dealsync/pkg/contextx"
	"dealsync/pkg/errcodes"
	"dealsync/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type crmClient interface {
	GetDeal(ctx context.Context, dealID string) (entity.CRMDeal, error)
	GetDealProducts(ctx context.Context, dealID string) (entity.CRMDealProducts, error)
	GetProduct(ctx context.Context, productID int64) (entity.CRMProduct, error)
}

type mrpClient interface {
	ListSalesOrders(ctx context.Context, limit int) ([]entity.ExistingOrder, error)
	CreateSalesOrder(ctx context.Context, order entity.Order) (entity.CreatedOrder, error)
	ListCustomers(ctx context.Context, limit int) ([]entity.Customer, error)
	CreateCustomer(ctx context.Context, customer entity.Customer, currency string) (entity.Customer, error)
	ListVariants(ctx context.Context, start, limit int) ([]entity.CatalogVariant, error)
	CreateProduct(
		ctx context.Context,
		name string,
		variant entity.CatalogVariant,
		purchasePrice decimal.Decimal,
	) (entity.CatalogVariant, error)
}

type reviewNotifier interface {
	NotifyCustomItems(ctx context.Context, review entity.OrderReview) error
}

type syncMetrics interface {
	ObserveSync(outcome string)
	AddCustomItems(n int)
	CatalogEntryCreated()
}

// SyncRequest is one trigger invocation. A nil Products slice means the line
// items are loaded from the CRM; an empty one is taken as is.
type SyncRequest struct {
	DealID        string
	Products      []entity.DealLineItem
	WonTime       string
	DealTitle     string
	Currency      string
	CustomerName  string
	CustomerEmail string
}

type SyncResult struct {
	OrderID           int64
	OrderNo           string
	CustomItemsCount  int
	Rows              int
	DealLevelDiscount decimal.Decimal
}

type Service struct {
	crm       crmClient
	mrp       mrpClient
	engine    pricing.Engine
	catalog   catalog.Resolver
	customers customer.Resolver
	guard     order.Guard
	notifier  reviewNotifier
	metrics   syncMetrics
	cfg       config.Order
}

func NewService(
	cfg config.Config,
	crm crmClient,
	mrp mrpClient,
	notifier reviewNotifier,
	metrics syncMetrics,
) Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}

	if metrics == nil {
		metrics = nopMetrics{}
	}

	return Service{
		crm:       crm,
		mrp:       mrp,
		engine:    pricing.NewEngine(cfg.Pricing),
		catalog:   catalog.NewResolver(mrp, cfg.Katana.PageLimit, metrics),
		customers: customer.NewResolver(mrp, cfg.Katana.PageLimit, cfg.Order.DefaultCurrency),
		guard:     order.NewGuard(mrp, cfg.Katana.PageLimit),
		notifier:  notifier,
		metrics:   metrics,
		cfg:       cfg.Order,
	}
}

// Sync creates the MRP sales order for one won deal.
func (s Service) Sync(ctx context.Context, req SyncRequest) (SyncResult, error) {
	result, err := s.sync(ctx, req)

	s.metrics.ObserveSync(Outcome(err))

	if err == nil {
		s.metrics.AddCustomItems(result.CustomItemsCount)
	}

	return result, err
}

func (s Service) sync(ctx context.Context, req SyncRequest) (SyncResult, error) {
	dealID := strings.TrimSpace(req.DealID)
	if dealID == "" {
		return SyncResult{}, failure.NewInvalidArgumentError(
			"deal id is empty",
			failure.WithCode(errcodes.DealIDRequired),
			failure.WithDescription("deal_id required"),
		)
	}

	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldDealID, dealID)))

	deal := entity.DealContext{
		DealID:   dealID,
		Title:    req.DealTitle,
		Currency: req.Currency,
	}
	items := req.Products
	wonTime := strings.TrimSpace(req.WonTime)

	if items == nil || wonTime == "" {
		crmDeal, err := s.crm.GetDeal(ctx, dealID)
		if err != nil {
			return SyncResult{}, fmt.Errorf("crm.GetDeal: %w", err)
		}

		if items == nil {
			items, deal.DealLevelDiscount, err = s.loadLineItems(ctx, dealID, crmDeal)
			if err != nil {
				return SyncResult{}, err
			}
		}

		wonTime = cmp.Or(wonTime, strings.TrimSpace(crmDeal.WonTime))
		deal.Title = cmp.Or(deal.Title, crmDeal.Title)
		deal.Currency = cmp.Or(deal.Currency, crmDeal.Currency)
	}

	deal.Currency = cmp.Or(deal.Currency, s.cfg.DefaultCurrency)

	if wonTime == "" {
		return SyncResult{}, failure.NewInvalidArgumentError(
			"won time is empty",
			failure.WithCode(errcodes.WonTimeRequired),
			failure.WithDescription("won_time required"),
		)
	}

	parsed, err := value.ParseWonTime(wonTime)
	if err != nil {
		return SyncResult{}, failure.NewInvalidArgumentError(
			err.Error(),
			failure.WithCode(errcodes.InvalidWonTime),
			failure.WithDescription(fmt.Sprintf("invalid won_time: %s", wonTime)),
		)
	}

	deal.WonTime = parsed

	if existing, ok := s.guard.FindExisting(ctx, dealID); ok {
		return SyncResult{}, domain.NewError(errcodes.OrderAlreadyExists, "Order already exists").
			WithDetail("order_id", existing.ID).
			WithDetail("order_no", existing.OrderNo)
	}

	assembler := order.NewAssembler(s.customers, catalog.NewMemo(s.catalog), s.engine, s.mrp, s.cfg)

	submission, err := assembler.Submit(ctx, order.Input{
		Deal:          deal,
		Items:         items,
		CustomerName:  cmp.Or(req.CustomerName, deal.Title),
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return SyncResult{}, err
	}

	result := SyncResult{
		OrderID:           submission.Created.ID,
		OrderNo:           submission.Created.OrderNo,
		CustomItemsCount:  len(submission.CustomItems),
		Rows:              len(submission.Order.Rows),
		DealLevelDiscount: deal.DealLevelDiscount,
	}

	if len(submission.CustomItems) > 0 {
		review := entity.OrderReview{
			DealID:      dealID,
			DealTitle:   deal.Title,
			OrderID:     result.OrderID,
			OrderNo:     result.OrderNo,
			CustomItems: submission.CustomItems,
		}

		if err = s.notifier.NotifyCustomItems(ctx, review); err != nil {
			logger(ctx).Warn("custom items review notification failed", logx.Error(err))
		}
	}

	logger(ctx).Info(
		"deal synced",
		slog.Int64(logx.FieldOrderID, result.OrderID),
		slog.String(logx.FieldOrderNo, result.OrderNo),
		slog.Int(logx.FieldCustomItems, result.CustomItemsCount),
		logx.Decimal(logx.FieldDealDiscount, result.DealLevelDiscount),
	)

	return result, nil
}

// Outcome names the result of a sync for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case domain.HasCode(err, errcodes.OrderAlreadyExists):
		return OutcomeConflict
	case failure.IsInvalidArgumentError(err):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}

type nopNotifier struct{}

func (nopNotifier) NotifyCustomItems(context.Context, entity.OrderReview) error {
	return nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveSync(string)   {}
func (nopMetrics) AddCustomItems(int)   {}
func (nopMetrics) CatalogEntryCreated() {}
