package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/shopspring/decimal"

	"dealsync/internal/config"
	"dealsync/internal/domain"
	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/service/pricing"
	"dealsync/internal/domain/value"
	"dealsync/pkg/contextx"
	"dealsync/pkg/errcodes"
	"dealsync/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type customerResolver interface {
	ResolveOrCreate(ctx context.Context, name, email string) (entity.Customer, error)
}

type variantResolver interface {
	ResolveOrCreate(
		ctx context.Context,
		stockCode string,
		name string,
		referencePrice decimal.Decimal,
		vat value.VATRate,
	) (entity.CatalogVariant, bool)
}

type orderCreator interface {
	CreateSalesOrder(ctx context.Context, order entity.Order) (entity.CreatedOrder, error)
}

type Input struct {
	Deal          entity.DealContext
	Items         []entity.DealLineItem
	CustomerName  string
	CustomerEmail string
}

type Submission struct {
	State       State
	Order       entity.Order
	Created     entity.CreatedOrder
	CustomItems []entity.CustomItemNote
}

// Assembler turns a deal into one MRP sales order. Line items are processed
// one at a time: resolving a stock code may create a catalog entry, and a
// later item with the same code must see it.
type Assembler struct {
	customers customerResolver
	variants  variantResolver
	pricing   pricing.Engine
	orders    orderCreator
	cfg       config.Order
}

func NewAssembler(
	customers customerResolver,
	variants variantResolver,
	engine pricing.Engine,
	orders orderCreator,
	cfg config.Order,
) Assembler {
	return Assembler{
		customers: customers,
		variants:  variants,
		pricing:   engine,
		orders:    orders,
		cfg:       cfg,
	}
}

type assembly struct {
	ctx        context.Context //nolint:containedctx
	submission Submission
}

func (a *assembly) moveTo(next State) {
	if !a.submission.State.CanTransition(next) {
		panic(fmt.Sprintf("order assembly: %s -> %s", a.submission.State, next))
	}

	logger(a.ctx).Debug("order assembly", slog.String(logx.FieldState, next.String()))

	a.submission.State = next
}

func (a *assembly) reject(err error) (Submission, error) {
	a.moveTo(StateRejected)

	return a.submission, err
}

func (a Assembler) Submit(ctx context.Context, input Input) (Submission, error) {
	run := &assembly{
		ctx: ctx,
		submission: Submission{
			State: StateInitializing,
			Order: entity.Order{
				ExternalOrderNumber: input.Deal.DealID,
				ReferenceTitle:      input.Deal.Title,
				CreatedDate:         input.Deal.WonTime,
				DeliveryDate:        value.DeliveryDate(input.Deal.WonTime, a.cfg.DeliveryLeadDays),
				Currency:            input.Deal.Currency,
				LocationID:          a.cfg.LocationID,
			},
		},
	}

	customer, err := a.customers.ResolveOrCreate(ctx, input.CustomerName, input.CustomerEmail)
	if err != nil {
		return run.reject(domain.WrapError(err, errcodes.CustomerResolutionFailed, "Failed to create customer"))
	}

	run.submission.Order.CustomerID = customer.ID
	run.moveTo(StateCustomerResolved)

	for _, item := range input.Items {
		a.appendRow(ctx, run, item, input.Deal.DealLevelDiscount)
	}

	run.submission.Order.Note = RenderNote(run.submission.CustomItems)
	run.moveTo(StateRowsBuilt)

	if err = validateRows(run.submission.Order.Rows); err != nil {
		return run.reject(err)
	}

	run.moveTo(StateValidated)

	created, err := a.orders.CreateSalesOrder(ctx, run.submission.Order)
	if err != nil {
		return run.reject(fmt.Errorf("orders.CreateSalesOrder: %w", err))
	}

	run.submission.Created = created
	run.moveTo(StateSubmitted)

	logger(ctx).Info(
		"sales order created",
		slog.Int64(logx.FieldOrderID, created.ID),
		slog.String(logx.FieldOrderNo, created.OrderNo),
		slog.Int(logx.FieldCustomItems, len(run.submission.CustomItems)),
	)

	return run.submission, nil
}

// appendRow adds one row for item. Items without a stock code, or whose
// stock code cannot be resolved, use the custom-item variant and are listed
// in the note.
func (a Assembler) appendRow(
	ctx context.Context,
	run *assembly,
	item entity.DealLineItem,
	dealDiscount decimal.Decimal,
) {
	if item.Quantity <= 0 {
		return
	}

	price := a.pricing.LinePrice(item, dealDiscount)
	stockCode := strings.ToUpper(strings.TrimSpace(item.StockCode))

	row := entity.OrderRow{
		VariantID:  a.cfg.CustomItemVariantID,
		Quantity:   item.Quantity,
		UnitPrice:  price.UnitPrice,
		TaxRateID:  price.TaxRateID,
		LocationID: a.cfg.LocationID,
	}

	resolved := false

	if stockCode != "" {
		var variant entity.CatalogVariant

		variant, resolved = a.variants.ResolveOrCreate(ctx, stockCode, item.Name, item.UnitPrice, item.VAT)
		if resolved {
			row.VariantID = variant.ID
		}
	}

	run.submission.Order.Rows = append(run.submission.Order.Rows, row)

	if resolved {
		return
	}

	rowIndex := len(run.submission.Order.Rows)

	logger(ctx).Info(
		"line item added as custom item",
		slog.Int(logx.FieldRow, rowIndex),
		slog.String(logx.FieldStockCode, stockCode),
	)

	run.submission.CustomItems = append(run.submission.CustomItems, entity.CustomItemNote{
		RowIndex:  rowIndex,
		Name:      item.Name,
		StockCode: stockCode,
		Quantity:  item.Quantity,
		UnitPrice: price.UnitPrice,
	})
}

func validateRows(rows []entity.OrderRow) error {
	if len(rows) == 0 {
		return failure.NewInvalidArgumentError(
			"order has no rows",
			failure.WithCode(errcodes.NoOrderRows),
			failure.WithDescription("No products to add"),
		)
	}

	for i, row := range rows {
		if row.VariantID <= 0 {
			description := fmt.Sprintf("Invalid variant_id at row %d: %d", i, row.VariantID)

			return failure.NewInvalidArgumentError(
				description,
				failure.WithCode(errcodes.InvalidVariantID),
				failure.WithDescription(description),
			)
		}
	}

	return nil
}
