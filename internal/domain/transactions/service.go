package transactions

import (
	"context"
	"sort"
	"strings"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/pkg/logger"
)

// Input is the loosely-typed payload accepted for create/update. String
// ids and dates arrive raw from the boundary; coercion and validation
// happen here, not in the engines.
type Input struct {
	EntityID        string       `json:"entityId"`
	ProductID       string       `json:"productId"`
	Type            string       `json:"type"`
	Date            string       `json:"date"`
	Item            string       `json:"item"`
	Qty             types.Money  `json:"qty"`
	UnitAmount      types.Money  `json:"unitAmount"`
	GSTRate         types.Money  `json:"gstRate"`
	DueDate         string       `json:"dueDate"`
	PaidAmount      *types.Money `json:"paidAmount"`
	ReminderEnabled *bool        `json:"reminderEnabled"`
	Note            string       `json:"note"`
	BatchingEnabled bool         `json:"batchingEnabled"`
	BatchNo         string       `json:"batchNo"`
	MfgDate         string       `json:"mfgDate"`
	ExpDate         string       `json:"expDate"`
}

// Service provides transaction operations.
type Service struct {
	repo     Repository
	entities EntityLookup
	products ProductLookup
	bills    BillCascade
}

// NewService creates a new transaction service.
func NewService(repo Repository, entities EntityLookup, products ProductLookup, bills BillCascade) *Service {
	return &Service{
		repo:     repo,
		entities: entities,
		products: products,
		bills:    bills,
	}
}

// draft is a sanitized, parsed transaction payload.
type draft struct {
	entityID        id.ID
	productID       *id.ID
	txType          Type
	date            string
	item            string
	qty             types.Money
	unitAmount      types.Money
	gstRate         types.Money
	dueDate         string
	paidAmount      *types.Money
	reminderEnabled bool
	note            string
	batchingEnabled bool
	batchNo         string
	mfgDate         string
	expDate         string
}

// sanitize trims and normalizes the payload. Unknown types degrade to
// "sale" rather than failing, matching the import-friendly contract.
func sanitize(in Input) (*draft, error) {
	d := &draft{
		txType:          Type(strings.ToLower(strings.TrimSpace(in.Type))),
		date:            strings.TrimSpace(in.Date),
		item:            strings.TrimSpace(in.Item),
		qty:             in.Qty,
		unitAmount:      in.UnitAmount,
		gstRate:         in.GSTRate,
		dueDate:         strings.TrimSpace(in.DueDate),
		paidAmount:      in.PaidAmount,
		reminderEnabled: in.ReminderEnabled == nil || *in.ReminderEnabled,
		note:            strings.TrimSpace(in.Note),
		batchingEnabled: in.BatchingEnabled,
		batchNo:         strings.TrimSpace(in.BatchNo),
		mfgDate:         strings.TrimSpace(in.MfgDate),
		expDate:         strings.TrimSpace(in.ExpDate),
	}
	if !d.txType.IsValid() {
		d.txType = TypeSale
	}

	entityRaw := strings.TrimSpace(in.EntityID)
	if entityRaw != "" {
		entityID, err := id.Parse(entityRaw)
		if err != nil {
			return nil, apperror.NewInvalidInput("Invalid transaction fields.").
				WithDetail("field", "entityId")
		}
		d.entityID = entityID
	}

	productRaw := strings.TrimSpace(in.ProductID)
	if productRaw != "" {
		productID, err := id.Parse(productRaw)
		if err != nil {
			return nil, apperror.NewInvalidInput("Invalid transaction fields.").
				WithDetail("field", "productId")
		}
		d.productID = &productID
	}

	return d, nil
}

// validate enforces the transaction invariants against the catalogs.
func (s *Service) validate(ctx context.Context, userID id.ID, d *draft) error {
	if d.date == "" || id.IsNil(d.entityID) || d.item == "" {
		return apperror.NewInvalidInput("Invalid transaction fields.")
	}
	if !d.qty.IsPositive() || d.unitAmount.IsNegative() || d.gstRate.IsNegative() {
		return apperror.NewInvalidInput("Invalid transaction numbers.")
	}

	if _, err := s.entities.Get(ctx, userID, d.entityID); err != nil {
		return err
	}
	if d.productID != nil {
		if _, err := s.products.Get(ctx, userID, *d.productID); err != nil {
			return err
		}
	}

	if d.batchingEnabled && d.batchNo == "" {
		return apperror.NewInvalidInput("Batch number is required when batching is enabled.")
	}
	if d.mfgDate != "" && d.expDate != "" && d.expDate < d.mfgDate {
		return apperror.NewInvalidInput("Batch expiry date should be after manufacturing date.")
	}
	return nil
}

// applyProductDefaults fills item, price and GST rate from the product
// when the caller picked a product but left them blank.
func (s *Service) applyProductDefaults(ctx context.Context, userID id.ID, d *draft) {
	if d.productID == nil || d.item != "" {
		return
	}
	product, err := s.products.Get(ctx, userID, *d.productID)
	if err != nil {
		return // existence is re-checked in validate
	}
	d.item = product.Name
	if d.unitAmount.IsZero() {
		if d.txType == TypeSale || d.txType == TypeSaleReturn {
			d.unitAmount = product.SalePrice
		} else {
			d.unitAmount = product.PurchasePrice
		}
	}
	if d.gstRate.IsZero() {
		d.gstRate = product.GSTRate
	}
}

// Create records a new transaction. An initial paid amount becomes the
// first entry of the payment timeline.
func (s *Service) Create(ctx context.Context, userID id.ID, in Input) (*Transaction, error) {
	d, err := sanitize(in)
	if err != nil {
		return nil, err
	}

	s.applyProductDefaults(ctx, userID, d)

	if err := s.validate(ctx, userID, d); err != nil {
		return nil, err
	}

	paid := types.Zero()
	if d.paidAmount != nil && d.paidAmount.IsPositive() {
		paid = *d.paidAmount
	}

	tx := &Transaction{
		ID:              id.New(),
		UserID:          userID,
		EntityID:        d.entityID,
		ProductID:       d.productID,
		Type:            d.txType,
		Date:            d.date,
		Item:            d.item,
		Qty:             d.qty,
		UnitAmount:      d.unitAmount,
		GSTRate:         d.gstRate,
		DueDate:         d.dueDate,
		PaidAmount:      paid,
		Payments:        []Payment{},
		ReminderEnabled: d.reminderEnabled,
		Note:            d.note,
		BatchingEnabled: d.batchingEnabled,
		BatchNo:         d.batchNo,
		MfgDate:         d.mfgDate,
		ExpDate:         d.expDate,
		CreatedAt:       types.NowISO(),
	}
	if paid.IsPositive() {
		date := d.date
		if date == "" {
			date = types.TodayISO()
		}
		tx.Payments = append(tx.Payments, Payment{
			ID:        "p_" + id.New().String(),
			Amount:    paid,
			Date:      date,
			Note:      "Initial paid amount",
			CreatedAt: tx.CreatedAt,
		})
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	logger.Info(ctx, "transaction created", "transaction_id", tx.ID, "type", tx.Type)
	return tx, nil
}

// Update replaces a transaction's fields. The payment timeline is
// preserved; a missing paidAmount keeps the stored value.
func (s *Service) Update(ctx context.Context, userID, txID id.ID, in Input) (*Transaction, error) {
	existing, err := s.repo.GetByID(ctx, userID, txID)
	if err != nil {
		return nil, err
	}

	d, err := sanitize(in)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, userID, d); err != nil {
		return nil, err
	}

	paid := existing.PaidAmount
	if d.paidAmount != nil {
		paid = *d.paidAmount
		if paid.IsNegative() {
			paid = types.Zero()
		}
	}

	updated := &Transaction{
		ID:              existing.ID,
		UserID:          existing.UserID,
		EntityID:        d.entityID,
		ProductID:       d.productID,
		Type:            d.txType,
		Date:            d.date,
		Item:            d.item,
		Qty:             d.qty,
		UnitAmount:      d.unitAmount,
		GSTRate:         d.gstRate,
		DueDate:         d.dueDate,
		PaidAmount:      paid,
		Payments:        existing.Payments,
		ReminderEnabled: d.reminderEnabled,
		Note:            d.note,
		BatchingEnabled: d.batchingEnabled,
		BatchNo:         d.batchNo,
		MfgDate:         d.mfgDate,
		ExpDate:         d.expDate,
		CreatedAt:       existing.CreatedAt,
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// AddPayment applies a payment against a transaction's outstanding due.
// The applied amount is clamped to the due: overpaying settles the
// transaction, it never pushes the due negative. This is the only
// mutator of the payment timeline.
func (s *Service) AddPayment(ctx context.Context, userID, txID id.ID, addPaid types.Money, date, note string) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, userID, txID)
	if err != nil {
		return nil, err
	}
	if !addPaid.IsPositive() {
		return nil, apperror.NewInvalidInput("Payment should be greater than 0.")
	}

	today := types.TodayISO()
	_, alreadyPaid := ReconcilePayments(*tx, today)
	totals := types.ComputeTotals(tx.Qty, tx.UnitAmount, tx.GSTRate, alreadyPaid)
	if !totals.Due.IsPositive() {
		return nil, apperror.NewInvalidInput("Transaction is already fully paid.")
	}

	amount := addPaid
	if totals.Due.LessThan(amount) {
		amount = totals.Due
	}

	paymentDate := strings.TrimSpace(date)
	if paymentDate == "" {
		paymentDate = today
	}
	if len(paymentDate) > 10 {
		paymentDate = paymentDate[:10]
	}

	payment := Payment{
		ID:        "p_" + id.New().String(),
		Amount:    amount,
		Date:      paymentDate,
		Note:      strings.TrimSpace(note),
		CreatedAt: types.NowISO(),
	}

	updated, err := s.repo.AppendPayment(ctx, userID, txID, payment, alreadyPaid.Add(amount))
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "payment recorded",
		"transaction_id", txID,
		"amount", amount,
	)
	return updated, nil
}

// Delete removes a transaction and cascades into bills that referenced it.
func (s *Service) Delete(ctx context.Context, userID, txID id.ID) error {
	if err := s.repo.Delete(ctx, userID, txID); err != nil {
		return err
	}
	return s.bills.RebuildAfterTransactionDelete(ctx, userID, txID)
}

// enrichOne resolves display names and builds the enriched view.
func (s *Service) enrichOne(ctx context.Context, userID id.ID, tx Transaction, today string) Enriched {
	entityName := ""
	if entity, err := s.entities.Get(ctx, userID, tx.EntityID); err == nil {
		entityName = entity.Name
	}
	productName := ""
	if tx.ProductID != nil {
		if product, err := s.products.Get(ctx, userID, *tx.ProductID); err == nil {
			productName = product.Name
		}
	}
	return Enrich(tx, entityName, productName, today)
}

// List returns the user's transactions enriched and sorted by date
// descending. An optional entity filter narrows to one counterparty.
func (s *Service) List(ctx context.Context, userID id.ID, entityID *id.ID) ([]Enriched, error) {
	txs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := types.TodayISO()
	enriched := make([]Enriched, 0, len(txs))
	for _, tx := range txs {
		if entityID != nil && tx.EntityID != *entityID {
			continue
		}
		enriched = append(enriched, s.enrichOne(ctx, userID, tx, today))
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Date > enriched[j].Date
	})
	return enriched, nil
}

// Get returns one enriched transaction.
func (s *Service) Get(ctx context.Context, userID, txID id.ID) (*Enriched, error) {
	tx, err := s.repo.GetByID(ctx, userID, txID)
	if err != nil {
		return nil, err
	}
	e := s.enrichOne(ctx, userID, *tx, types.TodayISO())
	return &e, nil
}

// Reminders returns due-chasing candidates: reminder-enabled transactions
// whose due date has arrived and which still carry an outstanding amount.
// Sorted by due date ascending, most urgent first.
func (s *Service) Reminders(ctx context.Context, userID id.ID) ([]Enriched, error) {
	items, err := s.List(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	today := types.TodayISO()
	reminders := make([]Enriched, 0)
	for _, tx := range items {
		if tx.ReminderEnabled && tx.DueDate != "" && tx.DueDate <= today && tx.Due.IsPositive() {
			reminders = append(reminders, tx)
		}
	}
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DueDate < reminders[j].DueDate
	})
	return reminders, nil
}
