package receiving

import (
	"errors"
	"fmt"
	"sort"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/errs"
)

var (
	// ErrTaskIsNotConstructed is returned when a Task instance was not created
	// through NewTask or RestoreTask.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask or RestoreTask constructor")

	// ErrInvalidTransition indicates a lifecycle operation that the task's
	// current status does not permit.
	ErrInvalidTransition = errors.New("invalid receiving task transition")

	// ErrVersionConflict is returned by repositories when a concurrent writer
	// modified the task since it was loaded.
	ErrVersionConflict = errors.New("receiving task was modified concurrently")
)

// ExpectedLine is one SKU quantity announced by the supplier.
type ExpectedLine struct {
	SKU      string
	Quantity int
}

// Validate checks the expected line for well-formedness.
func (l ExpectedLine) Validate() error {
	if l.SKU == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	if l.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", l.Quantity))
	}
	return nil
}

// ActualLine is one recorded batch of arrived units with their condition.
// A single SKU may appear in several actual lines, for example a partly
// damaged delivery recorded as one Good and one Damaged batch.
type ActualLine struct {
	SKU       string
	Quantity  int
	Condition Condition
}

// Validate checks the actual line for well-formedness.
func (l ActualLine) Validate() error {
	if l.SKU == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	if l.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", l.Quantity))
	}
	return l.Condition.Validate()
}

// DiscrepancyEntry is one itemized mismatch found during reconciliation.
type DiscrepancyEntry struct {
	SKU     string
	Message string
}

// InboundCommit names a good-condition quantity that replenishes stock.
type InboundCommit struct {
	SKU      string
	Quantity int
}

// Task is the receiving work order aggregate for one inbound delivery.
type Task struct {
	id            kernel.UUID
	warehouseID   kernel.UUID
	supplier      string
	status        Status
	expected      []ExpectedLine
	actuals       []ActualLine
	discrepancies []DiscrepancyEntry

	// version is the optimistic-concurrency token, monotonically increasing
	version int64

	guard kernel.ConstructorGuard
}

// NewTask creates a Pending receiving task for an announced delivery.
func NewTask(id, warehouseID kernel.UUID, supplier string, expected []ExpectedLine) (*Task, error) {
	task := &Task{
		status:  Pending,
		version: 1,
		guard:   kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		task.setID(id),
		task.setWarehouseID(warehouseID),
		task.setSupplier(supplier),
		task.setExpected(expected),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// RestoreTask reconstructs a task from persistence.
func RestoreTask(
	id, warehouseID kernel.UUID,
	supplier string,
	status Status,
	expected []ExpectedLine,
	actuals []ActualLine,
	discrepancies []DiscrepancyEntry,
	version int64,
) (*Task, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("task version")
	}

	task := &Task{
		status:        status,
		actuals:       append([]ActualLine(nil), actuals...),
		discrepancies: append([]DiscrepancyEntry(nil), discrepancies...),
		version:       version,
		guard:         kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		task.setID(id),
		task.setWarehouseID(warehouseID),
		task.setSupplier(supplier),
		task.setExpected(expected),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate ensures the Task was created through a constructor.
func (t *Task) Validate() error {
	if t == nil || t.guard.Validate(ErrTaskIsNotConstructed) != nil {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// ID returns the task identifier.
func (t *Task) ID() kernel.UUID { return t.id }

// WarehouseID returns the warehouse receiving the delivery.
func (t *Task) WarehouseID() kernel.UUID { return t.warehouseID }

// Supplier returns the announcing supplier.
func (t *Task) Supplier() string { return t.supplier }

// Status returns the lifecycle state.
func (t *Task) Status() Status { return t.status }

// Expected returns a copy of the announced lines.
func (t *Task) Expected() []ExpectedLine {
	return append([]ExpectedLine(nil), t.expected...)
}

// Actuals returns a copy of the recorded arrival batches.
func (t *Task) Actuals() []ActualLine {
	return append([]ActualLine(nil), t.actuals...)
}

// Discrepancies returns a copy of the itemized mismatches found by
// reconciliation. Empty before reconciliation.
func (t *Task) Discrepancies() []DiscrepancyEntry {
	return append([]DiscrepancyEntry(nil), t.discrepancies...)
}

// Version returns the optimistic-concurrency token the task was loaded with.
func (t *Task) Version() int64 { return t.version }

// Start moves a pending task into active receiving.
func (t *Task) Start() error {
	if t.status != Pending {
		return fmt.Errorf("%w: cannot start a %s task", ErrInvalidTransition, t.status)
	}

	t.status = InProgress
	return nil
}

// RecordActual appends one arrived batch to the task.
// Units of SKUs the supplier never announced are recorded too; they surface
// as discrepancies during reconciliation.
func (t *Task) RecordActual(sku string, quantity int, condition Condition) error {
	if t.status != InProgress {
		return fmt.Errorf("%w: cannot record actuals on a %s task", ErrInvalidTransition, t.status)
	}

	line := ActualLine{SKU: sku, Quantity: quantity, Condition: condition}
	if err := line.Validate(); err != nil {
		return err
	}

	t.actuals = append(t.actuals, line)
	return nil
}

// Reconcile compares the announced lines against the recorded arrivals and
// finishes the task. Every quantity gap and every non-Good unit produces an
// itemized discrepancy; a task with discrepancies ends in Discrepancy,
// otherwise in Completed.
//
// The returned commits list the Good-condition quantities per SKU that must
// replenish stock. Good units are committed in full even when the same task
// carries discrepancies.
func (t *Task) Reconcile() ([]InboundCommit, error) {
	if t.status != InProgress {
		return nil, fmt.Errorf("%w: cannot reconcile a %s task", ErrInvalidTransition, t.status)
	}

	goodBySKU := make(map[string]int)
	badBySKU := make(map[string]map[Condition]int)
	for _, actual := range t.actuals {
		if actual.Condition == Good {
			goodBySKU[actual.SKU] += actual.Quantity
			continue
		}
		if badBySKU[actual.SKU] == nil {
			badBySKU[actual.SKU] = make(map[Condition]int)
		}
		badBySKU[actual.SKU][actual.Condition] += actual.Quantity
	}

	var discrepancies []DiscrepancyEntry

	expectedSKUs := make(map[string]struct{}, len(t.expected))
	for _, expected := range t.expected {
		expectedSKUs[expected.SKU] = struct{}{}

		if good := goodBySKU[expected.SKU]; good != expected.Quantity {
			discrepancies = append(discrepancies, DiscrepancyEntry{
				SKU: expected.SKU,
				Message: fmt.Sprintf("expected %d good units, received %d",
					expected.Quantity, good),
			})
		}
	}

	for _, sku := range sortedSKUs(badBySKU) {
		for _, condition := range []Condition{Damaged, Expired} {
			if qty := badBySKU[sku][condition]; qty > 0 {
				discrepancies = append(discrepancies, DiscrepancyEntry{
					SKU:     sku,
					Message: fmt.Sprintf("%d units received in %s condition", qty, condition),
				})
			}
		}
	}

	for _, sku := range sortedSKUs(goodBySKU) {
		if _, announced := expectedSKUs[sku]; !announced {
			discrepancies = append(discrepancies, DiscrepancyEntry{
				SKU:     sku,
				Message: fmt.Sprintf("%d good units received but never announced", goodBySKU[sku]),
			})
		}
	}

	commits := make([]InboundCommit, 0, len(goodBySKU))
	for _, sku := range sortedSKUs(goodBySKU) {
		if goodBySKU[sku] > 0 {
			commits = append(commits, InboundCommit{SKU: sku, Quantity: goodBySKU[sku]})
		}
	}

	t.discrepancies = discrepancies
	if len(discrepancies) == 0 {
		t.status = Completed
	} else {
		t.status = Discrepancy
	}

	return commits, nil
}

// ReportUntrackedSKU records that a good-condition commit could not be
// applied because the warehouse does not track the SKU. The lost units
// become a discrepancy and the task ends in Discrepancy, so a clean
// reconciliation can never hide stock that was received but not counted.
func (t *Task) ReportUntrackedSKU(sku string, quantity int) error {
	if t.status != Completed && t.status != Discrepancy {
		return fmt.Errorf("%w: cannot report an untracked sku on a %s task",
			ErrInvalidTransition, t.status)
	}
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}

	t.discrepancies = append(t.discrepancies, DiscrepancyEntry{
		SKU: sku,
		Message: fmt.Sprintf("%d good units received but the sku is not tracked in inventory",
			quantity),
	})
	t.status = Discrepancy
	return nil
}

func sortedSKUs[V any](m map[string]V) []string {
	skus := make([]string, 0, len(m))
	for sku := range m {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.warehouseID = id
	return nil
}

func (t *Task) setSupplier(supplier string) error {
	if supplier == "" {
		return errs.NewValueIsRequiredError("supplier")
	}
	t.supplier = supplier
	return nil
}

func (t *Task) setExpected(expected []ExpectedLine) error {
	if len(expected) == 0 {
		return errs.NewValueIsRequiredError("expected lines")
	}

	seen := make(map[string]struct{}, len(expected))
	for _, line := range expected {
		if err := line.Validate(); err != nil {
			return err
		}
		if _, dup := seen[line.SKU]; dup {
			return errs.NewValueIsInvalidErrorWithCause("expected lines",
				fmt.Errorf("duplicate line for %s", line.SKU))
		}
		seen[line.SKU] = struct{}{}
	}

	t.expected = append([]ExpectedLine(nil), expected...)
	return nil
}
