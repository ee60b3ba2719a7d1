package picking

import (
	"errors"
	"fmt"
	"time"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/errs"
)

var (
	// ErrTaskIsNotConstructed is returned when a Task instance was not created
	// through NewTask or RestoreTask.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask or RestoreTask constructor")

	// ErrAlreadyAssigned indicates an assignment attempt on a task that has
	// already been claimed by another worker.
	ErrAlreadyAssigned = errors.New("picking task is already assigned")

	// ErrInvalidTransition indicates a lifecycle operation that the task's
	// current status does not permit.
	ErrInvalidTransition = errors.New("invalid picking task transition")

	// ErrLineNotFound indicates that the task carries no line for the SKU.
	ErrLineNotFound = errors.New("picking line not found")

	// ErrLineAlreadyRecorded indicates a second pick result for a line that
	// already reached a terminal status.
	ErrLineAlreadyRecorded = errors.New("picking line already recorded")

	// ErrLinesNotTerminal indicates a completion attempt while some lines
	// are still pending.
	ErrLinesNotTerminal = errors.New("picking task has unrecorded lines")

	// ErrVersionConflict indicates a lost optimistic-concurrency race on the
	// task row, typically two workers claiming the same task at once.
	ErrVersionConflict = errors.New("picking task version conflict")
)

// Line is one SKU position on a picking task. The requested quantity mirrors
// the order line that was reserved; the picked quantity and line status are
// filled in by the warehouse worker. The slot is a snapshot of the item's
// storage location at task creation time.
type Line struct {
	sku               string
	slot              kernel.Location
	quantityRequested int
	quantityPicked    int
	status            LineStatus
}

// NewLine creates a pending line for a requested SKU quantity.
func NewLine(sku string, slot kernel.Location, quantityRequested int) (Line, error) {
	if sku == "" {
		return Line{}, errs.NewValueIsRequiredError("sku")
	}
	if err := slot.Validate(); err != nil {
		return Line{}, err
	}
	if quantityRequested <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantityRequested",
			fmt.Errorf("%d is not greater than 0", quantityRequested))
	}

	return Line{
		sku:               sku,
		slot:              slot,
		quantityRequested: quantityRequested,
		status:            LinePending,
	}, nil
}

// RestoreLine reconstructs a line from persistence.
func RestoreLine(sku string, slot kernel.Location, quantityRequested, quantityPicked int, status LineStatus) (Line, error) {
	if sku == "" {
		return Line{}, errs.NewValueIsRequiredError("sku")
	}
	if err := status.Validate(); err != nil {
		return Line{}, err
	}

	return Line{
		sku:               sku,
		slot:              slot,
		quantityRequested: quantityRequested,
		quantityPicked:    quantityPicked,
		status:            status,
	}, nil
}

// SKU returns the stock-keeping unit of the line.
func (l Line) SKU() string { return l.sku }

// Slot returns the storage location snapshot for the line.
func (l Line) Slot() kernel.Location { return l.slot }

// QuantityRequested returns how many units the order line asked for.
func (l Line) QuantityRequested() int { return l.quantityRequested }

// QuantityPicked returns how many units were actually picked.
func (l Line) QuantityPicked() int { return l.quantityPicked }

// Status returns the line status.
func (l Line) Status() LineStatus { return l.status }

// UnpickedRemainder returns the requested units that were not picked.
func (l Line) UnpickedRemainder() int {
	return l.quantityRequested - l.quantityPicked
}

// Task is the picking work order aggregate. It references the reserved order
// lines but does not own inventory counters; the picked quantities it records
// drive the stock depletion performed by the application layer.
type Task struct {
	id          kernel.UUID
	orderID     kernel.UUID
	warehouseID kernel.UUID
	status      Status
	assignee    string
	lines       []Line

	// estimatedHandling is advisory planning metadata only
	estimatedHandling time.Duration

	// version is the optimistic-concurrency token, monotonically increasing
	version int64

	guard kernel.ConstructorGuard
}

// NewTask creates a Pending picking task for a reserved order.
// At least one line is required.
func NewTask(id, orderID, warehouseID kernel.UUID, lines []Line, estimatedHandling time.Duration) (*Task, error) {
	task := &Task{
		status:            Pending,
		estimatedHandling: estimatedHandling,
		version:           1,
		guard:             kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		task.setID(id),
		task.setOrderID(orderID),
		task.setWarehouseID(warehouseID),
		task.setLines(lines),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// RestoreTask reconstructs a task from persistence.
func RestoreTask(
	id, orderID, warehouseID kernel.UUID,
	status Status,
	assignee string,
	lines []Line,
	estimatedHandling time.Duration,
	version int64,
) (*Task, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("task version")
	}

	task := &Task{
		status:            status,
		assignee:          assignee,
		estimatedHandling: estimatedHandling,
		version:           version,
		guard:             kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		task.setID(id),
		task.setOrderID(orderID),
		task.setWarehouseID(warehouseID),
		task.setLines(lines),
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

// OrderID returns the order the task fulfils.
func (t *Task) OrderID() kernel.UUID { return t.orderID }

// WarehouseID returns the warehouse the task runs in.
func (t *Task) WarehouseID() kernel.UUID { return t.warehouseID }

// Status returns the lifecycle state.
func (t *Task) Status() Status { return t.status }

// Assignee returns the worker the task is assigned to, empty if unassigned.
func (t *Task) Assignee() string { return t.assignee }

// Lines returns a copy of the task lines.
func (t *Task) Lines() []Line {
	lines := make([]Line, len(t.lines))
	copy(lines, t.lines)
	return lines
}

// EstimatedHandling returns the advisory handling-time estimate.
func (t *Task) EstimatedHandling() time.Duration { return t.estimatedHandling }

// Version returns the optimistic-concurrency token the task was loaded with.
func (t *Task) Version() int64 { return t.version }

// Assign claims the task for a worker. Only Pending tasks can be assigned;
// racing claims are resolved by the repository's version check, so the first
// writer wins and later writers observe ErrAlreadyAssigned on their fresh read.
func (t *Task) Assign(worker string) error {
	if worker == "" {
		return errs.NewValueIsRequiredError("worker")
	}
	if t.status == Assigned || t.status == InProgress {
		return ErrAlreadyAssigned
	}
	if t.status != Pending {
		return fmt.Errorf("%w: cannot assign a %s task", ErrInvalidTransition, t.status)
	}

	t.status = Assigned
	t.assignee = worker
	return nil
}

// Start moves an assigned task into active picking.
func (t *Task) Start() error {
	if t.status != Assigned {
		return fmt.Errorf("%w: cannot start a %s task", ErrInvalidTransition, t.status)
	}

	t.status = InProgress
	return nil
}

// RecordLine stores the pick outcome for one line and returns the quantity
// to deplete from stock right away. Depleting as lines are recorded keeps
// stock correct even if task completion later fails.
//
// Outcome rules: Picked requires the full requested quantity, Short requires
// strictly less, Damaged requires zero picked units.
func (t *Task) RecordLine(sku string, quantityPicked int, status LineStatus) (int, error) {
	if t.status != InProgress {
		return 0, fmt.Errorf("%w: cannot record lines on a %s task", ErrInvalidTransition, t.status)
	}
	if !status.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause("line status",
			fmt.Errorf("%s is not a terminal line outcome", status))
	}
	if quantityPicked < 0 {
		return 0, errs.NewValueIsInvalidError("quantityPicked must not be negative")
	}

	idx := t.lineIndex(sku)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s", ErrLineNotFound, sku)
	}

	line := &t.lines[idx]
	if line.status.IsTerminal() {
		return 0, fmt.Errorf("%w: %s", ErrLineAlreadyRecorded, sku)
	}

	switch status {
	case LinePicked:
		if quantityPicked != line.quantityRequested {
			return 0, errs.NewValueIsInvalidErrorWithCause("quantityPicked",
				fmt.Errorf("Picked line requires the full quantity %d, got %d",
					line.quantityRequested, quantityPicked))
		}
	case LineShort:
		if quantityPicked >= line.quantityRequested {
			return 0, errs.NewValueIsInvalidErrorWithCause("quantityPicked",
				fmt.Errorf("Short line requires less than %d, got %d",
					line.quantityRequested, quantityPicked))
		}
	case LineDamaged:
		if quantityPicked != 0 {
			return 0, errs.NewValueIsInvalidErrorWithCause("quantityPicked",
				fmt.Errorf("Damaged line requires 0 picked units, got %d", quantityPicked))
		}
	case LinePending, UnknownLineStatus:
		return 0, errs.NewValueIsInvalidError("line status")
	}

	line.quantityPicked = quantityPicked
	line.status = status
	return quantityPicked, nil
}

// Remainder names an unpicked reserved quantity that must be returned to the
// available pool.
type Remainder struct {
	SKU      string
	Quantity int
}

// Complete finishes the task once every line reached a terminal status and
// returns the unpicked remainders of Short and Damaged lines for release.
func (t *Task) Complete() ([]Remainder, error) {
	if t.status != InProgress {
		return nil, fmt.Errorf("%w: cannot complete a %s task", ErrInvalidTransition, t.status)
	}

	for _, line := range t.lines {
		if !line.status.IsTerminal() {
			return nil, fmt.Errorf("%w: %s", ErrLinesNotTerminal, line.sku)
		}
	}

	remainders := t.unpickedRemainders()
	t.status = Completed
	return remainders, nil
}

// Cancel abandons a non-terminal task. The caller releases whatever the
// order still holds reserved; the ledger is the source of truth for that.
func (t *Task) Cancel() error {
	if t.status.IsTerminal() {
		return fmt.Errorf("%w: cannot cancel a %s task", ErrInvalidTransition, t.status)
	}

	t.status = Cancelled
	return nil
}

func (t *Task) unpickedRemainders() []Remainder {
	var remainders []Remainder
	for _, line := range t.lines {
		if rest := line.UnpickedRemainder(); rest > 0 {
			remainders = append(remainders, Remainder{SKU: line.sku, Quantity: rest})
		}
	}
	return remainders
}

func (t *Task) lineIndex(sku string) int {
	for i := range t.lines {
		if t.lines[i].sku == sku {
			return i
		}
	}
	return -1
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *Task) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.warehouseID = id
	return nil
}

func (t *Task) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.sku]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("duplicate line for %s", line.sku))
		}
		seen[line.sku] = struct{}{}
	}

	t.lines = make([]Line, len(lines))
	copy(t.lines, lines)
	return nil
}
