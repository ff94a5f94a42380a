package dto

// Batch slot operation actions.
const (
	BatchActionCreate = "create"
	BatchActionUpdate = "update"
	BatchActionDelete = "delete"
)

// Batch statuses reported to the caller. They map onto HTTP 400, 201 and 207.
const (
	BatchStatusAllFailed    = "all_failed"
	BatchStatusAllSucceeded = "all_succeeded"
	BatchStatusMixed        = "mixed"
)

// SlotBatchOperation is one item of a batch slot-assignment request. Each
// item commits or fails independently of its siblings.
type SlotBatchOperation struct {
	Action       string `json:"action" validate:"required,oneof=create update delete"`
	AssignmentID string `json:"assignment_id,omitempty"`
	SlotID       string `json:"slot_id,omitempty"`
	DayOfWeek    int    `json:"day_of_week" validate:"gte=0,lte=6"`
}

// SlotBatchRequest wraps the operation list.
type SlotBatchRequest struct {
	Operations []SlotBatchOperation `json:"operations" validate:"required,min=1,dive"`
}

// SlotBatchItemResult reports the outcome of one operation.
type SlotBatchItemResult struct {
	Action       string `json:"action"`
	AssignmentID string `json:"assignment_id,omitempty"`
	SlotID       string `json:"slot_id,omitempty"`
	DayOfWeek    int    `json:"day_of_week"`
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
}

// SlotBatchResult aggregates the per-item outcomes.
type SlotBatchResult struct {
	Status          string                `json:"status"`
	SuccessCount    int                   `json:"success_count"`
	TotalOperations int                   `json:"total_operations"`
	Results         []SlotBatchItemResult `json:"results"`
}

// Resolve computes the tri-state status from the counters.
func (r *SlotBatchResult) Resolve() {
	switch {
	case r.SuccessCount == 0:
		r.Status = BatchStatusAllFailed
	case r.SuccessCount == r.TotalOperations:
		r.Status = BatchStatusAllSucceeded
	default:
		r.Status = BatchStatusMixed
	}
}
