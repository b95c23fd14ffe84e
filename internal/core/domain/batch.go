package domain

import "fmt"

// BatchMode selects how a batch reacts to a failing item.
type BatchMode string

const (
	// FailFast aborts the batch on the first failing item and rolls back all of its work.
	FailFast BatchMode = "fail-fast"
	// ContinueOnError records failing items and commits everything else.
	ContinueOnError BatchMode = "continue-on-error"
)

// ParseBatchMode validates a mode, defaulting to FailFast when empty.
func ParseBatchMode(s string) (BatchMode, error) {
	switch BatchMode(s) {
	case "":
		return FailFast, nil
	case FailFast, ContinueOnError:
		return BatchMode(s), nil
	default:
		return "", fmt.Errorf("unknown batch mode %q", s)
	}
}

// BatchItemStatus classifies the outcome of a single batch item.
type BatchItemStatus string

const (
	ItemCreated BatchItemStatus = "created"
	ItemUpdated BatchItemStatus = "updated"
	ItemFailed  BatchItemStatus = "failed"
)

// BatchItemResult is the per-item outcome reported back to the caller.
type BatchItemResult struct {
	Index         int             `json:"index"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	AccountName   string          `json:"accountName,omitempty"`
	ID            string          `json:"id,omitempty"` // resulting balance or detail id
	Status        BatchItemStatus `json:"status"`
	Error         string          `json:"error,omitempty"`
}

// BatchError is a structured failure entry of a batch.
type BatchError struct {
	Index         int    `json:"index"`
	AccountNumber string `json:"accountNumber,omitempty"`
	BalanceID     string `json:"balanceId,omitempty"`
	Type          string `json:"type"`
	Message       string `json:"message"`
}

// BatchResult summarises a batch run.
type BatchResult struct {
	Success bool              `json:"success"`
	Total   int               `json:"total"`
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Failed  int               `json:"failed"`
	Results []BatchItemResult `json:"results"`
	Errors  []BatchError      `json:"errors,omitempty"`
}

// Record appends an item outcome and maintains the counters.
func (r *BatchResult) Record(item BatchItemResult) {
	r.Results = append(r.Results, item)
	switch item.Status {
	case ItemCreated:
		r.Created++
	case ItemUpdated:
		r.Updated++
	case ItemFailed:
		r.Failed++
		r.Errors = append(r.Errors, BatchError{
			Index:         item.Index,
			AccountNumber: item.AccountNumber,
			Type:          "item_failure",
			Message:       item.Error,
		})
	}
	r.Success = r.Failed == 0 && len(r.Errors) == 0
}

// AddError appends a batch-level error that is not tied to a failed item.
func (r *BatchResult) AddError(e BatchError) {
	r.Errors = append(r.Errors, e)
	r.Success = false
}
