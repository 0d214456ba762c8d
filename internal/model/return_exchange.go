package model

import "time"

// ReturnStatus is the closed set of dispositions for a per-item
// return/exchange request.
type ReturnStatus string

const (
	ReturnStatusNone     ReturnStatus = "none"
	ReturnStatusPending  ReturnStatus = "pending"
	ReturnStatusApproved ReturnStatus = "approved"
	ReturnStatusRejected ReturnStatus = "rejected"
)

// ReturnType is what the customer asks for on a delivered item.
type ReturnType string

const (
	ReturnTypeRefund   ReturnType = "refund"
	ReturnTypeExchange ReturnType = "exchange"
)

func ParseReturnType(raw string) (ReturnType, bool) {
	switch ReturnType(raw) {
	case ReturnTypeRefund, ReturnTypeExchange:
		return ReturnType(raw), true
	default:
		return "", false
	}
}

// returnTransitions defines allowed status transitions when staff
// resolve a request. "none" and the terminal states accept nothing.
var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnStatusNone:     {},
	ReturnStatusPending:  {ReturnStatusApproved, ReturnStatusRejected},
	ReturnStatusApproved: {},
	ReturnStatusRejected: {},
}

type ReturnExchangeRecord struct {
	Type        ReturnType   `gorm:"size:32" json:"type,omitempty"`
	Reason      string       `gorm:"size:255" json:"reason,omitempty"`
	Status      ReturnStatus `gorm:"size:32;not null;default:none" json:"status"`
	RequestedAt *time.Time   `json:"requestedAt,omitempty"`
}

// CanTransitionTo checks whether the record may move to the target
// status. Unknown targets are never allowed.
func (r ReturnExchangeRecord) CanTransitionTo(target ReturnStatus) bool {
	for _, s := range returnTransitions[r.Status] {
		if s == target {
			return true
		}
	}
	return false
}
