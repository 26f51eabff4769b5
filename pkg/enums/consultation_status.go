package enums

import "fmt"

// ConsultationStatus describes where a consultation request sits in review.
type ConsultationStatus string

const (
	ConsultationStatusPending  ConsultationStatus = "pending"
	ConsultationStatusAccepted ConsultationStatus = "accepted"
	ConsultationStatusRejected ConsultationStatus = "rejected"
)

var validConsultationStatuses = []ConsultationStatus{
	ConsultationStatusPending,
	ConsultationStatusAccepted,
	ConsultationStatusRejected,
}

// String returns the literal string for the status.
func (s ConsultationStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is known.
func (s ConsultationStatus) IsValid() bool {
	for _, candidate := range validConsultationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether an administrator has already decided the request.
func (s ConsultationStatus) IsTerminal() bool {
	return s == ConsultationStatusAccepted || s == ConsultationStatusRejected
}

// ParseConsultationStatus converts raw input into a ConsultationStatus.
func ParseConsultationStatus(value string) (ConsultationStatus, error) {
	for _, candidate := range validConsultationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid consultation status %q", value)
}

// ConsultationAction is an administrator decision on a pending request.
type ConsultationAction string

const (
	ConsultationActionAccept ConsultationAction = "accept"
	ConsultationActionReject ConsultationAction = "reject"
)

var statusByAction = map[ConsultationAction]ConsultationStatus{
	ConsultationActionAccept: ConsultationStatusAccepted,
	ConsultationActionReject: ConsultationStatusRejected,
}

// TargetStatus maps an action to the status it produces.
func (a ConsultationAction) TargetStatus() (ConsultationStatus, bool) {
	status, ok := statusByAction[a]
	return status, ok
}

// ParseConsultationAction converts raw input into a ConsultationAction.
// Matching is exact: "Accept" is not an action.
func ParseConsultationAction(value string) (ConsultationAction, error) {
	action := ConsultationAction(value)
	if _, ok := statusByAction[action]; !ok {
		return "", fmt.Errorf("invalid consultation action %q", value)
	}
	return action, nil
}
