package domain

import "time"

// Audit actions recorded for sensitive mutations.
const (
	AuditPointsEdited  = "points_edited"
	AuditVoucherGrant  = "voucher_granted"
	AuditMemberDeleted = "member_deleted"
	AuditStaffDeleted  = "staff_deleted"
)

// AuditEvent is an append-only trail entry. Events are written asynchronously
// and must never fail the mutation that produced them.
type AuditEvent struct {
	ActorUID   string    `json:"actor_uid" bson:"actor_uid"`
	Action     string    `json:"action" bson:"action"`
	Resource   string    `json:"resource" bson:"resource"`
	ResourceID string    `json:"resource_id" bson:"resource_id"`
	Detail     string    `json:"detail,omitempty" bson:"detail,omitempty"`
	At         time.Time `json:"at" bson:"at"`
}
