package domain

// EntityType classifies the business objects documents attach to.
type EntityType string

const (
	EntityTypeVehicle  EntityType = "vehicle"
	EntityTypeEmployee EntityType = "employee"
	EntityTypeSupplier EntityType = "supplier"
	EntityTypeAsset    EntityType = "asset"
)

// ValidEntityTypes enumerates every accepted entity type.
var ValidEntityTypes = map[EntityType]bool{
	EntityTypeVehicle:  true,
	EntityTypeEmployee: true,
	EntityTypeSupplier: true,
	EntityTypeAsset:    true,
}

// ValidationStatus represents a document's position in the validation
// lifecycle. Pending is the only non-terminal state; no transition leads out
// of Approved or Rejected.
type ValidationStatus string

const (
	ValidationStatusPending  ValidationStatus = "pending"
	ValidationStatusApproved ValidationStatus = "approved"
	ValidationStatusRejected ValidationStatus = "rejected"
)

// LogAction tags an audit log entry with the operation that produced it.
type LogAction string

const (
	LogActionUploaded    LogAction = "uploaded"
	LogActionApproved    LogAction = "approved"
	LogActionRejected    LogAction = "rejected"
	LogActionN8NSent     LogAction = "n8n_sent"
	LogActionN8NCallback LogAction = "n8n_callback"
)

// CallbackStatus is the verdict reported by the external n8n workflow.
type CallbackStatus string

const (
	CallbackStatusApproved CallbackStatus = "approved"
	CallbackStatusRejected CallbackStatus = "rejected"
)

// Actor sentinels for audit entries not attributable to a named user.
const (
	ActorSystem = "system"
	ActorN8N    = "n8n"
)

// ComplianceErrorType tags an issue found by the bulk compliance check.
type ComplianceErrorType string

const (
	ComplianceMissing         ComplianceErrorType = "missing"
	ComplianceExpired         ComplianceErrorType = "expired"
	ComplianceRejectedActive  ComplianceErrorType = "rejected_active"
	ComplianceFutureIssueDate ComplianceErrorType = "future_issue_date"
)

// AllowedMimeTypes is the upload allow-list.
var AllowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/jpg":          true,
	"image/png":          true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}
