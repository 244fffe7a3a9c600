package domain

// UserRole represents the authorization level of a staff member.
type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleManager   UserRole = "MANAGER"
	UserRoleWarehouse UserRole = "WAREHOUSE"
	UserRoleRequester UserRole = "REQUESTER"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleWarehouse, UserRoleRequester:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// AlertRoles are the roles that receive stock alerts.
var AlertRoles = []UserRole{UserRoleManager, UserRoleWarehouse, UserRoleAdmin}

// StockStatus is derived from a product's on-hand quantity and threshold.
type StockStatus string

const (
	StockStatusNormal StockStatus = "NORMAL"
	StockStatusLow    StockStatus = "LOW"
	StockStatusOut    StockStatus = "OUT"
)

func (s StockStatus) String() string { return string(s) }

func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusNormal, StockStatusLow, StockStatusOut:
		return true
	}
	return false
}

// NeedsAlert reports whether the status should raise a stock alert.
func (s StockStatus) NeedsAlert() bool {
	return s == StockStatusLow || s == StockStatusOut
}

// ComputeStockStatus derives the status: OUT at zero, LOW at or below the
// threshold, NORMAL otherwise.
func ComputeStockStatus(onHand, threshold int) StockStatus {
	switch {
	case onHand <= 0:
		return StockStatusOut
	case onHand <= threshold:
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}

// LineKind distinguishes catalog products from exceptional products on a
// purchase order line.
type LineKind string

const (
	LineKindCatalog     LineKind = "CATALOG"
	LineKindExceptional LineKind = "EXCEPTIONAL"
)

func (k LineKind) String() string { return string(k) }

func (k LineKind) IsValid() bool {
	switch k {
	case LineKindCatalog, LineKindExceptional:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity (used in audit entries).
type EntityType string

const (
	EntityTypeRequest       EntityType = "REQUEST"
	EntityTypeExceptional   EntityType = "EXCEPTIONAL_REQUEST"
	EntityTypePurchaseOrder EntityType = "PURCHASE_ORDER"
	EntityTypeProduct       EntityType = "PRODUCT"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeRequest, EntityTypeExceptional, EntityTypePurchaseOrder, EntityTypeProduct:
		return true
	}
	return false
}

// AuditAction is the kind of state-changing action recorded in the audit trail.
type AuditAction string

const (
	AuditActionRequestApproved      AuditAction = "REQUEST_APPROVED"
	AuditActionRequestRejected      AuditAction = "REQUEST_REJECTED"
	AuditActionRequestTaken         AuditAction = "REQUEST_TAKEN"
	AuditActionExceptionalAccepted  AuditAction = "EXCEPTIONAL_ACCEPTED"
	AuditActionExceptionalRejected  AuditAction = "EXCEPTIONAL_REJECTED"
	AuditActionExceptionalOrdered   AuditAction = "EXCEPTIONAL_ORDERED"
	AuditActionExceptionalDelivered AuditAction = "EXCEPTIONAL_DELIVERED"
	AuditActionExceptionalTaken     AuditAction = "EXCEPTIONAL_TAKEN"
	AuditActionOrderCreated         AuditAction = "ORDER_CREATED"
	AuditActionOrderValidated       AuditAction = "ORDER_VALIDATED"
	AuditActionOrderDelivered       AuditAction = "ORDER_DELIVERED"
	AuditActionOrderReturned        AuditAction = "ORDER_RETURNED"
	AuditActionOrderCancelled       AuditAction = "ORDER_CANCELLED"
	AuditActionStockAdjusted        AuditAction = "STOCK_ADJUSTED"
	AuditActionProductAdded         AuditAction = "PRODUCT_ADDED"
	AuditActionProductUpdated       AuditAction = "PRODUCT_UPDATED"
	AuditActionProductRemoved       AuditAction = "PRODUCT_REMOVED"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionRequestApproved, AuditActionRequestRejected, AuditActionRequestTaken,
		AuditActionExceptionalAccepted, AuditActionExceptionalRejected, AuditActionExceptionalOrdered,
		AuditActionExceptionalDelivered, AuditActionExceptionalTaken,
		AuditActionOrderCreated, AuditActionOrderValidated, AuditActionOrderDelivered,
		AuditActionOrderReturned, AuditActionOrderCancelled, AuditActionStockAdjusted:
		return true
	}
	return a.IsManual()
}

// IsManual reports whether the action may be recorded directly by staff.
// Lifecycle actions are only ever written by the engines.
func (a AuditAction) IsManual() bool {
	switch a {
	case AuditActionProductAdded, AuditActionProductUpdated, AuditActionProductRemoved:
		return true
	}
	return false
}

// NotificationKind classifies a notification event.
type NotificationKind string

const (
	NotificationRequestApproved      NotificationKind = "REQUEST_APPROVED"
	NotificationRequestRejected      NotificationKind = "REQUEST_REJECTED"
	NotificationRequestTaken         NotificationKind = "REQUEST_TAKEN"
	NotificationExceptionalAccepted  NotificationKind = "EXCEPTIONAL_ACCEPTED"
	NotificationExceptionalRejected  NotificationKind = "EXCEPTIONAL_REJECTED"
	NotificationExceptionalDelivered NotificationKind = "EXCEPTIONAL_DELIVERED"
	NotificationExceptionalTaken     NotificationKind = "EXCEPTIONAL_TAKEN"
	NotificationOrderValidated       NotificationKind = "ORDER_VALIDATED"
	NotificationOrderDelivered       NotificationKind = "ORDER_DELIVERED"
	NotificationOrderReturned        NotificationKind = "ORDER_RETURNED"
	NotificationOrderCancelled       NotificationKind = "ORDER_CANCELLED"
	NotificationStockAlert           NotificationKind = "STOCK_ALERT"
)

func (k NotificationKind) String() string { return string(k) }

func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationRequestApproved, NotificationRequestRejected, NotificationRequestTaken,
		NotificationExceptionalAccepted, NotificationExceptionalRejected,
		NotificationExceptionalDelivered, NotificationExceptionalTaken,
		NotificationOrderValidated, NotificationOrderDelivered, NotificationOrderReturned,
		NotificationOrderCancelled, NotificationStockAlert:
		return true
	}
	return false
}
