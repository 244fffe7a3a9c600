package domain

import "slices"

// RequestStatus is the lifecycle state of a stocked-item request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
	RequestStatusTaken    RequestStatus = "TAKEN"
)

func (s RequestStatus) String() string { return string(s) }

func (s RequestStatus) IsValid() bool {
	_, ok := requestTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return slices.Contains(requestTransitions[s], next)
}

// IsTerminal reports whether no transition leaves s.
func (s RequestStatus) IsTerminal() bool {
	return s.IsValid() && len(requestTransitions[s]) == 0
}

// ExceptionalStatus is the lifecycle state of an exceptional request.
type ExceptionalStatus string

const (
	ExceptionalStatusPending   ExceptionalStatus = "PENDING"
	ExceptionalStatusAccepted  ExceptionalStatus = "ACCEPTED"
	ExceptionalStatusRejected  ExceptionalStatus = "REJECTED"
	ExceptionalStatusOrdered   ExceptionalStatus = "ORDERED"
	ExceptionalStatusDelivered ExceptionalStatus = "DELIVERED"
	ExceptionalStatusTaken     ExceptionalStatus = "TAKEN"
)

func (s ExceptionalStatus) String() string { return string(s) }

func (s ExceptionalStatus) IsValid() bool {
	_, ok := exceptionalTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s ExceptionalStatus) CanTransitionTo(next ExceptionalStatus) bool {
	return slices.Contains(exceptionalTransitions[s], next)
}

// IsTerminal reports whether no transition leaves s.
func (s ExceptionalStatus) IsTerminal() bool {
	return s.IsValid() && len(exceptionalTransitions[s]) == 0
}

// OrderStatus is the lifecycle state of a purchase order.
type OrderStatus string

const (
	OrderStatusUnvalidated OrderStatus = "UNVALIDATED"
	OrderStatusValidated   OrderStatus = "VALIDATED"
	OrderStatusDelivered   OrderStatus = "DELIVERED"
	OrderStatusReturned    OrderStatus = "RETURNED"
	OrderStatusCancelled   OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string { return string(s) }

func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return slices.Contains(orderTransitions[s], next)
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && len(orderTransitions[s]) == 0
}

// AcceptsAllocations reports whether exceptional lines may still be
// allocated against an order in this status. A delivered order has
// already been received into stock and is closed to new allocations.
func (s OrderStatus) AcceptsAllocations() bool {
	return s == OrderStatusUnvalidated || s == OrderStatusValidated
}

// Transition tables. Every status is a key; terminal statuses map to nil.

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:  {RequestStatusApproved, RequestStatusRejected},
	RequestStatusApproved: {RequestStatusTaken},
	RequestStatusRejected: nil,
	RequestStatusTaken:    nil,
}

var exceptionalTransitions = map[ExceptionalStatus][]ExceptionalStatus{
	ExceptionalStatusPending:   {ExceptionalStatusAccepted, ExceptionalStatusRejected},
	ExceptionalStatusAccepted:  {ExceptionalStatusOrdered},
	ExceptionalStatusRejected:  nil,
	ExceptionalStatusOrdered:   {ExceptionalStatusDelivered},
	ExceptionalStatusDelivered: {ExceptionalStatusTaken},
	ExceptionalStatusTaken:     nil,
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusUnvalidated: {OrderStatusValidated, OrderStatusCancelled},
	OrderStatusValidated:   {OrderStatusDelivered, OrderStatusReturned, OrderStatusCancelled},
	OrderStatusDelivered:   nil,
	OrderStatusReturned:    nil,
	OrderStatusCancelled:   nil,
}
