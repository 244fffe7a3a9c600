package rest

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/purchasing"
)

var _ orderService = &orderServiceMock{}

type orderServiceMock struct {
	CreateFunc        func(ctx context.Context, input purchasing.CreateInput) (purchasing.Result, error)
	ValidateFunc      func(ctx context.Context, orderID uuid.UUID) (purchasing.Result, error)
	ReceiveFunc       func(ctx context.Context, input purchasing.ReceiveInput) (purchasing.Result, error)
	ReturnOrderFunc   func(ctx context.Context, input purchasing.ReasonInput) (purchasing.Result, error)
	CancelFunc        func(ctx context.Context, input purchasing.ReasonInput) (purchasing.Result, error)
	AttachInvoiceFunc func(ctx context.Context, orderID uuid.UUID, filename string, r io.Reader) (string, error)
	GetFunc           func(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	ListFunc          func(ctx context.Context, input purchasing.ListInput) ([]domain.PurchaseOrder, int, error)
	InvoiceFunc       func(ctx context.Context, orderID uuid.UUID) (purchasing.Document, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input purchasing.CreateInput
		}
		Validate []struct {
			Ctx     context.Context
			OrderID uuid.UUID
		}
		Receive []struct {
			Ctx   context.Context
			Input purchasing.ReceiveInput
		}
		ReturnOrder []struct {
			Ctx   context.Context
			Input purchasing.ReasonInput
		}
		Cancel []struct {
			Ctx   context.Context
			Input purchasing.ReasonInput
		}
		AttachInvoice []struct {
			Ctx      context.Context
			OrderID  uuid.UUID
			Filename string
			R        io.Reader
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx   context.Context
			Input purchasing.ListInput
		}
		Invoice []struct {
			Ctx     context.Context
			OrderID uuid.UUID
		}
	}
	lockCreate        sync.RWMutex
	lockValidate      sync.RWMutex
	lockReceive       sync.RWMutex
	lockReturnOrder   sync.RWMutex
	lockCancel        sync.RWMutex
	lockAttachInvoice sync.RWMutex
	lockGet           sync.RWMutex
	lockList          sync.RWMutex
	lockInvoice       sync.RWMutex
}

func (mock *orderServiceMock) Create(ctx context.Context, input purchasing.CreateInput) (purchasing.Result, error) {
	if mock.CreateFunc == nil {
		panic("orderServiceMock.CreateFunc: method is nil but orderService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input purchasing.CreateInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *orderServiceMock) CreateCalls() []struct {
		Ctx   context.Context
		Input purchasing.CreateInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input purchasing.CreateInput
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *orderServiceMock) Validate(ctx context.Context, orderID uuid.UUID) (purchasing.Result, error) {
	if mock.ValidateFunc == nil {
		panic("orderServiceMock.ValidateFunc: method is nil but orderService.Validate was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OrderID uuid.UUID
	}{
		Ctx:     ctx,
		OrderID: orderID,
	}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(ctx, orderID)
}

func (mock *orderServiceMock) ValidateCalls() []struct {
		Ctx     context.Context
		OrderID uuid.UUID
	} {
	var calls []struct {
		Ctx     context.Context
		OrderID uuid.UUID
	}
	mock.lockValidate.RLock()
	calls = mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}

func (mock *orderServiceMock) Receive(ctx context.Context, input purchasing.ReceiveInput) (purchasing.Result, error) {
	if mock.ReceiveFunc == nil {
		panic("orderServiceMock.ReceiveFunc: method is nil but orderService.Receive was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input purchasing.ReceiveInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockReceive.Lock()
	mock.calls.Receive = append(mock.calls.Receive, callInfo)
	mock.lockReceive.Unlock()
	return mock.ReceiveFunc(ctx, input)
}

func (mock *orderServiceMock) ReceiveCalls() []struct {
		Ctx   context.Context
		Input purchasing.ReceiveInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input purchasing.ReceiveInput
	}
	mock.lockReceive.RLock()
	calls = mock.calls.Receive
	mock.lockReceive.RUnlock()
	return calls
}

func (mock *orderServiceMock) ReturnOrder(ctx context.Context, input purchasing.ReasonInput) (purchasing.Result, error) {
	if mock.ReturnOrderFunc == nil {
		panic("orderServiceMock.ReturnOrderFunc: method is nil but orderService.ReturnOrder was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input purchasing.ReasonInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockReturnOrder.Lock()
	mock.calls.ReturnOrder = append(mock.calls.ReturnOrder, callInfo)
	mock.lockReturnOrder.Unlock()
	return mock.ReturnOrderFunc(ctx, input)
}

func (mock *orderServiceMock) ReturnOrderCalls() []struct {
		Ctx   context.Context
		Input purchasing.ReasonInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input purchasing.ReasonInput
	}
	mock.lockReturnOrder.RLock()
	calls = mock.calls.ReturnOrder
	mock.lockReturnOrder.RUnlock()
	return calls
}

func (mock *orderServiceMock) Cancel(ctx context.Context, input purchasing.ReasonInput) (purchasing.Result, error) {
	if mock.CancelFunc == nil {
		panic("orderServiceMock.CancelFunc: method is nil but orderService.Cancel was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input purchasing.ReasonInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCancel.Lock()
	mock.calls.Cancel = append(mock.calls.Cancel, callInfo)
	mock.lockCancel.Unlock()
	return mock.CancelFunc(ctx, input)
}

func (mock *orderServiceMock) CancelCalls() []struct {
		Ctx   context.Context
		Input purchasing.ReasonInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input purchasing.ReasonInput
	}
	mock.lockCancel.RLock()
	calls = mock.calls.Cancel
	mock.lockCancel.RUnlock()
	return calls
}

func (mock *orderServiceMock) AttachInvoice(ctx context.Context, orderID uuid.UUID, filename string, r io.Reader) (string, error) {
	if mock.AttachInvoiceFunc == nil {
		panic("orderServiceMock.AttachInvoiceFunc: method is nil but orderService.AttachInvoice was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		OrderID  uuid.UUID
		Filename string
		R        io.Reader
	}{
		Ctx:      ctx,
		OrderID:  orderID,
		Filename: filename,
		R:        r,
	}
	mock.lockAttachInvoice.Lock()
	mock.calls.AttachInvoice = append(mock.calls.AttachInvoice, callInfo)
	mock.lockAttachInvoice.Unlock()
	return mock.AttachInvoiceFunc(ctx, orderID, filename, r)
}

func (mock *orderServiceMock) AttachInvoiceCalls() []struct {
		Ctx      context.Context
		OrderID  uuid.UUID
		Filename string
		R        io.Reader
	} {
	var calls []struct {
		Ctx      context.Context
		OrderID  uuid.UUID
		Filename string
		R        io.Reader
	}
	mock.lockAttachInvoice.RLock()
	calls = mock.calls.AttachInvoice
	mock.lockAttachInvoice.RUnlock()
	return calls
}

func (mock *orderServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	if mock.GetFunc == nil {
		panic("orderServiceMock.GetFunc: method is nil but orderService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *orderServiceMock) GetCalls() []struct {
		Ctx context.Context
		ID  uuid.UUID
	} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *orderServiceMock) List(ctx context.Context, input purchasing.ListInput) ([]domain.PurchaseOrder, int, error) {
	if mock.ListFunc == nil {
		panic("orderServiceMock.ListFunc: method is nil but orderService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input purchasing.ListInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *orderServiceMock) ListCalls() []struct {
		Ctx   context.Context
		Input purchasing.ListInput
	} {
	var calls []struct {
		Ctx   context.Context
		Input purchasing.ListInput
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *orderServiceMock) Invoice(ctx context.Context, orderID uuid.UUID) (purchasing.Document, error) {
	if mock.InvoiceFunc == nil {
		panic("orderServiceMock.InvoiceFunc: method is nil but orderService.Invoice was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OrderID uuid.UUID
	}{
		Ctx:     ctx,
		OrderID: orderID,
	}
	mock.lockInvoice.Lock()
	mock.calls.Invoice = append(mock.calls.Invoice, callInfo)
	mock.lockInvoice.Unlock()
	return mock.InvoiceFunc(ctx, orderID)
}

func (mock *orderServiceMock) InvoiceCalls() []struct {
		Ctx     context.Context
		OrderID uuid.UUID
	} {
	var calls []struct {
		Ctx     context.Context
		OrderID uuid.UUID
	}
	mock.lockInvoice.RLock()
	calls = mock.calls.Invoice
	mock.lockInvoice.RUnlock()
	return calls
}
