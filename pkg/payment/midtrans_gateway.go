package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// MidtransGateway adapts the midtrans Core API to the Gateway port.
// Charge-level refs map to midtrans transaction ids, intent-level refs to
// order ids; the refund endpoint accepts either as its path parameter.
type MidtransGateway struct {
	client    coreapi.Client
	serverKey string
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var client coreapi.Client
	client.New(serverKey, env)

	return &MidtransGateway{
		client:    client,
		serverKey: serverKey,
	}
}

func (g *MidtransGateway) Available() bool {
	return g.serverKey != ""
}

func (g *MidtransGateway) GetTransaction(ctx context.Context, orderID string) (*Transaction, error) {
	res, err := g.client.CheckTransaction(orderID)
	if err != nil {
		return nil, fmt.Errorf("check transaction %s: %s", orderID, err.GetMessage())
	}

	gross, parseErr := strconv.ParseFloat(res.GrossAmount, 64)
	if parseErr != nil {
		return nil, fmt.Errorf("parse gross amount %q: %w", res.GrossAmount, parseErr)
	}

	return &Transaction{
		OrderID:       res.OrderID,
		TransactionID: res.TransactionID,
		PaymentType:   res.PaymentType,
		Status:        res.TransactionStatus,
		Currency:      res.Currency,
		GrossAmount:   gross,
	}, nil
}

func (g *MidtransGateway) CreateRefund(ctx context.Context, ref PaymentRef, amount float64, refundKey string) (*Refund, error) {
	if ref.Kind == RefNone {
		return nil, fmt.Errorf("no gateway identifier to refund against")
	}

	req := &coreapi.RefundReq{
		RefundKey: refundKey,
		Amount:    int64(amount),
		Reason:    "booking cancellation",
	}

	res, err := g.client.RefundTransaction(ref.ID, req)
	if err != nil {
		return nil, fmt.Errorf("refund %s %s: %s", ref.Kind, ref.ID, err.GetMessage())
	}

	return &Refund{ID: res.RefundKey}, nil
}
