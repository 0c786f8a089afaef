package mocks

import (
	"context"

	"stock-manager/core/market"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of market.Client
type Client struct {
	mock.Mock
}

func (m *Client) MyOrders(ctx context.Context) (*market.Orders, error) {
	args := m.Called(ctx)
	if orders, ok := args.Get(0).(*market.Orders); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateOrder(ctx context.Context, spec market.OrderSpec) (*market.Order, error) {
	args := m.Called(ctx, spec)
	if order, ok := args.Get(0).(*market.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) UpdateOrder(ctx context.Context, id string, platinum, quantity int64, visible bool) (*market.Order, error) {
	args := m.Called(ctx, id, platinum, quantity, visible)
	if order, ok := args.Get(0).(*market.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CloseOrder(ctx context.Context, urlName string, orderType market.OrderType) error {
	args := m.Called(ctx, urlName, orderType)
	return args.Error(0)
}

func (m *Client) DeleteOrder(ctx context.Context, id string) (*market.Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*market.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) MyAuctions(ctx context.Context) ([]market.Auction, error) {
	args := m.Called(ctx)
	if auctions, ok := args.Get(0).([]market.Auction); ok {
		return auctions, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) DeleteAuction(ctx context.Context, id string) (*market.Auction, error) {
	args := m.Called(ctx, id)
	if auction, ok := args.Get(0).(*market.Auction); ok {
		return auction, args.Error(1)
	}
	return nil, args.Error(1)
}
