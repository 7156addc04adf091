// Package mocks provides test doubles for the civic client.
package mocks

import (
	"context"

	civic "github.com/civic-tools/district-cli/pkg/civic"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Representatives provides a mock function with given fields: ctx, address
func (_m *MockClient) Representatives(ctx context.Context, address string) (*civic.RepresentativesResponse, error) {
	ret := _m.Called(ctx, address)

	if len(ret) == 0 {
		panic("no return value specified for Representatives")
	}

	var r0 *civic.RepresentativesResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*civic.RepresentativesResponse, error)); ok {
		return rf(ctx, address)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *civic.RepresentativesResponse); ok {
		r0 = rf(ctx, address)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*civic.RepresentativesResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, address)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
