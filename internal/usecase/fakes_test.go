package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/service"
)

type memoryProfileRepo struct {
	mu      sync.Mutex
	lists   map[string][]json.RawMessage
	failErr error
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{lists: make(map[string][]json.RawMessage)}
}

func (r *memoryProfileRepo) Append(ctx context.Context, userID string, category entity.ProfileCategory, id string, doc []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	key := userID + "/" + string(category)
	r.lists[key] = append(r.lists[key], json.RawMessage(doc))
	return nil
}

func (r *memoryProfileRepo) List(ctx context.Context, userID string, category entity.ProfileCategory) ([]json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]json.RawMessage{}, r.lists[userID+"/"+string(category)]...), nil
}

func (r *memoryProfileRepo) count(userID string, category entity.ProfileCategory) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lists[userID+"/"+string(category)])
}

type fakeFulfillment struct {
	calls       []string
	table       *entity.ShippingTable
	shippingErr error
	uploadErr   error
	productErr  error
	orderErr    error
	lastProduct service.CreateProductRequest
	lastOrder   service.CreateOrderRequest
}

func (f *fakeFulfillment) GetProduct(ctx context.Context, productID string) (*service.ShopProduct, error) {
	f.calls = append(f.calls, "get_product")
	return &service.ShopProduct{ID: productID}, nil
}

func (f *fakeFulfillment) GetShippingTable(ctx context.Context, blueprintID, printProviderID int) (*entity.ShippingTable, error) {
	f.calls = append(f.calls, "shipping")
	if f.shippingErr != nil {
		return nil, f.shippingErr
	}
	if f.table == nil {
		return &entity.ShippingTable{}, nil
	}
	return f.table, nil
}

func (f *fakeFulfillment) UploadImageByURL(ctx context.Context, fileName, imageURL string) (*service.UploadedImage, error) {
	f.calls = append(f.calls, "upload")
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &service.UploadedImage{ID: "img_1", FileName: fileName}, nil
}

func (f *fakeFulfillment) CreateProduct(ctx context.Context, req service.CreateProductRequest) (*service.ShopProduct, error) {
	f.calls = append(f.calls, "create_product")
	f.lastProduct = req
	if f.productErr != nil {
		return nil, f.productErr
	}
	return &service.ShopProduct{
		ID: "prod_1",
		Images: []service.ShopProductImage{
			{Src: "https://images/other.png", VariantIDs: []int{1}},
			{Src: "https://images/front.png", VariantIDs: []int{req.Variants[0].ID}},
		},
	}, nil
}

func (f *fakeFulfillment) CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.CreatedOrder, error) {
	f.calls = append(f.calls, "create_order")
	f.lastOrder = req
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return &service.CreatedOrder{ID: "order_1"}, nil
}

type fakePayments struct {
	calls  int
	last   service.PaymentRequest
	result *service.PaymentResult
	err    error
}

func (f *fakePayments) CreatePayment(ctx context.Context, req service.PaymentRequest) (*service.PaymentResult, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &service.PaymentResult{ID: "pi_1", Status: "succeeded", Succeeded: true}, nil
}
