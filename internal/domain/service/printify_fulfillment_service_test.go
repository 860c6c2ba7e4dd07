package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintifyUploadAndCreateProduct(t *testing.T) {
	var created CreateProductRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/v1/uploads/images.json":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "https://cdn.example.com/art.png", body["url"])
			w.Write([]byte(`{"id":"img_1","file_name":"art.png"}`))
		case "/v1/shops/42/products.json":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.Write([]byte(`{"id":"prod_1","images":[{"src":"https://images.example.com/m1.png","variant_ids":[17887],"position":"front","is_default":true}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc := NewPrintifyFulfillmentService("secret", "42", srv.URL)
	require.True(t, svc.Configured())

	uploaded, err := svc.UploadImageByURL(context.Background(), "art.png", "https://cdn.example.com/art.png")
	require.NoError(t, err)
	assert.Equal(t, "img_1", uploaded.ID)

	product, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Title:           "Tee",
		BlueprintID:     145,
		PrintProviderID: 3,
		Variants:        []ShopProductVariant{{ID: 17887, Price: 1999, IsEnabled: true}},
		PrintAreas: []PrintArea{{
			VariantIDs: []int{17887},
			Placeholders: []PrintAreaPlaceholder{{
				Position: "front",
				Images:   []PlacedImage{{ID: "img_1", X: 0.5, Y: 0.5, Scale: 1}},
			}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "prod_1", product.ID)
	require.Len(t, product.Images, 1)
	assert.Equal(t, int64(1999), created.Variants[0].Price)
	assert.Equal(t, "front", created.PrintAreas[0].Placeholders[0].Position)
}

func TestPrintifyShippingTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/catalog/blueprints/145/print_providers/3/shipping.json", r.URL.Path)
		w.Write([]byte(`{"handling_time":{"value":3,"unit":"day"},"profiles":[{"variant_ids":[1,2],"countries":["US"],"first_item":{"cost":100,"currency":"USD"},"additional_items":{"cost":50,"currency":"USD"}}]}`))
	}))
	defer srv.Close()

	svc := NewPrintifyFulfillmentService("secret", "42", srv.URL)
	table, err := svc.GetShippingTable(context.Background(), 145, 3)
	require.NoError(t, err)
	require.Len(t, table.Profiles, 1)
	assert.Equal(t, int64(100), table.Profiles[0].FirstItem.Cost)
	assert.Equal(t, []int{1, 2}, table.Profiles[0].VariantIDs)
}

func TestPrintifyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status":"error","message":"Validation failed."}`))
	}))
	defer srv.Close()

	svc := NewPrintifyFulfillmentService("secret", "42", srv.URL)
	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{ExternalID: "pi_1"})
	require.Error(t, err)

	var vendorErr *VendorHTTPError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, http.StatusUnprocessableEntity, vendorErr.StatusCode)
	assert.Contains(t, vendorErr.Body, "Validation failed")
}
