package entity

import (
	"time"
)

// ProfileCategory names a per-user append-only list.
type ProfileCategory string

const (
	CategoryGeneratedImages ProfileCategory = "gen_images"
	CategoryUserImages      ProfileCategory = "user_images"
	CategoryEditedImages    ProfileCategory = "edited_images"
	CategoryTexts           ProfileCategory = "texts"
	CategoryDesigns         ProfileCategory = "designs"
	CategoryOrders          ProfileCategory = "orders"
)

var ProfileCategories = []ProfileCategory{
	CategoryGeneratedImages,
	CategoryUserImages,
	CategoryEditedImages,
	CategoryTexts,
	CategoryDesigns,
	CategoryOrders,
}

func (c ProfileCategory) Valid() bool {
	for _, known := range ProfileCategories {
		if c == known {
			return true
		}
	}
	return false
}

type GeneratedImage struct {
	ID        string    `json:"id" firestore:"id"`
	URL       string    `json:"url" firestore:"url"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	Prompt    string    `json:"prompt,omitempty" firestore:"prompt,omitempty"`
}

type UserImage struct {
	ID        string    `json:"id" firestore:"id"`
	URL       string    `json:"url" firestore:"url"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	Name      string    `json:"name,omitempty" firestore:"name,omitempty"`
}

type EditedImage struct {
	ID        string    `json:"id" firestore:"id"`
	URL       string    `json:"url" firestore:"url"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	Name      string    `json:"name,omitempty" firestore:"name,omitempty"`
}

type TextPosition struct {
	X float64 `json:"x" firestore:"x"`
	Y float64 `json:"y" firestore:"y"`
}

type TextData struct {
	ID         string        `json:"id" firestore:"id"`
	Content    string        `json:"content" firestore:"content"`
	CreatedAt  time.Time     `json:"createdAt" firestore:"createdAt"`
	Name       string        `json:"name,omitempty" firestore:"name,omitempty"`
	FontFamily string        `json:"fontFamily,omitempty" firestore:"fontFamily,omitempty"`
	FontSize   float64       `json:"fontSize,omitempty" firestore:"fontSize,omitempty"`
	Color      string        `json:"color,omitempty" firestore:"color,omitempty"`
	Position   *TextPosition `json:"position,omitempty" firestore:"position,omitempty"`
}

type Design struct {
	ID        string    `json:"id" firestore:"id"`
	ProductID int       `json:"productId" firestore:"productId"`
	VariantID int       `json:"variantId" firestore:"variantId"`
	ImageURL  string    `json:"imageUrl" firestore:"imageUrl"`
	TextData  string    `json:"textData,omitempty" firestore:"textData,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	Name      string    `json:"name,omitempty" firestore:"name,omitempty"`
}

type Order struct {
	ID              string    `json:"id" firestore:"id"`
	OrderID         string    `json:"orderId" firestore:"orderId"`
	ProductID       int       `json:"productId" firestore:"productId"`
	VariantID       int       `json:"variantId" firestore:"variantId"`
	Quantity        int       `json:"quantity" firestore:"quantity"`
	Price           float64   `json:"price" firestore:"price"`
	Status          string    `json:"status" firestore:"status"`
	ShippingAddress string    `json:"shippingAddress" firestore:"shippingAddress"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
	ImageURL        string    `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
}

// ProfileData is everything shown on the profile view, read in full.
type ProfileData struct {
	GeneratedImages []GeneratedImage `json:"gen_images"`
	UserImages      []UserImage      `json:"user_images"`
	EditedImages    []EditedImage    `json:"edited_images"`
	Texts           []TextData       `json:"texts"`
	Designs         []Design         `json:"designs"`
	Orders          []Order          `json:"orders"`
}
