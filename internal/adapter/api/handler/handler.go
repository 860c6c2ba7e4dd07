package handler

import (
	"fairshoppe/internal/usecase"
)

var (
	authHandler    *AuthHandler
	userHandler    *UserHandler
	productHandler *ProductHandler
	orderHandler   *OrderHandler
	imageHandler   *ImageHandler
	profileHandler *ProfileHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	resolver *usecase.VariantResolver,
	orderUseCase *usecase.OrderUseCase,
	imageUseCase *usecase.ImageUseCase,
	profileUseCase *usecase.ProfileUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	productHandler = NewProductHandler(catalogUseCase, resolver)
	orderHandler = NewOrderHandler(orderUseCase)
	imageHandler = NewImageHandler(imageUseCase)
	profileHandler = NewProfileHandler(profileUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetImageHandler() *ImageHandler {
	return imageHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}
