package controllers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every API handler on group. The group must be wrapped
// by the unit-of-work middleware.
func RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/health", HealthCheck)
	v1.GET("/database/status", DatabaseStatus)

	buyers := v1.Group("/buyers")
	{
		buyers.GET("", ListBuyers)
		buyers.GET("/:id", GetBuyer)
		buyers.POST("", CreateBuyer)
		buyers.PUT("/:id", UpdateBuyer)
		buyers.DELETE("/:id", DeleteBuyer)
		buyers.DELETE("", DeleteBuyers)
	}

	sellers := v1.Group("/sellers")
	{
		sellers.GET("", ListSellers)
		sellers.GET("/:id", GetSeller)
		sellers.POST("", CreateSeller)
		sellers.PUT("/:id", UpdateSeller)
		sellers.DELETE("/:id", DeleteSeller)
		sellers.DELETE("", DeleteSellers)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", ListCategories)
		categories.GET("/:id", GetCategory)
		categories.POST("", CreateCategory)
		categories.PUT("/:id", UpdateCategory)
		categories.DELETE("/:id", DeleteCategory)
		categories.DELETE("", DeleteCategories)
	}

	machineries := v1.Group("/machineries")
	{
		machineries.GET("", ListMachineries)
		machineries.GET("/:id", GetMachinery)
		machineries.POST("", CreateMachinery)
		machineries.PUT("/:id", UpdateMachinery)
		machineries.DELETE("/:id", DeleteMachinery)
		machineries.DELETE("", DeleteMachineries)

		machineries.GET("/:id/images", ListMachineryImages)
		machineries.GET("/:id/images/lookup", LookupMachineryImage)
		machineries.POST("/:id/images/upload", UploadMachineryImage)
		machineries.DELETE("/:id/images", DeleteMachineryImage)
	}

	orders := v1.Group("/orders")
	{
		orders.GET("", ListOrders)
		orders.GET("/:id", GetOrder)
		orders.POST("", CreateOrder)
		orders.PUT("/:id", UpdateOrder)
		orders.DELETE("/:id", DeleteOrder)
	}

	v1.POST("/images", CreateImage)
	v1.GET("/uploads/:filename", GetUploadedImage)
}
