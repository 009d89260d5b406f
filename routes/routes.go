package routes

import (
	"net/http"

	"feira/auth"
	"feira/cart"
	"feira/middleware"
	"feira/orders"
	"feira/producers"
	"feira/products"
	"feira/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
	router.ServeFiles("/static/producerpic/*filepath", http.Dir("static/producerpic"))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register/:role", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rateLimiter.Limit(auth.RefreshToken))

	router.POST("/api/auth/forgot-password", rateLimiter.Limit(auth.RequestResetCode))
	router.POST("/api/auth/verify-reset-code", rateLimiter.Limit(auth.VerifyResetCode))
}

func AddProducerRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/producers", rateLimiter.Limit(producers.GetProducers))
	router.GET("/api/filter-by-name", rateLimiter.Limit(producers.FilterByName))
	router.GET("/api/location-producers", rateLimiter.Limit(producers.GetNearbyProducers))
	router.GET("/api/producers/:producerid", rateLimiter.Limit(producers.GetProducer))
	router.PUT("/api/producers/:producerid", middleware.Authenticate(producers.EditProducer))
	router.GET("/api/producers/:producerid/metrics", rateLimiter.Limit(producers.GetMetrics))
	router.PUT("/api/producers/:producerid/metrics", middleware.Authenticate(producers.UpdateMetrics))
}

func AddProductRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/products", rateLimiter.Limit(products.GetProducts))
	router.GET("/api/products/:productid", rateLimiter.Limit(products.GetProduct))
	router.POST("/api/products", middleware.Authenticate(products.CreateProduct))
	router.PUT("/api/products/:productid", middleware.Authenticate(products.EditProduct))
	router.DELETE("/api/products/:productid", middleware.Authenticate(products.DeleteProduct))
}

func AddCartRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, h *cart.Handler) {
	router.GET("/api/cart", middleware.Authenticate(h.Summary))
	router.POST("/api/cart/items", middleware.Authenticate(h.AddItem))
	router.PUT("/api/cart/items/:itemid", middleware.Authenticate(h.UpdateQuantity))
	router.DELETE("/api/cart/items/:itemid", middleware.Authenticate(h.RemoveItem))
	router.DELETE("/api/cart", middleware.Authenticate(h.Clear))
	router.PUT("/api/cart/delivery", middleware.Authenticate(h.SetDelivery))
	router.PUT("/api/cart/payment", middleware.Authenticate(h.SetPaymentMethod))
}

func AddOrderRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, h *orders.Handler, hub *orders.Hub) {
	router.POST("/api/orders", rateLimiter.Limit(middleware.Authenticate(h.PlaceOrder)))
	router.GET("/api/my-orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/incoming-orders", middleware.Authenticate(orders.GetIncomingOrders))
	router.POST("/api/orders/:orderid/accept", middleware.Authenticate(orders.AcceptOrder))
	router.POST("/api/orders/:orderid/reject", middleware.Authenticate(orders.RejectOrder))
	router.POST("/api/orders/:orderid/delivered", middleware.Authenticate(orders.MarkOrderDelivered))
	router.GET("/api/orders/:orderid/pix-qr", middleware.Authenticate(orders.GetPixQR))
	router.GET("/api/orders/:orderid/receipt", middleware.Authenticate(orders.DownloadReceipt))

	router.GET("/ws/orders/:producerid", middleware.Authenticate(orders.WebSocketHandler(hub)))
}

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, carts *cart.Handler, orderHandler *orders.Handler, hub *orders.Hub) {
	AddStaticRoutes(router)
	AddAuthRoutes(router, rateLimiter)
	AddProducerRoutes(router, rateLimiter)
	AddProductRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter, carts)
	AddOrderRoutes(router, rateLimiter, orderHandler, hub)
}
