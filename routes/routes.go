package routes

import (
	"net/http"

	"paperpen/admin"
	"paperpen/auth"
	"paperpen/cart"
	"paperpen/catalog"
	"paperpen/checkout"
	"paperpen/middleware"
	"paperpen/orders"
	"paperpen/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))

	router.GET("/api/profile", middleware.Authenticate(auth.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(auth.UpdateProfile))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/products", catalog.GetProducts)
	router.GET("/api/products/:id", catalog.GetProduct)
	router.GET("/api/search/suggest", catalog.SuggestProducts)
	router.GET("/api/search/popular", catalog.PopularSearches)
}

// Cart routes take OptionalAuth: anonymous visitors keep a device-scoped
// cart, signed-in customers get theirs mirrored remotely. Only the
// delivery-type choice insists on a signed-in user.
func AddCartRoutes(router *httprouter.Router, store *cart.Store) {
	router.GET("/api/cart", middleware.OptionalAuth(cart.GetCart(store)))
	router.POST("/api/cart", middleware.OptionalAuth(cart.AddToCart(store)))
	router.PUT("/api/cart/:productId", middleware.OptionalAuth(cart.UpdateCartItem(store)))
	router.DELETE("/api/cart/:productId", middleware.OptionalAuth(cart.RemoveFromCart(store)))
	router.POST("/api/cart/clear", middleware.OptionalAuth(cart.ClearCart(store)))
	router.POST("/api/cart/delivery-type", middleware.OptionalAuth(cart.SetDeliveryType(store)))
}

func AddCheckoutRoutes(router *httprouter.Router, placer *checkout.Placer) {
	router.POST("/api/checkout", middleware.Authenticate(checkout.Confirm(placer)))

	router.GET("/api/addresses", middleware.Authenticate(checkout.ListAddresses))
	router.POST("/api/addresses", middleware.Authenticate(checkout.AddAddress))
	router.DELETE("/api/addresses/:addressId", middleware.Authenticate(checkout.DeleteAddress))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/orders", middleware.Authenticate(orders.MyOrders))
	router.GET("/api/orders/:orderId", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/:orderId/qr", middleware.Authenticate(orders.OrderQR))
	router.GET("/api/orders/:orderId/invoice", middleware.Authenticate(orders.OrderInvoice))
}

func AddAdminRoutes(router *httprouter.Router, hub *admin.Hub) {
	router.GET("/api/admin/stats", middleware.RequireAdmin(admin.GetStats))
	router.GET("/api/admin/users", middleware.RequireAdmin(admin.GetUsers))

	router.POST("/api/admin/products", middleware.RequireAdmin(admin.CreateProduct))
	router.DELETE("/api/admin/products/:id", middleware.RequireAdmin(admin.DeleteProduct))

	router.GET("/api/admin/orders", middleware.RequireAdmin(admin.GetOrders))
	router.PUT("/api/admin/orders/:orderId/status", middleware.RequireAdmin(admin.UpdateOrderStatus))
	router.DELETE("/api/admin/orders/:orderId", middleware.RequireAdmin(admin.DeleteOrder))

	router.GET("/ws/admin/orders", admin.OrderFeed(hub))
}
