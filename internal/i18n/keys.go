// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess           = "success"
	KeyError             = "error"
	KeyValidationInvalid = "validation.invalid"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAdminAccessDenied      = "admin.access_denied"

	// Orders
	KeyOrderEmptyRequest     = "order.empty_request"
	KeyOrderInvalidProductID = "order.invalid_product_id"
	KeyOrderInvalidQuantity  = "order.invalid_quantity"
	KeyOrderUnknownProduct   = "order.unknown_product"
	KeyOrderCreated          = "order.created"
	KeyOrderDeleted          = "order.deleted"
	KeyOrderNotFound         = "order.not_found"
	KeyOrderCreateFailed     = "order.create_failed"
	KeyOrderDeleteFailed     = "order.delete_failed"

	// Cache sync
	KeySyncOrdersCompleted   = "sync.orders_completed"
	KeySyncProductsCompleted = "sync.products_completed"
	KeySyncFailed            = "sync.failed"
)
