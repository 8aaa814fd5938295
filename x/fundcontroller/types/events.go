package types

// Event types
const (
	EventTypePoolRegistered     = "fundcontroller_pool_registered"
	EventTypePoolEnabled        = "fundcontroller_pool_enabled"
	EventTypePoolApproved       = "fundcontroller_pool_approved"
	EventTypePoolDeposit        = "fundcontroller_pool_deposit"
	EventTypePoolWithdraw       = "fundcontroller_pool_withdraw"
	EventTypeWithdrawToManager  = "fundcontroller_withdraw_to_manager"
	EventTypeRoleChanged        = "fundcontroller_role_changed"
	EventTypeStatusChanged      = "fundcontroller_status_changed"
	EventTypeMigrated           = "fundcontroller_migrated"
	EventTypeVenueConfigChanged = "fundcontroller_venue_config_changed"
)

// Event attribute keys
const (
	AttributeKeyInstance = "instance"
	AttributeKeyPoolID   = "pool_id"
	AttributeKeyVenue    = "venue"
	AttributeKeyMarket   = "market"
	AttributeKeyAmount   = "amount"
	AttributeKeyCaller   = "caller"
	AttributeKeyRole     = "role"
	AttributeKeyAddress  = "address"
	AttributeKeyStatus   = "status"
)
