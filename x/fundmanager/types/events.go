package types

// Event types
const (
	EventTypeDeposit            = "fundmanager_deposit"
	EventTypeWithdraw           = "fundmanager_withdraw"
	EventTypeFeesDeposited      = "fundmanager_fees_deposited"
	EventTypeFeesWithdrawn      = "fundmanager_fees_withdrawn"
	EventTypeFeeRateChanged     = "fundmanager_fee_rate_changed"
	EventTypeLimitChanged       = "fundmanager_limit_changed"
	EventTypeRoleChanged        = "fundmanager_role_changed"
	EventTypeStatusChanged      = "fundmanager_status_changed"
	EventTypeDataImported       = "fundmanager_data_imported"
	EventTypeMigrated           = "fundmanager_migrated"
	EventTypeInterestCheckpoint = "fundmanager_interest_checkpoint"
)

// Event attribute keys
const (
	AttributeKeyInstance = "instance"
	AttributeKeyAccount  = "account"
	AttributeKeyAmount   = "amount"
	AttributeKeyShares   = "shares"
	AttributeKeyRole     = "role"
	AttributeKeyAddress  = "address"
	AttributeKeyStatus   = "status"
	AttributeKeyRateBps  = "rate_bps"
	AttributeKeyLimit    = "limit"
)
