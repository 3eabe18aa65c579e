package pricing

import "github.com/Govind-619/PriceSphere/utils"

var (
	ErrRuleNotFound         = utils.NotFoundError("pricing rule not found", nil)
	ErrSheetNotFound        = utils.NotFoundError("pricing sheet not found", nil)
	ErrUnknownRuleKind      = utils.BadRequestError("unknown pricing rule kind", nil)
	ErrUnsupportedFormat    = utils.BadRequestError("unsupported export format", nil)
	ErrInvalidRule          = utils.ValidationFailedError("invalid pricing rule", nil)
	ErrPromotionInactive    = utils.ConflictError("promotion is not active", nil)
	ErrPromotionExhausted   = utils.ConflictError("promotion usage limit reached", nil)
	ErrCustomerLimitReached = utils.ConflictError("promotion limit per customer reached", nil)
)
