package request

type ProcessPaymentRequest struct {
	PaymentID string `json:"payment_id" validate:"required,uuid4"`
	Method    string `json:"method" validate:"required,oneof=card pix cash transfer"`
}

type SetFeeRateRequest struct {
	FeeRate float64 `json:"fee_rate" validate:"min=0,max=30"`
}

type WithdrawalRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
