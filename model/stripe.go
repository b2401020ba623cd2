package model

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
}

type StripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type StripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Status   string            `json:"status"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

type CreatePaymentIntentInput struct {
	OrderID uint `json:"orderId" validate:"required,gt=0"`
}
