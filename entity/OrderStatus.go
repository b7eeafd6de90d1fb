package entity

type OrderStatus string

const (
	StatusReview     OrderStatus = "REVIEW"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
)
