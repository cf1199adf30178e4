package domain

import "time"

const (
	OrderStatusCompleted  = "completed"
	OrderStatusProcessing = "processing"
	OrderStatusCanceled   = "canceled"
)

// Order representa um pedido com seus itens
type Order struct {
	ID         string      `json:"id"`
	AccountID  string      `json:"account_id"`
	CustomerID string      `json:"customer_id"`
	Status     string      `json:"status"`
	Total      float64     `json:"total"`
	CreatedAt  time.Time   `json:"created_at"`
	Items      []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// OrderFilter filtra pedidos por status e intervalo de datas
type OrderFilter struct {
	Statuses []string
	From     time.Time
	To       time.Time
}

// Product é uma linha do catálogo de produtos
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	SKU   string  `json:"sku"`
	Price float64 `json:"price"`
	Cost  float64 `json:"cost"`
}

// Margin retorna a margem do produto (0 quando não há custo cadastrado)
func (p Product) Margin() float64 {
	if p.Cost <= 0 || p.Price <= 0 {
		return 0
	}
	return Finite((p.Price - p.Cost) / p.Price)
}
